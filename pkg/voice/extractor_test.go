package voice

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const shopCopy = "German Auto Doctor fixes BMW engines. German Auto Doctor fixes Audi engines. " +
	"German Auto Doctor fixes Porsche engines. You get your car back in 48 hours. " +
	"Our ASE certified technicians have 18 years of experience with European cars. " +
	"Don't wait until the check engine light comes on. It's cheaper to catch problems early."

func TestExtractIdentityFields(t *testing.T) {
	e := NewExtractor()
	p := e.Extract(ExtractInput{
		Text:       shopCopy,
		ClientSlug: "german-auto-doctor",
		BrandSlug:  "main",
		SourceURL:  "https://germanauto.example",
	})

	assert.Equal(t, "german-auto-doctor-main", p.ProfileID)
	assert.Equal(t, "german-auto-doctor", p.ClientSlug)
	assert.Equal(t, "main", p.BrandSlug)
	assert.Equal(t, "main", p.BrandDisplayName)
	assert.Equal(t, []string{"T1", "T2", "T3"}, p.TierScope)
	assert.Equal(t, []string{"https://germanauto.example"}, p.SourcePagesSampled)
	assert.Equal(t, "extraction", p.CaptureMethod)
	assert.NotEmpty(t, p.Created)
	assert.Equal(t, p.Created, p.LastUpdated)
}

func TestExtractPopulatesEveryBlock(t *testing.T) {
	e := NewExtractor()
	p := e.Extract(ExtractInput{Text: shopCopy, ClientSlug: "gad", BrandSlug: "main"})

	assert.NotNil(t, p.ReadingLevel)
	assert.NotNil(t, p.SentenceRhythm)
	assert.NotNil(t, p.ContractionRate)
	assert.NotNil(t, p.TechnicalSpecificity)
	assert.NotNil(t, p.Register)
	assert.NotNil(t, p.TrustSignalPattern)
	assert.NotNil(t, p.NativeConstructions)
	assert.NotNil(t, p.NegativeSpace)
	assert.NotNil(t, p.Vocabulary)
	assert.NotNil(t, p.CaptureConfidence)
	assert.NotNil(t, p.IntakeInterviewData)

	assert.Equal(t, ProvenanceMachine, p.ReadingLevel.Provenance)
	assert.InDelta(t, p.ReadingLevel.FleschKincaidGrade-1.5, p.ReadingLevel.TargetMin, 0.01)
	assert.Equal(t, 1.5, p.ReadingLevel.Tolerance)

	// Negative space is human territory: created empty, never mined
	assert.Equal(t, ProvenanceHuman, p.NegativeSpace.Provenance)
	assert.Empty(t, p.NegativeSpace.Items)

	assert.Empty(t, p.OverrideHistory)
	assert.Empty(t, p.LockedFields)
}

func TestExtractContractionTargets(t *testing.T) {
	e := NewExtractor()
	p := e.Extract(ExtractInput{Text: shopCopy, ClientSlug: "gad", BrandSlug: "main"})

	cr := p.ContractionRate
	assert.GreaterOrEqual(t, cr.Measured, 0.0)
	assert.LessOrEqual(t, cr.Measured, 1.0)
	assert.InDelta(t, cr.Measured-0.10, cr.TargetMin, 0.001)
	assert.InDelta(t, cr.Measured+0.10, cr.TargetMax, 0.001)
}

func TestConfidenceLevels(t *testing.T) {
	assert.Equal(t, ConfidenceLow, confidenceLevel(199))
	assert.Equal(t, ConfidenceMedium, confidenceLevel(200))
	assert.Equal(t, ConfidenceMedium, confidenceLevel(499))
	assert.Equal(t, ConfidenceHigh, confidenceLevel(500))
}

func TestExtractConfidenceDowngrades(t *testing.T) {
	e := NewExtractor()
	p := e.Extract(ExtractInput{Text: shopCopy, ClientSlug: "gad", BrandSlug: "main"})

	cc := p.CaptureConfidence
	assert.Equal(t, ConfidenceLow, cc.Overall)
	// Short sample downgrades rhythm and native constructions
	assert.Equal(t, ConfidenceLow, cc.PerField["sentence_rhythm"])
	assert.Equal(t, ConfidenceLow, cc.PerField["native_constructions"])
	assert.Contains(t, cc.LowConfidenceFlags, "native_constructions")
	assert.Contains(t, cc.Notes, "Add more source text")
}

func TestDetectTrustPattern(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantType string
	}{
		{
			"single category",
			"our ase certified technicians are factory trained for this work",
			TrustCertificationLed,
		},
		{
			"multiple categories classify as mixed",
			"certified technicians with a full warranty on every repair",
			TrustMixed,
		},
		{
			"nothing detected",
			"we like cars and coffee on quiet mornings",
			TrustUndetected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, examples := detectTrustPattern(tt.text)
			assert.Equal(t, tt.wantType, got)
			if tt.wantType == TrustUndetected {
				assert.Empty(t, examples)
			} else {
				assert.NotEmpty(t, examples)
			}
		})
	}
}

func TestMineNativeConstructions(t *testing.T) {
	items := mineNativeConstructions(shopCopy)

	var found *NativeConstruction
	for i := range items {
		if items[i].Pattern == "german auto doctor" {
			found = &items[i]
			break
		}
	}
	if assert.NotNil(t, found, "expected recurring trigram to be mined") {
		assert.Equal(t, 3, found.Frequency)
		assert.Equal(t, 0.90, found.Confidence)
	}

	// Sorted by confidence descending
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].Confidence, items[i].Confidence)
	}
}

func TestMeasureRegister(t *testing.T) {
	formality, warmth, person := measureRegister(
		"You get your car back fast. We help you and care about your family.")

	assert.Equal(t, "second", person)
	assert.GreaterOrEqual(t, warmth, 8)
	assert.LessOrEqual(t, formality, 5)
}

func TestUpdatePreservesHumanFields(t *testing.T) {
	e := NewExtractor()
	p := e.Extract(ExtractInput{
		Text:       shopCopy,
		ClientSlug: "gad",
		BrandSlug:  "main",
		SourceURL:  "https://germanauto.example",
	})

	p.SetNegativeSpace([]string{"X"}, "brand never says X", "reviewer")
	p.Lock("register", "approved by client", "reviewer")
	lockedRegister := *p.Register
	created := p.Created

	updated := e.Update(p, "Completely different text now. The tone shifted a lot here. "+
		"However, pursuant to regulations, the aforementioned service offerings remain available therein.")

	assert.Equal(t, []string{"X"}, updated.NegativeSpace.Items)
	assert.Equal(t, lockedRegister, *updated.Register)
	assert.Equal(t, created, updated.Created)
	assert.Equal(t, []string{"register"}, updated.LockedFields)
	assert.Len(t, updated.OverrideHistory, 2)
	assert.Contains(t, updated.SourcePagesSampled, "https://germanauto.example")
}

func TestProfileRoundTrip(t *testing.T) {
	e := NewExtractor()
	p := e.Extract(ExtractInput{Text: shopCopy, ClientSlug: "gad", BrandSlug: "main"})
	p.SetNegativeSpace([]string{"world-class", "look no further"}, "initial curation", "reviewer")

	raw, err := json.Marshal(p)
	assert.NoError(t, err)

	var decoded Profile
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, p.ProfileID, decoded.ProfileID)
	assert.Equal(t, p.NegativeSpace.Items, decoded.NegativeSpace.Items)
	assert.Equal(t, p.ReadingLevel.FleschKincaidGrade, decoded.ReadingLevel.FleschKincaidGrade)
	assert.Equal(t, p.Register.WarmthScore, decoded.Register.WarmthScore)
	assert.Len(t, decoded.OverrideHistory, 1)

	// Field names stay snake_case on the wire
	assert.True(t, strings.Contains(string(raw), `"flesch_kincaid_grade"`))
	assert.True(t, strings.Contains(string(raw), `"negative_space"`))
}
