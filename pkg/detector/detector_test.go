package detector

import (
	"strings"
	"testing"

	"copygate-be/pkg/scoring"

	"github.com/stretchr/testify/assert"
)

// Four sentences of exactly 12 words each, with four known AI-ism
// phrases. Zero length variance plus phrase hits should fail the gate.
const uniformAIText = "Our world-class team delivers a wide range of services for every customer. " +
	"We pride ourselves on quality results and expert care for local clients. " +
	"Look no further because our dedicated staff will always exceed your expectations. " +
	"Contact our friendly office today and discover the difference that really matters."

// Varied rhythm, concrete numbers, proper nouns, no flagged phrases.
const humanText = "The 2019 Subaru Outback sold for $23,400 after 48 hours on the lot. " +
	"Quick turnaround. " +
	"Marcus handled the inspection himself, checked the timing belt twice, and signed off before lunch. " +
	"Most dealers won't do that."

func TestScoreSectionUniformAIText(t *testing.T) {
	d := New(0)
	result := d.ScoreSection(uniformAIText, "about")

	assert.False(t, result.Pass)
	assert.Equal(t, "about", result.Section)
	assert.Less(t, result.OverallScore, DefaultPassThreshold)

	// Identical sentence lengths mean zero burstiness
	assert.Equal(t, 0.0, result.Dimensions["burstiness"].Metrics["burstiness"])
	assert.Equal(t, 4, result.Dimensions["ai_isms"].Metrics["violations_found"])

	foundBurstiness := false
	foundAIIsms := false
	for _, f := range result.Failures {
		if strings.Contains(f, "burstiness") {
			foundBurstiness = true
		}
		if strings.Contains(f, "AI-ism") {
			foundAIIsms = true
		}
	}
	assert.True(t, foundBurstiness, "expected a burstiness failure, got %v", result.Failures)
	assert.True(t, foundAIIsms, "expected an AI-ism failure, got %v", result.Failures)
	assert.NotEmpty(t, result.Suggestions)
}

func TestScoreSectionHumanText(t *testing.T) {
	d := New(0)
	result := d.ScoreSection(humanText, "inventory")

	assert.True(t, result.Pass)
	assert.Equal(t, 1.0, result.Dimensions["ai_isms"].Score)
	assert.Equal(t, 0, result.Dimensions["ai_isms"].Metrics["violations_found"])
	assert.Empty(t, result.Failures)
}

func TestScoreSectionEmptyText(t *testing.T) {
	d := New(0)

	for _, text := range []string{"", "   ", "\n\t  \n"} {
		result := d.ScoreSection(text, "empty")
		assert.True(t, result.Pass)
		assert.Equal(t, 1.0, result.OverallScore)
		assert.Empty(t, result.Dimensions)
	}
}

func TestAIIsmsCountDistinctPhrases(t *testing.T) {
	d := New(0)

	once := "Look no further for your next vehicle because our team checks every car twice before sale."
	twice := once + " Look no further than our showroom, where the same careful process applies every single day."

	a := d.ScoreSection(once, "s")
	b := d.ScoreSection(twice, "s")

	// A phrase counts once no matter how often it repeats, so adding a
	// repeat never lowers the dimension score.
	assert.Equal(t, a.Dimensions["ai_isms"].Score, b.Dimensions["ai_isms"].Score)
	assert.Equal(t, 1, b.Dimensions["ai_isms"].Metrics["violations_found"])
}

func TestScoreAIIsmsTiers(t *testing.T) {
	d := New(0)

	tests := []struct {
		name      string
		phrases   []string
		wantScore float64
	}{
		{"no phrases", nil, 1.0},
		{"one phrase", []string{"world-class"}, 0.75},
		{"two phrases", []string{"world-class", "look no further"}, 0.55},
		{"three phrases", []string{"world-class", "look no further", "passionate about"}, 0.40},
		{"five phrases", []string{"world-class", "look no further", "passionate about", "top-tier", "cutting-edge"}, 0.20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := "Plain filler copy about the shop. " + strings.Join(tt.phrases, " and ")
			dim := d.scoreAIIsms(text)
			assert.Equal(t, tt.wantScore, dim.Score)
		})
	}
}

func TestScoreHedgeDensityTiers(t *testing.T) {
	d := New(0)

	clean := d.scoreHedgeDensity("Clean confident copy with no qualifiers anywhere in this entire block of text.")
	assert.Equal(t, 1.0, clean.Score)

	saturated := d.scoreHedgeDensity("perhaps maybe possibly")
	assert.Equal(t, 0.20, saturated.Score)
	assert.Equal(t, 3, saturated.Metrics["hedge_count"])
	assert.NotEmpty(t, saturated.FailureReason)
}

func TestScoreTransitionTells(t *testing.T) {
	d := New(0)

	dim := d.scoreTransitionTells("Furthermore, we deliver. Moreover, we care.")
	assert.Equal(t, 0.20, dim.Score)
	assert.Equal(t, 2, dim.Metrics["transition_count"])
}

func TestScoreParallelStructureUniformBullets(t *testing.T) {
	d := New(0)

	bullets := "- Fast oil changes for every make\n" +
		"- Full brake service and repair\n" +
		"- Quick tire rotation and balance\n" +
		"- Same day battery replacement service\n"
	dim := d.scoreParallelStructure(bullets)
	assert.Equal(t, 0.40, dim.Score)
	assert.Contains(t, dim.FailureReason, "uniform")
}

func TestScoreSpecificity(t *testing.T) {
	d := New(0)

	t.Run("concrete copy scores high", func(t *testing.T) {
		dim := d.scoreSpecificity("The 2021 Honda Civic has 31,000 miles and a 180 hp engine built by Honda in Greensburg.")
		assert.GreaterOrEqual(t, dim.Score, 0.80)
	})

	t.Run("vague copy scores low", func(t *testing.T) {
		dim := d.scoreSpecificity("We offer many services and various options with numerous benefits for several kinds of customers.")
		assert.LessOrEqual(t, dim.Score, 0.30)
		assert.NotEmpty(t, dim.FailureReason)
	})
}

func TestScoreDocument(t *testing.T) {
	d := New(0)

	result := d.ScoreDocument([]scoring.Section{
		{Name: "hero", Text: humanText},
		{Name: "about", Text: uniformAIText},
	})

	assert.False(t, result.Pass)
	assert.Equal(t, 1, result.SectionsPassed)
	assert.Equal(t, 1, result.SectionsFailed)
	assert.Equal(t, []string{"about"}, result.FailedSections)
	assert.Len(t, result.SectionResults, 2)
}

func TestCustomThresholdAndPhrases(t *testing.T) {
	d := NewWithPhrases(0.50, PhraseConfig{
		AIIsms:            []string{"synergy"},
		HedgeWords:        []string{"perhaps"},
		FormalTransitions: []string{"therefore"},
		VagueQuantities:   []string{"many"},
	})

	assert.Equal(t, 0.50, d.PassThreshold())

	result := d.ScoreSection("Our synergy drives results for the Dayton region every single day of the year.", "s")
	assert.Equal(t, 1, result.Dimensions["ai_isms"].Metrics["violations_found"])
	assert.Equal(t, 0.50, result.Threshold)
}
