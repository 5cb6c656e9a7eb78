package aligner

import (
	"testing"

	"copygate-be/pkg/scoring"
	"copygate-be/pkg/voice"

	"github.com/stretchr/testify/assert"
)

func baseProfile() *voice.Profile {
	return &voice.Profile{
		ProfileID:        "gad-main",
		ClientSlug:       "gad",
		BrandSlug:        "main",
		BrandDisplayName: "German Auto Doctor",
	}
}

func TestSparseProfileScoresLeniently(t *testing.T) {
	a := New(baseProfile(), 0)

	result := a.ScoreSection("Some copy that cannot be checked against anything yet.", "hero")

	assert.True(t, result.Pass)
	assert.Equal(t, SparseProfileScore, result.OverallScore)
	assert.Equal(t, "gad-main", result.ProfileUsed)
	assert.NotEmpty(t, result.Note)
	assert.NotEmpty(t, result.Suggestions)
	assert.Empty(t, result.Dimensions)
}

func TestEmptySectionTriviallyPasses(t *testing.T) {
	a := New(baseProfile(), 0)

	result := a.ScoreSection("   \n ", "hero")
	assert.True(t, result.Pass)
	assert.Equal(t, 1.0, result.OverallScore)
}

func TestNegativeSpaceViolations(t *testing.T) {
	p := baseProfile()
	p.NegativeSpace = &voice.NegativeSpace{Items: []string{"world-class", "look no further"}}
	a := New(p, 0)

	t.Run("one violation halves the score", func(t *testing.T) {
		result := a.ScoreSection("Our world-class technicians handle every repair with care.", "hero")
		dim := result.Dimensions["negative_space"]
		assert.Equal(t, 0.50, dim.Score)
		assert.Equal(t, 1, dim.Metrics["violation_count"])
		assert.False(t, result.Pass)
	})

	t.Run("two violations score lower", func(t *testing.T) {
		result := a.ScoreSection("Look no further: our world-class technicians do it all.", "hero")
		dim := result.Dimensions["negative_space"]
		assert.Equal(t, 0.20, dim.Score)
		assert.Equal(t, 2, dim.Metrics["violation_count"])
	})

	t.Run("clean copy passes", func(t *testing.T) {
		result := a.ScoreSection("Our technicians handle every repair with the same careful process.", "hero")
		dim := result.Dimensions["negative_space"]
		assert.Equal(t, 1.0, dim.Score)
		assert.True(t, result.Pass)
	})
}

func TestReadingLevelAlignment(t *testing.T) {
	simpleText := "We fix cars. We do it fast. You can trust us here."

	t.Run("inside the target band", func(t *testing.T) {
		p := baseProfile()
		p.ReadingLevel = &voice.ReadingLevel{TargetMin: 1.0, TargetMax: 20.0, Tolerance: 1.5}
		result := New(p, 0).ScoreSection(simpleText, "hero")
		assert.Equal(t, 1.0, result.Dimensions["reading_level"].Score)
	})

	t.Run("far below the target band", func(t *testing.T) {
		p := baseProfile()
		p.ReadingLevel = &voice.ReadingLevel{TargetMin: 15.0, TargetMax: 20.0, Tolerance: 1.5}
		result := New(p, 0).ScoreSection(simpleText, "hero")
		dim := result.Dimensions["reading_level"]
		assert.Equal(t, 0.0, dim.Score)
		assert.Contains(t, dim.FailureReason, "too simple")
	})
}

func TestContractionRateAlignment(t *testing.T) {
	p := baseProfile()
	p.ContractionRate = &voice.ContractionRate{
		Measured:  0.5,
		TargetMin: 0.4,
		TargetMax: 0.6,
		Tolerance: 0.10,
	}
	a := New(p, 0)

	t.Run("inside the band scores full", func(t *testing.T) {
		result := a.ScoreSection(
			"We don't cut corners on brake work and our costs stay fair for every customer.", "hero")
		assert.Equal(t, 1.0, result.Dimensions["contraction_rate"].Score)
	})

	t.Run("no contractions reads too formal", func(t *testing.T) {
		result := a.ScoreSection(
			"We will not cut corners on brake work and we keep costs fair for all customers.", "hero")
		dim := result.Dimensions["contraction_rate"]
		assert.Equal(t, 0.0, dim.Score)
		assert.Contains(t, dim.FailureReason, "too formal")
		assert.False(t, result.Pass)
	})
}

func TestNativeConstructionHitRate(t *testing.T) {
	p := baseProfile()
	p.NativeConstructions = &voice.NativeConstructions{
		ConfidenceThreshold: 0.70,
		Items: []voice.NativeConstruction{
			{Pattern: "german auto doctor", Confidence: 0.90, Frequency: 3},
			{Pattern: "factory trained", Confidence: 0.85, Frequency: 2},
			{Pattern: "honest diagnostics", Confidence: 0.80, Frequency: 2},
			{Pattern: "below threshold", Confidence: 0.50, Frequency: 2},
		},
	}
	a := New(p, 0)

	t.Run("one of three patterns is a full hit rate", func(t *testing.T) {
		result := a.ScoreSection("German Auto Doctor keeps your BMW on the road longer.", "hero")
		dim := result.Dimensions["native_constructions"]
		assert.Equal(t, 1.0, dim.Score)
		assert.Equal(t, 3, dim.Metrics["patterns_checked"])
		assert.Equal(t, 1, dim.Metrics["patterns_found"])
	})

	t.Run("zero hits flags the section", func(t *testing.T) {
		result := a.ScoreSection("Generic copy with none of the brand patterns in it at all.", "hero")
		dim := result.Dimensions["native_constructions"]
		assert.Equal(t, 0.40, dim.Score)
		assert.Contains(t, dim.FailureReason, "0/3")
	})
}

func TestRegisterAlignment(t *testing.T) {
	p := baseProfile()
	p.Register = &voice.Register{FormalityScore: 5, WarmthScore: 5}
	a := New(p, 0)

	result := a.ScoreSection("The brake pads get thin over time and the rotors follow.", "hero")
	dim := result.Dimensions["register"]
	assert.Equal(t, 1.0, dim.Score)
	assert.Equal(t, 5, dim.Metrics["formality_estimated"])
	assert.Equal(t, 5, dim.Metrics["warmth_estimated"])
}

func TestPartialBlocksActivatePerTarget(t *testing.T) {
	neutralText := "The brake pads get thin over time and the rotors follow."

	t.Run("measured-only reading level derives the band", func(t *testing.T) {
		p := baseProfile()
		p.ReadingLevel = &voice.ReadingLevel{FleschKincaidGrade: 8.0}
		result := New(p, 0).ScoreSection(neutralText, "hero")
		dim, ok := result.Dimensions["reading_level"]
		assert.True(t, ok)
		assert.Equal(t, 6.5, dim.Metrics["target_min"])
		assert.Equal(t, 9.5, dim.Metrics["target_max"])
	})

	t.Run("person-only register stays inactive", func(t *testing.T) {
		p := baseProfile()
		p.Register = &voice.Register{PrimaryPerson: "second"}
		result := New(p, 0).ScoreSection(neutralText, "hero")
		_, ok := result.Dimensions["register"]
		assert.False(t, ok)
		assert.True(t, result.Pass)
		assert.Equal(t, SparseProfileScore, result.OverallScore)
	})

	t.Run("formality-only register skips warmth", func(t *testing.T) {
		p := baseProfile()
		p.Register = &voice.Register{FormalityScore: 5}
		result := New(p, 0).ScoreSection(neutralText, "hero")
		dim := result.Dimensions["register"]
		assert.Equal(t, 1.0, dim.Score)
		assert.Equal(t, 5, dim.Metrics["formality_estimated"])
		assert.NotContains(t, dim.Metrics, "warmth_estimated")
	})

	t.Run("measured-only contraction rate targets the measured value", func(t *testing.T) {
		p := baseProfile()
		p.ContractionRate = &voice.ContractionRate{Measured: 0.5}
		result := New(p, 0).ScoreSection(neutralText, "hero")
		dim, ok := result.Dimensions["contraction_rate"]
		assert.True(t, ok)
		assert.Equal(t, 0.5, dim.Metrics["target"])
	})

	t.Run("empty blocks stay inactive", func(t *testing.T) {
		p := baseProfile()
		p.ReadingLevel = &voice.ReadingLevel{}
		p.ContractionRate = &voice.ContractionRate{}
		p.Register = &voice.Register{}
		result := New(p, 0).ScoreSection(neutralText, "hero")
		assert.Empty(t, result.Dimensions)
		assert.True(t, result.Pass)
	})
}

func TestConfidenceThresholdDefaults(t *testing.T) {
	p := baseProfile()
	p.NativeConstructions = &voice.NativeConstructions{
		Items: []voice.NativeConstruction{
			{Pattern: "maybe a brand phrase", Confidence: 0.30, Frequency: 1},
		},
	}
	a := New(p, 0)

	// The lone low-confidence pattern falls below the default cutoff, so
	// the dimension scores neutrally instead of punishing a miss.
	result := a.ScoreSection("Plain honest copy about brake repair and oil changes.", "hero")
	dim := result.Dimensions["native_constructions"]
	assert.Equal(t, 0.80, dim.Score)
	assert.NotEmpty(t, dim.Note)
}

func TestWeightsRenormalizeOverActiveDimensions(t *testing.T) {
	// Only negative space is defined, so its 0.10 weight becomes the
	// whole composite.
	p := baseProfile()
	p.NegativeSpace = &voice.NegativeSpace{Items: []string{"synergy"}}
	a := New(p, 0)

	result := a.ScoreSection("Our synergy delivers results for the region.", "hero")
	assert.Equal(t, 0.50, result.OverallScore)
	assert.False(t, result.Pass)
}

func TestScoreDocument(t *testing.T) {
	p := baseProfile()
	p.NegativeSpace = &voice.NegativeSpace{Items: []string{"world-class"}}
	a := New(p, 0)

	result := a.ScoreDocument([]scoring.Section{
		{Name: "hero", Text: "Plain honest copy about brake repair and oil changes."},
		{Name: "about", Text: "Our world-class service team does everything imaginable."},
	})

	assert.Equal(t, "gad-main", result.ProfileUsed)
	assert.False(t, result.Pass)
	assert.Equal(t, []string{"about"}, result.FailedSections)
}
