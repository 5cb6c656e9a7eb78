package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineRenormalizesWeights(t *testing.T) {
	weights := map[string]float64{"a": 0.25, "b": 0.25, "c": 0.50}

	t.Run("all dimensions active", func(t *testing.T) {
		dims := map[string]DimensionResult{
			"a": {Score: 1.0},
			"b": {Score: 1.0},
			"c": {Score: 0.5},
		}
		r := Combine("s", []string{"a", "b", "c"}, dims, weights, 0.60)
		assert.Equal(t, 0.75, r.OverallScore)
		assert.True(t, r.Pass)
	})

	t.Run("inactive dimensions drop out of the denominator", func(t *testing.T) {
		dims := map[string]DimensionResult{
			"a": {Score: 1.0},
			"b": {Score: 0.5},
		}
		r := Combine("s", []string{"a", "b", "c"}, dims, weights, 0.60)
		assert.Equal(t, 0.75, r.OverallScore)
	})
}

func TestCombinePassAtThresholdBoundary(t *testing.T) {
	dims := map[string]DimensionResult{"a": {Score: 0.65}}
	r := Combine("s", []string{"a"}, dims, map[string]float64{"a": 1.0}, 0.65)
	assert.True(t, r.Pass)

	dims["a"] = DimensionResult{Score: 0.649}
	r = Combine("s", []string{"a"}, dims, map[string]float64{"a": 1.0}, 0.65)
	assert.False(t, r.Pass)
}

func TestCombineCollectsFailuresInOrder(t *testing.T) {
	dims := map[string]DimensionResult{
		"first":  {Score: 0.30, FailureReason: "first failed", Suggestion: "fix first"},
		"second": {Score: 0.90},
		"third":  {Score: 0.40, FailureReason: "third failed"},
	}
	r := Combine("s", []string{"first", "second", "third"}, dims, map[string]float64{
		"first": 1, "second": 1, "third": 1,
	}, 0.60)

	assert.Equal(t, []string{"first failed", "third failed"}, r.Failures)
	assert.Equal(t, []string{"fix first"}, r.Suggestions)
}

func TestAggregate(t *testing.T) {
	scoreFn := func(text, name string) SectionResult {
		pass := text != "bad"
		score := 1.0
		if !pass {
			score = 0.2
		}
		return SectionResult{Section: name, Pass: pass, OverallScore: score}
	}

	t.Run("mixed results", func(t *testing.T) {
		r := Aggregate([]Section{
			{Name: "hero", Text: "good"},
			{Name: "about", Text: "bad"},
			{Name: "services", Text: "bad"},
		}, scoreFn)

		assert.False(t, r.Pass)
		assert.Equal(t, 1, r.SectionsPassed)
		assert.Equal(t, 2, r.SectionsFailed)
		assert.Equal(t, []string{"about", "services"}, r.FailedSections)
		assert.Equal(t, 0.467, r.OverallScore)
	})

	t.Run("no sections", func(t *testing.T) {
		r := Aggregate(nil, scoreFn)
		assert.True(t, r.Pass)
		assert.Equal(t, 0.0, r.OverallScore)
	})
}

func TestTrivialPass(t *testing.T) {
	r := TrivialPass("hero", 0.65)
	assert.True(t, r.Pass)
	assert.Equal(t, 1.0, r.OverallScore)
	assert.Equal(t, 0.65, r.Threshold)
	assert.NotEmpty(t, r.Note)
	assert.Empty(t, r.Failures)
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 0.667, Round3(2.0/3.0))
	assert.Equal(t, 0.5, Round3(0.5))
}
