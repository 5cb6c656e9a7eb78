package textstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"single sentence", "The shop opens at eight.", 1},
		{"three sentences", "We fix brakes. We rotate tires. Call us today.", 3},
		{"abbreviation not followed by capital", "Stop by the shop at st. marks and ask.", 1},
		{"quote after boundary", `He said it plainly. "Bring it in."`, 2},
		{"short fragments dropped", "Yes. The rest of this sentence is long enough to keep.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, SplitSentences(tt.text), tt.want)
		})
	}
}

func TestSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"beautiful", 3},
		{"the", 1},
		{"rhythm", 1},
		{"", 1},
		{"a", 1},
		{"engine", 2},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Syllables(tt.word))
		})
	}
}

func TestFleschKincaidGrade(t *testing.T) {
	t.Run("empty text returns neutral grade", func(t *testing.T) {
		assert.Equal(t, NeutralGrade, FleschKincaidGrade(""))
	})

	t.Run("simple text grades low", func(t *testing.T) {
		grade := FleschKincaidGrade("We fix cars. We do it fast. You can trust us.")
		assert.Less(t, grade, 5.0)
		assert.GreaterOrEqual(t, grade, 1.0)
	})

	t.Run("dense text grades higher", func(t *testing.T) {
		simple := FleschKincaidGrade("We fix cars. We do it fast. You can trust us.")
		dense := FleschKincaidGrade(
			"Our comprehensive automotive maintenance methodology incorporates sophisticated " +
				"diagnostic instrumentation alongside meticulous procedural documentation.")
		assert.Greater(t, dense, simple)
	})

	t.Run("clamped to ceiling", func(t *testing.T) {
		grade := FleschKincaidGrade(
			"Interdisciplinary organizational optimization necessitates institutionalized " +
				"infrastructural standardization methodologies incorporating internationalization " +
				"considerations alongside individualized characterization particularities.")
		assert.LessOrEqual(t, grade, 20.0)
	})
}

func TestMeasureRhythm(t *testing.T) {
	t.Run("too few sentences", func(t *testing.T) {
		_, ok := MeasureRhythm("One sentence only here.")
		assert.False(t, ok)
	})

	t.Run("uniform sentences have zero burstiness", func(t *testing.T) {
		rhythm, ok := MeasureRhythm("We fix all cars. We fix all vans. We fix all bikes.")
		assert.True(t, ok)
		assert.Equal(t, 0.0, rhythm.Burstiness)
		assert.Equal(t, 4.0, rhythm.MeanLength)
		assert.Equal(t, 3, rhythm.SentenceCount)
	})

	t.Run("varied sentences have positive burstiness", func(t *testing.T) {
		rhythm, ok := MeasureRhythm(
			"Short one. This sentence runs quite a bit longer than the first one did. Medium sentence here now.")
		assert.True(t, ok)
		assert.Greater(t, rhythm.Burstiness, 0.5)
	})
}

func TestContractionRate(t *testing.T) {
	t.Run("no contractions", func(t *testing.T) {
		assert.Equal(t, 0.0, ContractionRate("We will not fail you and we are sure of it."))
	})

	t.Run("contraction heavy text capped at one", func(t *testing.T) {
		assert.Equal(t, 1.0, ContractionRate("Don't stop. It's fine."))
	})

	t.Run("distinct forms counted once", func(t *testing.T) {
		once := ContractionRate("It's a good car and a fair price for anyone who wants reliable daily transportation around town.")
		repeated := ContractionRate("It's a good car and it's a fair price for anyone who wants reliable daily transportation here.")
		assert.Equal(t, once, repeated)
	})
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t"))
	assert.Equal(t, 4, WordCount("four words right here"))
}
