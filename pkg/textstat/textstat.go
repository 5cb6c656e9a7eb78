package textstat

import (
	"math"
	"regexp"
	"strings"
)

// NeutralGrade is returned when text has no usable sentences or words.
const NeutralGrade = 8.0

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// SplitSentences splits on ./!/? followed by whitespace and an uppercase
// letter or quote. Fragments under two words are discarded; they carry
// no rhythm signal and skew the length statistics.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		next := text[loc[1]:]
		if next == "" {
			continue
		}
		first := next[0]
		if (first >= 'A' && first <= 'Z') || first == '"' || first == '\'' {
			sentences = append(sentences, text[start:loc[0]+1])
			start = loc[1]
		}
	}
	sentences = append(sentences, text[start:])

	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" && len(strings.Fields(s)) >= 2 {
			out = append(out, s)
		}
	}
	return out
}

// Syllables estimates the syllable count of a word by counting
// transitions into vowel clusters, minus one for a trailing silent e.
// Floor is 1.
func Syllables(word string) int {
	word = strings.ToLower(strings.Trim(word, ".,!?;:\"'"))
	if word == "" {
		return 1
	}
	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if strings.HasSuffix(word, "e") && len(word) > 2 {
		count--
	}
	if count < 1 {
		return 1
	}
	return count
}

// FleschKincaidGrade estimates the FK grade level:
// 0.39*(words/sentences) + 11.8*(syllables/words) - 15.59, clamped to
// [1, 20]. Returns NeutralGrade for text with no sentences or words.
func FleschKincaidGrade(text string) float64 {
	sentences := SplitSentences(text)
	words := strings.Fields(text)
	if len(sentences) == 0 || len(words) == 0 {
		return NeutralGrade
	}

	syllables := 0
	for _, w := range words {
		syllables += Syllables(w)
	}

	avgSentenceLen := float64(len(words)) / float64(len(sentences))
	avgSyllables := float64(syllables) / float64(len(words))

	fk := 0.39*avgSentenceLen + 11.8*avgSyllables - 15.59
	return math.Max(1.0, math.Min(20.0, fk))
}

// Rhythm holds sentence-length variance statistics for a text.
type Rhythm struct {
	Burstiness    float64
	MeanLength    float64
	StdDev        float64
	SentenceCount int
}

// MeasureRhythm computes burstiness: the ratio of sentence word-length
// standard deviation to the mean. Fewer than 3 usable sentences is too
// little signal; ok reports whether the measurement is meaningful.
func MeasureRhythm(text string) (Rhythm, bool) {
	sentences := SplitSentences(text)
	if len(sentences) < 3 {
		return Rhythm{SentenceCount: len(sentences)}, false
	}

	lengths := make([]float64, 0, len(sentences))
	for _, s := range sentences {
		lengths = append(lengths, float64(len(strings.Fields(s))))
	}

	mean := 0.0
	for _, l := range lengths {
		mean += l
	}
	mean /= float64(len(lengths))

	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	// Sample standard deviation (n-1)
	stdDev := math.Sqrt(variance / float64(len(lengths)-1))

	burstiness := 0.0
	if mean > 0 {
		burstiness = stdDev / mean
	}

	return Rhythm{
		Burstiness:    burstiness,
		MeanLength:    mean,
		StdDev:        stdDev,
		SentenceCount: len(lengths),
	}, true
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
