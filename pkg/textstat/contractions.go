package textstat

import (
	"math"
	"strings"
)

// Contractions is the fixed set of common contraction forms the
// contraction-rate proxy recognizes.
var Contractions = []string{
	"it's", "you'll", "here's", "that's", "don't", "won't", "can't",
	"isn't", "aren't", "wasn't", "weren't", "haven't", "hasn't",
	"hadn't", "i'm", "you're", "we're", "they're", "i've", "we've",
	"they've", "i'd", "you'd", "we'd", "they'd", "what's", "where's",
	"when's", "who's", "how's", "there's", "let's", "didn't", "doesn't",
	"couldn't", "shouldn't", "wouldn't", "mustn't", "shan't",
}

// ContractionRate is a rough contraction-density proxy, not a true
// per-clause rate: the count of recognized contraction forms present,
// divided by max(1, words/8) "opportunities", capped at 1.0.
func ContractionRate(text string) float64 {
	textLower := strings.ToLower(text)
	count := 0
	for _, c := range Contractions {
		if strings.Contains(textLower, c) {
			count++
		}
	}
	opportunities := math.Max(1, float64(WordCount(text))/8.0)
	return math.Min(1.0, float64(count)/opportunities)
}
