package detector

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"copygate-be/pkg/scoring"
	"copygate-be/pkg/textstat"
)

// DefaultPassThreshold is the composite score required to pass Pass 1.
const DefaultPassThreshold = 0.65

// Dimension weights. Burstiness and AI-isms carry the most signal.
var pass1Weights = map[string]float64{
	"burstiness":         0.25,
	"ai_isms":            0.25,
	"parallel_structure": 0.15,
	"hedge_density":      0.15,
	"specificity":        0.10,
	"transition_tells":   0.10,
}

var pass1Order = []string{
	"burstiness", "ai_isms", "parallel_structure",
	"hedge_density", "specificity", "transition_tells",
}

var (
	numberPattern   = regexp.MustCompile(`(?i)\b\d+(?:,\d{3})*(?:\.\d+)?(?:\s*(?:mph|rpm|miles|km|years?|months?|hours?|%|lbs?|kg|sq\s*ft|psi))?\b`)
	capitalizedWord = regexp.MustCompile(`\b[A-Z][a-z]{2,}\b`)
)

// Capitalized words in these positions are sentence starters, not
// proper nouns.
var commonStarters = map[string]bool{
	"The": true, "A": true, "An": true, "We": true, "Our": true,
	"Your": true, "This": true, "That": true, "If": true, "When": true,
	"As": true, "At": true, "By": true, "For": true, "In": true,
	"It": true, "On": true, "So": true, "To": true,
}

// Detector is the Pass 1 engine: universal, profile-free AI-detection
// scoring. Pure function of the input text, no external state, safe
// for concurrent use.
type Detector struct {
	passThreshold float64
	phrases       PhraseConfig

	hedgePatterns      []*regexp.Regexp
	transitionPatterns map[string]*regexp.Regexp
	vaguePattern       *regexp.Regexp
}

// New creates a detector with the stock phrase lists. A zero threshold
// selects DefaultPassThreshold.
func New(passThreshold float64) *Detector {
	return NewWithPhrases(passThreshold, DefaultPhrases())
}

// NewWithPhrases creates a detector scoring against custom phrase lists.
func NewWithPhrases(passThreshold float64, phrases PhraseConfig) *Detector {
	if passThreshold == 0 {
		passThreshold = DefaultPassThreshold
	}

	d := &Detector{
		passThreshold:      passThreshold,
		phrases:            phrases,
		transitionPatterns: make(map[string]*regexp.Regexp, len(phrases.FormalTransitions)),
	}
	for _, hedge := range phrases.HedgeWords {
		d.hedgePatterns = append(d.hedgePatterns, wordBoundary(hedge))
	}
	for _, t := range phrases.FormalTransitions {
		d.transitionPatterns[t] = wordBoundary(t)
	}

	escaped := make([]string, 0, len(phrases.VagueQuantities))
	for _, v := range phrases.VagueQuantities {
		escaped = append(escaped, regexp.QuoteMeta(v))
	}
	d.vaguePattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)\b`)

	return d
}

func wordBoundary(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// PassThreshold reports the configured composite pass cutoff.
func (d *Detector) PassThreshold() float64 {
	return d.passThreshold
}

// ScoreSection scores a single section of copy across all six
// dimensions. Empty input is a trivial pass: an empty section cannot
// be judged AI-flavored.
func (d *Detector) ScoreSection(text, name string) scoring.SectionResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return scoring.TrivialPass(name, d.passThreshold)
	}

	dims := map[string]scoring.DimensionResult{
		"burstiness":         d.scoreBurstiness(text),
		"ai_isms":            d.scoreAIIsms(text),
		"parallel_structure": d.scoreParallelStructure(text),
		"hedge_density":      d.scoreHedgeDensity(text),
		"specificity":        d.scoreSpecificity(text),
		"transition_tells":   d.scoreTransitionTells(text),
	}

	return scoring.Combine(name, pass1Order, dims, pass1Weights, d.passThreshold)
}

// ScoreDocument scores a set of named sections and aggregates.
func (d *Detector) ScoreDocument(sections []scoring.Section) scoring.DocumentResult {
	return scoring.Aggregate(sections, d.ScoreSection)
}

// ─── Dimension scorers ───────────────────────────────────────────────

// scoreBurstiness scores sentence length variance. Humans write with
// natural rhythm; LLMs tend toward uniform medium-length sentences.
func (d *Detector) scoreBurstiness(text string) scoring.DimensionResult {
	rhythm, ok := textstat.MeasureRhythm(text)
	if !ok {
		return scoring.DimensionResult{
			Score: 0.70,
			Note:  "Too few sentences to score meaningfully",
			Metrics: map[string]interface{}{
				"sentence_count": rhythm.SentenceCount,
			},
		}
	}

	b := rhythm.Burstiness
	var score float64
	switch {
	case b >= 0.80:
		score = 1.0
	case b >= 0.60:
		score = 0.75 + (b-0.60)*1.25
	case b >= 0.40:
		score = 0.40 + (b-0.40)*1.75
	default:
		score = b
	}

	result := scoring.DimensionResult{
		Score: scoring.Round3(math.Min(1.0, score)),
		Metrics: map[string]interface{}{
			"burstiness":           scoring.Round3(b),
			"mean_sentence_length": scoring.Round3(rhythm.MeanLength),
			"std_dev":              scoring.Round3(rhythm.StdDev),
			"sentence_count":       rhythm.SentenceCount,
		},
	}

	if b < 0.60 {
		result.FailureReason = fmt.Sprintf("Sentence rhythm too uniform (burstiness: %.2f, target: >0.60)", b)
		result.Suggestion = "Vary sentence length more aggressively. Mix very short declaratives " +
			"(4-8 words) with longer explanatory sentences (20-30 words). " +
			"Flat, medium-length sentences signal AI generation."
	}

	return result
}

// scoreAIIsms scores absence of known AI-ism phrases. Each phrase
// counts once regardless of repeats, so adding occurrences of a phrase
// never raises the score.
func (d *Detector) scoreAIIsms(text string) scoring.DimensionResult {
	textLower := strings.ToLower(text)
	found := make([]string, 0)
	for _, phrase := range d.phrases.AIIsms {
		if strings.Contains(textLower, phrase) {
			found = append(found, phrase)
		}
	}

	wordCount := textstat.WordCount(text)
	density := float64(len(found)) / math.Max(1, float64(wordCount)) * 100

	var score float64
	switch len(found) {
	case 0:
		score = 1.0
	case 1:
		score = 0.75
	case 2:
		score = 0.55
	case 3:
		score = 0.40
	default:
		score = math.Max(0.0, 0.40-float64(len(found)-3)*0.10)
	}

	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"violations_found":      len(found),
			"flagged_phrases":       found,
			"density_per_100_words": scoring.Round3(density),
		},
	}

	if len(found) > 0 {
		result.FailureReason = fmt.Sprintf("AI-ism phrases detected: %s", strings.Join(firstN(found, 3), ", "))
		result.Suggestion = fmt.Sprintf(
			"Remove or rewrite sections containing: %s. "+
				"These phrases appear at statistically elevated rates in LLM-generated text.",
			strings.Join(firstN(found, 5), ", "))
	}

	return result
}

// scoreParallelStructure looks for over-parallel list structure:
// bulleted items with near-identical length, and the same opener word
// starting too many lines. Overall is the min of the two sub-scores.
func (d *Detector) scoreParallelStructure(text string) scoring.DimensionResult {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	// Bullet list uniformity
	var bulletLines []string
	for _, l := range lines {
		if strings.HasPrefix(l, "-") || strings.HasPrefix(l, "*") ||
			strings.HasPrefix(l, "•") || strings.HasPrefix(l, "·") {
			bulletLines = append(bulletLines, l)
		}
	}

	bulletScore := 1.0
	uniformityNote := ""
	if len(bulletLines) >= 3 {
		lengths := make([]float64, 0, len(bulletLines))
		for _, l := range bulletLines {
			lengths = append(lengths, float64(len(strings.Fields(l))))
		}
		mean, stdDev := meanStdDev(lengths)
		cv := 0.0
		if mean > 0 {
			cv = stdDev / mean
		}
		if cv < 0.15 && len(bulletLines) >= 4 {
			bulletScore = 0.40
			uniformityNote = fmt.Sprintf(
				"%d bullet items with very uniform length (CV: %.2f). LLMs produce highly uniform lists.",
				len(bulletLines), cv)
		} else if cv < 0.25 {
			bulletScore = 0.65
		}
	}

	// Repeated sentence openers
	var openers []string
	for _, l := range lines {
		words := strings.Fields(l)
		if len(words) >= 3 {
			openers = append(openers, strings.ToLower(words[0]))
		}
	}

	openerScore := 1.0
	openerNote := ""
	if len(openers) >= 3 {
		counts := make(map[string]int)
		topWord, topCount := "", 0
		for _, o := range openers {
			counts[o]++
			if counts[o] > topCount {
				topWord, topCount = o, counts[o]
			}
		}
		if topCount >= 4 && float64(topCount)/float64(len(openers)) > 0.40 {
			openerScore = 0.50
			openerNote = fmt.Sprintf(
				"'%s' starts %d of %d sentences. Repetitive sentence structure signals AI generation.",
				topWord, topCount, len(openers))
		}
	}

	overall := math.Min(bulletScore, openerScore)

	result := scoring.DimensionResult{
		Score: scoring.Round3(overall),
		Metrics: map[string]interface{}{
			"bullet_uniformity_score": scoring.Round3(bulletScore),
			"opener_repetition_score": scoring.Round3(openerScore),
			"bullet_count":            len(bulletLines),
		},
	}

	reason := strings.TrimSpace(uniformityNote + " " + openerNote)
	if reason != "" {
		result.FailureReason = reason
	}
	if overall < scoring.ReportThreshold {
		result.Suggestion = "Break parallel structure. Vary bullet item length substantially. " +
			"Mix sentence openers. Add structural variety: short declarative, " +
			"then longer explanatory, then specific example."
	}

	return result
}

// scoreHedgeDensity scores the absence of hedging qualifiers. LLMs
// hedge more than humans writing in a confident professional voice.
func (d *Detector) scoreHedgeDensity(text string) scoring.DimensionResult {
	wordCount := textstat.WordCount(text)
	var found []string
	for _, p := range d.hedgePatterns {
		found = append(found, p.FindAllString(strings.ToLower(text), -1)...)
	}

	density := float64(len(found)) / math.Max(1, float64(wordCount)) * 100

	var score float64
	switch {
	case density <= 1.0:
		score = 1.0
	case density <= 2.0:
		score = 0.80
	case density <= 3.0:
		score = 0.55
	case density <= 4.0:
		score = 0.35
	default:
		score = 0.20
	}

	examples := uniqueFirstN(found, 5)
	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"hedge_count":           len(found),
			"density_per_100_words": scoring.Round3(density),
			"examples":              examples,
		},
	}

	if score < scoring.ReportThreshold {
		result.FailureReason = fmt.Sprintf(
			"High hedge density: %.1f qualifiers per 100 words (examples: %s)",
			density, strings.Join(uniqueFirstN(found, 3), ", "))
		result.Suggestion = "Remove qualifying language. State claims directly. Replace " +
			"'it may be worth considering X' with 'consider X'. " +
			"Hedges soften copy into AI-flavored mush."
	}

	return result
}

// scoreSpecificity rewards concrete detail (numbers, proper nouns) and
// penalizes vague quantity phrases. The proper-noun heuristic is a
// rough proxy; its thresholds are tunable constants, not contracts.
func (d *Detector) scoreSpecificity(text string) scoring.DimensionResult {
	numbers := numberPattern.FindAllString(text, -1)
	properNouns := d.properNouns(text)
	vague := d.vaguePattern.FindAllString(text, -1)

	wordCount := math.Max(1, float64(textstat.WordCount(text)))
	specificityDensity := float64(len(numbers)+len(properNouns)) / (wordCount / 100)
	vagueDensity := float64(len(vague)) / (wordCount / 100)

	var score float64
	switch {
	case specificityDensity >= 5 && vagueDensity <= 1:
		score = 1.0
	case specificityDensity >= 3 && vagueDensity <= 2:
		score = 0.80
	case specificityDensity >= 2 || (specificityDensity >= 1 && vagueDensity <= 1):
		score = 0.65
	case specificityDensity >= 1:
		score = 0.50
	default:
		score = 0.30
	}

	if vagueDensity > 3 {
		score = math.Max(0.20, score-0.30)
	} else if vagueDensity > 2 {
		score = math.Max(0.30, score-0.15)
	}

	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"numbers_found":        len(numbers),
			"proper_nouns_found":   len(properNouns),
			"vague_quantity_words": len(vague),
			"specificity_density":  scoring.Round3(specificityDensity),
		},
	}

	if score < scoring.ReportThreshold {
		result.FailureReason = fmt.Sprintf(
			"Copy lacks specificity (specificity density: %.1f/100 words, vague terms: %d)",
			specificityDensity, len(vague))
		result.Suggestion = "Add concrete details: specific numbers, model names, years, measurements. " +
			"Replace 'many years of experience' with '18 years'. " +
			"Replace 'a wide range of services' with the actual service names."
	}

	return result
}

// scoreTransitionTells scores overuse of formal transitions LLMs favor.
func (d *Detector) scoreTransitionTells(text string) scoring.DimensionResult {
	textLower := strings.ToLower(text)
	wordCount := math.Max(1, float64(textstat.WordCount(text)))

	total := 0
	var examples []string
	for _, t := range d.phrases.FormalTransitions {
		n := len(d.transitionPatterns[t].FindAllString(textLower, -1))
		if n > 0 {
			total += n
			examples = append(examples, t)
		}
	}

	density := float64(total) / wordCount * 100

	var score float64
	switch {
	case density <= 0.5:
		score = 1.0
	case density <= 1.0:
		score = 0.80
	case density <= 2.0:
		score = 0.60
	case density <= 3.0:
		score = 0.40
	default:
		score = 0.20
	}

	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"transition_count":      total,
			"density_per_100_words": scoring.Round3(density),
			"examples":              firstN(examples, 4),
		},
	}

	if score < scoring.ReportThreshold {
		result.FailureReason = fmt.Sprintf(
			"Overuse of formal transitions: %s (%.1f per 100 words)",
			strings.Join(firstN(examples, 3), ", "), density)
		result.Suggestion = "Remove formal transitions. Let ideas connect naturally without 'Furthermore,' " +
			"'Moreover,' 'In conclusion.' These words are AI tells. " +
			"Use direct connection or start a new sentence."
	}

	return result
}

// properNouns returns capitalized words that are not sentence starters
// and not common opener words.
func (d *Detector) properNouns(text string) []string {
	var out []string
	for _, loc := range capitalizedWord.FindAllStringIndex(text, -1) {
		if isSentenceStart(text, loc[0]) {
			continue
		}
		word := text[loc[0]:loc[1]]
		if commonStarters[word] {
			continue
		}
		out = append(out, word)
	}
	return out
}

func isSentenceStart(text string, i int) bool {
	if i == 0 {
		return true
	}
	if c := text[i-1]; c == '"' || c == '\'' {
		return true
	}
	j := i - 1
	for j >= 0 && (text[j] == ' ' || text[j] == '\t' || text[j] == '\n' || text[j] == '\r') {
		j--
	}
	if j < 0 {
		return true
	}
	c := text[j]
	return c == '.' || c == '!' || c == '?'
}

func meanStdDev(values []float64) (float64, float64) {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(variance / float64(len(values)-1))
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func uniqueFirstN(items []string, n int) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, n)
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
		if len(out) == n {
			break
		}
	}
	return out
}
