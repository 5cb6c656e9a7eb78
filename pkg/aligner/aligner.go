// Package aligner scores copy against a captured voice profile. Unlike
// the universal detector pass, alignment is profile-driven: every brand
// gets its own scoring baseline from its voice DNA.
package aligner

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"copygate-be/pkg/scoring"
	"copygate-be/pkg/textstat"
	"copygate-be/pkg/voice"
)

// DefaultPassThreshold is the composite score required to pass alignment.
const DefaultPassThreshold = 0.60

// SparseProfileScore is reported when a profile activates no dimensions
// at all. New or incomplete profiles score leniently rather than
// blocking every check.
const SparseProfileScore = 0.80

// DefaultConfidenceThreshold is the native-construction confidence
// cutoff when the profile does not set one.
const DefaultConfidenceThreshold = 0.70

// Native constructions and contraction rate carry the most signal.
var alignWeights = map[string]float64{
	"reading_level":        0.15,
	"sentence_rhythm":      0.15,
	"contraction_rate":     0.20,
	"specificity":          0.10,
	"register":             0.10,
	"native_constructions": 0.20,
	"negative_space":       0.10,
}

var alignOrder = []string{
	"reading_level", "sentence_rhythm", "contraction_rate",
	"specificity", "register", "native_constructions", "negative_space",
}

var specificityLevels = map[string]int{
	voice.SpecificityLow:      1,
	voice.SpecificityModerate: 2,
	voice.SpecificityHigh:     3,
	voice.SpecificityVeryHigh: 4,
}

// Register estimation markers. Narrower than the extractor's sets; the
// aligner only needs a direction, not a full capture.
var (
	alignFormalMarkers = []string{"however", "therefore", "furthermore", "regarding", "pursuant"}
	alignCasualMarkers = []string{"it's", "you'll", "gonna", "don't", "won't", "can't", "here's"}
	alignWarmMarkers   = []string{"you", "your", "we", "our", "together", "help", "care"}
	alignColdMarkers   = []string{"the client", "the customer", "users", "end users", "personnel"}
)

var (
	bareNumberPattern = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	capitalizedWord   = regexp.MustCompile(`\b[A-Z][a-z]{2,}\b`)
	modelNamePattern  = regexp.MustCompile(`\b[A-Z][0-9]+\b|\b[A-Z]{2,}[0-9]+\b`)
)

// Aligner is the Pass 2 engine for one voice profile. Patterns are
// normalized at construction; the aligner itself is read-only after
// that and safe for concurrent use.
type Aligner struct {
	profile       *voice.Profile
	passThreshold float64

	nativePatterns   []string
	negativePatterns []string
}

// New creates an aligner for a profile. A zero threshold selects
// DefaultPassThreshold.
func New(profile *voice.Profile, passThreshold float64) *Aligner {
	if passThreshold == 0 {
		passThreshold = DefaultPassThreshold
	}

	a := &Aligner{
		profile:       profile,
		passThreshold: passThreshold,
	}
	if nc := profile.NativeConstructions; nc != nil {
		confidenceThreshold := nc.ConfidenceThreshold
		if confidenceThreshold == 0 {
			confidenceThreshold = DefaultConfidenceThreshold
		}
		for _, item := range nc.Items {
			if item.Confidence >= confidenceThreshold {
				a.nativePatterns = append(a.nativePatterns, strings.ToLower(item.Pattern))
			}
		}
	}
	if ns := profile.NegativeSpace; ns != nil {
		for _, item := range ns.Items {
			a.negativePatterns = append(a.negativePatterns, strings.ToLower(item))
		}
	}
	return a
}

// PassThreshold reports the configured composite pass cutoff.
func (a *Aligner) PassThreshold() float64 {
	return a.passThreshold
}

// ScoreSection scores one section against the profile. Only dimensions
// the profile actually defines are active; weights renormalize over
// that subset. A profile defining none scores SparseProfileScore.
func (a *Aligner) ScoreSection(text, name string) scoring.SectionResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return scoring.TrivialPass(name, a.passThreshold)
	}

	dims := map[string]scoring.DimensionResult{}

	if rl := a.profile.ReadingLevel; rl != nil && (rl.TargetMin > 0 || rl.TargetMax > 0 || rl.FleschKincaidGrade > 0) {
		dims["reading_level"] = a.scoreReadingLevel(text, rl)
	}
	if sr := a.profile.SentenceRhythm; sr != nil && sr.BurstinessScore != nil {
		dims["sentence_rhythm"] = a.scoreRhythm(text, sr)
	}
	if cr := a.profile.ContractionRate; cr != nil && (cr.TargetMin > 0 || cr.TargetMax > 0 || cr.Measured > 0) {
		dims["contraction_rate"] = a.scoreContractions(text, cr)
	}
	if ts := a.profile.TechnicalSpecificity; ts != nil && ts.Target != "" {
		dims["specificity"] = a.scoreSpecificity(text, ts)
	}
	if reg := a.profile.Register; reg != nil && (reg.FormalityScore > 0 || reg.WarmthScore > 0) {
		dims["register"] = a.scoreRegister(text, reg)
	}
	if nc := a.profile.NativeConstructions; nc != nil && len(nc.Items) > 0 {
		dims["native_constructions"] = a.scoreNativeConstructions(text)
	}
	if ns := a.profile.NegativeSpace; ns != nil && len(ns.Items) > 0 {
		dims["negative_space"] = a.scoreNegativeSpace(text)
	}

	if len(dims) == 0 {
		return a.sparseProfileResult(name)
	}

	result := scoring.Combine(name, alignOrder, dims, alignWeights, a.passThreshold)
	result.ProfileUsed = a.profile.ProfileID
	result.Brand = a.profile.BrandDisplayName
	return result
}

// ScoreDocument scores a set of named sections and aggregates.
func (a *Aligner) ScoreDocument(sections []scoring.Section) scoring.DocumentResult {
	result := scoring.Aggregate(sections, a.ScoreSection)
	result.ProfileUsed = a.profile.ProfileID
	return result
}

func (a *Aligner) sparseProfileResult(name string) scoring.SectionResult {
	return scoring.SectionResult{
		Section:      name,
		ProfileUsed:  a.profile.ProfileID,
		Brand:        a.profile.BrandDisplayName,
		Pass:         true,
		OverallScore: SparseProfileScore,
		Threshold:    a.passThreshold,
		Note:         "Profile incomplete - limited alignment scoring available. Complete voice capture for full validation.",
		Dimensions:   map[string]scoring.DimensionResult{},
		Failures:     []string{},
		Suggestions:  []string{"Complete voice profile capture to enable full alignment scoring."},
	}
}

// ─── Dimension scorers ───────────────────────────────────────────────

func (a *Aligner) scoreReadingLevel(text string, rl *voice.ReadingLevel) scoring.DimensionResult {
	fk := textstat.FleschKincaidGrade(text)
	tolerance := rl.Tolerance
	if tolerance == 0 {
		tolerance = 1.5
	}

	// A profile may carry only the measured grade; the acceptable range
	// is then derived from it.
	targetMin, targetMax := rl.TargetMin, rl.TargetMax
	if targetMin == 0 && targetMax == 0 {
		targetMin = rl.FleschKincaidGrade - tolerance
		targetMax = rl.FleschKincaidGrade + tolerance
	}

	var score float64
	switch {
	case fk >= targetMin && fk <= targetMax:
		score = 1.0
	case fk < targetMin:
		score = math.Max(0.0, 1.0-(targetMin-fk)/tolerance)
	default:
		score = math.Max(0.0, 1.0-(fk-targetMax)/tolerance)
	}

	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"measured_grade": math.Round(fk*10) / 10,
			"target_min":     targetMin,
			"target_max":     targetMax,
		},
	}

	if score < scoring.ReportThreshold {
		direction := "too simple"
		advice := "Add more technical detail and complexity"
		if fk > targetMax {
			direction = "too complex"
			advice = "Simplify sentence structure and vocabulary"
		}
		result.FailureReason = fmt.Sprintf(
			"Reading level %s (grade %.1f, target: %.1f-%.1f)",
			direction, fk, targetMin, targetMax)
		result.Suggestion = fmt.Sprintf(
			"%s to reach target reading level %.0f-%.0f.",
			advice, targetMin, targetMax)
	}

	return result
}

func (a *Aligner) scoreRhythm(text string, sr *voice.SentenceRhythm) scoring.DimensionResult {
	target := *sr.BurstinessScore
	// Fixed band regardless of profile tolerance; rhythm is noisy at
	// section scale
	const tolerance = 0.15

	rhythm, ok := textstat.MeasureRhythm(text)
	if !ok {
		return scoring.DimensionResult{
			Score: 0.75,
			Note:  "Too few sentences to score rhythm",
		}
	}

	distance := math.Abs(rhythm.Burstiness - target)
	score := math.Max(0.0, 1.0-distance/(tolerance*2))

	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"measured_burstiness": scoring.Round3(rhythm.Burstiness),
			"target_burstiness":   target,
			"distance":            scoring.Round3(distance),
		},
	}

	if score < scoring.ReportThreshold {
		direction := "too uniform"
		advice := "Add more variety in sentence length"
		if rhythm.Burstiness > target {
			direction = "too varied"
			advice = "Reduce extreme sentence length variation"
		}
		result.FailureReason = fmt.Sprintf(
			"Sentence rhythm %s (measured: %.2f, profile target: %.2f)",
			direction, rhythm.Burstiness, target)
		result.Suggestion = fmt.Sprintf(
			"This brand voice has burstiness %.2f. %s.", target, advice)
	}

	return result
}

func (a *Aligner) scoreContractions(text string, cr *voice.ContractionRate) scoring.DimensionResult {
	target := cr.TargetMin
	if target == 0 {
		target = cr.Measured
	}
	tolerance := cr.Tolerance
	if tolerance == 0 {
		tolerance = 0.10
	}

	measured := textstat.ContractionRate(text)

	var score float64
	if cr.TargetMax > 0 && measured <= cr.TargetMax && measured >= target {
		score = 1.0
	} else {
		score = math.Max(0.0, 1.0-math.Abs(measured-target)/(tolerance*2))
	}

	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"measured":  scoring.Round3(measured),
			"target":    target,
			"tolerance": tolerance,
		},
	}

	if score < scoring.ReportThreshold {
		direction := "too casual"
		advice := "Reduce contractions"
		if measured < target {
			direction = "too formal"
			advice = "Add contractions"
		}
		result.FailureReason = fmt.Sprintf(
			"Contraction rate %s (%.0f%% vs. profile target %.0f%%)",
			direction, measured*100, target*100)
		result.Suggestion = fmt.Sprintf(
			"%s to match brand voice (target: %.0f%%).", advice, target*100)
	}

	return result
}

func (a *Aligner) scoreSpecificity(text string, ts *voice.TechnicalSpecificity) scoring.DimensionResult {
	targetNumeric, ok := specificityLevels[ts.Target]
	if !ok {
		targetNumeric = 2
	}

	numbers := bareNumberPattern.FindAllString(text, -1)
	properNouns := countProperNouns(text)
	modelNames := modelNamePattern.FindAllString(text, -1)
	wordCount := math.Max(1, float64(textstat.WordCount(text)))

	density := float64(len(numbers)+properNouns+len(modelNames)*2) / (wordCount / 100)

	var measuredNumeric int
	var measuredLevel string
	switch {
	case density >= 8:
		measuredNumeric, measuredLevel = 4, voice.SpecificityVeryHigh
	case density >= 5:
		measuredNumeric, measuredLevel = 3, voice.SpecificityHigh
	case density >= 2:
		measuredNumeric, measuredLevel = 2, voice.SpecificityModerate
	default:
		measuredNumeric, measuredLevel = 1, voice.SpecificityLow
	}

	distance := math.Abs(float64(measuredNumeric - targetNumeric))
	score := math.Max(0.0, 1.0-distance*0.33)

	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"measured_level":      measuredLevel,
			"target_level":        ts.Target,
			"specificity_density": math.Round(density*100) / 100,
		},
	}

	if score < scoring.ReportThreshold {
		direction := "too technical"
		advice := "Reduce technical jargon for broader accessibility"
		if measuredNumeric < targetNumeric {
			direction = "too vague"
			advice = "Add specific numbers, model names, and technical details"
		}
		result.FailureReason = fmt.Sprintf(
			"Specificity %s (measured: %s, profile target: %s)",
			direction, measuredLevel, ts.Target)
		result.Suggestion = fmt.Sprintf(
			"This brand voice commits to %s specificity. %s.", ts.Target, advice)
	}

	return result
}

// scoreRegister scores formality and warmth independently; a profile
// that targets only one of them is judged on that one alone.
func (a *Aligner) scoreRegister(text string, reg *voice.Register) scoring.DimensionResult {
	textLower := strings.ToLower(text)
	metrics := map[string]interface{}{}
	subScores := make([]float64, 0, 2)

	if reg.FormalityScore > 0 {
		formalCount := countPresent(textLower, alignFormalMarkers)
		casualCount := countPresent(textLower, alignCasualMarkers)
		var estimatedFormality int
		if casualCount > formalCount {
			estimatedFormality = maxInt(1, 5-(casualCount-formalCount))
		} else {
			estimatedFormality = minInt(10, 5+(formalCount-casualCount))
		}
		subScores = append(subScores,
			math.Max(0.0, 1.0-math.Abs(float64(estimatedFormality-reg.FormalityScore))/5.0))
		metrics["formality_estimated"] = estimatedFormality
		metrics["formality_target"] = reg.FormalityScore
	}

	if reg.WarmthScore > 0 {
		warmCount := countPresent(textLower, alignWarmMarkers)
		coldCount := countPresent(textLower, alignColdMarkers)
		var estimatedWarmth int
		if warmCount > coldCount {
			estimatedWarmth = minInt(10, 5+(warmCount-coldCount))
		} else {
			estimatedWarmth = maxInt(1, 5-(coldCount-warmCount))
		}
		subScores = append(subScores,
			math.Max(0.0, 1.0-math.Abs(float64(estimatedWarmth-reg.WarmthScore))/5.0))
		metrics["warmth_estimated"] = estimatedWarmth
		metrics["warmth_target"] = reg.WarmthScore
	}

	var overall float64
	for _, s := range subScores {
		overall += s
	}
	overall /= float64(len(subScores))

	result := scoring.DimensionResult{
		Score:   scoring.Round3(overall),
		Metrics: metrics,
	}

	if overall < scoring.ReportThreshold {
		result.FailureReason = "Register (formality/warmth) doesn't match brand voice"
		result.Suggestion = fmt.Sprintf(
			"Adjust tone toward profile targets: formality %d/10, warmth %d/10.",
			reg.FormalityScore, reg.WarmthScore)
	}

	return result
}

// scoreNativeConstructions checks how many high-confidence brand
// patterns appear. Not every section uses every pattern; a 15-30% hit
// rate is already good performance.
func (a *Aligner) scoreNativeConstructions(text string) scoring.DimensionResult {
	if len(a.nativePatterns) == 0 {
		return scoring.DimensionResult{
			Score: 0.80,
			Note:  "No high-confidence constructions to match",
		}
	}

	textLower := strings.ToLower(text)
	found := make([]string, 0)
	missed := make([]string, 0)
	for _, pattern := range a.nativePatterns {
		if strings.Contains(textLower, pattern) {
			found = append(found, pattern)
		} else {
			missed = append(missed, pattern)
		}
	}

	hitRate := float64(len(found)) / float64(len(a.nativePatterns))

	var score float64
	switch {
	case hitRate >= 0.30:
		score = 1.0
	case hitRate >= 0.20:
		score = 0.85
	case hitRate >= 0.10:
		score = 0.70
	case hitRate >= 0.05:
		score = 0.55
	default:
		score = 0.40
	}

	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"patterns_found":   len(found),
			"patterns_checked": len(a.nativePatterns),
			"hit_rate":         scoring.Round3(hitRate),
			"found_examples":   firstN(found, 3),
			"missed_examples":  firstN(missed, 3),
		},
	}

	if score < scoring.ReportThreshold && len(found) == 0 {
		result.FailureReason = fmt.Sprintf(
			"No native brand constructions detected (0/%d patterns matched)",
			len(a.nativePatterns))
		result.Suggestion = fmt.Sprintf(
			"This brand voice uses characteristic patterns. Consider: %s",
			strings.Join(firstN(missed, 3), ", "))
	}

	return result
}

// scoreNegativeSpace checks for phrases the brand never says. Any hit
// is a hard signal: one violation halves the score.
func (a *Aligner) scoreNegativeSpace(text string) scoring.DimensionResult {
	textLower := strings.ToLower(text)
	violations := make([]string, 0)
	for _, pattern := range a.negativePatterns {
		if strings.Contains(textLower, pattern) {
			violations = append(violations, pattern)
		}
	}

	var score float64
	switch len(violations) {
	case 0:
		score = 1.0
	case 1:
		score = 0.50
	default:
		score = 0.20
	}

	result := scoring.DimensionResult{
		Score: scoring.Round3(score),
		Metrics: map[string]interface{}{
			"violations":      violations,
			"violation_count": len(violations),
		},
	}

	if len(violations) > 0 {
		result.FailureReason = fmt.Sprintf(
			"Negative space violations: brand would never say %s",
			strings.Join(firstN(violations, 3), ", "))
		result.Suggestion = fmt.Sprintf(
			"Remove or rewrite sections containing: %s. "+
				"These patterns are explicitly out of character for this brand voice.",
			strings.Join(violations, ", "))
	}

	return result
}

// ─── Helpers ─────────────────────────────────────────────────────────

// countProperNouns counts capitalized words not opening a sentence.
func countProperNouns(text string) int {
	count := 0
	for _, loc := range capitalizedWord.FindAllStringIndex(text, -1) {
		i := loc[0]
		if i >= 2 && isSpace(text[i-1]) && isTerminator(text[i-2]) {
			continue
		}
		count++
	}
	return count
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isTerminator(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}

func countPresent(textLower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(textLower, m) {
			n++
		}
	}
	return n
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
