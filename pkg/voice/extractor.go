package voice

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"copygate-be/pkg/textstat"
)

// Sample-size cutoffs for extraction confidence grades.
const (
	minWordsHighConfidence   = 500
	minWordsMediumConfidence = 200
)

// trustPatterns maps each trust-signal category to its marker phrases.
var trustPatterns = map[string][]string{
	TrustCertificationLed: {
		"certified", "ase certified", "factory trained", "manufacturer certified",
		"certified technician", "oem certified", "authorized service",
	},
	TrustTenureReferenced: {
		"years of experience", "years serving", "since", "over a decade",
		"over 20 years", "established in", "founded in", "serving since",
	},
	TrustSpecificClaim: {
		"we fix", "we repair", "we specialize", "only shop", "only dealership",
		"exclusive", "guaranteed", "warranty", "we promise",
	},
	TrustSocialProof: {
		"customers say", "reviews", "rated", "stars", "testimonials",
		"trusted by", "chosen by", "customers trust",
	},
	TrustAuthorityLed: {
		"expert", "specialist", "master technician", "factory expert",
		"brand specialist", "authorized by", "endorsed by",
	},
}

// trustPatternOrder fixes category iteration so tie-breaks are stable.
var trustPatternOrder = []string{
	TrustCertificationLed, TrustTenureReferenced, TrustSpecificClaim,
	TrustSocialProof, TrustAuthorityLed,
}

// Register estimation markers.
var (
	hedgeMarkers = []string{
		"perhaps", "maybe", "possibly", "potentially", "somewhat",
		"fairly", "rather", "quite", "a bit", "generally", "typically",
		"usually", "often", "sometimes", "in most cases",
	}
	formalMarkers = []string{
		"however", "therefore", "furthermore", "regarding", "pursuant",
		"herein", "aforementioned", "notwithstanding", "in accordance",
	}
	casualMarkers = []string{"it's", "you'll", "gonna", "don't", "won't", "can't", "here's", "let's"}
	warmMarkers   = []string{"you", "your", "we", "our", "together", "help", "care", "family", "trust"}
	coldMarkers   = []string{"the client", "the customer", "users", "end users", "personnel", "individuals"}
)

var ngramStopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "any": true, "can": true,
	"had": true, "her": true, "was": true, "one": true, "our": true,
	"out": true, "day": true, "get": true, "has": true, "him": true,
	"his": true, "how": true, "its": true, "may": true, "new": true,
	"now": true, "old": true, "see": true, "two": true, "way": true,
	"who": true, "did": true, "let": true, "put": true, "say": true,
	"she": true, "too": true, "use": true, "will": true, "with": true,
	"this": true, "that": true, "from": true, "they": true, "have": true,
	"been": true, "more": true, "what": true, "when": true, "also": true,
	"into": true, "than": true, "then": true, "each": true, "over": true,
	"some": true, "your": true, "most": true, "very": true,
}

// vocabStopwords extends the n-gram set with a few extra function words.
var vocabStopwords = func() map[string]bool {
	m := make(map[string]bool, len(ngramStopwords)+8)
	for w := range ngramStopwords {
		m[w] = true
	}
	for _, w := range []string{"just", "which", "there", "their", "about", "would", "could", "should"} {
		m[w] = true
	}
	return m
}()

var (
	specNumberPattern  = regexp.MustCompile(`(?i)\b\d+(?:,\d{3})*(?:\.\d+)?(?:\s*(?:mph|rpm|miles|km|years?|months?|hours?|%|lbs?|kg|sq\s*ft|PSI|hp|L|liters?))?\b`)
	modelNamePattern   = regexp.MustCompile(`\b[A-Z][0-9]+\b|\b[A-Z]{2,}[0-9]+\b|\b(?:Series|Class|Type)\s+[A-Z0-9]+\b`)
	measurementPattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:mm|cm|in|ft|inches|degrees?|°F|°C|bar|psi|newton|nm|torque)\b`)
	letterWordPattern  = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
)

// ExtractInput names the source text and brand identity for an
// extraction run.
type ExtractInput struct {
	Text               string
	ClientSlug         string
	BrandSlug          string
	BrandDisplayName   string
	SourceURL          string
	SourcePagesSampled []string
	TierScope          []string
	CaptureMethod      string
}

// Extractor captures voice DNA from source copy. All analysis is
// statistical; no external services are involved. It runs at profile
// creation time, once per brand, not per gate check.
type Extractor struct{}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract builds a voice profile from source text. The resulting
// profile is ready for alignment scoring; negative space starts empty
// and waits for human input.
func (e *Extractor) Extract(in ExtractInput) *Profile {
	text := strings.TrimSpace(in.Text)
	wordCount := textstat.WordCount(text)
	confidence := confidenceLevel(wordCount)
	now := nowUTC()

	if in.BrandDisplayName == "" {
		in.BrandDisplayName = in.BrandSlug
	}
	if in.TierScope == nil {
		in.TierScope = []string{"T1", "T2", "T3"}
	}
	if in.SourcePagesSampled == nil && in.SourceURL != "" {
		in.SourcePagesSampled = []string{in.SourceURL}
	}
	if in.SourcePagesSampled == nil {
		in.SourcePagesSampled = []string{}
	}
	if in.CaptureMethod == "" {
		in.CaptureMethod = "extraction"
	}

	p := &Profile{
		ProfileID:          fmt.Sprintf("%s-%s", in.ClientSlug, in.BrandSlug),
		ClientSlug:         in.ClientSlug,
		BrandSlug:          in.BrandSlug,
		BrandDisplayName:   in.BrandDisplayName,
		TierScope:          in.TierScope,
		Created:            now,
		LastUpdated:        now,
		SourceURL:          in.SourceURL,
		SourcePagesSampled: in.SourcePagesSampled,
		CaptureMethod:      in.CaptureMethod,
		OverrideHistory:    []OverrideRecord{},
		LockedFields:       []string{},
	}

	machine := FieldMeta{Provenance: ProvenanceMachine}

	fk := textstat.FleschKincaidGrade(text)
	p.ReadingLevel = &ReadingLevel{
		FleschKincaidGrade: round1(fk),
		Description:        fmt.Sprintf("FK grade %.1f extracted from source copy (%d words)", fk, wordCount),
		TargetMin:          round1(math.Max(1.0, fk-1.5)),
		TargetMax:          round1(math.Min(20.0, fk+1.5)),
		Tolerance:          1.5,
		FieldMeta:          machine,
	}

	sentences := textstat.SplitSentences(text)
	rhythm := &SentenceRhythm{
		Description:         "Burstiness: ratio of std_dev to mean sentence length. >0.60 = human-natural variance.",
		TargetBurstinessMin: 0.60,
		Tolerance:           0.1,
		FieldMeta:           machine,
	}
	if measured, ok := textstat.MeasureRhythm(text); ok {
		rhythm.AvgLengthWords = ptr(round1(measured.MeanLength))
		rhythm.StdDevWords = ptr(round1(measured.StdDev))
		rhythm.BurstinessScore = ptr(round3(measured.Burstiness))
	} else if len(sentences) > 0 {
		// Too few sentences for variance; record the sample size only
		rhythm.AvgLengthWords = ptr(float64(wordCount))
		rhythm.StdDevWords = ptr(0.0)
	}
	p.SentenceRhythm = rhythm

	rate := textstat.ContractionRate(text)
	p.ContractionRate = &ContractionRate{
		Measured:    round3(rate),
		Description: "Fraction of eligible positions where contractions appear (0.0-1.0).",
		TargetMin:   round3(math.Max(0.0, rate-0.10)),
		TargetMax:   round3(math.Min(1.0, rate+0.10)),
		Tolerance:   0.10,
		FieldMeta:   machine,
	}

	level, markers := measureSpecificity(text)
	p.TechnicalSpecificity = &TechnicalSpecificity{
		Level:           level,
		Description:     "low | moderate | high | very-high. Does copy commit to specific numbers, model names, measurements?",
		MarkersDetected: capSlice(markers, 10),
		Target:          level,
		FieldMeta:       machine,
	}

	formality, warmth, person := measureRegister(text)
	p.Register = &Register{
		PrimaryPerson:        person,
		Description:          "first | second | third. Grammatical person dominating the copy.",
		FormalityScore:       formality,
		FormalityDescription: "1-10. 1=very casual, 10=very formal.",
		WarmthScore:          warmth,
		WarmthDescription:    "1-10. 1=clinical/cold, 10=conversational/warm.",
		FieldMeta:            machine,
	}

	trustType, trustExamples := detectTrustPattern(text)
	p.TrustSignalPattern = &TrustSignalPattern{
		Type:             trustType,
		Description:      "certification-led | tenure-referenced | specific-claim | social-proof | authority-led | mixed",
		ExamplesDetected: capSlice(trustExamples, 5),
		FieldMeta:        machine,
	}

	p.NativeConstructions = &NativeConstructions{
		Description:         "Phrases and structures native to this brand voice. Used in alignment scoring.",
		Items:               mineNativeConstructions(text),
		ConfidenceThreshold: 0.70,
		FieldMeta:           machine,
	}

	p.NegativeSpace = &NegativeSpace{
		Description: negativeSpaceDescription,
		Items:       []string{},
		FieldMeta:   FieldMeta{Provenance: ProvenanceHuman},
	}

	ttr, domainTerms, characteristic := analyzeVocabulary(text)
	p.Vocabulary = &Vocabulary{
		DensityScore:              ttr,
		Description:               "Type-token ratio approximation. Higher = more varied vocabulary.",
		DomainSpecificTerms:       capSlice(domainTerms, 15),
		CharacteristicWordChoices: capSlice(characteristic, 15),
		AvoidedTerms:              []string{},
		FieldMeta:                 machine,
	}

	perField := map[string]string{
		"reading_level":         downgradeIf(confidence, len(sentences) < 5),
		"sentence_rhythm":       downgradeIf(confidence, len(sentences) < 10),
		"contraction_rate":      confidence,
		"technical_specificity": confidence,
		"register":              confidence,
		"trust_signal_pattern":  confidence,
		"native_constructions":  downgradeIf(confidence, wordCount < 300),
		"vocabulary":            confidence,
	}
	flags := make([]string, 0)
	for _, field := range []string{
		"reading_level", "sentence_rhythm", "contraction_rate",
		"technical_specificity", "register", "trust_signal_pattern",
		"native_constructions", "vocabulary",
	} {
		if perField[field] == ConfidenceLow {
			flags = append(flags, field)
		}
	}
	notes := fmt.Sprintf("Extracted from %d words. ", wordCount)
	if confidence != ConfidenceHigh {
		notes += "Add more source text for higher confidence."
	} else {
		notes += "Sufficient sample size."
	}
	p.CaptureConfidence = &CaptureConfidence{
		Overall:            confidence,
		SourceWordCount:    wordCount,
		PerField:           perField,
		LowConfidenceFlags: flags,
		Notes:              notes,
	}

	p.IntakeInterviewData = &IntakeInterviewData{
		Description: "For profiles built from scratch. Stores raw intake answers.",
		Completed:   false,
		Answers:     map[string]string{},
	}

	return p
}

// Update re-extracts machine fields from fresh text while preserving
// everything humans own: locked fields, negative space, override
// history, intake data, and the creation timestamp. Pages sampled are
// unioned.
func (e *Extractor) Update(existing *Profile, newText string) *Profile {
	fresh := e.Extract(ExtractInput{
		Text:             newText,
		ClientSlug:       existing.ClientSlug,
		BrandSlug:        existing.BrandSlug,
		BrandDisplayName: existing.BrandDisplayName,
		SourceURL:        existing.SourceURL,
		TierScope:        existing.TierScope,
		CaptureMethod:    existing.CaptureMethod,
	})

	for _, field := range existing.LockedFields {
		copyLockedField(fresh, existing, field)
	}

	fresh.LockedFields = existing.LockedFields
	if fresh.LockedFields == nil {
		fresh.LockedFields = []string{}
	}
	if existing.NegativeSpace != nil {
		fresh.NegativeSpace = existing.NegativeSpace
	}
	fresh.OverrideHistory = existing.OverrideHistory
	if fresh.OverrideHistory == nil {
		fresh.OverrideHistory = []OverrideRecord{}
	}
	if existing.IntakeInterviewData != nil {
		fresh.IntakeInterviewData = existing.IntakeInterviewData
	}
	if existing.Created != "" {
		fresh.Created = existing.Created
	}
	fresh.LastUpdated = nowUTC()

	seen := make(map[string]bool, len(existing.SourcePagesSampled))
	pages := make([]string, 0, len(existing.SourcePagesSampled)+len(fresh.SourcePagesSampled))
	for _, lists := range [][]string{existing.SourcePagesSampled, fresh.SourcePagesSampled} {
		for _, page := range lists {
			if !seen[page] {
				seen[page] = true
				pages = append(pages, page)
			}
		}
	}
	fresh.SourcePagesSampled = pages

	return fresh
}

func copyLockedField(dst, src *Profile, field string) {
	switch field {
	case "reading_level":
		dst.ReadingLevel = src.ReadingLevel
	case "sentence_rhythm":
		dst.SentenceRhythm = src.SentenceRhythm
	case "contraction_rate":
		dst.ContractionRate = src.ContractionRate
	case "technical_specificity":
		dst.TechnicalSpecificity = src.TechnicalSpecificity
	case "register":
		dst.Register = src.Register
	case "trust_signal_pattern":
		dst.TrustSignalPattern = src.TrustSignalPattern
	case "native_constructions":
		dst.NativeConstructions = src.NativeConstructions
	case "negative_space":
		dst.NegativeSpace = src.NegativeSpace
	case "vocabulary":
		dst.Vocabulary = src.Vocabulary
	}
}

// ─── Field extractors ────────────────────────────────────────────────

func measureSpecificity(text string) (string, []string) {
	numbers := specNumberPattern.FindAllString(text, -1)
	modelNames := modelNamePattern.FindAllString(text, -1)
	measurements := measurementPattern.FindAllString(text, -1)

	markers := dedupe(append(append(capSlice(numbers, 5), capSlice(modelNames, 5)...), capSlice(measurements, 5)...))

	wordCount := math.Max(1, float64(textstat.WordCount(text)))
	totalSpecifics := len(numbers) + len(modelNames)*2 + len(measurements)*2
	density := float64(totalSpecifics) / wordCount * 100

	var level string
	switch {
	case density >= 8:
		level = SpecificityVeryHigh
	case density >= 5:
		level = SpecificityHigh
	case density >= 2:
		level = SpecificityModerate
	default:
		level = SpecificityLow
	}

	return level, markers
}

func measureRegister(text string) (formality, warmth int, primaryPerson string) {
	textLower := strings.ToLower(text)
	words := strings.Fields(textLower)

	firstPerson, secondPerson, thirdPerson := 0, 0, 0
	for _, w := range words {
		switch w {
		case "i", "we", "our", "us", "my":
			firstPerson++
		case "you", "your", "yourself":
			secondPerson++
		case "they", "their", "them", "it", "its":
			thirdPerson++
		}
	}

	maxCount := firstPerson
	primaryPerson = "first"
	if secondPerson > maxCount {
		maxCount = secondPerson
		primaryPerson = "second"
	}
	if thirdPerson > maxCount {
		primaryPerson = "third"
	}

	formalCount := countPresent(textLower, formalMarkers)
	casualCount := countPresent(textLower, casualMarkers)
	hedgeCount := countPresent(textLower, hedgeMarkers)

	if casualCount > formalCount {
		formality = maxInt(1, 5-minInt(3, casualCount-formalCount))
	} else {
		formality = minInt(10, 5+minInt(3, formalCount-casualCount))
	}
	// Heavy hedging reads slightly more formal
	formality = minInt(10, formality+minInt(1, hedgeCount/3))

	warmCount := countPresent(textLower, warmMarkers)
	coldCount := countPresent(textLower, coldMarkers)
	secondPersonDensity := float64(secondPerson) / math.Max(1, float64(len(words))/100)

	warmthBase := 5
	warmthBase += minInt(3, warmCount-coldCount)
	warmthBase += minInt(2, int(secondPersonDensity/2))
	warmth = maxInt(1, minInt(10, warmthBase))

	return formality, warmth, primaryPerson
}

func detectTrustPattern(text string) (string, []string) {
	textLower := strings.ToLower(text)

	hits := make(map[string][]string)
	for _, category := range trustPatternOrder {
		var found []string
		for _, phrase := range trustPatterns[category] {
			if strings.Contains(textLower, phrase) {
				found = append(found, phrase)
			}
		}
		if len(found) > 0 {
			hits[category] = found
		}
	}

	if len(hits) == 0 {
		return TrustUndetected, []string{}
	}

	if len(hits) > 1 {
		var all []string
		for _, category := range trustPatternOrder {
			all = append(all, hits[category]...)
		}
		return TrustMixed, capSlice(all, 5)
	}

	for category, found := range hits {
		return category, found
	}
	return TrustUndetected, []string{}
}

// mineNativeConstructions finds recurring 2- and 3-grams of content
// words. Trigrams need 2 repeats, bigrams 3; bigrams already inside a
// captured trigram are skipped.
func mineNativeConstructions(text string) []NativeConstruction {
	words := letterWordPattern.FindAllString(strings.ToLower(text), -1)
	results := make([]NativeConstruction, 0)

	for _, gram := range topNGrams(words, 3, 30) {
		if gram.count >= 2 && noStopwords(gram.phrase) {
			results = append(results, NativeConstruction{
				Pattern:    gram.phrase,
				Confidence: math.Min(0.95, 0.60+float64(gram.count)*0.10),
				Frequency:  gram.count,
			})
		}
	}

	for _, gram := range topNGrams(words, 2, 40) {
		if gram.count < 3 || !noStopwords(gram.phrase) {
			continue
		}
		captured := false
		for _, r := range results {
			if strings.Contains(r.Pattern, gram.phrase) {
				captured = true
				break
			}
		}
		if !captured {
			results = append(results, NativeConstruction{
				Pattern:    gram.phrase,
				Confidence: math.Min(0.90, 0.55+float64(gram.count)*0.08),
				Frequency:  gram.count,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) > 20 {
		results = results[:20]
	}
	return results
}

func analyzeVocabulary(text string) (ttr float64, domainTerms, characteristic []string) {
	words := letterWordPattern.FindAllString(strings.ToLower(text), -1)
	domainTerms = []string{}
	characteristic = []string{}
	if len(words) == 0 {
		return 0, domainTerms, characteristic
	}

	unique := make(map[string]bool, len(words))
	for _, w := range words {
		unique[w] = true
	}
	ttr = round3(float64(len(unique)) / float64(len(words)))

	var content []string
	for _, w := range words {
		if !vocabStopwords[w] && len(w) >= 4 {
			content = append(content, w)
		}
	}

	for _, gram := range topWords(content, 30) {
		if gram.count >= 2 {
			characteristic = append(characteristic, gram.phrase)
		}
	}
	for _, gram := range topWords(content, 50) {
		if len(gram.phrase) >= 7 && gram.count >= 2 {
			domainTerms = append(domainTerms, gram.phrase)
		}
	}

	if len(domainTerms) > 20 {
		domainTerms = domainTerms[:20]
	}
	if len(characteristic) > 20 {
		characteristic = characteristic[:20]
	}
	return ttr, domainTerms, characteristic
}

// ─── Frequency counting ──────────────────────────────────────────────

type ngramCount struct {
	phrase string
	count  int
}

// topNGrams returns the limit most frequent n-grams, ties broken by
// first occurrence so results are deterministic.
func topNGrams(words []string, n, limit int) []ngramCount {
	if len(words) < n {
		return nil
	}
	grams := make([]string, 0, len(words)-n+1)
	for i := 0; i+n <= len(words); i++ {
		grams = append(grams, strings.Join(words[i:i+n], " "))
	}
	return topWords(grams, limit)
}

func topWords(items []string, limit int) []ngramCount {
	counts := make(map[string]int, len(items))
	firstSeen := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for i, item := range items {
		if counts[item] == 0 {
			firstSeen[item] = i
			order = append(order, item)
		}
		counts[item]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	out := make([]ngramCount, 0, len(order))
	for _, phrase := range order {
		out = append(out, ngramCount{phrase: phrase, count: counts[phrase]})
	}
	return out
}

func noStopwords(phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if ngramStopwords[w] {
			return false
		}
	}
	return true
}

// ─── Helpers ─────────────────────────────────────────────────────────

const negativeSpaceDescription = "What this voice never says. Patterns out of character. Requires human input to define accurately."

func confidenceLevel(wordCount int) string {
	switch {
	case wordCount >= minWordsHighConfidence:
		return ConfidenceHigh
	case wordCount >= minWordsMediumConfidence:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func downgradeIf(confidence string, insufficient bool) string {
	if insufficient {
		return ConfidenceLow
	}
	return confidence
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

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

func capSlice(items []string, n int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}

func ptr(v float64) *float64 { return &v }

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }

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
