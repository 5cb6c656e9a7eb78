package scoring

import "math"

// ReportThreshold is the per-dimension score below which a dimension
// contributes its failure reason and suggestion to the section result.
const ReportThreshold = 0.60

// Section is one named block of copy submitted for scoring.
type Section struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// DimensionResult is the outcome of a single scoring dimension.
// Metrics carries dimension-specific diagnostics (measured values,
// detected phrases, counts) for the editor UI.
type DimensionResult struct {
	Score         float64                `json:"score"`
	Metrics       map[string]interface{} `json:"metrics,omitempty"`
	Note          string                 `json:"note,omitempty"`
	FailureReason string                 `json:"failure_reason,omitempty"`
	Suggestion    string                 `json:"suggestion,omitempty"`
}

type SectionResult struct {
	Section      string                     `json:"section"`
	ProfileUsed  string                     `json:"profile_used,omitempty"`
	Brand        string                     `json:"brand,omitempty"`
	Pass         bool                       `json:"pass"`
	OverallScore float64                    `json:"overall_score"`
	Threshold    float64                    `json:"threshold"`
	Dimensions   map[string]DimensionResult `json:"dimensions"`
	Failures     []string                   `json:"failures"`
	Suggestions  []string                   `json:"suggestions"`
	Note         string                     `json:"note,omitempty"`
}

type DocumentResult struct {
	ProfileUsed    string                   `json:"profile_used,omitempty"`
	Pass           bool                     `json:"pass"`
	OverallScore   float64                  `json:"overall_score"`
	SectionsPassed int                      `json:"sections_passed"`
	SectionsFailed int                      `json:"sections_failed"`
	SectionResults map[string]SectionResult `json:"section_results"`
	FailedSections []string                 `json:"failed_sections"`
}

// Combine folds per-dimension results into a section result using a
// weighted mean. Weights are renormalized over the dimensions actually
// scored, so a profile that activates only three of seven dimensions
// still produces a composite on the same 0-1 scale. Both Pass 1 and
// Pass 2 share this path.
//
// order fixes the iteration order of dimensions so failure and
// suggestion lists are deterministic.
func Combine(section string, order []string, dims map[string]DimensionResult, weights map[string]float64, threshold float64) SectionResult {
	totalWeight := 0.0
	for name := range dims {
		totalWeight += weights[name]
	}
	if totalWeight == 0 {
		totalWeight = 1.0
	}

	overall := 0.0
	for name, dim := range dims {
		overall += dim.Score * (weights[name] / totalWeight)
	}
	overall = Round3(overall)

	failures := make([]string, 0)
	suggestions := make([]string, 0)
	for _, name := range order {
		dim, ok := dims[name]
		if !ok || dim.Score >= ReportThreshold {
			continue
		}
		if dim.FailureReason != "" {
			failures = append(failures, dim.FailureReason)
		}
		if dim.Suggestion != "" {
			suggestions = append(suggestions, dim.Suggestion)
		}
	}

	return SectionResult{
		Section:      section,
		Pass:         overall >= threshold,
		OverallScore: overall,
		Threshold:    threshold,
		Dimensions:   dims,
		Failures:     failures,
		Suggestions:  suggestions,
	}
}

// Aggregate scores every section with scoreFn and reduces the results:
// mean of scores, AND of pass flags, failed names in input order. The
// reduction is order-independent apart from the failed-section list, so
// sections could be scored concurrently without changing the outcome.
func Aggregate(sections []Section, scoreFn func(text, name string) SectionResult) DocumentResult {
	results := make(map[string]SectionResult, len(sections))
	failed := make([]string, 0)
	passed := 0
	sum := 0.0

	for _, s := range sections {
		r := scoreFn(s.Text, s.Name)
		results[s.Name] = r
		sum += r.OverallScore
		if r.Pass {
			passed++
		} else {
			failed = append(failed, s.Name)
		}
	}

	overall := 0.0
	if len(sections) > 0 {
		overall = Round3(sum / float64(len(sections)))
	}

	return DocumentResult{
		Pass:           len(failed) == 0,
		OverallScore:   overall,
		SectionsPassed: passed,
		SectionsFailed: len(failed),
		SectionResults: results,
		FailedSections: failed,
	}
}

// TrivialPass is the result for empty or whitespace-only input.
// Absence of content cannot be judged, so the section passes.
func TrivialPass(section string, threshold float64) SectionResult {
	return SectionResult{
		Section:      section,
		Pass:         true,
		OverallScore: 1.0,
		Threshold:    threshold,
		Note:         "Empty section - skipped",
		Dimensions:   map[string]DimensionResult{},
		Failures:     []string{},
		Suggestions:  []string{},
	}
}

// Round3 rounds to three decimals, the precision every reported score uses.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
