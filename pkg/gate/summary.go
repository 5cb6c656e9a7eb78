package gate

import (
	"fmt"
	"strings"

	"copygate-be/pkg/scoring"
)

// decision is the tuple the narrative table keys on.
type decision struct {
	gateOpen        bool
	p1Pass          bool
	p2Pass          bool
	p2Active        bool
	overrideApplied bool
	p1Doc           *scoring.DocumentResult
	p2Doc           *scoring.DocumentResult
}

// buildSummary renders the human-readable summary and next action for a
// gate decision. Fixed priority: override, all clear, both failed,
// Pass 1 only, Pass 2 only.
func buildSummary(d decision) (summary, action string) {
	switch {
	case d.overrideApplied:
		return "Gate overridden by human reviewer. Audit trail logged.",
			"Review override note. Revise copy when possible to pass both checks."

	case d.gateOpen && d.p2Active:
		return fmt.Sprintf(
				"Both passes cleared. AI detection: %s. Voice alignment (%s): %s.",
				percent(d.p1Doc.OverallScore), d.p2Doc.ProfileUsed, percent(d.p2Doc.OverallScore)),
			"Ready for human review."

	case d.gateOpen:
		return fmt.Sprintf(
				"Pass 1 cleared (AI detection: %s). No voice profile loaded, Pass 2 skipped.",
				percent(d.p1Doc.OverallScore)),
			"Optionally load a voice profile to enable Pass 2 alignment scoring."

	case !d.p1Pass && !d.p2Pass:
		return fmt.Sprintf(
				"Both passes failed. AI detection failed in: %s. Voice alignment failed in: %s.",
				sectionList(d.p1Doc.FailedSections, "all sections"),
				sectionList(failedOf(d.p2Doc), "all sections")),
			"Rewrite flagged sections. Address AI-isms and voice misalignment before resubmitting."

	case !d.p1Pass:
		return fmt.Sprintf(
				"Pass 1 failed (AI detection score: %s). Failed sections: %s.",
				percent(d.p1Doc.OverallScore),
				sectionList(d.p1Doc.FailedSections, "see detail")),
			"Rewrite flagged sections to improve sentence rhythm, remove AI-isms, and add specificity."

	default:
		return fmt.Sprintf(
				"Pass 1 cleared. Pass 2 failed: voice not aligned to %s (score: %s). Failed sections: %s.",
				profileOf(d.p2Doc),
				percent(scoreOf(d.p2Doc)),
				sectionList(failedOf(d.p2Doc), "see detail")),
			"Adjust copy to match brand voice profile. Review dimension failures for specific guidance."
	}
}

func percent(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}

func sectionList(names []string, fallback string) string {
	if len(names) == 0 {
		return fallback
	}
	return strings.Join(names, ", ")
}

func failedOf(doc *scoring.DocumentResult) []string {
	if doc == nil {
		return nil
	}
	return doc.FailedSections
}

func profileOf(doc *scoring.DocumentResult) string {
	if doc == nil || doc.ProfileUsed == "" {
		return "profile"
	}
	return doc.ProfileUsed
}

func scoreOf(doc *scoring.DocumentResult) float64 {
	if doc == nil {
		return 0
	}
	return doc.OverallScore
}
