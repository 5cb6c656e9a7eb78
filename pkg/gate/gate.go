// Package gate orchestrates both quality passes into a single decision.
// Pass 1 (AI detection) always runs; Pass 2 (voice alignment) runs only
// when a profile is supplied. Both must pass for the gate to open, and
// a human override can open it explicitly but never silently.
package gate

import (
	"strings"
	"time"

	"copygate-be/pkg/aligner"
	"copygate-be/pkg/detector"
	"copygate-be/pkg/scoring"
	"copygate-be/pkg/voice"
)

// Gate statuses.
const (
	StatusPass     = "PASS"
	StatusFail     = "FAIL"
	StatusOverride = "OVERRIDE"
	StatusError    = "ERROR"
)

// PlaceholderOverrideNote is recorded when an override arrives without
// a note. The note field of an OVERRIDE result is never empty.
const PlaceholderOverrideNote = "(no note provided)"

// Overrides are always available. The gate can be bypassed but every
// bypass is logged in the result.
const overrideAlwaysEligible = true

// Config sets up a gate. A nil Profile disables Pass 2. Zero thresholds
// select the pass defaults.
type Config struct {
	Profile        *voice.Profile
	Pass1Threshold float64
	Pass2Threshold float64
	Phrases        *detector.PhraseConfig
}

// Gate runs both passes and returns a unified decision. Instantiate
// once per job; a gate holds one profile snapshot and is safe for
// concurrent use.
type Gate struct {
	detector *detector.Detector
	aligner  *aligner.Aligner
	profile  *voice.Profile
}

// New creates a gate from config.
func New(cfg Config) *Gate {
	g := &Gate{profile: cfg.Profile}

	if cfg.Phrases != nil {
		g.detector = detector.NewWithPhrases(cfg.Pass1Threshold, *cfg.Phrases)
	} else {
		g.detector = detector.New(cfg.Pass1Threshold)
	}
	if cfg.Profile != nil {
		g.aligner = aligner.New(cfg.Profile, cfg.Pass2Threshold)
	}

	return g
}

// PassSummary condenses one pass's document result for the envelope.
type PassSummary struct {
	Active         bool                    `json:"active"`
	Pass           bool                    `json:"pass"`
	Score          *float64                `json:"score"`
	Threshold      *float64                `json:"threshold"`
	ProfileUsed    string                  `json:"profile_used,omitempty"`
	Brand          string                  `json:"brand,omitempty"`
	SectionsFailed []string                `json:"sections_failed"`
	Detail         *scoring.DocumentResult `json:"detail,omitempty"`
}

// SectionSummary combines both passes' outcomes for one section.
type SectionSummary struct {
	Pass          bool     `json:"pass"`
	Pass1Score    float64  `json:"pass1_score"`
	Pass1Pass     bool     `json:"pass1_pass"`
	Pass1Failures []string `json:"pass1_failures"`
	Pass2Score    *float64 `json:"pass2_score"`
	Pass2Pass     bool     `json:"pass2_pass"`
	Pass2Failures []string `json:"pass2_failures"`
}

// Result is the gate envelope returned to callers. Summary and
// ActionRequired are always non-empty; a caller never gets a bare
// boolean without guidance.
type Result struct {
	GateOpen         bool                      `json:"gate_open"`
	GateStatus       string                    `json:"gate_status"`
	OverrideApplied  bool                      `json:"override_applied"`
	OverrideNote     string                    `json:"override_note,omitempty"`
	OverrideEligible bool                      `json:"override_eligible"`
	Pass1            PassSummary               `json:"pass1"`
	Pass2            PassSummary               `json:"pass2"`
	Sections         map[string]SectionSummary `json:"sections"`
	SectionOrder     []string                  `json:"section_order"`
	Note             string                    `json:"note,omitempty"`
	Summary          string                    `json:"summary"`
	ActionRequired   string                    `json:"action_required"`
	Timestamp        string                    `json:"timestamp"`
}

// Run gates a set of named sections. Override never rewrites scores;
// it only flips the outcome and is always recorded with a note.
func (g *Gate) Run(sections []scoring.Section, override bool, overrideNote string) Result {
	if len(sections) == 0 {
		return g.emptyResult()
	}

	p1Doc := g.detector.ScoreDocument(sections)

	var p2Doc *scoring.DocumentResult
	p2Active := g.aligner != nil
	if p2Active {
		doc := g.aligner.ScoreDocument(sections)
		p2Doc = &doc
	}

	p1Pass := p1Doc.Pass
	p2Pass := true
	if p2Doc != nil {
		p2Pass = p2Doc.Pass
	}

	gateOpen := p1Pass && p2Pass

	overrideApplied := false
	if !gateOpen && override {
		if strings.TrimSpace(overrideNote) == "" {
			overrideNote = PlaceholderOverrideNote
		}
		overrideApplied = true
	}

	order := make([]string, 0, len(sections))
	summaries := make(map[string]SectionSummary, len(sections))
	for _, s := range sections {
		order = append(order, s.Name)
		summaries[s.Name] = g.sectionSummary(s.Name, p1Doc, p2Doc)
	}

	summary, action := buildSummary(decision{
		gateOpen:        gateOpen,
		p1Pass:          p1Pass,
		p2Pass:          p2Pass,
		p2Active:        p2Active,
		overrideApplied: overrideApplied,
		p1Doc:           &p1Doc,
		p2Doc:           p2Doc,
	})

	result := Result{
		GateOpen:         gateOpen || overrideApplied,
		GateStatus:       gateStatus(gateOpen, overrideApplied),
		OverrideApplied:  overrideApplied,
		OverrideEligible: overrideAlwaysEligible,
		Pass1:            g.pass1Summary(&p1Doc),
		Pass2:            g.pass2Summary(p2Doc, p2Active, p2Pass),
		Sections:         summaries,
		SectionOrder:     order,
		Summary:          summary,
		ActionRequired:   action,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
	if overrideApplied {
		result.OverrideNote = overrideNote
	}

	return result
}

// RunSection gates a single section.
func (g *Gate) RunSection(text, name string, override bool, overrideNote string) Result {
	return g.Run([]scoring.Section{{Name: name, Text: text}}, override, overrideNote)
}

// Profile reports the loaded profile, nil when running Pass 1 only.
func (g *Gate) Profile() *voice.Profile {
	return g.profile
}

func (g *Gate) sectionSummary(name string, p1Doc scoring.DocumentResult, p2Doc *scoring.DocumentResult) SectionSummary {
	p1Sec := p1Doc.SectionResults[name]

	s := SectionSummary{
		Pass1Score:    p1Sec.OverallScore,
		Pass1Pass:     p1Sec.Pass,
		Pass1Failures: emptyIfNil(p1Sec.Failures),
		Pass2Pass:     true,
		Pass2Failures: []string{},
	}

	if p2Doc != nil {
		p2Sec := p2Doc.SectionResults[name]
		score := p2Sec.OverallScore
		s.Pass2Score = &score
		s.Pass2Pass = p2Sec.Pass
		s.Pass2Failures = emptyIfNil(p2Sec.Failures)
	}

	s.Pass = s.Pass1Pass && s.Pass2Pass
	return s
}

func (g *Gate) pass1Summary(doc *scoring.DocumentResult) PassSummary {
	score := doc.OverallScore
	threshold := g.detector.PassThreshold()
	return PassSummary{
		Active:         true,
		Pass:           doc.Pass,
		Score:          &score,
		Threshold:      &threshold,
		SectionsFailed: emptyIfNil(doc.FailedSections),
		Detail:         doc,
	}
}

func (g *Gate) pass2Summary(doc *scoring.DocumentResult, active, pass bool) PassSummary {
	s := PassSummary{
		Active:         active,
		Pass:           pass,
		SectionsFailed: []string{},
	}
	if !active || doc == nil {
		return s
	}

	score := doc.OverallScore
	threshold := g.aligner.PassThreshold()
	s.Score = &score
	s.Threshold = &threshold
	s.ProfileUsed = g.profile.ProfileID
	s.Brand = g.profile.BrandDisplayName
	s.SectionsFailed = emptyIfNil(doc.FailedSections)
	s.Detail = doc
	return s
}

func (g *Gate) emptyResult() Result {
	return Result{
		GateOpen:         true,
		GateStatus:       StatusPass,
		OverrideEligible: overrideAlwaysEligible,
		Pass1:            PassSummary{Active: true, Pass: true, SectionsFailed: []string{}},
		Pass2:            PassSummary{Active: g.aligner != nil, Pass: true, SectionsFailed: []string{}},
		Sections:         map[string]SectionSummary{},
		SectionOrder:     []string{},
		Note:             "No sections provided - gate trivially passed.",
		Summary:          "No content to evaluate.",
		ActionRequired:   "Provide section content.",
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}
}

func gateStatus(gateOpen, overrideApplied bool) string {
	switch {
	case gateOpen:
		return StatusPass
	case overrideApplied:
		return StatusOverride
	default:
		return StatusFail
	}
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
