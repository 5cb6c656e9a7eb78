package voice

import (
	"fmt"
	"time"
)

// Provenance of a profile field: who produced the current value.
const (
	ProvenanceMachine = "machine-extracted"
	ProvenanceHuman   = "human-defined"
)

// Confidence grades for extracted fields.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Specificity levels.
const (
	SpecificityLow      = "low"
	SpecificityModerate = "moderate"
	SpecificityHigh     = "high"
	SpecificityVeryHigh = "very-high"
)

// Trust pattern classifications. TrustMixed means more than one
// category hit; TrustUndetected means none did.
const (
	TrustCertificationLed = "certification-led"
	TrustTenureReferenced = "tenure-referenced"
	TrustSpecificClaim    = "specific-claim"
	TrustSocialProof      = "social-proof"
	TrustAuthorityLed     = "authority-led"
	TrustMixed            = "mixed"
	TrustUndetected       = "undetected"
)

// Profile is a brand's voice DNA: the statistical fingerprint Pass 2
// alignment scores against. Fields are pointers so a sparse profile
// (missing blocks) deactivates the corresponding dimensions instead of
// scoring against zero values.
type Profile struct {
	ProfileID          string   `json:"profile_id"`
	ClientSlug         string   `json:"client_slug"`
	BrandSlug          string   `json:"brand_slug"`
	BrandDisplayName   string   `json:"brand_display_name"`
	TierScope          []string `json:"tier_scope"`
	Created            string   `json:"created"`
	LastUpdated        string   `json:"last_updated"`
	SourceURL          string   `json:"source_url"`
	SourcePagesSampled []string `json:"source_pages_sampled"`
	CaptureMethod      string   `json:"capture_method"`

	ReadingLevel         *ReadingLevel         `json:"reading_level,omitempty"`
	SentenceRhythm       *SentenceRhythm       `json:"sentence_rhythm,omitempty"`
	ContractionRate      *ContractionRate      `json:"contraction_rate,omitempty"`
	TechnicalSpecificity *TechnicalSpecificity `json:"technical_specificity,omitempty"`
	Register             *Register             `json:"register,omitempty"`
	TrustSignalPattern   *TrustSignalPattern   `json:"trust_signal_pattern,omitempty"`
	NativeConstructions  *NativeConstructions  `json:"native_constructions,omitempty"`
	NegativeSpace        *NegativeSpace        `json:"negative_space,omitempty"`
	Vocabulary           *Vocabulary           `json:"vocabulary,omitempty"`
	CaptureConfidence    *CaptureConfidence    `json:"capture_confidence,omitempty"`

	OverrideHistory     []OverrideRecord     `json:"override_history"`
	LockedFields        []string             `json:"locked_fields"`
	IntakeInterviewData *IntakeInterviewData `json:"intake_interview_data,omitempty"`
}

// FieldMeta is the bookkeeping every profile block carries.
type FieldMeta struct {
	Provenance   string  `json:"provenance"`
	Locked       bool    `json:"locked"`
	OverrideNote *string `json:"override_note"`
}

type ReadingLevel struct {
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	Description        string  `json:"description"`
	TargetMin          float64 `json:"target_min"`
	TargetMax          float64 `json:"target_max"`
	Tolerance          float64 `json:"tolerance"`
	FieldMeta
}

type SentenceRhythm struct {
	AvgLengthWords      *float64 `json:"avg_length_words"`
	StdDevWords         *float64 `json:"std_dev_words"`
	BurstinessScore     *float64 `json:"burstiness_score"`
	Description         string   `json:"description"`
	TargetBurstinessMin float64  `json:"target_burstiness_min"`
	Tolerance           float64  `json:"tolerance"`
	FieldMeta
}

type ContractionRate struct {
	Measured    float64 `json:"measured"`
	Description string  `json:"description"`
	TargetMin   float64 `json:"target_min"`
	TargetMax   float64 `json:"target_max"`
	Tolerance   float64 `json:"tolerance"`
	FieldMeta
}

type TechnicalSpecificity struct {
	Level           string   `json:"level"`
	Description     string   `json:"description"`
	MarkersDetected []string `json:"markers_detected"`
	Target          string   `json:"target"`
	FieldMeta
}

type Register struct {
	PrimaryPerson        string `json:"primary_person"`
	Description          string `json:"description"`
	FormalityScore       int    `json:"formality_score"`
	FormalityDescription string `json:"formality_description"`
	WarmthScore          int    `json:"warmth_score"`
	WarmthDescription    string `json:"warmth_description"`
	FieldMeta
}

type TrustSignalPattern struct {
	Type             string   `json:"type"`
	Description      string   `json:"description"`
	ExamplesDetected []string `json:"examples_detected"`
	FieldMeta
}

// NativeConstruction is one recurring phrase characteristic of the
// brand voice, with a mining confidence in [0,1].
type NativeConstruction struct {
	Pattern    string  `json:"pattern"`
	Confidence float64 `json:"confidence"`
	Frequency  int     `json:"frequency"`
}

type NativeConstructions struct {
	Description         string               `json:"description"`
	Items               []NativeConstruction `json:"items"`
	ConfidenceThreshold float64              `json:"confidence_threshold"`
	FieldMeta
}

// NegativeSpace lists phrases the brand never uses. Always
// human-defined; extraction creates the block empty and never touches
// the items afterward.
type NegativeSpace struct {
	Description string   `json:"description"`
	Items       []string `json:"items"`
	FieldMeta
}

type Vocabulary struct {
	DensityScore              float64  `json:"density_score"`
	Description               string   `json:"description"`
	DomainSpecificTerms       []string `json:"domain_specific_terms"`
	CharacteristicWordChoices []string `json:"characteristic_word_choices"`
	AvoidedTerms              []string `json:"avoided_terms"`
	FieldMeta
}

type CaptureConfidence struct {
	Overall            string            `json:"overall"`
	SourceWordCount    int               `json:"source_word_count"`
	PerField           map[string]string `json:"per_field"`
	LowConfidenceFlags []string          `json:"low_confidence_flags"`
	Notes              string            `json:"notes"`
}

// OverrideRecord logs one explicit human edit to a profile field.
type OverrideRecord struct {
	Field     string `json:"field"`
	Note      string `json:"note"`
	ChangedBy string `json:"changed_by,omitempty"`
	ChangedAt string `json:"changed_at"`
}

// IntakeInterviewData stores raw answers for profiles built from
// scratch instead of scraped copy.
type IntakeInterviewData struct {
	Description string            `json:"description"`
	Completed   bool              `json:"completed"`
	Answers     map[string]string `json:"answers"`
}

// IsLocked reports whether a top-level field name appears in
// LockedFields.
func (p *Profile) IsLocked(field string) bool {
	for _, f := range p.LockedFields {
		if f == field {
			return true
		}
	}
	return false
}

// Lock marks a field as protected from refresh and logs the edit.
func (p *Profile) Lock(field, note, changedBy string) {
	if !p.IsLocked(field) {
		p.LockedFields = append(p.LockedFields, field)
	}
	p.recordOverride(field, fmt.Sprintf("locked: %s", note), changedBy)
}

// Unlock removes refresh protection from a field and logs the edit.
func (p *Profile) Unlock(field, note, changedBy string) {
	kept := p.LockedFields[:0]
	for _, f := range p.LockedFields {
		if f != field {
			kept = append(kept, f)
		}
	}
	p.LockedFields = kept
	p.recordOverride(field, fmt.Sprintf("unlocked: %s", note), changedBy)
}

// SetNegativeSpace replaces the negative-space items. This is the only
// path that writes them; extraction never does.
func (p *Profile) SetNegativeSpace(items []string, note, changedBy string) {
	if p.NegativeSpace == nil {
		p.NegativeSpace = &NegativeSpace{
			Description: negativeSpaceDescription,
			FieldMeta:   FieldMeta{Provenance: ProvenanceHuman},
		}
	}
	if items == nil {
		items = []string{}
	}
	p.NegativeSpace.Items = items
	p.NegativeSpace.Provenance = ProvenanceHuman
	p.recordOverride("negative_space", note, changedBy)
	p.LastUpdated = nowUTC()
}

func (p *Profile) recordOverride(field, note, changedBy string) {
	p.OverrideHistory = append(p.OverrideHistory, OverrideRecord{
		Field:     field,
		Note:      note,
		ChangedBy: changedBy,
		ChangedAt: nowUTC(),
	})
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
