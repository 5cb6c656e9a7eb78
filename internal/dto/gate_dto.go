package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"copygate-be/pkg/gate"
	"copygate-be/pkg/scoring"

	"github.com/google/uuid"
)

// OrderedSections decodes a JSON object of section name to text while
// keeping the author's key order. Section order matters in reports, so
// a plain map would scramble it.
type OrderedSections []scoring.Section

func (s *OrderedSections) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections must be a JSON object")
	}

	out := make([]scoring.Section, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("invalid section name")
		}

		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("section %q must be a string: %w", name, err)
		}

		out = append(out, scoring.Section{Name: name, Text: text})
	}

	*s = out
	return nil
}

func (s OrderedSections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sec := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sec.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(sec.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type CheckGateRequest struct {
	JobID        string          `json:"job_id"`
	PropertySlug string          `json:"property_slug"`
	ProfileID    string          `json:"profile_id"`
	Sections     OrderedSections `json:"sections" validate:"required"`
	Override     bool            `json:"override"`
	OverrideNote string          `json:"override_note"`
}

type CheckSectionRequest struct {
	JobID        string `json:"job_id"`
	PropertySlug string `json:"property_slug"`
	ProfileID    string `json:"profile_id"`
	Section      string `json:"section" validate:"required"`
	Text         string `json:"text"`
	Override     bool   `json:"override"`
	OverrideNote string `json:"override_note"`
}

type CheckGateResponse struct {
	RunId  uuid.UUID   `json:"run_id"`
	Result gate.Result `json:"result"`
}

type GateRunSummaryResponse struct {
	Id           uuid.UUID `json:"id"`
	JobID        string    `json:"job_id"`
	PropertySlug string    `json:"property_slug"`
	ProfileID    string    `json:"profile_id,omitempty"`
	GateStatus   string    `json:"gate_status"`
	GateOpen     bool      `json:"gate_open"`
	Pass1Score   float64   `json:"pass1_score"`
	Pass2Score   *float64  `json:"pass2_score"`
	OverrideNote string    `json:"override_note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublishGateRunMessage is the internal bus payload for async gate run
// persistence. The run id is assigned before publishing so callers can
// reference the audit row immediately.
type PublishGateRunMessage struct {
	RunId        uuid.UUID   `json:"run_id"`
	JobID        string      `json:"job_id"`
	PropertySlug string      `json:"property_slug"`
	ProfileID    string      `json:"profile_id"`
	Result       gate.Result `json:"result"`
}

type ShowGateRunResponse struct {
	GateRunSummaryResponse
	Result *gate.Result `json:"result"`
}
