package events

import "time"

// Event types published on the bus.
const (
	TypeGateChecked      = "GATE_CHECKED"
	TypeGateOverridden   = "GATE_OVERRIDDEN"
	TypeProfileExtracted = "PROFILE_EXTRACTED"
	TypeProfileUpdated   = "PROFILE_UPDATED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "GATE_CHECKED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewGateCheckedEvent is emitted after every gate run, pass or fail.
func NewGateCheckedEvent(jobID, propertySlug, gateStatus string, pass1Score float64, pass2Score *float64, gateOpen bool) BaseEvent {
	data := map[string]interface{}{
		"job_id":        jobID,
		"property_slug": propertySlug,
		"gate_status":   gateStatus,
		"gate_open":     gateOpen,
		"pass1_score":   pass1Score,
	}
	if pass2Score != nil {
		data["pass2_score"] = *pass2Score
	}
	return BaseEvent{
		Type:       TypeGateChecked,
		Data:       data,
		OccurredAt: time.Now(),
	}
}

// NewGateOverriddenEvent is emitted when a human opens a failed gate.
// The note is part of the audit trail and is never empty.
func NewGateOverriddenEvent(jobID, propertySlug, note string) BaseEvent {
	return BaseEvent{
		Type: TypeGateOverridden,
		Data: map[string]interface{}{
			"job_id":        jobID,
			"property_slug": propertySlug,
			"override_note": note,
		},
		OccurredAt: time.Now(),
	}
}

// NewProfileExtractedEvent is emitted when a voice profile is first built
// from source copy.
func NewProfileExtractedEvent(profileID, clientSlug, brandSlug, confidence string, wordCount int) BaseEvent {
	return BaseEvent{
		Type: TypeProfileExtracted,
		Data: map[string]interface{}{
			"profile_id":  profileID,
			"client_slug": clientSlug,
			"brand_slug":  brandSlug,
			"confidence":  confidence,
			"word_count":  wordCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewProfileUpdatedEvent is emitted on re-extraction. Locked fields are
// reported so consumers can audit which overrides survived the refresh.
func NewProfileUpdatedEvent(profileID string, lockedFields []string) BaseEvent {
	return BaseEvent{
		Type: TypeProfileUpdated,
		Data: map[string]interface{}{
			"profile_id":    profileID,
			"locked_fields": lockedFields,
		},
		OccurredAt: time.Now(),
	}
}
