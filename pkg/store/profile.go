package store

import (
	"time"

	"copygate-be/pkg/voice"
)

// Cache sources, recorded on every snapshot so gate results can report
// where the profile came from.
const (
	SourceMemory   = "memory"
	SourceRedis    = "redis"
	SourceDatabase = "database"
)

// ProfileSnapshot is the cached view of a voice profile. Snapshots are
// immutable once stored; a profile edit invalidates rather than mutates.
type ProfileSnapshot struct {
	ProfileID string         `json:"profile_id"`
	Profile   *voice.Profile `json:"profile"`
	Source    string         `json:"source"`
	LoadedAt  time.Time      `json:"loaded_at"`
}
