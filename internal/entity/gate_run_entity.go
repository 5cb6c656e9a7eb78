package entity

import (
	"time"

	"copygate-be/pkg/gate"

	"github.com/google/uuid"
)

type GateRun struct {
	Id           uuid.UUID
	JobID        string
	PropertySlug string
	ProfileID    string
	GateStatus   string
	GateOpen     bool
	Pass1Score   float64
	Pass2Score   *float64
	OverrideNote string
	Result       *gate.Result
	CreatedAt    time.Time
}
