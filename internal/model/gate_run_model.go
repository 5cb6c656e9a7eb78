package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type GateRun struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	JobID        string         `gorm:"type:varchar(255);not null;index"`
	PropertySlug string         `gorm:"type:varchar(255);index"`
	ProfileID    string         `gorm:"type:varchar(255);index"`
	GateStatus   string         `gorm:"type:varchar(32);not null;index"`
	GateOpen     bool           `gorm:"not null"`
	Pass1Score   float64        `gorm:"not null"`
	Pass2Score   *float64
	OverrideNote string         `gorm:"type:text"`
	Result       datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
}

func (GateRun) TableName() string {
	return "gate_runs"
}
