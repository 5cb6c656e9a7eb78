package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VoiceProfile struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileID  string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	ClientSlug string         `gorm:"type:varchar(255);not null;index"`
	BrandSlug  string         `gorm:"type:varchar(255);not null;index"`
	Document   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (VoiceProfile) TableName() string {
	return "voice_profiles"
}
