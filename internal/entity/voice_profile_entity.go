package entity

import (
	"time"

	"copygate-be/pkg/voice"

	"github.com/google/uuid"
)

type VoiceProfile struct {
	Id         uuid.UUID
	ProfileID  string
	ClientSlug string
	BrandSlug  string
	Document   *voice.Profile
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
