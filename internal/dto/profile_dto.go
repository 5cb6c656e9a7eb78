package dto

import (
	"time"

	"copygate-be/pkg/voice"

	"github.com/google/uuid"
)

type ExtractProfileRequest struct {
	ClientSlug         string   `json:"client_slug" validate:"required"`
	BrandSlug          string   `json:"brand_slug" validate:"required"`
	BrandDisplayName   string   `json:"brand_display_name"`
	Text               string   `json:"text" validate:"required"`
	SourceURL          string   `json:"source_url"`
	SourcePagesSampled []string `json:"source_pages_sampled"`
	TierScope          []string `json:"tier_scope"`
	CaptureMethod      string   `json:"capture_method"`
}

type ExtractProfileResponse struct {
	Id         uuid.UUID `json:"id"`
	ProfileID  string    `json:"profile_id"`
	Confidence string    `json:"confidence"`
	WordCount  int       `json:"word_count"`
}

type UpdateProfileRequest struct {
	ProfileID string `json:"profile_id"`
	Text      string `json:"text" validate:"required"`
}

type UpdateProfileResponse struct {
	Id        uuid.UUID `json:"id"`
	ProfileID string    `json:"profile_id"`
}

type ShowProfileResponse struct {
	Id        uuid.UUID      `json:"id"`
	ProfileID string         `json:"profile_id"`
	Profile   *voice.Profile `json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at"`
}

type ListProfilesResponse struct {
	Id         uuid.UUID  `json:"id"`
	ProfileID  string     `json:"profile_id"`
	ClientSlug string     `json:"client_slug"`
	BrandSlug  string     `json:"brand_slug"`
	Confidence string     `json:"confidence,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type SetNegativeSpaceRequest struct {
	ProfileID string   `json:"profile_id"`
	Items     []string `json:"items" validate:"required"`
	Note      string   `json:"note"`
	ChangedBy string   `json:"changed_by"`
}

type LockFieldRequest struct {
	ProfileID string `json:"profile_id"`
	Field     string `json:"field" validate:"required"`
	Note      string `json:"note"`
	ChangedBy string `json:"changed_by"`
}

type ProfileFieldResponse struct {
	ProfileID    string   `json:"profile_id"`
	LockedFields []string `json:"locked_fields"`
}
