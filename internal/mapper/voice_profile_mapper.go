package mapper

import (
	"encoding/json"
	"time"

	"copygate-be/internal/entity"
	"copygate-be/internal/model"
	"copygate-be/pkg/voice"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type VoiceProfileMapper struct{}

func NewVoiceProfileMapper() *VoiceProfileMapper {
	return &VoiceProfileMapper{}
}

func (m *VoiceProfileMapper) ToEntity(p *model.VoiceProfile) *entity.VoiceProfile {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	var doc *voice.Profile
	if len(p.Document) > 0 {
		doc = &voice.Profile{}
		if err := json.Unmarshal(p.Document, doc); err != nil {
			// A row with a corrupt document still surfaces its identity
			// columns so callers can locate and repair it.
			doc = nil
		}
	}

	return &entity.VoiceProfile{
		Id:         p.Id,
		ProfileID:  p.ProfileID,
		ClientSlug: p.ClientSlug,
		BrandSlug:  p.BrandSlug,
		Document:   doc,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  p.DeletedAt.Valid,
	}
}

func (m *VoiceProfileMapper) ToModel(p *entity.VoiceProfile) *model.VoiceProfile {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	var doc datatypes.JSON
	if p.Document != nil {
		if raw, err := json.Marshal(p.Document); err == nil {
			doc = datatypes.JSON(raw)
		}
	}

	return &model.VoiceProfile{
		Id:         p.Id,
		ProfileID:  p.ProfileID,
		ClientSlug: p.ClientSlug,
		BrandSlug:  p.BrandSlug,
		Document:   doc,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *VoiceProfileMapper) ToEntities(profiles []*model.VoiceProfile) []*entity.VoiceProfile {
	entities := make([]*entity.VoiceProfile, len(profiles))
	for i, p := range profiles {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *VoiceProfileMapper) ToModels(profiles []*entity.VoiceProfile) []*model.VoiceProfile {
	models := make([]*model.VoiceProfile, len(profiles))
	for i, p := range profiles {
		models[i] = m.ToModel(p)
	}
	return models
}
