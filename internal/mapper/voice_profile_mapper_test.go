package mapper

import (
	"testing"
	"time"

	"copygate-be/internal/entity"
	"copygate-be/internal/model"
	"copygate-be/pkg/voice"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestVoiceProfileMapperRoundTrip(t *testing.T) {
	m := NewVoiceProfileMapper()
	now := time.Now()

	e := &entity.VoiceProfile{
		Id:         uuid.New(),
		ProfileID:  "gad-main",
		ClientSlug: "gad",
		BrandSlug:  "main",
		Document: &voice.Profile{
			ProfileID:     "gad-main",
			NegativeSpace: &voice.NegativeSpace{Items: []string{"synergy"}},
		},
		CreatedAt: now,
	}

	back := m.ToEntity(m.ToModel(e))

	assert.Equal(t, e.Id, back.Id)
	assert.Equal(t, e.ProfileID, back.ProfileID)
	assert.NotNil(t, back.Document)
	assert.Equal(t, []string{"synergy"}, back.Document.NegativeSpace.Items)
	assert.False(t, back.IsDeleted)
}

func TestVoiceProfileMapperCorruptDocument(t *testing.T) {
	m := NewVoiceProfileMapper()

	e := m.ToEntity(&model.VoiceProfile{
		Id:        uuid.New(),
		ProfileID: "gad-main",
		Document:  datatypes.JSON(`{not json`),
	})

	assert.NotNil(t, e)
	assert.Equal(t, "gad-main", e.ProfileID)
	assert.Nil(t, e.Document)
}

func TestVoiceProfileMapperNil(t *testing.T) {
	m := NewVoiceProfileMapper()

	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
