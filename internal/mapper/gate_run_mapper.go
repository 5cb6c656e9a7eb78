package mapper

import (
	"encoding/json"

	"copygate-be/internal/entity"
	"copygate-be/internal/model"
	"copygate-be/pkg/gate"

	"gorm.io/datatypes"
)

type GateRunMapper struct{}

func NewGateRunMapper() *GateRunMapper {
	return &GateRunMapper{}
}

func (m *GateRunMapper) ToEntity(r *model.GateRun) *entity.GateRun {
	if r == nil {
		return nil
	}

	var result *gate.Result
	if len(r.Result) > 0 {
		result = &gate.Result{}
		if err := json.Unmarshal(r.Result, result); err != nil {
			result = nil
		}
	}

	return &entity.GateRun{
		Id:           r.Id,
		JobID:        r.JobID,
		PropertySlug: r.PropertySlug,
		ProfileID:    r.ProfileID,
		GateStatus:   r.GateStatus,
		GateOpen:     r.GateOpen,
		Pass1Score:   r.Pass1Score,
		Pass2Score:   r.Pass2Score,
		OverrideNote: r.OverrideNote,
		Result:       result,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *GateRunMapper) ToModel(r *entity.GateRun) *model.GateRun {
	if r == nil {
		return nil
	}

	var result datatypes.JSON
	if r.Result != nil {
		if raw, err := json.Marshal(r.Result); err == nil {
			result = datatypes.JSON(raw)
		}
	}

	return &model.GateRun{
		Id:           r.Id,
		JobID:        r.JobID,
		PropertySlug: r.PropertySlug,
		ProfileID:    r.ProfileID,
		GateStatus:   r.GateStatus,
		GateOpen:     r.GateOpen,
		Pass1Score:   r.Pass1Score,
		Pass2Score:   r.Pass2Score,
		OverrideNote: r.OverrideNote,
		Result:       result,
		CreatedAt:    r.CreatedAt,
	}
}

func (m *GateRunMapper) ToEntities(runs []*model.GateRun) []*entity.GateRun {
	entities := make([]*entity.GateRun, len(runs))
	for i, r := range runs {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
