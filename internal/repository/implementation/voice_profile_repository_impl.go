package implementation

import (
	"context"
	"errors"

	"copygate-be/internal/entity"
	"copygate-be/internal/mapper"
	"copygate-be/internal/model"
	"copygate-be/internal/repository/contract"
	"copygate-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoiceProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.VoiceProfileMapper
}

func NewVoiceProfileRepository(db *gorm.DB) contract.VoiceProfileRepository {
	return &VoiceProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewVoiceProfileMapper(),
	}
}

func (r *VoiceProfileRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *VoiceProfileRepositoryImpl) Create(ctx context.Context, profile *entity.VoiceProfile) error {
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *VoiceProfileRepositoryImpl) Update(ctx context.Context, profile *entity.VoiceProfile) error {
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *VoiceProfileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.VoiceProfile{}, id).Error
}

func (r *VoiceProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VoiceProfile, error) {
	var m model.VoiceProfile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *VoiceProfileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VoiceProfile, error) {
	var models []*model.VoiceProfile
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *VoiceProfileRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.VoiceProfile{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
