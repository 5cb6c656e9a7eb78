package implementation

import (
	"context"
	"errors"

	"copygate-be/internal/entity"
	"copygate-be/internal/mapper"
	"copygate-be/internal/model"
	"copygate-be/internal/repository/contract"
	"copygate-be/internal/repository/scope"
	"copygate-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GateRunRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GateRunMapper
}

func NewGateRunRepository(db *gorm.DB) contract.GateRunRepository {
	return &GateRunRepositoryImpl{
		db:     db,
		mapper: mapper.NewGateRunMapper(),
	}
}

func (r *GateRunRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GateRunRepositoryImpl) Create(ctx context.Context, run *entity.GateRun) error {
	m := r.mapper.ToModel(run)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*run = *r.mapper.ToEntity(m)
	return nil
}

func (r *GateRunRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GateRun, error) {
	var m model.GateRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *GateRunRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GateRun, error) {
	var models []*model.GateRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GateRunRepositoryImpl) FindRecent(ctx context.Context, limit int, specs ...specification.Specification) ([]*entity.GateRun, error) {
	var models []*model.GateRun
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	query = query.Scopes(scope.OrderByCreatedDesc).Limit(limit)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GateRunRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.GateRun{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
