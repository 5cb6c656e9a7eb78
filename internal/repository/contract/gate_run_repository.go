package contract

import (
	"context"

	"copygate-be/internal/entity"
	"copygate-be/internal/repository/specification"
)

type GateRunRepository interface {
	Create(ctx context.Context, run *entity.GateRun) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GateRun, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GateRun, error)
	FindRecent(ctx context.Context, limit int, specs ...specification.Specification) ([]*entity.GateRun, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
