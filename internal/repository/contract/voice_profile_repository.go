package contract

import (
	"context"

	"copygate-be/internal/entity"
	"copygate-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VoiceProfileRepository interface {
	Create(ctx context.Context, profile *entity.VoiceProfile) error
	Update(ctx context.Context, profile *entity.VoiceProfile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.VoiceProfile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.VoiceProfile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
