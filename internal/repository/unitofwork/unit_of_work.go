package unitofwork

import (
	"context"

	"copygate-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	VoiceProfileRepository() contract.VoiceProfileRepository
	GateRunRepository() contract.GateRunRepository
}
