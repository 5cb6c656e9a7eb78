package contract

import (
	"context"

	"copygate-be/pkg/store"
)

// ProfileCache fronts the voice profile repository. Implementations must
// treat snapshots as immutable; profile edits call Invalidate.
type ProfileCache interface {
	Get(ctx context.Context, profileID string) (*store.ProfileSnapshot, bool)
	Set(ctx context.Context, snapshot *store.ProfileSnapshot)
	Invalidate(ctx context.Context, profileID string)
}
