package memory

import (
	"context"
	"time"

	"copygate-be/internal/repository/contract"
	"copygate-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache() contract.ProfileCache {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ProfileCache{
		cache: c,
	}
}

func (r *ProfileCache) Get(ctx context.Context, profileID string) (*store.ProfileSnapshot, bool) {
	if x, found := r.cache.Get(profileID); found {
		snap := x.(*store.ProfileSnapshot)
		out := *snap
		out.Source = store.SourceMemory
		return &out, true
	}
	return nil, false
}

func (r *ProfileCache) Set(ctx context.Context, snapshot *store.ProfileSnapshot) {
	r.cache.Set(snapshot.ProfileID, snapshot, cache.DefaultExpiration)
}

func (r *ProfileCache) Invalidate(ctx context.Context, profileID string) {
	r.cache.Delete(profileID)
}
