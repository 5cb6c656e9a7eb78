package memory

import (
	"context"
	"encoding/json"
	"time"

	"copygate-be/internal/repository/contract"
	"copygate-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "copygate:profile:"
	redisTTL       = 1 * time.Hour
)

// RedisProfileCache is the shared second level behind the in-process
// cache. Failures degrade to a cache miss; Redis being down never blocks
// a gate run.
type RedisProfileCache struct {
	client *redis.Client
}

func NewRedisProfileCache(url string) (contract.ProfileCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisProfileCache{client: redis.NewClient(opts)}, nil
}

func (r *RedisProfileCache) Get(ctx context.Context, profileID string) (*store.ProfileSnapshot, bool) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+profileID).Bytes()
	if err != nil {
		return nil, false
	}

	var snap store.ProfileSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, false
	}
	snap.Source = store.SourceRedis
	return &snap, true
}

func (r *RedisProfileCache) Set(ctx context.Context, snapshot *store.ProfileSnapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	r.client.Set(ctx, redisKeyPrefix+snapshot.ProfileID, raw, redisTTL)
}

func (r *RedisProfileCache) Invalidate(ctx context.Context, profileID string) {
	r.client.Del(ctx, redisKeyPrefix+profileID)
}
