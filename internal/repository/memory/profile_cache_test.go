package memory

import (
	"context"
	"testing"
	"time"

	"copygate-be/pkg/store"
	"copygate-be/pkg/voice"

	"github.com/stretchr/testify/assert"
)

func TestProfileCacheSetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	cache := NewProfileCache()

	snap := &store.ProfileSnapshot{
		ProfileID: "gad-main",
		Profile:   &voice.Profile{ProfileID: "gad-main"},
		Source:    store.SourceDatabase,
		LoadedAt:  time.Now().UTC(),
	}
	cache.Set(ctx, snap)

	got, found := cache.Get(ctx, "gad-main")
	assert.True(t, found)
	assert.Equal(t, "gad-main", got.Profile.ProfileID)
	assert.Equal(t, store.SourceMemory, got.Source, "hits report the level that served them")

	cache.Invalidate(ctx, "gad-main")
	_, found = cache.Get(ctx, "gad-main")
	assert.False(t, found)
}

func TestProfileCacheMissOnUnknownKey(t *testing.T) {
	cache := NewProfileCache()

	got, found := cache.Get(context.Background(), "nope")

	assert.False(t, found)
	assert.Nil(t, got)
}
