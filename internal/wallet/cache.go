package wallet

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vivek91319165/nebula-financial-verse/internal/logger"
)

// CachedSource wraps an AssetSource with a per-address Redis cache so
// repeated wallet-page loads within the TTL don't hit the upstream.
// Cache failures are logged and treated as misses; the wrapped source
// is always the fallback.
type CachedSource struct {
	source AssetSource
	rdb    *redis.Client
	ttl    time.Duration
}

func NewCachedSource(source AssetSource, rdb *redis.Client, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, rdb: rdb, ttl: ttl}
}

func cacheKey(address string) string {
	return "wallet:assets:" + address
}

func (c *CachedSource) FetchAssets(ctx context.Context, address string) ([]Asset, error) {
	// 1. --- Try the cache ---
	cached, err := c.rdb.Get(ctx, cacheKey(address)).Result()
	if err == nil {
		var assets []Asset
		if jsonErr := json.Unmarshal([]byte(cached), &assets); jsonErr == nil {
			return assets, nil
		}
		// Corrupt entry: fall through and refetch.
	} else if err != redis.Nil {
		logger.Warnf("wallet asset cache read failed: %v", err)
	}

	// 2. --- Miss: ask the real source ---
	assets, err := c.source.FetchAssets(ctx, address)
	if err != nil {
		return nil, err
	}

	// 3. --- Store for next time (best effort) ---
	if data, jsonErr := json.Marshal(assets); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, cacheKey(address), data, c.ttl).Err(); setErr != nil {
			logger.Warnf("wallet asset cache write failed: %v", setErr)
		}
	}

	return assets, nil
}
