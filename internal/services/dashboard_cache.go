package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/redisclient"
	"github.com/prefeitura-rio/app-painel-dengue/internal/utils"
	"github.com/redis/go-redis/v9"
)

// ResultCache stores computed dashboard results
type ResultCache interface {
	Get(ctx context.Context, key string) (*models.DashboardResult, bool, error)
	Set(ctx context.Context, key string, result *models.DashboardResult) error
}

const dashboardKeyPrefix = "painel:dashboard:"

// DashboardCacheKey builds the cache key for a dataset fingerprint and filter set
func DashboardCacheKey(fingerprint string, f models.DashboardFilters) string {
	return fmt.Sprintf("%s%s:%016x", dashboardKeyPrefix, fingerprint, xxhash.Sum64String(f.CacheKey()))
}

// RedisDashboardCache keeps dashboard results as JSON in Redis
type RedisDashboardCache struct {
	client *redisclient.Client
	ttl    time.Duration
}

// NewRedisDashboardCache creates a Redis-backed result cache
func NewRedisDashboardCache(client *redisclient.Client, ttl time.Duration) *RedisDashboardCache {
	return &RedisDashboardCache{client: client, ttl: ttl}
}

// Get returns the cached result; ok is false on a miss
func (c *RedisDashboardCache) Get(ctx context.Context, key string) (*models.DashboardResult, bool, error) {
	ctx, span := utils.TraceCacheGet(ctx, key)
	defer span.End()

	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		utils.AddSpanAttribute(span, "cache.hit", false)
		return nil, false, nil
	}
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}

	var result models.DashboardResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return nil, false, fmt.Errorf("failed to decode cached result %s: %w", key, err)
	}
	utils.AddSpanAttribute(span, "cache.hit", true)
	return &result, true, nil
}

// Set stores result under key with the configured TTL
func (c *RedisDashboardCache) Set(ctx context.Context, key string, result *models.DashboardResult) error {
	ctx, span := utils.TraceCacheSet(ctx, key, c.ttl)
	defer span.End()

	payload, err := json.Marshal(result)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// PurgeStale deletes cached results computed from any dataset other than the
// one identified by fingerprint, returning how many keys were removed
func (c *RedisDashboardCache) PurgeStale(ctx context.Context, fingerprint string) (int64, error) {
	ctx, span := utils.TraceBusinessLogic(ctx, "dashboard_cache_purge")
	defer span.End()

	keys, err := c.client.Keys(ctx, dashboardKeyPrefix+"*").Result()
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return 0, fmt.Errorf("failed to list cached results: %w", err)
	}

	current := dashboardKeyPrefix + fingerprint + ":"
	stale := make([]string, 0, len(keys))
	for _, k := range keys {
		if !strings.HasPrefix(k, current) {
			stale = append(stale, k)
		}
	}
	utils.AddSpanAttribute(span, "cache.stale_keys", len(stale))
	if len(stale) == 0 {
		return 0, nil
	}

	deleted, err := c.client.Del(ctx, stale...).Result()
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		return 0, fmt.Errorf("failed to delete stale results: %w", err)
	}
	return deleted, nil
}
