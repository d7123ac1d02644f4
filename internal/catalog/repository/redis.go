package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/catalog"
	"github.com/fekuna/omnipos-storefront-service/internal/logger"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

const SnapshotKey = "storefront:catalog:snapshot"

// CacheClient is the subset of redis.Cmdable the cache needs.
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedRepository serves the catalog from a Redis snapshot and falls back
// to the wrapped repository on a miss or on any cache failure.
type CachedRepository struct {
	next   catalog.Repository
	client CacheClient
	ttl    time.Duration
	logger logger.ZapLogger
}

var (
	_ catalog.Repository  = (*CachedRepository)(nil)
	_ catalog.Invalidator = (*CachedRepository)(nil)
)

func NewCachedRepository(next catalog.Repository, client CacheClient, ttl time.Duration, log logger.ZapLogger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (r *CachedRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	val, err := r.client.Get(ctx, SnapshotKey).Bytes()
	switch {
	case err == nil:
		var products []model.Product
		if err := json.Unmarshal(val, &products); err == nil {
			r.logger.Debug("catalog cache hit", zap.Int("count", len(products)))
			return products, nil
		}
		r.logger.Warn("discarding undecodable catalog snapshot", zap.Error(err))
	case errors.Is(err, redis.Nil):
		r.logger.Debug("catalog cache miss")
	default:
		r.logger.Warn("catalog cache read failed, falling back to source", zap.Error(err))
	}

	products, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(products)
	if err != nil {
		return products, nil
	}
	if err := r.client.Set(ctx, SnapshotKey, data, r.ttl).Err(); err != nil {
		r.logger.Warn("catalog cache write failed", zap.Error(err))
	}
	return products, nil
}

func (r *CachedRepository) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, SnapshotKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog snapshot: %w", err)
	}
	return nil
}
