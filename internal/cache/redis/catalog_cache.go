// Package redis shares the pricing catalog across replicas through a Redis hash.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/llmcompare/internal/catalog"
	"github.com/davidbz/llmcompare/internal/observability"
)

// CatalogCache is a read-through catalog.Source backed by Redis. A hit serves
// the cached entries; a miss fetches from the origin source and stores the result.
type CatalogCache struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
	origin catalog.Source
}

// NewCatalogCache creates a Redis-backed catalog source.
func NewCatalogCache(client redis.UniversalClient, key string, ttl time.Duration, origin catalog.Source) (*CatalogCache, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if origin == nil {
		return nil, errors.New("origin source cannot be nil")
	}
	if key == "" {
		return nil, errors.New("cache key cannot be empty")
	}

	return &CatalogCache{
		client: client,
		key:    key,
		ttl:    ttl,
		origin: origin,
	}, nil
}

// Fetch serves the cached catalog or refills it from the origin. Redis errors
// degrade to the origin source.
func (c *CatalogCache) Fetch(ctx context.Context) ([]catalog.Entry, error) {
	logger := observability.FromContext(ctx)

	entries, err := c.load(ctx)
	switch {
	case err == nil:
		logger.Debug("catalog cache hit", observability.Int("models", len(entries)))
		return entries, nil
	case errors.Is(err, redis.Nil):
		logger.Debug("catalog cache miss", observability.String("key", c.key))
	default:
		logger.Warn("catalog cache read failed", observability.Error(err))
	}

	entries, err = c.origin.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	if storeErr := c.store(ctx, entries); storeErr != nil {
		logger.Warn("catalog cache write failed", observability.Error(storeErr))
	}

	return entries, nil
}

// Invalidate drops the cached catalog.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}

func (c *CatalogCache) load(ctx context.Context) ([]catalog.Entry, error) {
	fields, err := c.client.HGetAll(ctx, c.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	data, ok := fields["data"]
	if !ok {
		return nil, redis.Nil
	}

	var entries []catalog.Entry
	if err = json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cached catalog: %w", err)
	}
	if len(entries) == 0 {
		return nil, redis.Nil
	}

	return entries, nil
}

func (c *CatalogCache) store(ctx context.Context, entries []catalog.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, c.key,
		"data", string(data),
		"indexed_at", strconv.FormatInt(time.Now().Unix(), 10),
	)
	if c.ttl > 0 {
		pipe.Expire(ctx, c.key, c.ttl)
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store catalog: %w", err)
	}
	return nil
}
