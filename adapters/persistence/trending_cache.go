package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Synapse-Social-Media/web-sub000/internal/domain/search"
	"github.com/Synapse-Social-Media/web-sub000/pkg/logger"
)

// RedisTrendingCache is a caller-side cache in front of the trending engine.
// The engine itself recomputes from scratch on every invocation; only the
// anonymous, globally identical view is worth caching.
type RedisTrendingCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisTrendingCache(client *redis.Client, ttl time.Duration, log logger.Logger) *RedisTrendingCache {
	return &RedisTrendingCache{client: client, ttl: ttl, logger: log}
}

func trendingKey(limit int) string {
	return fmt.Sprintf("trending:topics:%d", limit)
}

func (c *RedisTrendingCache) Get(ctx context.Context, limit int) ([]search.TrendingTopic, bool) {
	data, err := c.client.Get(ctx, trendingKey(limit)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Trending cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var topics []search.TrendingTopic
	if err := json.Unmarshal(data, &topics); err != nil {
		c.logger.Warn("Trending cache entry is malformed, ignoring", zap.Error(err))
		return nil, false
	}
	return topics, true
}

func (c *RedisTrendingCache) Set(ctx context.Context, limit int, topics []search.TrendingTopic) {
	data, err := json.Marshal(topics)
	if err != nil {
		c.logger.Warn("Failed to marshal trending topics for cache", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, trendingKey(limit), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Trending cache write failed", zap.Error(err))
	}
}
