package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Vilbert55/yatube/config"
	"github.com/Vilbert55/yatube/pkg/logger"
)

// NewClient connects to redis; returns nil when no addr is configured,
// in which case the feed is served uncached.
func NewClient(cfg *config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, feed cache disabled", zap.Error(err))
		return nil
	}
	return rdb
}

// FeedCache is a read-through fragment cache for the global feed page.
// Values are the rendered JSON payloads, keyed by page number and order.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	if ttl <= 0 {
		ttl = 20 * time.Second
	}
	return &FeedCache{rdb: rdb, ttl: ttl}
}

// Key builds the fragment key for one index page variant. Raw query values
// are fine here, mirroring fragment caching by querystring.
func (c *FeedCache) Key(page, order string) string {
	return fmt.Sprintf("feed:index:%s:%s", page, order)
}

func (c *FeedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *FeedCache) Set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn("feed cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached index fragment. Called on post create/edit;
// whole-fragment invalidation, the cache never patches entries in place.
func (c *FeedCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, "feed:index:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("feed cache scan failed", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		_ = c.rdb.Del(ctx, keys...).Err()
	}
}
