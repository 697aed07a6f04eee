package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const categoriesKey = "books:categories"

// CategoryCache keeps the distinct book categories in Redis so the
// categories endpoint does not hit the database on every request.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCategoryCache connects to Redis using a redis:// URL.
func NewCategoryCache(redisURL string, ttl time.Duration, logger *slog.Logger) (*CategoryCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CategoryCache{client: rdb, ttl: ttl, logger: logger}, nil
}

// Get returns the cached category list. The second return value is false on
// a miss or any Redis error; the caller falls back to the database.
func (c *CategoryCache) Get(ctx context.Context) ([]string, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, categoriesKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("category cache read failed", "error", err)
		}
		return nil, false
	}

	var categories []string
	if err := json.Unmarshal([]byte(raw), &categories); err != nil {
		c.logger.Warn("category cache holds malformed payload", "error", err)
		return nil, false
	}
	return categories, true
}

// Set stores the category list with the configured TTL. Errors are logged
// and swallowed; caching is best effort.
func (c *CategoryCache) Set(ctx context.Context, categories []string) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, categoriesKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("category cache write failed", "error", err)
	}
}

// Invalidate drops the cached list. Called whenever a book is created,
// updated or deleted since any of those can change the category set.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		c.logger.Warn("category cache invalidation failed", "error", err)
	}
}
