// Package cache keeps the latest analysis result per session for fast reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"github.com/sells-group/scorecard/internal/model"
)

// DefaultTTL is how long a cached result lives when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// ReportCache stores analysis results keyed by subcomponent and session.
type ReportCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, subcomponentID, sessionID string) (*model.AnalysisResult, error)
	Set(ctx context.Context, result *model.AnalysisResult) error
	Close() error
}

// Key is the cache key for one session's result.
func Key(subcomponentID, sessionID string) string {
	return fmt.Sprintf("analysis:%s:%s", subcomponentID, sessionID)
}

// client is the subset of *redis.Client the cache uses.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisCache is a ReportCache backed by Redis.
type RedisCache struct {
	client client
	ttl    time.Duration
}

// RedisOptions configures NewRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close() //nolint:errcheck
		return nil, eris.Wrapf(err, "cache: ping redis %s", opts.Addr)
	}
	return newRedisCache(rdb, opts.TTL), nil
}

func newRedisCache(c client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: c, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, subcomponentID, sessionID string) (*model.AnalysisResult, error) {
	data, err := c.client.Get(ctx, Key(subcomponentID, sessionID)).Bytes()
	if eris.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "cache: get")
	}
	var res model.AnalysisResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, eris.Wrap(err, "cache: decode result")
	}
	return &res, nil
}

func (c *RedisCache) Set(ctx context.Context, result *model.AnalysisResult) error {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "cache: encode result")
	}
	err = c.client.Set(ctx, Key(result.SubcomponentID, result.SessionID), data, c.ttl).Err()
	return eris.Wrap(err, "cache: set")
}

func (c *RedisCache) Close() error {
	return eris.Wrap(c.client.Close(), "cache: close")
}

// Nop is a ReportCache that never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, string) (*model.AnalysisResult, error) { return nil, nil }
func (Nop) Set(context.Context, *model.AnalysisResult) error                   { return nil }
func (Nop) Close() error                                                       { return nil }
