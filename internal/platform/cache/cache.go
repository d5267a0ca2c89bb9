// Package cache is a small JSON cache over redis
// a disabled cache is a Noop so callers never branch on configuration
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"slopmeter/internal/platform/config"
	"slopmeter/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON documents under string keys
type Cache interface {
	// GetJSON decodes the value at key into dst, ok is false on a miss
	GetJSON(ctx context.Context, key string, dst any) (ok bool, err error)
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// Config configures the redis connection
type Config struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

// ConfigFromEnv reads SERVICE_REDIS_*
func ConfigFromEnv() Config {
	c := config.New().Prefix("SERVICE_REDIS_")
	return Config{
		Enabled:  c.MayBool("ENABLED", false),
		Addr:     c.MayString("ADDR", "localhost:6379"),
		Password: c.MayString("PASSWORD", ""),
		DB:       c.MayIntIn("DB", 0, 0, 15),
		TTL:      c.MayDuration("TTL", 5*time.Minute),
		Prefix:   c.MayString("PREFIX", "slopmeter:"),
	}
}

// Redis is a Cache backed by a go-redis client
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

var _ Cache = (*Redis)(nil)

// Open returns a Noop when cfg is disabled, otherwise a pinged Redis
func Open(ctx context.Context, cfg Config) (Cache, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s: %w", cfg.Addr, err)
	}
	logger.Named("cache").Info().Str("addr", cfg.Addr).Int("db", cfg.DB).Msg("redis connected")
	return New(rdb, cfg.TTL, cfg.Prefix), nil
}

// New wraps an existing client, ttl <= 0 means keys never expire
func New(rdb *redis.Client, ttl time.Duration, prefix string) *Redis {
	if ttl < 0 {
		ttl = 0
	}
	return &Redis{rdb: rdb, ttl: ttl, prefix: prefix}
}

func (r *Redis) key(k string) string { return r.prefix + k }

func (r *Redis) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return r.rdb.Set(ctx, r.key(key), string(b), r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return r.rdb.Del(ctx, full...).Err()
}

func (r *Redis) Ping(ctx context.Context) error { return r.rdb.Ping(ctx).Err() }

func (r *Redis) Close() error { return r.rdb.Close() }

// Noop misses every read and drops every write
type Noop struct{}

var _ Cache = Noop{}

func (Noop) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) SetJSON(context.Context, string, any) error         { return nil }
func (Noop) Delete(context.Context, ...string) error            { return nil }
func (Noop) Ping(context.Context) error                         { return nil }
func (Noop) Close() error                                       { return nil }
