// Package ratelimit provides token bucket stores for echo's RateLimiter
// middleware. The redis store shares buckets between server replicas.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const redisTimeout = 500 * time.Millisecond

// Options describe one bucket per identifier: Capacity tokens, one token
// added back every RefillInterval, idle buckets dropped after TTL.
type Options struct {
	Capacity       int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// DefaultOptions allow 20 requests per second per identifier with a burst of 20.
var DefaultOptions = Options{
	Capacity:       20,
	RefillInterval: 50 * time.Millisecond,
	TTL:            10 * time.Minute,
	Prefix:         "rl",
}

// withDefaults fills unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	if o.Capacity < 1 {
		o.Capacity = DefaultOptions.Capacity
	}
	if o.RefillInterval <= 0 {
		o.RefillInterval = DefaultOptions.RefillInterval
	}
	if o.TTL <= 0 {
		o.TTL = DefaultOptions.TTL
	}
	if minTTL := 5 * o.RefillInterval; o.TTL < minTTL {
		o.TTL = minTTL
	}
	if o.Prefix == "" {
		o.Prefix = DefaultOptions.Prefix
	}
	return o
}

// KEYS[1] bucket key
// ARGV now_ms, capacity, interval_ms, ttl_seconds
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])
if tokens == nil or last_refill == nil then
	tokens = capacity
	last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
	tokens = math.min(capacity, tokens + intervals)
	last_refill = last_refill + (intervals * interval_ms)
end

local allowed = 0
if tokens > 0 then
	allowed = 1
	tokens = tokens - 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)
return { allowed, tokens }
`)

// RedisStore implements middleware.RateLimiterStore on top of redis.
type RedisStore struct {
	client *redis.Client
	opts   Options
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, opts Options) *RedisStore {
	return &RedisStore{
		client: client,
		opts:   opts.withDefaults(),
		now:    time.Now,
	}
}

// Allow takes one token from the identifier's bucket. Redis failures let the
// request through and are logged.
func (s *RedisStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	key := s.key(identifier)
	vals, err := tokenBucket.Run(ctx, s.client, []string{key},
		s.now().UnixMilli(),
		s.opts.Capacity,
		s.opts.RefillInterval.Milliseconds(),
		int64(s.opts.TTL/time.Second),
	).Int64Slice()
	if err != nil {
		slog.Warn("rate limiter unavailable", "key", key, "error", err)
		return true, nil
	}
	if len(vals) != 2 {
		slog.Warn("unexpected rate limiter reply", "key", key, "reply", vals)
		return true, nil
	}
	return vals[0] == 1, nil
}

func (s *RedisStore) key(identifier string) string {
	if identifier == "" {
		identifier = "unknown"
	}
	return strings.Join([]string{s.opts.Prefix, "ip", identifier}, ":")
}

// NewStore returns a redis backed store, or echo's in-memory store with the
// same bucket shape when client is nil.
func NewStore(client *redis.Client, opts Options) middleware.RateLimiterStore {
	opts = opts.withDefaults()
	if client != nil {
		return NewRedisStore(client, opts)
	}
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(opts.RefillInterval),
		Burst:     opts.Capacity,
		ExpiresIn: opts.TTL,
	})
}

// NewClient connects to redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return client, nil
}
