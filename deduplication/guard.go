// Package deduplication keeps the worker from summarizing the same video twice
// within a window. Claims are plain redis keys set with NX and a TTL.
package deduplication

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// GuardConfig configures the redis connection and claim window
type GuardConfig struct {
	Addr      string // e.g. localhost:6379
	Password  string
	DB        int
	KeyPrefix string
	// TTL is how long a claim blocks repeat requests for the same video
	TTL time.Duration
}

// RedisGuard claims video ids in redis
type RedisGuard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisGuard creates the guard and verifies connectivity
func NewRedisGuard(ctx context.Context, cfg GuardConfig) (*RedisGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisGuard{client: client, prefix: cfg.KeyPrefix, ttl: ttl}, nil
}

// Key builds a claim key. Video ids are case sensitive, so only whitespace is trimmed.
func Key(prefix, videoID string) string {
	return prefix + strings.TrimSpace(videoID)
}

// Claim marks videoID as in progress or done. It reports false when another
// claim is still live.
func (g *RedisGuard) Claim(ctx context.Context, videoID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	ok, err := g.client.SetNX(ctx, Key(g.prefix, videoID), time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis claim %s: %w", videoID, err)
	}
	return ok, nil
}

// Release drops the claim so a redelivered request can retry
func (g *RedisGuard) Release(ctx context.Context, videoID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := g.client.Del(ctx, Key(g.prefix, videoID)).Err(); err != nil {
		return fmt.Errorf("redis release %s: %w", videoID, err)
	}
	return nil
}

// Close closes the underlying Redis client
func (g *RedisGuard) Close() error {
	return g.client.Close()
}
