// Package auth resolves bearer tokens to users. Tokens are issued elsewhere and
// stored in redis as <prefix><token> -> user id.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"studybot/apperror"
)

// TokenStore maps a bearer token to a user id.
type TokenStore interface {
	UserID(ctx context.Context, token string) (int64, error)
}

// SessionConfig configures the redis session store.
type SessionConfig struct {
	Addr      string // e.g. localhost:6379
	Password  string
	DB        int
	KeyPrefix string
}

// RedisSessions is a TokenStore backed by plain redis strings.
type RedisSessions struct {
	client *redis.Client
	prefix string
}

// NewRedisSessions creates the session store and verifies connectivity.
func NewRedisSessions(ctx context.Context, cfg SessionConfig) (*RedisSessions, error) {
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
	return &RedisSessions{client: client, prefix: cfg.KeyPrefix}, nil
}

// UserID implements TokenStore. Unknown or expired tokens are unauthorized.
func (r *RedisSessions) UserID(ctx context.Context, token string) (int64, error) {
	val, err := r.client.Get(ctx, r.prefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, apperror.New(apperror.KindUnauthorized, "lookup session", errors.New("unknown token"))
	}
	if err != nil {
		return 0, fmt.Errorf("redis get session: %w", err)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, apperror.New(apperror.KindUnauthorized, "lookup session", fmt.Errorf("malformed session value %q", val))
	}
	return id, nil
}

// Close closes the underlying Redis client.
func (r *RedisSessions) Close() error {
	return r.client.Close()
}
