package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var _ Backend = (*RedisBackend)(nil)

const (
	rateLimitKeyPrefix    = "ratelimit:"
	sessionKeyPrefix      = "session:"
	resetKeyPrefix        = "reset:"
	userSessionsKeyPrefix = "user_sessions:"
)

type RedisConfig struct {
	Client *redis.Client
	// Limit is the number of requests allowed per Window.
	Limit  int
	Window time.Duration
}

// RedisBackend shares rate limits and sessions across server instances.
type RedisBackend struct {
	client  *redis.Client
	limiter slidingWindow
}

func NewRedisBackend(cfg RedisConfig) *RedisBackend {
	window := cfg.Window
	if window <= 0 {
		window = time.Second
	}
	return &RedisBackend{
		client:  cfg.Client,
		limiter: slidingWindow{window: window, limit: max(cfg.Limit, 1)},
	}
}

func (r *RedisBackend) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	return r.limiter.allow(ctx, r.client, rateLimitKeyPrefix+key)
}

func (r *RedisBackend) CreateSession(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	data, err := marshalEntry(userID)
	if err != nil {
		return err
	}

	key := sessionKeyPrefix + tokenHash
	index := userSessionsKeyPrefix + userID
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, ttl)
	pipe.SAdd(ctx, index, key)
	pipe.Expire(ctx, index, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}
	return nil
}

func (r *RedisBackend) GetSession(ctx context.Context, tokenHash string) (string, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+tokenHash).Bytes()
	return decodeEntry(data, err)
}

func (r *RedisBackend) DeleteSession(ctx context.Context, tokenHash string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+tokenHash).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteUserSessions removes every session indexed under userID. Index
// members whose session already expired are deleted as no-ops.
func (r *RedisBackend) DeleteUserSessions(ctx context.Context, userID string) error {
	index := userSessionsKeyPrefix + userID
	keys, err := r.client.SMembers(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("failed to list user sessions: %w", err)
	}

	if err := r.client.Del(ctx, append(keys, index)...).Err(); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return nil
}

func (r *RedisBackend) SetResetToken(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	return r.set(ctx, "reset token", resetKeyPrefix+tokenHash, userID, ttl)
}

func (r *RedisBackend) ConsumeResetToken(ctx context.Context, tokenHash string) (string, error) {
	data, err := r.client.GetDel(ctx, resetKeyPrefix+tokenHash).Bytes()
	return decodeEntry(data, err)
}

func (r *RedisBackend) set(ctx context.Context, kind, key, userID string, ttl time.Duration) error {
	data, err := marshalEntry(userID)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", kind, err)
	}
	return nil
}

func marshalEntry(userID string) ([]byte, error) {
	data, err := go_json.Marshal(entry{UserID: userID, CreatedAt: time.Now().UTC()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry: %w", err)
	}
	return data, nil
}

func decodeEntry(data []byte, err error) (string, error) {
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read entry: %w", err)
	}

	var e entry
	if err := go_json.Unmarshal(data, &e); err != nil {
		return "", fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return e.UserID, nil
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
