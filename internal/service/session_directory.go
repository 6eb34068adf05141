package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionDirectory records the session identifiers issued by any replica, so a
// visitor whose requests land on another replica keeps the same identity.
type SessionDirectory interface {
	Register(ctx context.Context, id string, ttl time.Duration) error
	// Touch extends the lifetime of id and reports whether it was issued.
	Touch(ctx context.Context, id string, ttl time.Duration) (bool, error)
}

// RedisSessionDirectory keeps issued session identifiers in Redis with an idle expiry.
type RedisSessionDirectory struct {
	client *redis.Client
}

// NewRedisSessionDirectory constructs a Redis-backed directory.
func NewRedisSessionDirectory(client *redis.Client) *RedisSessionDirectory {
	return &RedisSessionDirectory{client: client}
}

// Register implements SessionDirectory.
func (d *RedisSessionDirectory) Register(ctx context.Context, id string, ttl time.Duration) error {
	return d.client.Set(ctx, sessionKey(id), 1, ttl).Err()
}

// Touch implements SessionDirectory. EXPIRE only succeeds on an existing key.
func (d *RedisSessionDirectory) Touch(ctx context.Context, id string, ttl time.Duration) (bool, error) {
	return d.client.Expire(ctx, sessionKey(id), ttl).Result()
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:issued:%s", id)
}
