package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// InflightGuard is a cross-process lock that keeps one relay call per session.
type InflightGuard interface {
	// Acquire returns a release token when the guard was free.
	Acquire(ctx context.Context, key string) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisInflightGuard keeps the in-flight marker in Redis so replicas share it.
type RedisInflightGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisInflightGuard constructs a Redis-backed guard. The ttl bounds how
// long a crashed replica can hold a session.
func NewRedisInflightGuard(client *redis.Client, ttl time.Duration) *RedisInflightGuard {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisInflightGuard{client: client, ttl: ttl}
}

// Acquire implements InflightGuard.
func (g *RedisInflightGuard) Acquire(ctx context.Context, key string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, inflightKey(key), token, g.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release implements InflightGuard. It only removes the marker it created.
func (g *RedisInflightGuard) Release(ctx context.Context, key, token string) error {
	return releaseScript.Run(ctx, g.client, []string{inflightKey(key)}, token).Err()
}

func inflightKey(key string) string {
	return fmt.Sprintf("contact:inflight:%s", key)
}
