package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const limiterWindow = time.Minute

// Limiter is a fixed-window request counter backed by Redis.
// Key format: ratelimit:<scope>:<client>
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow counts one request for client under scope and reports whether it
// stays within limit for the current window.
func (l *Limiter) Allow(ctx context.Context, scope, client string, limit int) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, client)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, limiterWindow).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= int64(limit), nil
}
