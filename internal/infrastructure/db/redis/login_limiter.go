package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter is a fixed-window attempt counter backed by Redis.
// Key format: login:<client_ip>:<email>
type LoginLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
}

// NewLoginLimiter allows limit attempts per key within each window.
func NewLoginLimiter(client redis.Cmdable, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, limit: int64(limit), window: window}
}

// Allow counts one attempt for key and reports whether it is within the limit.
// The window starts with the first attempt.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("login limiter: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("login limiter expire: %w", err)
		}
	}

	return n <= l.limit, nil
}

func (l *LoginLimiter) key(key string) string {
	return "login:" + strings.ToLower(key)
}
