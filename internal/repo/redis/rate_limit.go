package redis

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter counts requests per key in a fixed window. Errors fail open:
// a broken limiter must not lock everyone out.
type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	// Hash the key for privacy
	hasher := sha256.New()
	hasher.Write([]byte(key))
	hashedKey := fmt.Sprintf("rl:%x", hasher.Sum(nil))

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	count, err := r.client.Incr(ctx, hashedKey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, hashedKey, window).Err(); err != nil {
			return true, err
		}
	}

	return count <= int64(limit), nil
}
