package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginGuardPrefix = "login:fail:"

// LoginGuard counts failed login attempts per username in Redis. Once the
// counter reaches MaxAttempts the username is locked until the window key
// expires. The window slides from the first failure, not the last.
type LoginGuard struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginGuard(client *redis.Client, maxAttempts int, window time.Duration) *LoginGuard {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginGuard{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// IsLocked reports whether the username has exhausted its attempts.
func (g *LoginGuard) IsLocked(ctx context.Context, username string) (bool, error) {
	count, err := g.client.Get(ctx, loginGuardPrefix+username).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login guard get: %w", err)
	}
	return count >= g.maxAttempts, nil
}

// RecordFailure increments the failure counter, starting the expiry window on
// the first failure.
func (g *LoginGuard) RecordFailure(ctx context.Context, username string) error {
	key := loginGuardPrefix + username

	count, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login guard incr: %w", err)
	}
	if count == 1 {
		if err := g.client.Expire(ctx, key, g.window).Err(); err != nil {
			return fmt.Errorf("login guard expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, username string) error {
	if err := g.client.Del(ctx, loginGuardPrefix+username).Err(); err != nil {
		return fmt.Errorf("login guard reset: %w", err)
	}
	return nil
}
