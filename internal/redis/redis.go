package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// failures tolerated per email before login is throttled
	maxFailures = 10
	// window after which the failure counter lapses
	failureWindow = 15 * time.Minute
)

// LoginLimiter throttles repeated failed login attempts per email. A nil
// limiter allows everything, so deployments without Redis behave exactly like
// the unthrottled service.
type LoginLimiter struct {
	rdb *redis.Client
}

// NewLoginLimiter connects a limiter to Redis.
func NewLoginLimiter(address, username, password string) *LoginLimiter {
	rdb := redis.NewClient(&redis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
	return &LoginLimiter{rdb: rdb}
}

// NewLoginLimiterFromClient wraps an existing client; used by tests.
func NewLoginLimiterFromClient(rdb *redis.Client) *LoginLimiter {
	return &LoginLimiter{rdb: rdb}
}

func key(email string) string {
	return fmt.Sprintf("login_failures:%s", email)
}

// Allow reports whether a login attempt for email may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil {
		return true
	}
	count, err := l.rdb.Get(ctx, key(email)).Int()
	if err != nil {
		// missing key or an unreachable Redis both fail open
		return true
	}
	return count < maxFailures
}

// RecordFailure bumps the failure counter for email, starting the lapse
// window on the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) {
	if l == nil {
		return
	}
	count, err := l.rdb.Incr(ctx, key(email)).Result()
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to record login failure")
		return
	}
	if count == 1 {
		l.rdb.Expire(ctx, key(email), failureWindow)
	}
}

// Reset clears the failure counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if l == nil {
		return
	}
	if err := l.rdb.Del(ctx, key(email)).Err(); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to reset login failures")
	}
}
