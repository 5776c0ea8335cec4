package auth

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttleKeyPrefix = "taskdeck:login_attempts:"

// Throttle counts login attempts per email in a fixed redis window. A nil
// Throttle is a no-op so the service works without redis.
type Throttle struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewThrottle constructs a login throttle.
func NewThrottle(client *redis.Client, max int, window time.Duration) *Throttle {
	return &Throttle{client: client, max: max, window: window}
}

// Hit records an attempt and fails with ErrTooManyAttempts once the window
// budget is exhausted. Redis trouble never locks logins out.
func (t *Throttle) Hit(ctx context.Context, email string) error {
	if t == nil || t.client == nil {
		return nil
	}
	key := throttleKeyPrefix + strings.ToLower(email)

	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return nil
	}
	if count == 1 {
		t.client.Expire(ctx, key, t.window)
	}
	if count > int64(t.max) {
		return ErrTooManyAttempts
	}
	return nil
}

// Reset clears the attempt counter after a successful login.
func (t *Throttle) Reset(ctx context.Context, email string) {
	if t == nil || t.client == nil {
		return
	}
	t.client.Del(ctx, throttleKeyPrefix+strings.ToLower(email))
}
