package rate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	defaultLoginMaxAttempts = 5
	defaultLoginWindow      = 15 * time.Minute
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
	Reset(ctx context.Context, key string) error
}

// LoginThrottle closes after maxAttempts failures inside one window and stays
// closed until the window expires or a successful login resets it.
type LoginThrottle struct {
	store       WindowStore
	maxAttempts int
	window      time.Duration
}

func NewLoginThrottle(store WindowStore, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultLoginMaxAttempts
	}
	if window <= 0 {
		window = defaultLoginWindow
	}

	return &LoginThrottle{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Check returns how long the caller must wait, or zero when attempts are allowed.
func (l *LoginThrottle) Check(ctx context.Context, key string) (time.Duration, error) {
	if l.store == nil {
		return 0, fmt.Errorf("login throttle store is nil")
	}
	count, ttl, err := l.store.WindowState(ctx, rateKey(key))
	if err != nil {
		return 0, err
	}
	if count >= int64(l.maxAttempts) {
		return ceilDuration(ttl), nil
	}
	return 0, nil
}

func (l *LoginThrottle) RegisterFailure(ctx context.Context, key string) error {
	if l.store == nil {
		return fmt.Errorf("login throttle store is nil")
	}
	_, _, err := l.store.IncrementWindow(ctx, rateKey(key), l.window)
	return err
}

func (l *LoginThrottle) Reset(ctx context.Context, key string) error {
	if l.store == nil {
		return fmt.Errorf("login throttle store is nil")
	}
	return l.store.Reset(ctx, rateKey(key))
}

func rateKey(key string) string {
	return "rate:" + strings.ToLower(strings.TrimSpace(key))
}

func ceilDuration(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Second
	}
	if rem := d % time.Second; rem != 0 {
		d += time.Second - rem
	}
	return d
}
