package rate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const loginKeyPrefix = "rate:login:"

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

// Limiter applies a fixed-window counter per client key. Bursts across a
// window boundary are accepted; the window never slides.
type Limiter struct {
	store       WindowStore
	maxAttempts int
	window      time.Duration
}

func NewLimiter(store WindowStore, maxAttempts int, window time.Duration) *Limiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}

	return &Limiter{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow records one attempt for the key. It returns false with a positive
// retry-after once the post-increment count exceeds the maximum.
func (l *Limiter) Allow(ctx context.Context, clientKey string) (int64, bool, error) {
	if strings.TrimSpace(clientKey) == "" {
		return 0, false, fmt.Errorf("client key is required")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, loginKey(clientKey), l.window)
	if err != nil {
		return 0, false, err
	}
	if count > int64(l.maxAttempts) {
		return ceilSeconds(ttl), false, nil
	}

	return 0, true, nil
}

// RetryAfter reports the remaining block for the key without consuming
// an attempt.
func (l *Limiter) RetryAfter(ctx context.Context, clientKey string) (int64, error) {
	if strings.TrimSpace(clientKey) == "" {
		return 0, fmt.Errorf("client key is required")
	}
	if l.store == nil {
		return 0, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.WindowState(ctx, loginKey(clientKey))
	if err != nil {
		return 0, err
	}
	if count >= int64(l.maxAttempts) {
		return ceilSeconds(ttl), nil
	}

	return 0, nil
}

func loginKey(clientKey string) string {
	return loginKeyPrefix + clientKey
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}
