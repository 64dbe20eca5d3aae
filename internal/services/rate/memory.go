package rate

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-process WindowStore for deployments without redis.
// Counters live only for the window duration and do not survive restarts.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]memoryWindow
	now     func() time.Time
}

type memoryWindow struct {
	count   int64
	resetAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]memoryWindow),
		now:     time.Now,
	}
}

func (s *MemoryStore) IncrementWindow(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if key == "" || window <= 0 {
		return 0, 0, fmt.Errorf("invalid rate window payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = memoryWindow{count: 0, resetAt: now.Add(window)}
	}
	w.count++
	s.windows[key] = w

	return w.count, w.resetAt.Sub(now), nil
}

func (s *MemoryStore) WindowState(_ context.Context, key string) (int64, time.Duration, error) {
	if key == "" {
		return 0, 0, fmt.Errorf("rate key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		delete(s.windows, key)
		return 0, 0, nil
	}

	return w.count, w.resetAt.Sub(now), nil
}
