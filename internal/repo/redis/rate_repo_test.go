package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestRateRepo(t *testing.T) (*RateRepo, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateRepo(client), mr
}

func TestIncrementWindowCountsAndSetsTTL(t *testing.T) {
	repo, mr := newTestRateRepo(t)

	for want := int64(1); want <= 3; want++ {
		count, ttl, err := repo.IncrementWindow(context.Background(), "rate:login:1.2.3.4", 15*time.Minute)
		if err != nil {
			t.Fatalf("increment window: %v", err)
		}
		if count != want {
			t.Fatalf("unexpected count: got %d want %d", count, want)
		}
		if ttl <= 0 || ttl > 15*time.Minute {
			t.Fatalf("ttl out of range: %v", ttl)
		}
	}

	if mr.TTL("rate:login:1.2.3.4") <= 0 {
		t.Fatal("window key must carry a TTL")
	}
}

func TestIncrementWindowResetsAfterExpiry(t *testing.T) {
	repo, mr := newTestRateRepo(t)

	if _, _, err := repo.IncrementWindow(context.Background(), "rate:login:9.9.9.9", time.Minute); err != nil {
		t.Fatalf("increment window: %v", err)
	}

	mr.FastForward(time.Minute + time.Second)

	count, _, err := repo.IncrementWindow(context.Background(), "rate:login:9.9.9.9", time.Minute)
	if err != nil {
		t.Fatalf("increment after expiry: %v", err)
	}
	if count != 1 {
		t.Fatalf("expired window must restart at 1, got %d", count)
	}
}

func TestWindowStateReportsWithoutCounting(t *testing.T) {
	repo, _ := newTestRateRepo(t)

	count, ttl, err := repo.WindowState(context.Background(), "rate:login:missing")
	if err != nil {
		t.Fatalf("window state: %v", err)
	}
	if count != 0 || ttl != 0 {
		t.Fatalf("missing key must read as empty, got count=%d ttl=%v", count, ttl)
	}

	if _, _, err := repo.IncrementWindow(context.Background(), "rate:login:present", time.Minute); err != nil {
		t.Fatalf("increment window: %v", err)
	}

	count, ttl, err = repo.WindowState(context.Background(), "rate:login:present")
	if err != nil {
		t.Fatalf("window state: %v", err)
	}
	if count != 1 {
		t.Fatalf("unexpected count: %d", count)
	}
	if ttl <= 0 {
		t.Fatalf("expected positive ttl, got %v", ttl)
	}

	count, _, err = repo.WindowState(context.Background(), "rate:login:present")
	if err != nil {
		t.Fatalf("window state: %v", err)
	}
	if count != 1 {
		t.Fatalf("state read must not consume attempts, got %d", count)
	}
}
