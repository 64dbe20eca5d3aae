package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakePruner struct {
	cutoffs []time.Time
	pruned  int64
	err     error
}

func (f *fakePruner) DeleteReadOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.pruned, f.err
}

func TestRunPrunesWithRetentionCutoff(t *testing.T) {
	now := time.Date(2026, time.April, 1, 12, 0, 0, 0, time.UTC)
	pruner := &fakePruner{pruned: 4}

	job := New(pruner, 90*24*time.Hour, zap.NewNop())
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(pruner.cutoffs) != 1 {
		t.Fatalf("expected one prune call, got %d", len(pruner.cutoffs))
	}
	want := now.Add(-90 * 24 * time.Hour)
	if !pruner.cutoffs[0].Equal(want) {
		t.Fatalf("unexpected cutoff: got %v want %v", pruner.cutoffs[0], want)
	}
}

func TestRunPropagatesStoreError(t *testing.T) {
	boom := errors.New("connection reset")
	job := New(&fakePruner{err: boom}, time.Hour, zap.NewNop())

	if err := job.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestRunWithoutStoreIsANoOp(t *testing.T) {
	job := New(nil, time.Hour, zap.NewNop())

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run without store: %v", err)
	}
}

func TestNewDefaultsRetention(t *testing.T) {
	job := New(&fakePruner{}, 0, nil)

	if job.retention != 90*24*time.Hour {
		t.Fatalf("unexpected default retention: %v", job.retention)
	}
	if job.logger == nil {
		t.Fatal("nil logger must be replaced")
	}
}
