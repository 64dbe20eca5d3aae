package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type notificationPruner interface {
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Job prunes read notifications past their retention so the back office
// feed does not grow without bound.
type Job struct {
	notifications notificationPruner
	retention     time.Duration
	now           func() time.Time
	logger        *zap.Logger
}

func New(notifications notificationPruner, retention time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 90 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		notifications: notifications,
		retention:     retention,
		now:           time.Now,
		logger:        logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.notifications == nil {
		return nil
	}

	cutoff := j.now().Add(-j.retention)
	pruned, err := j.notifications.DeleteReadOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune read notifications: %w", err)
	}
	if pruned > 0 {
		j.logger.Info("pruned read notifications", zap.Int64("pruned", pruned))
	}

	return nil
}

// RunEvery blocks, running the job on the interval until ctx is done.
func (j *Job) RunEvery(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("notification cleanup failed", zap.Error(err))
			}
		}
	}
}
