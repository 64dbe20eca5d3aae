package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

type NotificationRecord struct {
	ID        int64
	Kind      string
	Message   string
	Read      bool
	CreatedAt time.Time
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Create(ctx context.Context, n NotificationRecord) (NotificationRecord, error) {
	if r.pool == nil {
		return NotificationRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(n.Message) == "" {
		return NotificationRecord{}, fmt.Errorf("notification message is required")
	}
	if strings.TrimSpace(n.Kind) == "" {
		n.Kind = "system"
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO notifications (kind, message, read, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`, n.Kind, n.Message, n.Read, n.CreatedAt).Scan(&n.ID)
	if err != nil {
		return NotificationRecord{}, fmt.Errorf("create notification: %w", err)
	}

	return n, nil
}

func (r *NotificationRepo) List(ctx context.Context, limit int) ([]NotificationRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, kind, message, read, created_at
FROM notifications
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var items []NotificationRecord
	for rows.Next() {
		var n NotificationRecord
		if err := rows.Scan(&n.ID, &n.Kind, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}

	return items, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid notification id")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE notifications
SET read = TRUE
WHERE id = $1
`, id); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	return nil
}

func (r *NotificationRepo) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
DELETE FROM notifications
WHERE read AND created_at < $1
`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}

	return tag.RowsAffected(), nil
}
