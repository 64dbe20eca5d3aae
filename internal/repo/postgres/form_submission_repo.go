package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSubmissionNotFound = errors.New("form submission not found")

type FormSubmissionRepo struct {
	pool *pgxpool.Pool
}

type FormSubmissionRecord struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	EventType  string
	EventDate  *time.Time
	GuestCount int
	Message    string
	Status     string
	CreatedAt  time.Time
}

func NewFormSubmissionRepo(pool *pgxpool.Pool) *FormSubmissionRepo {
	return &FormSubmissionRepo{pool: pool}
}

func (r *FormSubmissionRepo) Create(ctx context.Context, sub FormSubmissionRecord) (FormSubmissionRecord, error) {
	if r.pool == nil {
		return FormSubmissionRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(sub.Email) == "" {
		return FormSubmissionRecord{}, fmt.Errorf("submission email is required")
	}
	if strings.TrimSpace(sub.Status) == "" {
		sub.Status = "new"
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO form_submissions (name, email, phone, event_type, event_date, guest_count, message, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
RETURNING id, created_at
`, sub.Name, sub.Email, sub.Phone, sub.EventType, sub.EventDate, sub.GuestCount, sub.Message, sub.Status).
		Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return FormSubmissionRecord{}, fmt.Errorf("create form submission: %w", err)
	}

	return sub, nil
}

func (r *FormSubmissionRepo) List(ctx context.Context) ([]FormSubmissionRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, name, email, phone, event_type, event_date, guest_count, message, status, created_at
FROM form_submissions
ORDER BY created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list form submissions: %w", err)
	}
	defer rows.Close()

	var subs []FormSubmissionRecord
	for rows.Next() {
		var sub FormSubmissionRecord
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Phone, &sub.EventType,
			&sub.EventDate, &sub.GuestCount, &sub.Message, &sub.Status, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan form submission row: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate form submission rows: %w", err)
	}

	return subs, nil
}

func (r *FormSubmissionRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 || strings.TrimSpace(status) == "" {
		return fmt.Errorf("invalid submission status payload")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE form_submissions
SET status = $2
WHERE id = $1
`, id, status)
	if err != nil {
		return fmt.Errorf("update form submission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}
