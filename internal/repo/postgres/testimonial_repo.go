package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTestimonialNotFound = errors.New("testimonial not found")

type TestimonialRepo struct {
	pool *pgxpool.Pool
}

type TestimonialRecord struct {
	ID         int64
	ClientName string
	Quote      string
	Rating     int
	Approved   bool
	CreatedAt  time.Time
}

func NewTestimonialRepo(pool *pgxpool.Pool) *TestimonialRepo {
	return &TestimonialRepo{pool: pool}
}

func (r *TestimonialRepo) Create(ctx context.Context, t TestimonialRecord) (TestimonialRecord, error) {
	if r.pool == nil {
		return TestimonialRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(t.Quote) == "" {
		return TestimonialRecord{}, fmt.Errorf("testimonial quote is required")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO testimonials (client_name, quote, rating, approved, created_at)
VALUES ($1, $2, $3, $4, NOW())
RETURNING id, created_at
`, t.ClientName, t.Quote, t.Rating, t.Approved).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return TestimonialRecord{}, fmt.Errorf("create testimonial: %w", err)
	}

	return t, nil
}

func (r *TestimonialRepo) List(ctx context.Context, approvedOnly bool) ([]TestimonialRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	query := `
SELECT id, client_name, quote, rating, approved, created_at
FROM testimonials
`
	if approvedOnly {
		query += "WHERE approved\n"
	}
	query += "ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list testimonials: %w", err)
	}
	defer rows.Close()

	var items []TestimonialRecord
	for rows.Next() {
		var t TestimonialRecord
		if err := rows.Scan(&t.ID, &t.ClientName, &t.Quote, &t.Rating, &t.Approved, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan testimonial row: %w", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate testimonial rows: %w", err)
	}

	return items, nil
}

func (r *TestimonialRepo) SetApproved(ctx context.Context, id int64, approved bool) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid testimonial id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE testimonials
SET approved = $2
WHERE id = $1
`, id, approved)
	if err != nil {
		return fmt.Errorf("set testimonial approved: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTestimonialNotFound
	}

	return nil
}

func (r *TestimonialRepo) Delete(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid testimonial id")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete testimonial: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTestimonialNotFound
	}

	return nil
}
