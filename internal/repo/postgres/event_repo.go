package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepo struct {
	pool *pgxpool.Pool
}

type EventRecord struct {
	ID         int64
	Title      string
	ClientName string
	EventDate  time.Time
	GuestCount int
	Location   string
	Menu       string
	Status     string
	CreatedAt  time.Time
}

func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

func (r *EventRepo) Create(ctx context.Context, event EventRecord) (EventRecord, error) {
	if r.pool == nil {
		return EventRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(event.Title) == "" {
		return EventRecord{}, fmt.Errorf("event title is required")
	}
	if strings.TrimSpace(event.Status) == "" {
		event.Status = "inquiry"
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO events (title, client_name, event_date, guest_count, location, menu, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING id, created_at
`, event.Title, event.ClientName, event.EventDate, event.GuestCount, event.Location, event.Menu, event.Status).
		Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return EventRecord{}, fmt.Errorf("create event: %w", err)
	}

	return event, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id int64) (EventRecord, error) {
	if r.pool == nil {
		return EventRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return EventRecord{}, fmt.Errorf("invalid event id")
	}

	var event EventRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, title, client_name, event_date, guest_count, location, menu, status, created_at
FROM events
WHERE id = $1
`, id).Scan(&event.ID, &event.Title, &event.ClientName, &event.EventDate,
		&event.GuestCount, &event.Location, &event.Menu, &event.Status, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return EventRecord{}, ErrEventNotFound
		}
		return EventRecord{}, fmt.Errorf("get event by id: %w", err)
	}

	return event, nil
}

func (r *EventRepo) List(ctx context.Context) ([]EventRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, title, client_name, event_date, guest_count, location, menu, status, created_at
FROM events
ORDER BY event_date DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []EventRecord
	for rows.Next() {
		var event EventRecord
		if err := rows.Scan(&event.ID, &event.Title, &event.ClientName, &event.EventDate,
			&event.GuestCount, &event.Location, &event.Menu, &event.Status, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate event rows: %w", err)
	}

	return events, nil
}

func (r *EventRepo) Update(ctx context.Context, event EventRecord) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if event.ID <= 0 {
		return fmt.Errorf("invalid event id")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE events
SET title = $2, client_name = $3, event_date = $4, guest_count = $5,
    location = $6, menu = $7, status = $8, updated_at = NOW()
WHERE id = $1
`, event.ID, event.Title, event.ClientName, event.EventDate, event.GuestCount,
		event.Location, event.Menu, event.Status)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (r *EventRepo) Delete(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid event id")
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}

	return nil
}
