package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSettingsNotFound = errors.New("site settings not found")

// SiteSettingsRepo stores the singleton site-wide settings document.
// A single row with id=1 is enforced by the upsert.
type SiteSettingsRepo struct {
	pool *pgxpool.Pool
}

type SiteSettingsRecord struct {
	BusinessName string
	Tagline      string
	AboutText    string
	Email        string
	Phone        string
	Address      string
	InstagramURL string
	FacebookURL  string
	HeroImageURL string
	UpdatedAt    time.Time
}

func NewSiteSettingsRepo(pool *pgxpool.Pool) *SiteSettingsRepo {
	return &SiteSettingsRepo{pool: pool}
}

func (r *SiteSettingsRepo) Get(ctx context.Context) (SiteSettingsRecord, error) {
	if r.pool == nil {
		return SiteSettingsRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var s SiteSettingsRecord
	err := r.pool.QueryRow(ctx, `
SELECT business_name, tagline, about_text, email, phone, address,
       instagram_url, facebook_url, hero_image_url, updated_at
FROM site_settings
WHERE id = 1
`).Scan(&s.BusinessName, &s.Tagline, &s.AboutText, &s.Email, &s.Phone, &s.Address,
		&s.InstagramURL, &s.FacebookURL, &s.HeroImageURL, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SiteSettingsRecord{}, ErrSettingsNotFound
		}
		return SiteSettingsRecord{}, fmt.Errorf("get site settings: %w", err)
	}

	return s, nil
}

// Upsert writes the settings row, creating it when absent. The returned
// bool reports whether a row already existed.
func (r *SiteSettingsRepo) Upsert(ctx context.Context, s SiteSettingsRecord) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	var existed bool
	err := r.pool.QueryRow(ctx, `
INSERT INTO site_settings (id, business_name, tagline, about_text, email, phone, address,
                           instagram_url, facebook_url, hero_image_url, updated_at)
VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
ON CONFLICT (id) DO UPDATE SET
	business_name = EXCLUDED.business_name,
	tagline = EXCLUDED.tagline,
	about_text = EXCLUDED.about_text,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	address = EXCLUDED.address,
	instagram_url = EXCLUDED.instagram_url,
	facebook_url = EXCLUDED.facebook_url,
	hero_image_url = EXCLUDED.hero_image_url,
	updated_at = NOW()
RETURNING (xmax <> 0)
`, s.BusinessName, s.Tagline, s.AboutText, s.Email, s.Phone, s.Address,
		s.InstagramURL, s.FacebookURL, s.HeroImageURL).Scan(&existed)
	if err != nil {
		return false, fmt.Errorf("upsert site settings: %w", err)
	}

	return existed, nil
}
