package adminauth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many login attempts")
	ErrNoToken            = errors.New("no token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotConfigured      = errors.New("auth signing secret is not configured")
)

// Identity is the authenticated administrator asserted by a verified token.
type Identity struct {
	ID    int64
	Email string
	Name  string
	Role  string
}

// Session is a freshly minted credential with its expiry.
type Session struct {
	Token     string
	User      Identity
	ExpiresAt time.Time
}

// AdminRecord is an entry in the administrator registry. Password is the
// stored secret; lookup implementations decide how it is kept.
type AdminRecord struct {
	ID       int64
	Email    string
	Name     string
	Role     string
	Password string
}

// IdentityStore resolves administrator accounts by email. Backed by the
// admin_users table in production and a config-seeded registry in dev.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (AdminRecord, error)
}

// ErrIdentityNotFound is returned by IdentityStore implementations when
// no account matches; login collapses it into ErrInvalidCredentials so
// responses cannot be used for account enumeration.
var ErrIdentityNotFound = errors.New("identity not found")
