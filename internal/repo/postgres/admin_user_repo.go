package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAdminUserNotFound = errors.New("admin user not found")

type AdminUserRepo struct {
	pool *pgxpool.Pool
}

type AdminUserRecord struct {
	ID       int64
	Email    string
	Name     string
	Role     string
	Password string
}

func NewAdminUserRepo(pool *pgxpool.Pool) *AdminUserRepo {
	return &AdminUserRepo{pool: pool}
}

func (r *AdminUserRepo) FindByEmail(ctx context.Context, email string) (AdminUserRecord, error) {
	if r.pool == nil {
		return AdminUserRecord{}, fmt.Errorf("postgres pool is nil")
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return AdminUserRecord{}, fmt.Errorf("email is required")
	}

	var user AdminUserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, email, name, role, password
FROM admin_users
WHERE lower(email) = $1
`, email).Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AdminUserRecord{}, ErrAdminUserNotFound
		}
		return AdminUserRecord{}, fmt.Errorf("find admin user by email: %w", err)
	}

	return user, nil
}

func (r *AdminUserRepo) Create(ctx context.Context, user AdminUserRecord) (AdminUserRecord, error) {
	if r.pool == nil {
		return AdminUserRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(user.Email) == "" {
		return AdminUserRecord{}, fmt.Errorf("admin user email is required")
	}
	if strings.TrimSpace(user.Role) == "" {
		user.Role = "admin"
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO admin_users (email, name, role, password, created_at, updated_at)
VALUES ($1, $2, $3, $4, NOW(), NOW())
RETURNING id
`, strings.TrimSpace(user.Email), user.Name, user.Role, user.Password).Scan(&user.ID)
	if err != nil {
		return AdminUserRecord{}, fmt.Errorf("create admin user: %w", err)
	}

	return user, nil
}
