package adminauth

import (
	"context"
	"strings"

	"github.com/AustiNight/chefmargaretalvis-sub001/internal/domain/enums"
)

// StaticRegistry is an in-memory IdentityStore seeded from config.
// It stands in for the admin_users table when postgres is unavailable.
type StaticRegistry struct {
	byEmail map[string]AdminRecord
}

func NewStaticRegistry(records []AdminRecord) *StaticRegistry {
	byEmail := make(map[string]AdminRecord, len(records))
	nextID := int64(1)
	for _, record := range records {
		email := strings.ToLower(strings.TrimSpace(record.Email))
		if email == "" {
			continue
		}
		if record.ID <= 0 {
			record.ID = nextID
		}
		nextID = record.ID + 1
		if strings.TrimSpace(record.Role) == "" {
			record.Role = string(enums.RoleAdmin)
		}
		byEmail[email] = record
	}

	return &StaticRegistry{byEmail: byEmail}
}

func (r *StaticRegistry) FindByEmail(_ context.Context, email string) (AdminRecord, error) {
	record, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return AdminRecord{}, ErrIdentityNotFound
	}
	return record, nil
}
