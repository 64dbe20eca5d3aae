package enums

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleEditor:
		return true
	}
	return false
}
