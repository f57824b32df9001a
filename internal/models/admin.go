package models

type Role string

const (
	RoleSuper Role = "super"
	RoleLocal Role = "local"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuper, RoleLocal, RoleUser:
		return true
	}
	return false
}

// CanEdit is true for super and local.
func (r Role) CanEdit() bool {
	return r == RoleSuper || r == RoleLocal
}

// CanDelete is true for super only.
func (r Role) CanDelete() bool {
	return r == RoleSuper
}

type Permission string

const (
	PermissionView   Permission = "view"
	PermissionEdit   Permission = "edit"
	PermissionDelete Permission = "delete"
)

// Allows reports whether the role grants p.
func (r Role) Allows(p Permission) bool {
	switch p {
	case PermissionView:
		return r.Valid()
	case PermissionEdit:
		return r.CanEdit()
	case PermissionDelete:
		return r.CanDelete()
	}
	return false
}

// AdminUser is an operator account, provisioned out of band.
type AdminUser struct {
	ID           string `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         Role   `json:"role" db:"role"`
	IsActive     bool   `json:"isActive" db:"is_active"`
}
