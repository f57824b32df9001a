package models

import "time"

// Session is the persisted role marker of a logged-in admin.
type Session struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Role       Role      `json:"role"`
	IsActive   bool      `json:"isActive"`
	LoggedInAt time.Time `json:"loggedInAt"`
}

// Valid reports whether a decoded session is structurally usable.
func (s *Session) Valid() bool {
	return s != nil && s.ID != "" && s.Username != "" && s.Role.Valid() && s.IsActive
}
