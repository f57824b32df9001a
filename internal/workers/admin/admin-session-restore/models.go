package adminsessionrestore

import (
	"context"
	"time"

	"ese-registration-workers/internal/models"
)

type Input struct {
	SessionToken string `json:"sessionToken"`
}

// Output is the logged-out default unless LoggedIn is true.
type Output struct {
	LoggedIn   bool        `json:"loggedIn"`
	Username   string      `json:"username,omitempty"`
	Role       models.Role `json:"role,omitempty"`
	CanEdit    bool        `json:"canEdit"`
	CanDelete  bool        `json:"canDelete"`
	LoggedInAt *time.Time  `json:"loggedInAt,omitempty"`
}

type SessionLoader interface {
	Restore(ctx context.Context, token string) (*models.Session, bool, error)
}
