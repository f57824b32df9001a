package adminlogin

import (
	"context"
	"time"

	"ese-registration-workers/internal/models"
)

type Input struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Output struct {
	SessionToken string      `json:"sessionToken"`
	Username     string      `json:"username"`
	Role         models.Role `json:"role"`
	CanEdit      bool        `json:"canEdit"`
	CanDelete    bool        `json:"canDelete"`
	LoggedInAt   time.Time   `json:"loggedInAt"`
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
}
