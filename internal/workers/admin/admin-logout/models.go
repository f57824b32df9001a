package adminlogout

import (
	"context"
	"time"
)

type Input struct {
	SessionToken string `json:"sessionToken"`
}

type Output struct {
	LoggedOut bool      `json:"loggedOut"`
	LogoutAt  time.Time `json:"logoutAt"`
}

type SessionCloser interface {
	Logout(ctx context.Context, token string) error
}
