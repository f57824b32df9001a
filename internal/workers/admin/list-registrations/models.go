package listregistrations

import (
	"context"

	"ese-registration-workers/internal/models"
)

type Input struct {
	SessionToken string `json:"sessionToken"`
	Search       string `json:"search,omitempty"`
	Category     string `json:"category,omitempty"`
	Panchayath   string `json:"panchayath,omitempty"`
	Status       string `json:"status,omitempty"`
}

type Output struct {
	Registrations []models.Registration `json:"registrations"`
	Total         int                   `json:"total"`
	Count         int                   `json:"count"`
	CanEdit       bool                  `json:"canEdit"`
	CanDelete     bool                  `json:"canDelete"`
}

type Authorizer interface {
	Authorize(ctx context.Context, token string, p models.Permission) (*models.Session, error)
}

type RegistrationSource interface {
	Rows(ctx context.Context) ([]models.Registration, error)
}
