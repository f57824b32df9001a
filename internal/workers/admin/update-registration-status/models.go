package updateregistrationstatus

import (
	"context"
	"time"

	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/models"
)

type Input struct {
	SessionToken   string                    `json:"sessionToken"`
	RegistrationID string                    `json:"registrationId"`
	Status         models.RegistrationStatus `json:"status"`
}

type Output struct {
	RegistrationID string                    `json:"registrationId"`
	Status         models.RegistrationStatus `json:"status"`
	PreviousStatus models.RegistrationStatus `json:"previousStatus"`
	StatusChanged  bool                      `json:"statusChanged"`
	UpdatedBy      string                    `json:"updatedBy"`
	UpdatedAt      time.Time                 `json:"updatedAt"`
}

type Authorizer interface {
	Authorize(ctx context.Context, token string, p models.Permission) (*models.Session, error)
}

type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) (models.RegistrationStatus, error)
}

type Invalidator interface {
	Invalidate()
}

type Dependencies struct {
	Auth          Authorizer
	Registrations StatusUpdater
	View          Invalidator
	Logger        logger.Logger
	Obs           *observability.Observability
}
