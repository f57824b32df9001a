package submitregistration

import (
	"context"
	"time"

	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/models"
)

type Input struct {
	Category       string `json:"category"`
	FullName       string `json:"fullName"`
	Address        string `json:"address"`
	WhatsappNumber string `json:"whatsappNumber"`
	MobileNumber   string `json:"mobileNumber,omitempty"`
	Email          string `json:"email,omitempty"`
	Panchayath     string `json:"panchayath"`
	Ward           string `json:"ward"`
	ProDetails     string `json:"proDetails,omitempty"`
	// Status is accepted but ignored; new registrations are always Pending.
	Status string `json:"status,omitempty"`
}

type Output struct {
	RegistrationID string                    `json:"registrationId"`
	UID            string                    `json:"uid"`
	Status         models.RegistrationStatus `json:"status"`
	CreatedAt      time.Time                 `json:"createdAt"`
}

type RegistrationStore interface {
	FindByPhone(ctx context.Context, phone string) (*models.Registration, error)
	Insert(ctx context.Context, reg *models.Registration) error
}

// Invalidator is implemented by the registrations listing view.
type Invalidator interface {
	Invalidate()
}

type Dependencies struct {
	Registrations RegistrationStore
	View          Invalidator
	Logger        logger.Logger
	Obs           *observability.Observability
}
