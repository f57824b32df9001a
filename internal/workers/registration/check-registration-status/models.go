package checkregistrationstatus

import (
	"context"
	"time"

	"ese-registration-workers/internal/models"
)

type Input struct {
	PhoneNumber string `json:"phoneNumber"`
}

// Output leaves every field but Found empty when nothing matched.
type Output struct {
	Found      bool                      `json:"found"`
	UID        string                    `json:"uid,omitempty"`
	FullName   string                    `json:"fullName,omitempty"`
	Category   string                    `json:"category,omitempty"`
	Status     models.RegistrationStatus `json:"status,omitempty"`
	Panchayath string                    `json:"panchayath,omitempty"`
	CreatedAt  *time.Time                `json:"createdAt,omitempty"`
}

type RegistrationFinder interface {
	FindByPhone(ctx context.Context, phone string) (*models.Registration, error)
}
