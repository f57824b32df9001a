package sendnotification

import (
	"context"
	"time"

	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/models"
)

const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

type Input struct {
	RegistrationID   string                  `json:"registrationId"`
	NotificationType models.NotificationType `json:"notificationType"`
}

type Output struct {
	NotificationID string                    `json:"notificationId"`
	Status         models.NotificationStatus `json:"status"`
	Channels       []string                  `json:"channels"`
	SentAt         time.Time                 `json:"sentAt"`
}

type RegistrationFinder interface {
	FindByID(ctx context.Context, id string) (*models.Registration, error)
}

type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) (string, error)
}

// Dependencies wires the handler. SMS and Email may be nil when the channel is disabled.
type Dependencies struct {
	Registrations RegistrationFinder
	SMS           SMSSender
	Email         EmailSender
	Logger        logger.Logger
	Obs           *observability.Observability
}
