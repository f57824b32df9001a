package sendnotification

import (
	"context"
	stderrors "errors"
	"time"

	"ese-registration-workers/internal/common/camunda"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/models"
	"ese-registration-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const TaskType = "send-notification"

type Handler struct {
	config        *Config
	registrations RegistrationFinder
	sms           SMSSender
	email         EmailSender
	logger        logger.Logger
	responder     *camunda.Responder
}

func NewHandler(config *Config, deps Dependencies) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:        config,
		registrations: deps.Registrations,
		sms:           deps.SMS,
		email:         deps.Email,
		logger:        log,
		responder:     camunda.NewResponder(TaskType, log, deps.Obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	defer h.responder.Track()()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	var input Input
	if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
		h.responder.Respond(ctx, client, job, start, nil, err)
		return
	}

	output, err := h.Execute(ctx, &input)
	h.responder.Respond(ctx, client, job, start, output, err)
}

// Execute delivers one notification. Delivery problems are reported through the
// output status; only a failed registration lookup is an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	n := models.Notification{
		ID:             uuid.New().String(),
		RegistrationID: input.RegistrationID,
		Type:           input.NotificationType,
		Channels:       []string{},
		Status:         models.NotificationDisabled,
		SentAt:         time.Now().UTC(),
	}

	reg, err := h.registrations.FindByID(ctx, input.RegistrationID)
	if stderrors.Is(err, repository.ErrNotFound) {
		h.logger.Warn("registration not found, notification skipped", map[string]interface{}{
			"registrationId": input.RegistrationID,
		})
		return toOutput(n), nil
	}
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("find_registration_by_id", err)
	}

	tmpl, ok := templates[input.NotificationType]
	if !ok {
		return nil, errors.NewValidationFailedError("notificationType: no template for " + string(input.NotificationType))
	}
	data := templateData(reg)
	subject := renderTemplate(tmpl.Subject, data)
	body := renderTemplate(tmpl.Body, data)

	failed := false

	if h.config.SMSEnabled && h.sms != nil {
		if _, err := h.sms.SendSMS(ctx, reg.WhatsappNumber, body); err != nil {
			failed = true
			h.logDeliveryFailure(ChannelSMS, reg.ID, err)
		} else {
			n.Channels = append(n.Channels, ChannelSMS)
		}
	}

	if h.config.EmailEnabled && h.email != nil && reg.Email != "" {
		if _, err := h.email.SendEmail(ctx, reg.Email, subject, body); err != nil {
			failed = true
			h.logDeliveryFailure(ChannelEmail, reg.ID, err)
		} else {
			n.Channels = append(n.Channels, ChannelEmail)
		}
	}

	switch {
	case failed:
		n.Status = models.NotificationFailed
	case len(n.Channels) > 0:
		n.Status = models.NotificationSent
	}
	n.SentAt = time.Now().UTC()

	h.logger.Info("notification processed", map[string]interface{}{
		"notificationId": n.ID,
		"registrationId": reg.ID,
		"type":           n.Type,
		"status":         n.Status,
		"channels":       n.Channels,
	})

	return toOutput(n), nil
}

func (h *Handler) logDeliveryFailure(channel, registrationID string, err error) {
	stdErr := errors.NewNotificationSendFailedError(channel, err)
	h.logger.Error("notification delivery failed", map[string]interface{}{
		"registrationId": registrationID,
		"errorCode":      stdErr.Code,
		"details":        stdErr.Details,
	})
}

func toOutput(n models.Notification) *Output {
	return &Output{
		NotificationID: n.ID,
		Status:         n.Status,
		Channels:       n.Channels,
		SentAt:         n.SentAt,
	}
}
