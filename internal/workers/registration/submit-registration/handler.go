package submitregistration

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"ese-registration-workers/internal/common/camunda"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/identifier"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/metrics"
	"ese-registration-workers/internal/common/validation"
	"ese-registration-workers/internal/models"
	"ese-registration-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "submit-registration"

type Handler struct {
	config        *Config
	registrations RegistrationStore
	view          Invalidator
	logger        logger.Logger
	responder     *camunda.Responder
}

func NewHandler(config *Config, deps Dependencies) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:        config,
		registrations: deps.Registrations,
		view:          deps.View,
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
		metrics.RegistrationsSubmitted.WithLabelValues("invalid").Inc()
		h.responder.Respond(ctx, client, job, start, nil, err)
		return
	}

	output, err := h.Execute(ctx, &input)
	h.responder.Respond(ctx, client, job, start, output, err)
}

// Execute checks the form, rejects already registered phone numbers and stores a
// new Pending registration.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := checkForm(input); err != nil {
		metrics.RegistrationsSubmitted.WithLabelValues("invalid").Inc()
		return nil, err
	}

	whatsapp := strings.TrimSpace(input.WhatsappNumber)
	mobile := strings.TrimSpace(input.MobileNumber)
	if mobile == "" {
		mobile = whatsapp
	}

	if _, err := h.registrations.FindByPhone(ctx, whatsapp); err == nil {
		metrics.RegistrationsSubmitted.WithLabelValues("duplicate").Inc()
		return nil, errors.NewDuplicateRegistrationError(whatsapp)
	} else if !stderrors.Is(err, repository.ErrNotFound) {
		metrics.RegistrationsSubmitted.WithLabelValues("error").Inc()
		return nil, errors.NewDatabaseQueryFailedError("find_registration_by_phone", err)
	}

	fullName := strings.TrimSpace(input.FullName)
	reg := &models.Registration{
		UID:            identifier.Generate(whatsapp, fullName),
		Category:       strings.TrimSpace(input.Category),
		FullName:       fullName,
		Address:        validation.FormatAddress(input.Address),
		WhatsappNumber: whatsapp,
		MobileNumber:   mobile,
		Email:          strings.TrimSpace(input.Email),
		Panchayath:     strings.TrimSpace(input.Panchayath),
		Ward:           strings.TrimSpace(input.Ward),
		ProDetails:     strings.TrimSpace(input.ProDetails),
		Status:         models.StatusPending,
	}

	if err := h.registrations.Insert(ctx, reg); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			metrics.RegistrationsSubmitted.WithLabelValues("duplicate").Inc()
			return nil, errors.NewDuplicateRegistrationError(whatsapp)
		}
		metrics.RegistrationsSubmitted.WithLabelValues("error").Inc()
		return nil, errors.NewDatabaseInsertFailedError("insert_registration", err)
	}

	h.view.Invalidate()
	metrics.RegistrationsSubmitted.WithLabelValues("created").Inc()
	h.logger.Info("registration submitted", map[string]interface{}{
		"registrationId": reg.ID,
		"uid":            reg.UID,
		"category":       reg.Category,
	})

	return &Output{
		RegistrationID: reg.ID,
		UID:            reg.UID,
		Status:         reg.Status,
		CreatedAt:      reg.CreatedAt,
	}, nil
}

// checkForm runs every local check; nothing here touches the store.
func checkForm(input *Input) error {
	required := []struct {
		name  string
		value string
	}{
		{"category", input.Category},
		{"fullName", input.FullName},
		{"address", input.Address},
		{"whatsappNumber", input.WhatsappNumber},
		{"panchayath", input.Panchayath},
		{"ward", input.Ward},
	}

	var missing []string
	for _, f := range required {
		if validation.IsBlank(f.value) {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return errors.NewValidationFailedError(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	if !validation.IsValidMobileNumber(input.WhatsappNumber) {
		return errors.NewValidationFailedError("whatsappNumber: must be a 10 digit mobile number starting with 6-9")
	}
	if !validation.IsBlank(input.MobileNumber) && !validation.IsValidMobileNumber(input.MobileNumber) {
		return errors.NewValidationFailedError("mobileNumber: must be a 10 digit mobile number starting with 6-9")
	}
	if email := strings.TrimSpace(input.Email); email != "" && !validation.ValidateEmail(email) {
		return errors.NewValidationFailedError("email: invalid address")
	}
	return nil
}
