package checkregistrationstatus

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"ese-registration-workers/internal/common/camunda"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/identifier"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/common/validation"
	"ese-registration-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "check-registration-status"

type Handler struct {
	config        *Config
	registrations RegistrationFinder
	logger        logger.Logger
	responder     *camunda.Responder
}

func NewHandler(config *Config, registrations RegistrationFinder, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:        config,
		registrations: registrations,
		logger:        log,
		responder:     camunda.NewResponder(TaskType, log, obs),
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

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if validation.IsBlank(input.PhoneNumber) {
		return nil, errors.NewValidationFailedError("phoneNumber: required")
	}
	phone := strings.TrimSpace(input.PhoneNumber)

	reg, err := h.registrations.FindByPhone(ctx, phone)
	if stderrors.Is(err, repository.ErrNotFound) {
		return &Output{Found: false}, nil
	}
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("find_registration_by_phone", err)
	}

	createdAt := reg.CreatedAt
	// Shown as the applicant typed the number, so a lookup by mobile number
	// can differ from the uid stored at submission.
	return &Output{
		Found:      true,
		UID:        identifier.Generate(phone, reg.FullName),
		FullName:   reg.FullName,
		Category:   reg.Category,
		Status:     reg.Status,
		Panchayath: reg.Panchayath,
		CreatedAt:  &createdAt,
	}, nil
}
