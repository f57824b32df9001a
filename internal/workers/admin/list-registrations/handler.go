package listregistrations

import (
	"context"
	"time"

	"ese-registration-workers/internal/common/camunda"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "list-registrations"

type Handler struct {
	config        *Config
	auth          Authorizer
	registrations RegistrationSource
	logger        logger.Logger
	responder     *camunda.Responder
}

func NewHandler(config *Config, auth Authorizer, registrations RegistrationSource, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:        config,
		auth:          auth,
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
	sess, err := h.auth.Authorize(ctx, input.SessionToken, models.PermissionView)
	if err != nil {
		return nil, err
	}

	rows, err := h.registrations.Rows(ctx)
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("list_registrations", err)
	}

	filtered := NewFilter(input).Apply(rows)

	h.logger.Debug("registrations listed", map[string]interface{}{
		"username": sess.Username,
		"total":    len(rows),
		"matched":  len(filtered),
	})

	return &Output{
		Registrations: filtered,
		Total:         len(rows),
		Count:         len(filtered),
		CanEdit:       sess.Role.CanEdit(),
		CanDelete:     sess.Role.CanDelete(),
	}, nil
}
