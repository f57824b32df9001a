package updateregistrationstatus

import (
	"context"
	stderrors "errors"
	"time"

	"ese-registration-workers/internal/common/camunda"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/metrics"
	"ese-registration-workers/internal/models"
	"ese-registration-workers/internal/repository"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "update-registration-status"

type Handler struct {
	config        *Config
	auth          Authorizer
	registrations StatusUpdater
	view          Invalidator
	logger        logger.Logger
	responder     *camunda.Responder
}

func NewHandler(config *Config, deps Dependencies) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:        config,
		auth:          deps.Auth,
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
		h.responder.Respond(ctx, client, job, start, nil, err)
		return
	}

	output, err := h.Execute(ctx, &input)
	h.responder.Respond(ctx, client, job, start, output, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	sess, err := h.auth.Authorize(ctx, input.SessionToken, models.PermissionEdit)
	if err != nil {
		metrics.AdminMutations.WithLabelValues(TaskType, "denied").Inc()
		return nil, err
	}

	if !input.Status.Valid() {
		metrics.AdminMutations.WithLabelValues(TaskType, "invalid").Inc()
		return nil, errors.NewValidationFailedError("status: must be one of Pending, Approved, Rejected")
	}

	previous, err := h.registrations.UpdateStatus(ctx, input.RegistrationID, input.Status)
	if err != nil {
		metrics.AdminMutations.WithLabelValues(TaskType, "failed").Inc()
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewRegistrationNotFoundError(input.RegistrationID)
		}
		return nil, errors.NewDatabaseUpdateFailedError("update_registration_status", err)
	}

	h.view.Invalidate()
	metrics.AdminMutations.WithLabelValues(TaskType, "success").Inc()
	h.logger.Info("registration status updated", map[string]interface{}{
		"registrationId": input.RegistrationID,
		"from":           previous,
		"to":             input.Status,
		"username":       sess.Username,
	})

	return &Output{
		RegistrationID: input.RegistrationID,
		Status:         input.Status,
		PreviousStatus: previous,
		StatusChanged:  previous != input.Status,
		UpdatedBy:      sess.Username,
		UpdatedAt:      time.Now().UTC(),
	}, nil
}
