package adminlogin

import (
	"context"
	"strings"
	"time"

	"ese-registration-workers/internal/common/camunda"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "admin-login"

type Handler struct {
	config    *Config
	auth      Authenticator
	logger    logger.Logger
	responder *camunda.Responder
}

func NewHandler(config *Config, auth Authenticator, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		auth:      auth,
		logger:    log,
		responder: camunda.NewResponder(TaskType, log, obs),
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

// Execute never echoes the password back into the process.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	sess, err := h.auth.Login(ctx, strings.TrimSpace(input.Username), input.Password)
	if err != nil {
		return nil, err
	}

	return &Output{
		SessionToken: sess.ID,
		Username:     sess.Username,
		Role:         sess.Role,
		CanEdit:      sess.Role.CanEdit(),
		CanDelete:    sess.Role.CanDelete(),
		LoggedInAt:   sess.LoggedInAt,
	}, nil
}
