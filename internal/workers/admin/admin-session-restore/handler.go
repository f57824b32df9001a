package adminsessionrestore

import (
	"context"
	"time"

	"ese-registration-workers/internal/common/camunda"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "admin-session-restore"

type Handler struct {
	config    *Config
	sessions  SessionLoader
	logger    logger.Logger
	responder *camunda.Responder
}

func NewHandler(config *Config, sessions SessionLoader, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		sessions:  sessions,
		logger:    log,
		responder: camunda.NewResponder(TaskType, log, obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	defer h.responder.Track()()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Debug("processing job", map[string]interface{}{"jobKey": job.GetKey()})

	var input Input
	if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
		h.responder.Respond(ctx, client, job, start, nil, err)
		return
	}

	output, err := h.Execute(ctx, &input)
	h.responder.Respond(ctx, client, job, start, output, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	sess, ok, err := h.sessions.Restore(ctx, input.SessionToken)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Output{LoggedIn: false}, nil
	}

	loggedInAt := sess.LoggedInAt
	return &Output{
		LoggedIn:   true,
		Username:   sess.Username,
		Role:       sess.Role,
		CanEdit:    sess.Role.CanEdit(),
		CanDelete:  sess.Role.CanDelete(),
		LoggedInAt: &loggedInAt,
	}, nil
}
