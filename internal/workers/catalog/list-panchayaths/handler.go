package listpanchayaths

import (
	"context"
	"strings"
	"time"

	"ese-registration-workers/internal/common/camunda"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "list-panchayaths"

type Handler struct {
	config    *Config
	all       PanchayathSource
	active    PanchayathSource
	logger    logger.Logger
	responder *camunda.Responder
}

// NewHandler takes one source for every panchayath and one for the active ones only.
func NewHandler(config *Config, all, active PanchayathSource, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		all:       all,
		active:    active,
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
	source := h.active
	if input.ActiveOnly != nil && !*input.ActiveOnly {
		source = h.all
	}

	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("list_panchayaths", err)
	}

	district := strings.TrimSpace(input.District)
	out := &Output{Panchayaths: make([]models.Panchayath, 0, len(rows))}
	for _, p := range rows {
		if district != "" && !strings.EqualFold(p.District, district) {
			continue
		}
		out.Panchayaths = append(out.Panchayaths, p)
	}
	out.Count = len(out.Panchayaths)

	return out, nil
}
