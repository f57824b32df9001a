package listcategories

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

const TaskType = "list-categories"

type Handler struct {
	config     *Config
	categories CategorySource
	logger     logger.Logger
	responder  *camunda.Responder
}

func NewHandler(config *Config, categories CategorySource, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		categories: categories,
		logger:     log,
		responder:  camunda.NewResponder(TaskType, log, obs),
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
	rows, err := h.categories.Rows(ctx)
	if err != nil {
		return nil, errors.NewDatabaseQueryFailedError("list_active_categories", err)
	}

	division := strings.TrimSpace(input.Division)
	all := division == "" || strings.EqualFold(division, "all")

	out := &Output{Categories: []models.Category{}, Divisions: []DivisionGroup{}}
	index := map[string]int{}
	for _, c := range rows {
		if !all && c.Division != division {
			continue
		}
		out.Categories = append(out.Categories, c)

		i, ok := index[c.Division]
		if !ok {
			i = len(out.Divisions)
			index[c.Division] = i
			out.Divisions = append(out.Divisions, DivisionGroup{Division: c.Division})
		}
		out.Divisions[i].Categories = append(out.Divisions[i].Categories, c)
	}
	out.Count = len(out.Categories)

	return out, nil
}
