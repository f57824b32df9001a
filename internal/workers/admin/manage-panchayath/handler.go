package managepanchayath

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
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

const TaskType = "manage-panchayath"

type Handler struct {
	config      *Config
	auth        Authorizer
	panchayaths PanchayathStore
	views       []Invalidator
	logger      logger.Logger
	responder   *camunda.Responder
}

func NewHandler(config *Config, deps Dependencies) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		auth:        deps.Auth,
		panchayaths: deps.Panchayaths,
		views:       deps.Views,
		logger:      log,
		responder:   camunda.NewResponder(TaskType, log, deps.Obs),
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
	permission, ok := requiredPermission(input.Action)
	if !ok {
		return nil, errors.NewValidationFailedError(fmt.Sprintf("action: unknown action %q", input.Action))
	}

	operation := input.Action + "_panchayath"
	sess, err := h.auth.Authorize(ctx, input.SessionToken, permission)
	if err != nil {
		metrics.AdminMutations.WithLabelValues(operation, "denied").Inc()
		return nil, err
	}

	var out *Output
	switch input.Action {
	case ActionCreate:
		out, err = h.create(ctx, input)
	case ActionUpdate:
		out, err = h.update(ctx, input)
	case ActionDelete:
		out, err = h.delete(ctx, input)
	}
	if err != nil {
		metrics.AdminMutations.WithLabelValues(operation, "failed").Inc()
		return nil, err
	}

	for _, v := range h.views {
		v.Invalidate()
	}
	metrics.AdminMutations.WithLabelValues(operation, "success").Inc()
	h.logger.Info("panchayath changed", map[string]interface{}{
		"action":       input.Action,
		"panchayathId": out.PanchayathID,
		"username":     sess.Username,
	})
	return out, nil
}

// requiredPermission maps an action to the role permission it needs.
func requiredPermission(action string) (models.Permission, bool) {
	switch action {
	case ActionCreate, ActionUpdate:
		return models.PermissionEdit, true
	case ActionDelete:
		return models.PermissionDelete, true
	}
	return "", false
}

func (h *Handler) create(ctx context.Context, input *Input) (*Output, error) {
	name := strings.TrimSpace(input.Name)
	district := strings.TrimSpace(input.District)
	if name == "" || district == "" {
		return nil, errors.NewValidationFailedError("name and district are required to create a panchayath")
	}

	p := &models.Panchayath{
		Name:          name,
		MalayalamName: strings.TrimSpace(input.MalayalamName),
		District:      district,
		IsActive:      input.IsActive == nil || *input.IsActive,
	}
	if err := h.panchayaths.Insert(ctx, p); err != nil {
		return nil, mutationError(err, "insert_panchayath", name, "")
	}

	return &Output{Action: ActionCreate, PanchayathID: p.ID, Panchayath: p}, nil
}

func (h *Handler) update(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.PanchayathID) == "" {
		return nil, errors.NewValidationFailedError("panchayathId is required to update a panchayath")
	}

	patch := models.PanchayathPatch{
		Name:          optional(input.Name),
		MalayalamName: optional(input.MalayalamName),
		District:      optional(input.District),
		IsActive:      input.IsActive,
	}
	if patch.Empty() {
		return nil, errors.NewValidationFailedError("nothing to update")
	}

	p, err := h.panchayaths.Update(ctx, input.PanchayathID, patch)
	if err != nil {
		return nil, mutationError(err, "update_panchayath", input.Name, input.PanchayathID)
	}

	return &Output{Action: ActionUpdate, PanchayathID: p.ID, Panchayath: p}, nil
}

func (h *Handler) delete(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.PanchayathID) == "" {
		return nil, errors.NewValidationFailedError("panchayathId is required to delete a panchayath")
	}

	if err := h.panchayaths.Delete(ctx, input.PanchayathID); err != nil {
		return nil, mutationError(err, "delete_panchayath", "", input.PanchayathID)
	}

	return &Output{Action: ActionDelete, PanchayathID: input.PanchayathID, Deleted: true}, nil
}

func mutationError(err error, operation, name, id string) error {
	switch {
	case stderrors.Is(err, repository.ErrDuplicate):
		return errors.NewDuplicatePanchayathError(name)
	case stderrors.Is(err, repository.ErrNotFound):
		return errors.NewPanchayathNotFoundError(id)
	case strings.HasPrefix(operation, "insert"):
		return errors.NewDatabaseInsertFailedError(operation, err)
	}
	return errors.NewDatabaseUpdateFailedError(operation, err)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
