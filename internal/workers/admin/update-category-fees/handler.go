package updatecategoryfees

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

const TaskType = "update-category-fees"

type Handler struct {
	config     *Config
	auth       Authorizer
	categories CategoryStore
	view       Invalidator
	logger     logger.Logger
	responder  *camunda.Responder
}

func NewHandler(config *Config, deps Dependencies) *Handler {
	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		auth:       deps.Auth,
		categories: deps.Categories,
		view:       deps.View,
		logger:     log,
		responder:  camunda.NewResponder(TaskType, log, deps.Obs),
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

	patch := models.FeePatch{ActualFee: input.ActualFee, OfferFee: input.OfferFee}
	if err := checkPatch(patch); err != nil {
		metrics.AdminMutations.WithLabelValues(TaskType, "invalid").Inc()
		return nil, err
	}

	current, err := h.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		metrics.AdminMutations.WithLabelValues(TaskType, "failed").Inc()
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewCategoryNotFoundError(input.CategoryID)
		}
		return nil, errors.NewDatabaseQueryFailedError("find_category_by_id", err)
	}

	actual, offer := current.ActualFee, current.OfferFee
	if patch.ActualFee != nil {
		actual = *patch.ActualFee
	}
	if patch.OfferFee != nil {
		offer = *patch.OfferFee
	}
	if offer.GreaterThan(actual) {
		h.logger.Warn("offer fee exceeds actual fee", map[string]interface{}{
			"categoryId": current.ID,
			"actualFee":  actual.String(),
			"offerFee":   offer.String(),
		})
	}

	updated, err := h.categories.UpdateFees(ctx, input.CategoryID, patch)
	if err != nil {
		metrics.AdminMutations.WithLabelValues(TaskType, "failed").Inc()
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewCategoryNotFoundError(input.CategoryID)
		}
		return nil, errors.NewDatabaseUpdateFailedError("update_category_fees", err)
	}

	h.view.Invalidate()
	metrics.AdminMutations.WithLabelValues(TaskType, "success").Inc()
	h.logger.Info("category fees updated", map[string]interface{}{
		"categoryId": updated.ID,
		"actualFee":  updated.ActualFee.String(),
		"offerFee":   updated.OfferFee.String(),
		"username":   sess.Username,
	})

	return &Output{
		CategoryID:         updated.ID,
		Name:               updated.Name,
		ActualFee:          updated.ActualFee,
		OfferFee:           updated.OfferFee,
		OfferExceedsActual: updated.OfferFee.GreaterThan(updated.ActualFee),
		UpdatedBy:          sess.Username,
		UpdatedAt:          updated.UpdatedAt,
	}, nil
}

func checkPatch(p models.FeePatch) error {
	if p.Empty() {
		return errors.NewValidationFailedError("at least one of actualFee or offerFee is required")
	}
	if p.ActualFee != nil && p.ActualFee.IsNegative() {
		return errors.NewValidationFailedError("actualFee: must not be negative")
	}
	if p.OfferFee != nil && p.OfferFee.IsNegative() {
		return errors.NewValidationFailedError("offerFee: must not be negative")
	}
	return nil
}
