package camunda

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/metrics"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// DecodeVariables validates the job variables against schema and unmarshals them into out.
func DecodeVariables(job entities.Job, schema validation.JSONSchema, out interface{}) error {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return errors.NewInputParsingFailedError(err)
	}

	result := validation.ValidateInput(variables, schema)
	if !result.Valid {
		return errors.NewValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}

	if err := json.Unmarshal([]byte(job.GetVariables()), out); err != nil {
		return errors.NewInputParsingFailedError(err)
	}
	return nil
}

const responseTimeout = 5 * time.Second

// Responder reports a job outcome back to the broker and records metrics.
type Responder struct {
	TaskType string
	Logger   logger.Logger
	Errors   *errors.ErrorHandler
	Obs      *observability.Observability
}

func NewResponder(taskType string, log logger.Logger, obs *observability.Observability) *Responder {
	return &Responder{
		TaskType: taskType,
		Logger:   log,
		Errors:   errors.NewErrorHandler(log),
		Obs:      obs,
	}
}

// Track marks a job as in flight; call the returned func when it is done.
func (r *Responder) Track() func() {
	metrics.WorkerJobsActive.WithLabelValues(r.TaskType).Inc()
	return metrics.WorkerJobsActive.WithLabelValues(r.TaskType).Dec
}

// Respond completes the job with output, or throws jobErr as a BPMN error.
// The command is sent under its own deadline, so a job whose work used up ctx
// is still reported.
func (r *Responder) Respond(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, output interface{}, jobErr error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), responseTimeout)
	defer cancel()

	if jobErr != nil {
		r.fail(ctx, client, job, start, jobErr)
		return
	}

	cmd, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromObject(output)
	if err != nil {
		r.fail(ctx, client, job, start, errors.NewInputParsingFailedError(err))
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		r.Logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		metrics.WorkerJobsFailed.WithLabelValues(r.TaskType, "COMPLETE_FAILED").Inc()
		r.Obs.RecordJob(ctx, r.TaskType, "failed", time.Since(start))
		return
	}

	elapsed := time.Since(start)
	metrics.WorkerJobsCompleted.WithLabelValues(r.TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(r.TaskType).Observe(elapsed.Seconds())
	r.Obs.RecordJob(ctx, r.TaskType, "completed", elapsed)

	r.Logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.GetKey(),
		"durationMs": elapsed.Milliseconds(),
	})
}

func (r *Responder) fail(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, jobErr error) {
	bpmnErr := r.Errors.HandleJobError(ctx, client, job, jobErr)
	metrics.WorkerJobsFailed.WithLabelValues(r.TaskType, bpmnErr.Code).Inc()
	r.Obs.RecordJob(ctx, r.TaskType, "failed", time.Since(start))
}
