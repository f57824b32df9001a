package errors

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleJobError throws err as a BPMN error so the process can surface it to the user.
// Jobs are never failed with remaining retries.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) *BPMNError {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	h.logError(job, stdErr, bpmnErr)
	h.throwBPMNError(ctx, client, job, bpmnErr)

	return bpmnErr
}

// Normalize turns any error into a StandardError, keeping one that is already wrapped.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) throwBPMNError(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) {
	cmd := client.NewThrowErrorCommand().
		JobKey(job.GetKey()).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)

	varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables())
	var withVars interface {
		Send(context.Context) (*pb.ThrowErrorResponse, error)
	}
	if err == nil {
		withVars, err = cmd.VariablesFromString(string(varsJSON))
	}
	if err != nil {
		h.logger.Error("failed to attach error variables, throwing without them", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		if _, sendErr := cmd.Send(ctx); sendErr != nil {
			h.logSendFailure(job, sendErr)
		}
		return
	}

	if _, err := withVars.Send(ctx); err != nil {
		h.logSendFailure(job, err)
	}
}

func (h *ErrorHandler) logSendFailure(job entities.Job, err error) {
	h.logger.Error("failed to throw BPMN error", map[string]interface{}{
		"jobKey": job.GetKey(),
		"error":  err.Error(),
	})
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"jobType":            job.GetType(),
		"errorCode":          string(stdErr.Code),
		"bpmnErrorCode":      bpmnErr.Code,
		"message":            bpmnErr.Message,
		"details":            stdErr.Details,
		"retryable":          stdErr.Retryable,
		"errorCategory":      GetErrorCategory(stdErr.Code),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})
}
