package camunda

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"ese-registration-workers/internal/common/camunda/camundatest"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupInput struct {
	PhoneNumber string `json:"phoneNumber"`
}

func lookupSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:       "object",
		Required:   []string{"phoneNumber"},
		Properties: map[string]validation.Property{"phoneNumber": {Type: "string", MinLength: validation.IntPtr(1)}},
	}
}

func TestDecodeVariables(t *testing.T) {
	job := camundatest.NewJob(1, "check-registration-status", map[string]interface{}{"phoneNumber": "9876543210"})

	var in lookupInput
	require.NoError(t, DecodeVariables(job, lookupSchema(), &in))
	assert.Equal(t, "9876543210", in.PhoneNumber)
}

func TestDecodeVariables_SchemaViolation(t *testing.T) {
	job := camundatest.NewJob(1, "check-registration-status", map[string]interface{}{"phoneNumber": 98765})

	var in lookupInput
	err := DecodeVariables(job, lookupSchema(), &in)

	assert.Equal(t, errors.ErrCodeValidationFailed, errors.CodeOf(err))
}

func TestRespond_Completes(t *testing.T) {
	client := camundatest.NewJobClient()
	job := camundatest.NewJob(7, "check-registration-status", nil)
	r := NewResponder("check-registration-status", logger.NewTestLogger(t), nil)

	r.Respond(context.Background(), client, job, time.Now(), map[string]interface{}{"found": false}, nil)

	assert.Equal(t, map[string]interface{}{"found": false}, client.Completed(t))
}

func TestRespond_ThrowsBPMNError(t *testing.T) {
	client := camundatest.NewJobClient()
	job := camundatest.NewJob(8, "submit-registration", nil)
	r := NewResponder("submit-registration", logger.NewTestLogger(t), nil)

	r.Respond(context.Background(), client, job, time.Now(), nil, errors.NewDuplicateRegistrationError("9876543210"))

	thrown := client.Thrown(t)
	assert.Equal(t, int64(8), thrown.JobKey)
	assert.Equal(t, "DUPLICATE_REGISTRATION", thrown.ErrorCode)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(thrown.Variables), &vars))
	assert.Equal(t, "DUPLICATE_REGISTRATION", vars["errorCode"])
	assert.Equal(t, false, vars["retryable"])
}

func TestRespond_UnknownErrorIsInternalAndRetryable(t *testing.T) {
	client := camundatest.NewJobClient()
	job := camundatest.NewJob(9, "list-categories", nil)
	r := NewResponder("list-categories", logger.NewTestLogger(t), nil)

	r.Respond(context.Background(), client, job, time.Now(), nil, fmt.Errorf("boom"))

	thrown := client.Thrown(t)
	assert.Equal(t, "INTERNAL_ERROR", thrown.ErrorCode)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(thrown.Variables), &vars))
	assert.Equal(t, true, vars["retryable"])
}

func TestRespond_CompletesAfterJobDeadline(t *testing.T) {
	client := camundatest.NewJobClient()
	job := camundatest.NewJob(10, "list-registrations", nil)
	r := NewResponder("list-registrations", logger.NewTestLogger(t), nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	<-ctx.Done()

	r.Respond(ctx, client, job, time.Now(), map[string]interface{}{"count": 0}, nil)

	assert.Equal(t, map[string]interface{}{"count": float64(0)}, client.Completed(t))
}

func TestRespond_ThrowsAfterJobDeadline(t *testing.T) {
	client := camundatest.NewJobClient()
	job := camundatest.NewJob(11, "list-registrations", nil)
	r := NewResponder("list-registrations", logger.NewTestLogger(t), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r.Respond(ctx, client, job, time.Now(), nil, errors.NewDatabaseQueryFailedError("list_registrations", context.Canceled))

	assert.Equal(t, "REPOSITORY_UNAVAILABLE", client.Thrown(t).ErrorCode)
}
