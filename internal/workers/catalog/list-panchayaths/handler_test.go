package listpanchayaths

import (
	"context"
	"fmt"
	"testing"

	"ese-registration-workers/internal/common/camunda/camundatest"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	rows []models.Panchayath
	err  error
}

func (s staticSource) Rows(context.Context) ([]models.Panchayath, error) {
	return s.rows, s.err
}

var (
	kottakkal = models.Panchayath{ID: "p1", Name: "Kottakkal", District: "Malappuram", IsActive: true}
	ponmala   = models.Panchayath{ID: "p2", Name: "Ponmala", District: "Malappuram", IsActive: false}
	vengara   = models.Panchayath{ID: "p3", Name: "Vengara", District: "Kozhikode", IsActive: true}
)

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(DefaultConfig(),
		staticSource{rows: []models.Panchayath{kottakkal, ponmala, vengara}},
		staticSource{rows: []models.Panchayath{kottakkal, vengara}},
		logger.NewTestLogger(t), nil)
}

func TestExecute_ActiveOnlyByDefault(t *testing.T) {
	out, err := newTestHandler(t).Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, []models.Panchayath{kottakkal, vengara}, out.Panchayaths)
	assert.Equal(t, 2, out.Count)
}

func TestExecute_IncludeInactive(t *testing.T) {
	activeOnly := false

	out, err := newTestHandler(t).Execute(context.Background(), &Input{ActiveOnly: &activeOnly})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Count)
}

func TestExecute_DistrictFilter(t *testing.T) {
	activeOnly := false

	out, err := newTestHandler(t).Execute(context.Background(), &Input{ActiveOnly: &activeOnly, District: "malappuram"})

	require.NoError(t, err)
	assert.Equal(t, []models.Panchayath{kottakkal, ponmala}, out.Panchayaths)
}

func TestExecute_SourceFailure(t *testing.T) {
	h := NewHandler(DefaultConfig(), staticSource{}, staticSource{err: fmt.Errorf("not loaded")}, logger.NewTestLogger(t), nil)

	_, err := h.Execute(context.Background(), &Input{})

	assert.Equal(t, errors.ErrCodeDatabaseQueryFailed, errors.CodeOf(err))
}

func TestHandle_RejectsNonBooleanActiveOnly(t *testing.T) {
	client := camundatest.NewJobClient()

	newTestHandler(t).Handle(client, camundatest.NewJob(51, TaskType, map[string]interface{}{"activeOnly": "yes"}))

	assert.Equal(t, "VALIDATION_FAILED", client.Thrown(t).ErrorCode)
}
