package adminsessionrestore

import (
	"context"
	"testing"

	"ese-registration-workers/internal/common/camunda/camundatest"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/models"
	"ese-registration-workers/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*Handler, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	manager := session.NewManager(session.NewStaticVerifier(nil), session.NewRedisStore(rdb, "adminSession", 0), logger.NewTestLogger(t))
	return NewHandler(DefaultConfig(), manager, logger.NewTestLogger(t), nil), mr
}

func TestExecute_ValidSession(t *testing.T) {
	h, mr := newTestHandler(t)
	require.NoError(t, mr.Set("adminSession:tok-1",
		`{"id":"tok-1","username":"ward-office","role":"local","isActive":true,"loggedInAt":"2026-03-01T10:00:00Z"}`))

	out, err := h.Execute(context.Background(), &Input{SessionToken: "tok-1"})

	require.NoError(t, err)
	assert.True(t, out.LoggedIn)
	assert.Equal(t, "ward-office", out.Username)
	assert.Equal(t, models.RoleLocal, out.Role)
	assert.True(t, out.CanEdit)
	assert.False(t, out.CanDelete)
	require.NotNil(t, out.LoggedInAt)
}

func TestExecute_LoggedOutDefaults(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"missing", ""},
		{"corrupt json", "{not json"},
		{"unknown role", `{"id":"tok-1","username":"x","role":"root","isActive":true}`},
		{"inactive", `{"id":"tok-1","username":"x","role":"super","isActive":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mr := newTestHandler(t)
			if tt.stored != "" {
				require.NoError(t, mr.Set("adminSession:tok-1", tt.stored))
			}

			out, err := h.Execute(context.Background(), &Input{SessionToken: "tok-1"})

			require.NoError(t, err)
			assert.Equal(t, &Output{LoggedIn: false}, out)
			assert.False(t, mr.Exists("adminSession:tok-1"))
		})
	}
}

func TestExecute_StoreDown(t *testing.T) {
	h, mr := newTestHandler(t)
	mr.Close()

	_, err := h.Execute(context.Background(), &Input{SessionToken: "tok-1"})

	assert.Equal(t, errors.ErrCodeSessionStoreFailed, errors.CodeOf(err))
}

func TestHandle_LoggedOutCompletes(t *testing.T) {
	h, _ := newTestHandler(t)
	client := camundatest.NewJobClient()

	h.Handle(client, camundatest.NewJob(81, TaskType, map[string]interface{}{"sessionToken": "tok-none"}))

	vars := client.Completed(t)
	assert.Equal(t, false, vars["loggedIn"])
	assert.Equal(t, false, vars["canEdit"])
}
