package adminlogout

import (
	"context"
	"testing"

	"ese-registration-workers/internal/common/camunda/camundatest"
	"ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
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

func TestExecute_RemovesSession(t *testing.T) {
	h, mr := newTestHandler(t)
	require.NoError(t, mr.Set("adminSession:tok-1", `{"id":"tok-1"}`))

	out, err := h.Execute(context.Background(), &Input{SessionToken: "tok-1"})

	require.NoError(t, err)
	assert.True(t, out.LoggedOut)
	assert.False(t, mr.Exists("adminSession:tok-1"))
}

func TestExecute_Idempotent(t *testing.T) {
	h, _ := newTestHandler(t)

	for i := 0; i < 2; i++ {
		out, err := h.Execute(context.Background(), &Input{SessionToken: "tok-gone"})
		require.NoError(t, err)
		assert.True(t, out.LoggedOut)
	}

	out, err := h.Execute(context.Background(), &Input{SessionToken: ""})
	require.NoError(t, err)
	assert.True(t, out.LoggedOut)
}

func TestExecute_StoreDown(t *testing.T) {
	h, mr := newTestHandler(t)
	mr.Close()

	_, err := h.Execute(context.Background(), &Input{SessionToken: "tok-1"})

	assert.Equal(t, errors.ErrCodeSessionStoreFailed, errors.CodeOf(err))
}

func TestHandle_Completes(t *testing.T) {
	h, _ := newTestHandler(t)
	client := camundatest.NewJobClient()

	h.Handle(client, camundatest.NewJob(71, TaskType, map[string]interface{}{"sessionToken": "tok-1"}))

	assert.Equal(t, true, client.Completed(t)["loggedOut"])
}
