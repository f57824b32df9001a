package adminlogin

import (
	"context"
	"testing"

	"ese-registration-workers/internal/common/camunda/camundatest"
	"ese-registration-workers/internal/common/config"
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

	verifier := session.NewStaticVerifier([]config.CredentialConfig{
		{Username: "admin", Password: "s3cret", Role: "super"},
		{Username: "clerk", Password: "clerk-pw", Role: "user"},
	})
	manager := session.NewManager(verifier, session.NewRedisStore(rdb, "adminSession", 0), logger.NewTestLogger(t))

	return NewHandler(DefaultConfig(), manager, logger.NewTestLogger(t), nil), mr
}

func TestExecute_Success(t *testing.T) {
	h, mr := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Username: " admin ", Password: "s3cret"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.SessionToken)
	assert.Equal(t, "admin", out.Username)
	assert.Equal(t, models.RoleSuper, out.Role)
	assert.True(t, out.CanEdit)
	assert.True(t, out.CanDelete)
	assert.True(t, mr.Exists("adminSession:"+out.SessionToken))
}

func TestExecute_ViewOnlyRole(t *testing.T) {
	h, _ := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Username: "clerk", Password: "clerk-pw"})

	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, out.Role)
	assert.False(t, out.CanEdit)
	assert.False(t, out.CanDelete)
}

func TestExecute_InvalidCredentialsAreGeneric(t *testing.T) {
	h, _ := newTestHandler(t)

	_, wrongPassword := h.Execute(context.Background(), &Input{Username: "admin", Password: "nope"})
	_, unknownUser := h.Execute(context.Background(), &Input{Username: "ghost", Password: "s3cret"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, errors.ErrCodeInvalidCredentials, errors.CodeOf(wrongPassword))
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestExecute_StoreDown(t *testing.T) {
	h, mr := newTestHandler(t)
	mr.Close()

	_, err := h.Execute(context.Background(), &Input{Username: "admin", Password: "s3cret"})

	assert.Equal(t, errors.ErrCodeSessionStoreFailed, errors.CodeOf(err))
}

func TestHandle_OutputOmitsPassword(t *testing.T) {
	h, _ := newTestHandler(t)
	client := camundatest.NewJobClient()

	h.Handle(client, camundatest.NewJob(61, TaskType, map[string]interface{}{
		"username": "admin",
		"password": "s3cret",
	}))

	vars := client.Completed(t)
	assert.NotContains(t, vars, "password")
	assert.Equal(t, "super", vars["role"])
}

func TestHandle_InvalidCredentialsThrown(t *testing.T) {
	h, _ := newTestHandler(t)
	client := camundatest.NewJobClient()

	h.Handle(client, camundatest.NewJob(62, TaskType, map[string]interface{}{
		"username": "admin",
		"password": "wrong",
	}))

	assert.Equal(t, "INVALID_CREDENTIALS", client.Thrown(t).ErrorCode)
}
