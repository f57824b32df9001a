// Package session is the admin login gate: credential verification, the persisted
// role marker and permission checks.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	stderrors "ese-registration-workers/internal/common/errors"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/metrics"
	"ese-registration-workers/internal/models"

	"github.com/google/uuid"
)

type Manager struct {
	verifier CredentialVerifier
	store    Store
	logger   logger.Logger

	now      func() time.Time
	newToken func() string
}

func NewManager(verifier CredentialVerifier, store Store, log logger.Logger) *Manager {
	return &Manager{
		verifier: verifier,
		store:    store,
		logger:   log.WithFields(map[string]interface{}{"component": "session"}),
		now:      func() time.Time { return time.Now().UTC() },
		newToken: uuid.NewString,
	}
}

// Login verifies the credentials and persists a new session.
func (m *Manager) Login(ctx context.Context, username, password string) (*models.Session, error) {
	role, ok, err := m.verifier.Verify(ctx, username, password)
	if err != nil {
		metrics.AdminLogins.WithLabelValues("error").Inc()
		return nil, stderrors.NewDatabaseQueryFailedError("verify_credentials", err)
	}
	if !ok {
		metrics.AdminLogins.WithLabelValues("invalid").Inc()
		m.logger.Warn("login rejected", map[string]interface{}{"username": username})
		return nil, stderrors.NewInvalidCredentialsError()
	}

	sess := &models.Session{
		ID:         m.newToken(),
		Username:   username,
		Role:       role,
		IsActive:   true,
		LoggedInAt: m.now(),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, stderrors.NewSessionStoreFailedError(err)
	}
	if err := m.store.Set(ctx, sess.ID, data); err != nil {
		metrics.AdminLogins.WithLabelValues("error").Inc()
		return nil, stderrors.NewSessionStoreFailedError(err)
	}

	metrics.AdminLogins.WithLabelValues("success").Inc()
	m.logger.Info("admin logged in", map[string]interface{}{
		"username": username,
		"role":     string(role),
	})
	return sess, nil
}

// Restore loads the session for token. A missing, unreadable or invalid entry
// reports ok=false; unreadable and invalid entries are removed.
func (m *Manager) Restore(ctx context.Context, token string) (*models.Session, bool, error) {
	if token == "" {
		return nil, false, nil
	}

	data, err := m.store.Get(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, stderrors.NewSessionStoreFailedError(err)
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil || !sess.Valid() || sess.ID != token {
		m.discard(ctx, token)
		return nil, false, nil
	}
	return &sess, true, nil
}

func (m *Manager) discard(ctx context.Context, token string) {
	m.logger.Warn("discarding unreadable session", nil)
	if err := m.store.Delete(ctx, token); err != nil {
		m.logger.Error("failed to delete unreadable session", map[string]interface{}{"error": err.Error()})
	}
}

// Logout removes the session. Unknown tokens are not an error.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		return stderrors.NewSessionStoreFailedError(err)
	}
	return nil
}

// Authorize resolves token and checks that its role grants p.
func (m *Manager) Authorize(ctx context.Context, token string, p models.Permission) (*models.Session, error) {
	sess, ok, err := m.Restore(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, stderrors.NewSessionNotFoundError()
	}
	if !sess.Role.Allows(p) {
		m.logger.Warn("permission denied", map[string]interface{}{
			"username":   sess.Username,
			"role":       string(sess.Role),
			"permission": string(p),
		})
		return nil, stderrors.NewPermissionDeniedError(string(sess.Role), string(p))
	}
	return sess, nil
}
