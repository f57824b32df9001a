package session

import (
	"context"
	"crypto/subtle"
	"errors"

	"ese-registration-workers/internal/common/config"
	"ese-registration-workers/internal/models"
	"ese-registration-workers/internal/repository"
)

// CredentialVerifier checks a username and password and returns the granted role.
// ok is false for any mismatch; err is reserved for lookups that could not run.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (role models.Role, ok bool, err error)
}

type staticCredential struct {
	password []byte
	role     models.Role
}

// StaticVerifier matches against the credential table from configuration.
// Entries without a password never match.
type StaticVerifier struct {
	credentials map[string]staticCredential
}

func NewStaticVerifier(table []config.CredentialConfig) *StaticVerifier {
	v := &StaticVerifier{credentials: make(map[string]staticCredential, len(table))}
	for _, c := range table {
		if c.Password == "" {
			continue
		}
		v.credentials[c.Username] = staticCredential{password: []byte(c.Password), role: models.Role(c.Role)}
	}
	return v
}

func (v *StaticVerifier) Verify(_ context.Context, username, password string) (models.Role, bool, error) {
	cred, found := v.credentials[username]
	if !found || subtle.ConstantTimeCompare([]byte(password), cred.password) != 1 {
		return "", false, nil
	}
	return cred.role, true, nil
}

// AccountLookup finds an admin account that has not been deactivated.
type AccountLookup interface {
	FindActiveByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}

// ActiveAccountVerifier requires an active admin_users row before delegating.
type ActiveAccountVerifier struct {
	accounts AccountLookup
	next     CredentialVerifier
}

func NewActiveAccountVerifier(accounts AccountLookup, next CredentialVerifier) *ActiveAccountVerifier {
	return &ActiveAccountVerifier{accounts: accounts, next: next}
}

func (v *ActiveAccountVerifier) Verify(ctx context.Context, username, password string) (models.Role, bool, error) {
	if _, err := v.accounts.FindActiveByUsername(ctx, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return v.next.Verify(ctx, username, password)
}
