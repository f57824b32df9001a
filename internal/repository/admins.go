package repository

import (
	"context"
	"database/sql"

	"ese-registration-workers/internal/models"
)

type AdminRepository struct {
	db *sql.DB
}

// FindActiveByUsername returns ErrNotFound for unknown and deactivated accounts alike.
func (r *AdminRepository) FindActiveByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, role, is_active
		FROM admin_users
		WHERE username = $1 AND is_active`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.IsActive)
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}
