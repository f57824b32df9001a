package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ese-registration-workers/internal/models"

	"github.com/google/uuid"
)

const registrationColumns = `id, uid, category, full_name, address, whatsapp_number, mobile_number,
	COALESCE(email, ''), panchayath, ward, COALESCE(pro_details, ''), status, created_at, updated_at`

type RegistrationRepository struct {
	db *sql.DB
}

func scanRegistration(s rowScanner) (*models.Registration, error) {
	var r models.Registration
	err := s.Scan(
		&r.ID, &r.UID, &r.Category, &r.FullName, &r.Address,
		&r.WhatsappNumber, &r.MobileNumber, &r.Email,
		&r.Panchayath, &r.Ward, &r.ProDetails, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FindByPhone returns the registration whose whatsapp or mobile number equals phone.
func (r *RegistrationRepository) FindByPhone(ctx context.Context, phone string) (*models.Registration, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+registrationColumns+`
		FROM registrations
		WHERE whatsapp_number = $1 OR mobile_number = $1
		LIMIT 1`, phone)

	reg, err := scanRegistration(row)
	if err != nil {
		return nil, classify(err)
	}
	return reg, nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+registrationColumns+`
		FROM registrations
		WHERE id = $1`, id)

	reg, err := scanRegistration(row)
	if err != nil {
		return nil, classify(err)
	}
	return reg, nil
}

// List returns every registration, newest first.
func (r *RegistrationRepository) List(ctx context.Context) ([]models.Registration, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+registrationColumns+`
		FROM registrations
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *reg)
	}
	return out, rows.Err()
}

// Insert writes reg and claims each of its phone numbers in one transaction.
// A phone or uid already taken yields ErrDuplicate. ID and timestamps are
// filled in when unset.
func (r *RegistrationRepository) Insert(ctx context.Context, reg *models.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = now
	}
	reg.UpdatedAt = reg.CreatedAt

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO registrations
		(id, uid, category, full_name, address, whatsapp_number, mobile_number,
		 email, panchayath, ward, pro_details, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		reg.ID, reg.UID, reg.Category, reg.FullName, reg.Address,
		reg.WhatsappNumber, reg.MobileNumber, emptyAsNull(reg.Email),
		reg.Panchayath, reg.Ward, emptyAsNull(reg.ProDetails), string(reg.Status),
		reg.CreatedAt, reg.UpdatedAt,
	)
	if err != nil {
		return classify(err)
	}

	for _, phone := range reg.Phones() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO registration_phones (phone, registration_id) VALUES ($1, $2)`,
			phone, reg.ID,
		); err != nil {
			return classify(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classify(err)
	}
	return nil
}

// UpdateStatus sets status and returns the status it replaced.
func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id string, status models.RegistrationStatus) (models.RegistrationStatus, error) {
	if !validID(id) {
		return "", ErrNotFound
	}

	var previous models.RegistrationStatus
	err := r.db.QueryRowContext(ctx, `UPDATE registrations r
		SET status = $2, updated_at = $3
		FROM (SELECT id, status FROM registrations WHERE id = $1 FOR UPDATE) prev
		WHERE r.id = prev.id
		RETURNING prev.status`,
		id, string(status), time.Now().UTC(),
	).Scan(&previous)
	if err != nil {
		return "", classify(err)
	}
	return previous, nil
}
