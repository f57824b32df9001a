package repository

import (
	"context"
	"database/sql"
	"time"

	"ese-registration-workers/internal/models"

	"github.com/google/uuid"
)

const panchayathColumns = `id, name, COALESCE(malayalam_name, ''), district, is_active, created_at, updated_at`

type PanchayathRepository struct {
	db *sql.DB
}

func scanPanchayath(s rowScanner) (*models.Panchayath, error) {
	var p models.Panchayath
	if err := s.Scan(&p.ID, &p.Name, &p.MalayalamName, &p.District, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns panchayaths ordered by name, optionally only the active ones.
func (r *PanchayathRepository) List(ctx context.Context, activeOnly bool) ([]models.Panchayath, error) {
	query := `SELECT ` + panchayathColumns + ` FROM panchayaths`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Panchayath
	for rows.Next() {
		p, err := scanPanchayath(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PanchayathRepository) Insert(ctx context.Context, p *models.Panchayath) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, `INSERT INTO panchayaths
		(id, name, malayalam_name, district, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, emptyAsNull(p.MalayalamName), p.District, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return classify(err)
}

// Update applies the non-nil fields of patch and returns the updated row.
func (r *PanchayathRepository) Update(ctx context.Context, id string, patch models.PanchayathPatch) (*models.Panchayath, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	p, err := scanPanchayath(r.db.QueryRowContext(ctx, `UPDATE panchayaths
		SET name = COALESCE($2, name),
		    malayalam_name = COALESCE($3, malayalam_name),
		    district = COALESCE($4, district),
		    is_active = COALESCE($5, is_active),
		    updated_at = $6
		WHERE id = $1
		RETURNING `+panchayathColumns,
		id, nullString(patch.Name), nullString(patch.MalayalamName), nullString(patch.District),
		nullBool(patch.IsActive), time.Now().UTC(),
	))
	if err != nil {
		return nil, classify(err)
	}
	return p, nil
}

func (r *PanchayathRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM panchayaths WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
