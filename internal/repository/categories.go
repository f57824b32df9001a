package repository

import (
	"context"
	"database/sql"
	"time"

	"ese-registration-workers/internal/models"

	"github.com/shopspring/decimal"
)

const categoryColumns = `id, name, COALESCE(name_ml, ''), actual_fee, offer_fee, division,
	COALESCE(description, ''), COALESCE(description_ml, ''), COALESCE(image_url, ''),
	is_active, created_at, updated_at`

type CategoryRepository struct {
	db *sql.DB
}

func scanCategory(s rowScanner) (*models.Category, error) {
	var c models.Category
	err := s.Scan(
		&c.ID, &c.Name, &c.NameML, &c.ActualFee, &c.OfferFee, &c.Division,
		&c.Description, &c.DescriptionML, &c.ImageURL,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListActive returns active categories ordered by name.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+`
		FROM categories
		WHERE is_active
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	c, err := scanCategory(r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

// UpdateFees applies the non-nil fees of patch and returns the updated row.
func (r *CategoryRepository) UpdateFees(ctx context.Context, id string, patch models.FeePatch) (*models.Category, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}

	c, err := scanCategory(r.db.QueryRowContext(ctx, `UPDATE categories
		SET actual_fee = COALESCE($2, actual_fee),
		    offer_fee = COALESCE($3, offer_fee),
		    updated_at = $4
		WHERE id = $1
		RETURNING `+categoryColumns,
		id, nullDecimal(patch.ActualFee), nullDecimal(patch.OfferFee), time.Now().UTC(),
	))
	if err != nil {
		return nil, classify(err)
	}
	return c, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
