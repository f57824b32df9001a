package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a self-employment program an applicant can register under.
// An OfferFee of zero means the program is free.
type Category struct {
	ID            string          `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	NameML        string          `json:"nameMl,omitempty" db:"name_ml"`
	ActualFee     decimal.Decimal `json:"actualFee" db:"actual_fee"`
	OfferFee      decimal.Decimal `json:"offerFee" db:"offer_fee"`
	Division      string          `json:"division" db:"division"`
	Description   string          `json:"description,omitempty" db:"description"`
	DescriptionML string          `json:"descriptionMl,omitempty" db:"description_ml"`
	ImageURL      string          `json:"imageUrl,omitempty" db:"image_url"`
	IsActive      bool            `json:"isActive" db:"is_active"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

func (c *Category) IsFree() bool {
	return c.OfferFee.IsZero()
}

// FeePatch carries the fee fields to change; nil leaves a fee untouched.
type FeePatch struct {
	ActualFee *decimal.Decimal
	OfferFee  *decimal.Decimal
}

func (p FeePatch) Empty() bool {
	return p.ActualFee == nil && p.OfferFee == nil
}
