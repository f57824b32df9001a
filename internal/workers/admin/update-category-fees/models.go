package updatecategoryfees

import (
	"context"
	"time"

	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/models"

	"github.com/shopspring/decimal"
)

type Input struct {
	SessionToken string           `json:"sessionToken"`
	CategoryID   string           `json:"categoryId"`
	ActualFee    *decimal.Decimal `json:"actualFee,omitempty"`
	OfferFee     *decimal.Decimal `json:"offerFee,omitempty"`
}

type Output struct {
	CategoryID         string          `json:"categoryId"`
	Name               string          `json:"name"`
	ActualFee          decimal.Decimal `json:"actualFee"`
	OfferFee           decimal.Decimal `json:"offerFee"`
	OfferExceedsActual bool            `json:"offerExceedsActual"`
	UpdatedBy          string          `json:"updatedBy"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

type Authorizer interface {
	Authorize(ctx context.Context, token string, p models.Permission) (*models.Session, error)
}

type CategoryStore interface {
	FindByID(ctx context.Context, id string) (*models.Category, error)
	UpdateFees(ctx context.Context, id string, patch models.FeePatch) (*models.Category, error)
}

type Invalidator interface {
	Invalidate()
}

type Dependencies struct {
	Auth       Authorizer
	Categories CategoryStore
	View       Invalidator
	Logger     logger.Logger
	Obs        *observability.Observability
}
