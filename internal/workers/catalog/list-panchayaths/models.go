package listpanchayaths

import (
	"context"

	"ese-registration-workers/internal/models"
)

type Input struct {
	// ActiveOnly defaults to true when absent.
	ActiveOnly *bool  `json:"activeOnly,omitempty"`
	District   string `json:"district,omitempty"`
}

type Output struct {
	Panchayaths []models.Panchayath `json:"panchayaths"`
	Count       int                 `json:"count"`
}

type PanchayathSource interface {
	Rows(ctx context.Context) ([]models.Panchayath, error)
}
