package listcategories

import (
	"context"

	"ese-registration-workers/internal/models"
)

type Input struct {
	// Division narrows the result to one division; empty or "all" returns every division.
	Division string `json:"division,omitempty"`
}

type DivisionGroup struct {
	Division   string            `json:"division"`
	Categories []models.Category `json:"categories"`
}

type Output struct {
	Categories []models.Category `json:"categories"`
	Divisions  []DivisionGroup   `json:"divisions"`
	Count      int               `json:"count"`
}

type CategorySource interface {
	Rows(ctx context.Context) ([]models.Category, error)
}
