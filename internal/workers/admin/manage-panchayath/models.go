package managepanchayath

import (
	"context"

	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/models"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type Input struct {
	SessionToken  string `json:"sessionToken"`
	Action        string `json:"action"`
	PanchayathID  string `json:"panchayathId,omitempty"`
	Name          string `json:"name,omitempty"`
	MalayalamName string `json:"malayalamName,omitempty"`
	District      string `json:"district,omitempty"`
	IsActive      *bool  `json:"isActive,omitempty"`
}

type Output struct {
	Action       string             `json:"action"`
	PanchayathID string             `json:"panchayathId"`
	Panchayath   *models.Panchayath `json:"panchayath,omitempty"`
	Deleted      bool               `json:"deleted"`
}

type Authorizer interface {
	Authorize(ctx context.Context, token string, p models.Permission) (*models.Session, error)
}

type PanchayathStore interface {
	Insert(ctx context.Context, p *models.Panchayath) error
	Update(ctx context.Context, id string, patch models.PanchayathPatch) (*models.Panchayath, error)
	Delete(ctx context.Context, id string) error
}

type Invalidator interface {
	Invalidate()
}

// Dependencies takes every panchayath view; all of them go stale on a write.
type Dependencies struct {
	Auth        Authorizer
	Panchayaths PanchayathStore
	Views       []Invalidator
	Logger      logger.Logger
	Obs         *observability.Observability
}
