package views

import (
	"context"

	"ese-registration-workers/internal/common/database"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/models"
	"ese-registration-workers/internal/repository"
)

// Set bundles the listing views served by the workers.
type Set struct {
	Registrations     *Snapshot[models.Registration]
	Categories        *Snapshot[models.Category]
	Panchayaths       *Snapshot[models.Panchayath]
	ActivePanchayaths *Snapshot[models.Panchayath]
}

func NewSet(store *repository.Store, log logger.Logger) *Set {
	return &Set{
		Registrations: NewSnapshot("registrations", store.Registrations.List, log),
		Categories:    NewSnapshot("categories", store.Categories.ListActive, log),
		Panchayaths: NewSnapshot("panchayaths", func(ctx context.Context) ([]models.Panchayath, error) {
			return store.Panchayaths.List(ctx, false)
		}, log),
		ActivePanchayaths: NewSnapshot("active-panchayaths", func(ctx context.Context) ([]models.Panchayath, error) {
			return store.Panchayaths.List(ctx, true)
		}, log),
	}
}

// Attach subscribes every view to its table and returns a func detaching all of them.
func (s *Set) Attach(feed Subscriber) func() {
	detach := []func(){
		s.Registrations.Attach(feed, database.TableRegistrations),
		s.Categories.Attach(feed, database.TableCategories),
		s.Panchayaths.Attach(feed, database.TablePanchayaths),
		s.ActivePanchayaths.Attach(feed, database.TablePanchayaths),
	}
	return func() {
		for _, d := range detach {
			d()
		}
	}
}
