//go:build integration

package views

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"ese-registration-workers/internal/common/database"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/models"
	"ese-registration-workers/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const changeChannel = "table_changes"

func startPostgres(t *testing.T) (*sql.DB, string) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ese_registrations"),
		tcpostgres.WithUsername("ese"),
		tcpostgres.WithPassword("ese"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err, "failed to start postgres container")
	testcontainers.CleanupContainer(t, container)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.EnsureSchema(ctx, db, changeChannel))
	// a second run must be a no-op
	require.NoError(t, database.EnsureSchema(ctx, db, changeChannel))
	return db, dsn
}

func newRegistration(phone, name string) *models.Registration {
	return &models.Registration{
		UID:            "ESE" + phone + name[:1],
		Category:       "Food Processing",
		FullName:       name,
		Address:        "House 12",
		WhatsappNumber: phone,
		MobileNumber:   phone,
		Panchayath:     "Kottakkal",
		Ward:           "7",
		Status:         models.StatusPending,
	}
}

func TestIntegration_RegistrationLifecycle(t *testing.T) {
	db, _ := startPostgres(t)
	store := repository.New(db)
	ctx := context.Background()

	reg := newRegistration("9876543210", "Anas")
	reg.MobileNumber = "8123456789"
	require.NoError(t, store.Registrations.Insert(ctx, reg))

	found, err := store.Registrations.FindByPhone(ctx, "8123456789")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, found.ID)

	dup := newRegistration("8123456789", "Other")
	err = store.Registrations.Insert(ctx, dup)
	assert.True(t, errors.Is(err, repository.ErrDuplicate), "got %v", err)

	previous, err := store.Registrations.UpdateStatus(ctx, reg.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, previous)

	_, err = store.Registrations.UpdateStatus(ctx, "00000000-0000-0000-0000-000000000000", models.StatusApproved)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIntegration_CategoryFees(t *testing.T) {
	db, _ := startPostgres(t)
	store := repository.New(db)
	ctx := context.Background()

	const id = "0b6e3f0c-5a0e-4c59-8f3c-1a2b3c4d5e6f"
	_, err := db.ExecContext(ctx, `INSERT INTO categories (id, name, actual_fee, offer_fee, division)
		VALUES ($1, 'Bakery', 1000, 750, 'Food')`, id)
	require.NoError(t, err)

	offer := decimal.NewFromInt(500)
	updated, err := store.Categories.UpdateFees(ctx, id, models.FeePatch{OfferFee: &offer})
	require.NoError(t, err)
	assert.True(t, updated.OfferFee.Equal(offer))
	assert.True(t, updated.ActualFee.Equal(decimal.NewFromInt(1000)))
}

func TestIntegration_ViewsFollowChangeFeed(t *testing.T) {
	db, dsn := startPostgres(t)
	store := repository.New(db)
	log := logger.NewTestLogger(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	feed, err := database.ListenPostgres(dsn, changeChannel, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = feed.Close() })
	go feed.Run(ctx)

	set := NewSet(store, log)
	detach := set.Attach(feed)
	defer detach()

	rows, err := set.Registrations.Rows(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)

	require.NoError(t, store.Registrations.Insert(ctx, newRegistration("9447000000", "Rahul")))
	assert.Eventually(t, func() bool {
		rows, err := set.Registrations.Rows(ctx)
		return err == nil && len(rows) == 1
	}, 10*time.Second, 100*time.Millisecond)

	p := &models.Panchayath{Name: "Ponmala", District: "Malappuram", IsActive: false}
	require.NoError(t, store.Panchayaths.Insert(ctx, p))
	assert.Eventually(t, func() bool {
		all, err := set.Panchayaths.Rows(ctx)
		if err != nil || len(all) != 1 {
			return false
		}
		active, err := set.ActivePanchayaths.Rows(ctx)
		return err == nil && len(active) == 0
	}, 10*time.Second, 100*time.Millisecond)
}
