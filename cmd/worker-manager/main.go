package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	awsclient "ese-registration-workers/internal/common/aws"
	"ese-registration-workers/internal/common/camunda"
	"ese-registration-workers/internal/common/config"
	"ese-registration-workers/internal/common/database"
	"ese-registration-workers/internal/common/logger"
	"ese-registration-workers/internal/common/observability"
	"ese-registration-workers/internal/common/server"
	"ese-registration-workers/internal/repository"
	"ese-registration-workers/internal/session"
	"ese-registration-workers/internal/views"

	// Registration Workers (3)
	crs "ese-registration-workers/internal/workers/registration/check-registration-status"
	sn "ese-registration-workers/internal/workers/registration/send-notification"
	sr "ese-registration-workers/internal/workers/registration/submit-registration"

	// Catalog Workers (2)
	lc "ese-registration-workers/internal/workers/catalog/list-categories"
	lp "ese-registration-workers/internal/workers/catalog/list-panchayaths"

	// Admin Workers (7)
	ali "ese-registration-workers/internal/workers/admin/admin-login"
	alo "ese-registration-workers/internal/workers/admin/admin-logout"
	asr "ese-registration-workers/internal/workers/admin/admin-session-restore"
	lr "ese-registration-workers/internal/workers/admin/list-registrations"
	mp "ese-registration-workers/internal/workers/admin/manage-panchayath"
	ucf "ese-registration-workers/internal/workers/admin/update-category-fees"
	urs "ese-registration-workers/internal/workers/admin/update-registration-status"
)

const shutdownTimeout = 30 * time.Second

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.NewService(cfg.Logging.Level, cfg.Logging.Format, cfg.App.Name, cfg.App.Version)
	defer func() { _ = zapLog.Sync() }()

	if err := run(cfg, zapLog); err != nil {
		zapLog.Fatal("worker manager stopped with error", zap.Error(err))
	}
	zapLog.Info("Worker manager stopped")
}

func run(cfg *config.Config, zapLog *zap.Logger) error {
	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting worker manager...")

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		return err
	}
	defer func() { _ = obs.Shutdown(context.Background()) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(camunda.ClientConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		return err
	}
	defer func() { _ = zeebe.Close() }()
	zapLog.Info("Zeebe client connected successfully")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			_ = pg.Close()
			return err
		}
		return nil
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		return err
	}
	defer func() { _ = pg.Close() }()
	zapLog.Info("PostgreSQL connected successfully")

	channel := cfg.Database.Postgres.ChangeChannel
	if cfg.Database.Postgres.AutoMigrate {
		if err := database.EnsureSchema(ctx, pg.DB, channel); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		zapLog.Info("Database schema ensured")
	}

	// --- Redis ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()
	zapLog.Info("Redis connected successfully")

	// --- Repository, change feed and views ---
	store := repository.New(pg.DB)

	feed, err := database.ListenPostgres(pg.DSN(), channel, log)
	if err != nil {
		return err
	}
	defer func() { _ = feed.Close() }()

	viewSet := views.NewSet(store, log)
	detach := viewSet.Attach(feed)
	defer detach()

	// --- Session gate ---
	var verifier session.CredentialVerifier = session.NewStaticVerifier(cfg.Auth.Credentials)
	if cfg.Auth.RequireActiveAccount {
		verifier = session.NewActiveAccountVerifier(store.Admins, verifier)
	}
	sessions := session.NewManager(
		verifier,
		session.NewRedisStore(rdb.Client, cfg.Auth.Session.KeyPrefix, cfg.Auth.Session.TTLDuration()),
		log,
	)

	// --- Notification channels ---
	var smsSender sn.SMSSender
	var emailSender sn.EmailSender
	if cfg.Notifications.SMS.Enabled || cfg.Notifications.Email.Enabled {
		awsCfg, err := awsclient.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		if cfg.Notifications.SMS.Enabled {
			smsSender = awsclient.NewSNSSender(awsCfg, cfg.Notifications.SMS.CountryCode, cfg.Notifications.SMS.SenderID)
		}
		if cfg.Notifications.Email.Enabled {
			emailSender = awsclient.NewSESSender(awsCfg, cfg.Notifications.Email.FromEmail)
		}
	}

	// --- START: Register Workers ---
	registry := camunda.NewRegistry(zeebe.Zeebe(), cfg.App.Name, log)
	defer registry.Stop()

	// --- 1. Registration Workers (3) ---
	if wcfg, ok := enabledWorker(cfg, sr.TaskType, log); ok {
		handler := sr.NewHandler(&sr.Config{Timeout: config.GetDuration(wcfg.Timeout)}, sr.Dependencies{
			Registrations: store.Registrations,
			View:          viewSet.Registrations,
			Logger:        log,
			Obs:           obs,
		})
		registry.Start(sr.TaskType, wcfg, sr.GetInputSchema().PropertyNames(), handler.Handle)
	}

	if wcfg, ok := enabledWorker(cfg, crs.TaskType, log); ok {
		handler := crs.NewHandler(&crs.Config{Timeout: config.GetDuration(wcfg.Timeout)}, store.Registrations, log, obs)
		registry.Start(crs.TaskType, wcfg, crs.GetInputSchema().PropertyNames(), handler.Handle)
	}

	if wcfg, ok := enabledWorker(cfg, sn.TaskType, log); ok {
		handler := sn.NewHandler(&sn.Config{
			EmailEnabled: cfg.Notifications.Email.Enabled,
			SMSEnabled:   cfg.Notifications.SMS.Enabled,
			Timeout:      config.GetDuration(wcfg.Timeout),
		}, sn.Dependencies{
			Registrations: store.Registrations,
			SMS:           smsSender,
			Email:         emailSender,
			Logger:        log,
			Obs:           obs,
		})
		registry.Start(sn.TaskType, wcfg, sn.GetInputSchema().PropertyNames(), handler.Handle)
	}

	// --- 2. Catalog Workers (2) ---
	if wcfg, ok := enabledWorker(cfg, lc.TaskType, log); ok {
		handler := lc.NewHandler(&lc.Config{Timeout: config.GetDuration(wcfg.Timeout)}, viewSet.Categories, log, obs)
		registry.Start(lc.TaskType, wcfg, lc.GetInputSchema().PropertyNames(), handler.Handle)
	}

	if wcfg, ok := enabledWorker(cfg, lp.TaskType, log); ok {
		handler := lp.NewHandler(&lp.Config{Timeout: config.GetDuration(wcfg.Timeout)},
			viewSet.Panchayaths, viewSet.ActivePanchayaths, log, obs)
		registry.Start(lp.TaskType, wcfg, lp.GetInputSchema().PropertyNames(), handler.Handle)
	}

	// --- 3. Admin Workers (7) ---
	if wcfg, ok := enabledWorker(cfg, ali.TaskType, log); ok {
		handler := ali.NewHandler(&ali.Config{Timeout: config.GetDuration(wcfg.Timeout)}, sessions, log, obs)
		registry.Start(ali.TaskType, wcfg, ali.GetInputSchema().PropertyNames(), handler.Handle)
	}

	if wcfg, ok := enabledWorker(cfg, alo.TaskType, log); ok {
		handler := alo.NewHandler(&alo.Config{Timeout: config.GetDuration(wcfg.Timeout)}, sessions, log, obs)
		registry.Start(alo.TaskType, wcfg, alo.GetInputSchema().PropertyNames(), handler.Handle)
	}

	if wcfg, ok := enabledWorker(cfg, asr.TaskType, log); ok {
		handler := asr.NewHandler(&asr.Config{Timeout: config.GetDuration(wcfg.Timeout)}, sessions, log, obs)
		registry.Start(asr.TaskType, wcfg, asr.GetInputSchema().PropertyNames(), handler.Handle)
	}

	if wcfg, ok := enabledWorker(cfg, lr.TaskType, log); ok {
		handler := lr.NewHandler(&lr.Config{Timeout: config.GetDuration(wcfg.Timeout)}, sessions, viewSet.Registrations, log, obs)
		registry.Start(lr.TaskType, wcfg, lr.GetInputSchema().PropertyNames(), handler.Handle)
	}

	if wcfg, ok := enabledWorker(cfg, urs.TaskType, log); ok {
		handler := urs.NewHandler(&urs.Config{Timeout: config.GetDuration(wcfg.Timeout)}, urs.Dependencies{
			Auth:          sessions,
			Registrations: store.Registrations,
			View:          viewSet.Registrations,
			Logger:        log,
			Obs:           obs,
		})
		registry.Start(urs.TaskType, wcfg, urs.GetInputSchema().PropertyNames(), handler.Handle)
	}

	if wcfg, ok := enabledWorker(cfg, ucf.TaskType, log); ok {
		handler := ucf.NewHandler(&ucf.Config{Timeout: config.GetDuration(wcfg.Timeout)}, ucf.Dependencies{
			Auth:       sessions,
			Categories: store.Categories,
			View:       viewSet.Categories,
			Logger:     log,
			Obs:        obs,
		})
		registry.Start(ucf.TaskType, wcfg, ucf.GetInputSchema().PropertyNames(), handler.Handle)
	}

	if wcfg, ok := enabledWorker(cfg, mp.TaskType, log); ok {
		handler := mp.NewHandler(&mp.Config{Timeout: config.GetDuration(wcfg.Timeout)}, mp.Dependencies{
			Auth:        sessions,
			Panchayaths: store.Panchayaths,
			Views:       []mp.Invalidator{viewSet.Panchayaths, viewSet.ActivePanchayaths},
			Logger:      log,
			Obs:         obs,
		})
		registry.Start(mp.TaskType, wcfg, mp.GetInputSchema().PropertyNames(), handler.Handle)
	}

	zapLog.Info("Workers registered", zap.Strings("taskTypes", registry.TaskTypes()))
	// --- END: Register Workers ---

	// --- Health & Metrics Server ---
	ops := server.New(cfg.Server.Address, cfg.App.Name, cfg.App.Version, map[string]server.Check{
		"postgres": pg.Ping,
		"redis":    rdb.Ping,
		"zeebe":    zeebe.HealthCheck,
	}, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		feed.Run(gctx)
		return nil
	})
	g.Go(ops.Start)
	g.Go(func() error {
		<-gctx.Done()
		zapLog.Info("Shutdown signal received, stopping workers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return ops.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func enabledWorker(cfg *config.Config, taskType string, log logger.Logger) (config.WorkerConfig, bool) {
	wcfg := config.GetWorkerConfig(cfg, taskType)
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return wcfg, false
	}
	return wcfg, true
}
