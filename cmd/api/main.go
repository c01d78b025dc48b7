package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inmobiliaria_backend/internal/auth"
	"inmobiliaria_backend/internal/email"
	"inmobiliaria_backend/internal/events"
	"inmobiliaria_backend/internal/exports"
	apphttp "inmobiliaria_backend/internal/http"
	"inmobiliaria_backend/internal/http/router"
	"inmobiliaria_backend/internal/leads"
	"inmobiliaria_backend/internal/leads/repository"
	"inmobiliaria_backend/internal/properties"
	"inmobiliaria_backend/internal/scheduler"
	"inmobiliaria_backend/internal/webhook"
	"inmobiliaria_backend/platform/config"
	"inmobiliaria_backend/platform/db"
	"inmobiliaria_backend/platform/logger"
	"inmobiliaria_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	store, health, closeStore := initLeadStore(ctx, cfg, log)
	defer closeStore()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	webhookQueue, closeQueue := initWebhookQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Event subscribers first so no LeadCreated is published before they listen
	webhookModule := webhook.NewModule(cfg, webhookQueue, eventBus, log)
	emailModule := email.NewModule(cfg, eventBus, log)

	leadsModule := leads.NewModule(store, eventBus, val, cfg, log)
	exportsModule := exports.NewModule(leadsModule.Service(), val)

	propertiesModule, err := properties.NewModule(cfg, eventBus, val, log)
	if err != nil {
		log.Error("failed to initialize properties module", "error", err)
		panic("failed to initialize properties module: " + err.Error())
	}

	authModule, err := auth.NewModule(cfg, cfg.IsDevelopment(), val, log)
	if err != nil {
		log.Error("failed to initialize auth module", "error", err)
		panic("failed to initialize auth module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			leadsModule,
			exportsModule,
			propertiesModule,
			webhookModule,
			emailModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
	}

	// In-flight handlers may still be forwarding leads.
	eventBus.Wait()
	webhookModule.Forwarder().Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := propertiesModule.Close(closeCtx); err != nil {
		log.Warn("failed to close property catalog", "error", err)
	}
	log.Info("server stopped")
}

// initLeadStore connects to Postgres when DATABASE_URL is set and falls back
// to the in-memory store otherwise. Memory leads are lost on restart.
func initLeadStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Store, apphttp.HealthChecker, func()) {
	if cfg.GetDatabaseURL() == "" {
		log.Warn("DATABASE_URL not configured; leads are kept in memory only")
		memory := repository.NewMemoryStore()
		return memory, memory, func() {}
	}

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool)
	}); err != nil {
		pool.Close()
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	return repository.NewPostgresStore(pool), db.NewPoolAdapter(pool), pool.Close
}

func initWebhookQueue(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.WebhookEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; webhooks are delivered inline without retries")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize webhook queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
