package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.temporal.io/sdk/worker"

	"github.com/partsflow/partsflow/pkg/app"
	"github.com/partsflow/partsflow/pkg/cache"
	"github.com/partsflow/partsflow/pkg/config"
	"github.com/partsflow/partsflow/pkg/database"
	"github.com/partsflow/partsflow/pkg/events"
	"github.com/partsflow/partsflow/pkg/logger"
	"github.com/partsflow/partsflow/pkg/telemetry"
	"github.com/partsflow/partsflow/pkg/workflows"
	appsvcs "github.com/partsflow/partsflow/services/bom/application/services"
	bomWorkflows "github.com/partsflow/partsflow/services/bom/application/workflows"
	bomEvents "github.com/partsflow/partsflow/services/bom/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Cfg:      cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if cfg.TemporalEnabled {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()

		w, err := startTemporalWorker(temporalClient, appConfig)
		if err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// startTemporalWorker registers the BOM realization workflow and its
// activities on the shared task queue.
func startTemporalWorker(tc *workflows.TemporalClient, a *app.Application) (worker.Worker, error) {
	w := worker.New(tc.Client, bomWorkflows.TaskQueue, worker.Options{})
	activities := &bomWorkflows.Activities{Bom: appsvcs.New(a).Bom}
	w.RegisterWorkflow(bomWorkflows.RealizeBomWorkflow)
	w.RegisterActivity(activities.RealizeBom)
	if err := w.Start(); err != nil {
		return nil, err
	}
	a.Logger.Info("temporal worker started", "task_queue", bomWorkflows.TaskQueue)
	return w, nil
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	errCh, err := a.EventBus.Subscribe(ctx, bomEvents.TopicBomRealized, handleBomRealized(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channel never blocks.
	go func() {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error",
				"topic", bomEvents.TopicBomRealized,
				"error", err,
			)
		}
	}()

	a.Logger.Info("event subscribers registered", "topics", []string{bomEvents.TopicBomRealized})
	return nil
}

// handleBomRealized returns a handler for bom.realized events.
// Handlers must be idempotent; EventBus retries up to 3 times on failure.
// Warms the Redis project-summary cache so list views skip Postgres.
func handleBomRealized(a *app.Application) func(context.Context, *message.Message) error {
	projectCache := cache.NewProjectCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt bomEvents.BomRealizedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := projectCache.Set(ctx, &cache.CachedProjectSummary{
			ID:              evt.ProjectID,
			Name:            evt.ProjectName,
			Status:          evt.Status,
			ItemCount:       evt.ItemCount,
			SuggestionCount: evt.SuggestionCount,
			BestScore:       evt.BestScore,
			CreatedAt:       evt.OccurredAt,
		}); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for bom.realized",
				"project_id", evt.ProjectID, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"project_id", evt.ProjectID, "status", evt.Status)
		}

		return nil
	}
}
