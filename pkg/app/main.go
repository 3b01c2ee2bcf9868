package app

import (
	"github.com/partsflow/partsflow/pkg/cache"
	"github.com/partsflow/partsflow/pkg/config"
	"github.com/partsflow/partsflow/pkg/database"
	"github.com/partsflow/partsflow/pkg/events"
	"github.com/partsflow/partsflow/pkg/logger"
	"github.com/partsflow/partsflow/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service *Routes calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler — use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "realizing bom", "project_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Cfg            *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil when Temporal is disabled
}
