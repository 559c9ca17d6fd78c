package di

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries"
	querybus "github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/config"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/external/gemini"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/external/openalex"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/messaging/eventbus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/persistence/snapshot"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/presence"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/interfaces/http/rest"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/interfaces/sse"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

const (
	serviceName      = "brainstorm-api"
	metricsNamespace = "brainstorm"
	slowQuery        = 250 * time.Millisecond
	tracingShutdown  = 5 * time.Second
)

// ProvideLogLevel creates the adjustable level shared by every logger.
func ProvideLogLevel(cfg *config.Config) (zap.AtomicLevel, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zap.AtomicLevel{}, err
	}
	return zap.NewAtomicLevelAt(level), nil
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config, level zap.AtomicLevel) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", serviceName)), nil
}

// ProvideMetrics creates the metrics collector. It is always built so
// components can record; EnableMetrics only controls the /metrics route.
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector(metricsNamespace)
}

// ProvideTracing starts the OTLP exporter when tracing is enabled.
func ProvideTracing(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*observability.TracerProvider, func(), error) {
	if !cfg.EnableTracing {
		return observability.NoopTracing(), func() {}, nil
	}

	tp, err := observability.InitTracing(ctx, serviceName, cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracingShutdown)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}
	return tp, cleanup, nil
}

// ProvideStore opens the entity store.
func ProvideStore(cfg *config.Config, logger *zap.Logger, metrics *observability.Collector, tp *observability.TracerProvider) (*snapshot.Store, func()) {
	store := snapshot.Open(
		snapshot.Options{Enabled: cfg.EnablePersistence, DataDir: cfg.DataDir},
		logger,
		snapshot.WithMetrics(metrics),
		snapshot.WithTracer(tp.Tracer()),
	)
	return store, func() { _ = store.Close() }
}

// ProvideEventBus creates the in-process event bus
func ProvideEventBus(logger *zap.Logger, metrics *observability.Collector) *eventbus.Bus {
	return eventbus.New(logger, metrics)
}

// ProvidePresence creates the presence tracker
func ProvidePresence(cfg *config.Config, metrics *observability.Collector) *presence.Tracker {
	return presence.NewTracker(cfg.PresenceTTL, presence.WithMetrics(metrics))
}

// ProvideSummarizer creates the Gemini client
func ProvideSummarizer(cfg *config.Config, logger *zap.Logger) *gemini.Client {
	return gemini.NewClient(gemini.Config{APIKey: cfg.GeminiAPIKey}, logger)
}

// ProvidePaperSearcher creates the OpenAlex client
func ProvidePaperSearcher(cfg *config.Config, logger *zap.Logger) *openalex.Client {
	return openalex.NewClient(openalex.Config{BaseURL: cfg.OpenAlexBaseURL}, logger)
}

// ProvideCommandBus creates the command bus with every handler registered
func ProvideCommandBus(
	logger *zap.Logger,
	metrics *observability.Collector,
	tp *observability.TracerProvider,
	deps commands.Dependencies,
) (*bus.CommandBus, error) {
	b := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.MetricsMiddleware(metrics),
		bus.TracingMiddleware(tp.Tracer()),
	)
	if err := commands.Register(b, deps); err != nil {
		return nil, fmt.Errorf("registering commands: %w", err)
	}
	return b, nil
}

// ProvideQueryBus creates the query bus with every handler registered
func ProvideQueryBus(logger *zap.Logger, deps queries.Dependencies) (*querybus.QueryBus, error) {
	b := querybus.NewQueryBus(querybus.LoggingMiddleware(logger, slowQuery))
	if err := queries.Register(b, deps); err != nil {
		return nil, fmt.Errorf("registering queries: %w", err)
	}
	return b, nil
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *apperrors.ErrorHandler {
	return apperrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideStreamHandler creates the SSE endpoint
func ProvideStreamHandler(
	cfg *config.Config,
	events sse.Subscriber,
	logger *zap.Logger,
	metrics *observability.Collector,
	errorHandler *apperrors.ErrorHandler,
) *sse.Handler {
	return sse.NewHandler(events, sse.Config{
		Heartbeat:  cfg.StreamHeartbeat,
		BufferSize: cfg.StreamBufferSize,
	}, logger, metrics, errorHandler)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	stream *sse.Handler,
	errorHandler *apperrors.ErrorHandler,
	store rest.StoreStatus,
	metrics *observability.Collector,
	tp *observability.TracerProvider,
	logger *zap.Logger,
) *rest.Router {
	deps := rest.Dependencies{
		CommandBus:     commandBus,
		QueryBus:       queryBus,
		Stream:         stream,
		ErrorHandler:   errorHandler,
		Store:          store,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger,
	}
	if cfg.EnableMetrics {
		deps.Metrics = metrics
	}
	if cfg.EnableTracing {
		deps.Tracing = tp
	}
	return rest.NewRouter(deps)
}
