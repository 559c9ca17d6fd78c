// Package di assembles the application graph.
package di

import (
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands/bus"
	querybus "github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/config"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/messaging/eventbus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/persistence/snapshot"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/presence"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/interfaces/http/rest"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	LogLevel   zap.AtomicLevel
	Logger     *zap.Logger
	Store      *snapshot.Store
	Events     *eventbus.Bus
	Presence   *presence.Tracker
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Metrics    *observability.Collector
	Tracing    *observability.TracerProvider
	Router     *rest.Router
}

// ApplyConfig applies the settings that can change while running. The
// rest take effect on restart.
func (c *Container) ApplyConfig(old, next *config.Config) {
	if next.LogLevel == old.LogLevel {
		return
	}
	level, err := zapcore.ParseLevel(next.LogLevel)
	if err != nil {
		c.Logger.Warn("Ignoring invalid log level", zap.String("level", next.LogLevel))
		return
	}
	c.LogLevel.SetLevel(level)
	c.Logger.Info("Log level changed", zap.String("from", old.LogLevel), zap.String("to", next.LogLevel))
}

// Handler returns the fully configured HTTP handler.
func (c *Container) Handler() http.Handler {
	return c.Router.Setup()
}
