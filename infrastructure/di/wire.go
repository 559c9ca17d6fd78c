//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/config"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/external/gemini"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/external/openalex"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/messaging/eventbus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/persistence/snapshot"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/presence"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/interfaces/http/rest"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/interfaces/sse"
)

// InfrastructureSet provides logging, observability and the in-process state.
var InfrastructureSet = wire.NewSet(
	ProvideLogLevel,
	ProvideLogger,
	ProvideMetrics,
	ProvideTracing,
	ProvideStore,
	ProvideEventBus,
	ProvidePresence,
	ProvideSummarizer,
	ProvidePaperSearcher,
	wire.Bind(new(ports.EntityStore), new(*snapshot.Store)),
	wire.Bind(new(ports.EventPublisher), new(*eventbus.Bus)),
	wire.Bind(new(ports.PresenceTracker), new(*presence.Tracker)),
	wire.Bind(new(ports.Summarizer), new(*gemini.Client)),
	wire.Bind(new(ports.PaperSearcher), new(*openalex.Client)),
)

// ApplicationSet provides the command and query buses.
var ApplicationSet = wire.NewSet(
	wire.Struct(new(commands.Dependencies), "*"),
	wire.Struct(new(queries.Dependencies), "*"),
	ProvideCommandBus,
	ProvideQueryBus,
)

// InterfaceSet provides the HTTP surface.
var InterfaceSet = wire.NewSet(
	ProvideErrorHandler,
	ProvideStreamHandler,
	ProvideRouter,
	wire.Bind(new(sse.Subscriber), new(*eventbus.Bus)),
	wire.Bind(new(rest.StoreStatus), new(*snapshot.Store)),
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	InfrastructureSet,
	ApplicationSet,
	InterfaceSet,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil
}
