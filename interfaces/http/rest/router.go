package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands/bus"
	querybus "github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/interfaces/http/rest/handlers"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/interfaces/http/rest/middleware"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/common"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

// StoreStatus reports how the entity store is persisting.
type StoreStatus interface {
	Persistent() bool
}

// Dependencies is everything the router serves.
type Dependencies struct {
	CommandBus     *bus.CommandBus
	QueryBus       *querybus.QueryBus
	Stream         http.Handler
	ErrorHandler   *apperrors.ErrorHandler
	Store          StoreStatus
	Metrics        *observability.Collector // nil disables /metrics
	Tracing        *observability.TracerProvider
	AllowedOrigins []string
	Logger         *zap.Logger
}

// Router creates and configures the HTTP router
type Router struct {
	deps Dependencies
}

// NewRouter creates a new router instance
func NewRouter(deps Dependencies) *Router {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if len(deps.AllowedOrigins) == 0 {
		deps.AllowedOrigins = []string{"*"}
	}
	return &Router{deps: deps}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	d := rt.deps
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(d.ErrorHandler.Middleware)
	router.Use(middleware.Logger(d.Logger))
	if d.Metrics != nil {
		router.Use(observability.MetricsMiddleware(d.Metrics))
	}
	if d.Tracing != nil {
		router.Use(observability.TracingMiddleware(d.Tracing))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Cache-Control", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		d.ErrorHandler.HandleStatus(w, r, http.StatusNotFound, "route not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		d.ErrorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	if d.Metrics != nil {
		router.Handle("/metrics", d.Metrics.Handler())
	}

	groups := handlers.NewGroupHandler(d.CommandBus, d.QueryBus, d.ErrorHandler, d.Logger)
	topics := handlers.NewTopicHandler(d.CommandBus, d.QueryBus, d.ErrorHandler, d.Logger)
	presence := handlers.NewPresenceHandler(d.CommandBus, d.QueryBus, d.ErrorHandler, d.Logger)
	research := handlers.NewResearchHandler(d.CommandBus, d.QueryBus, d.ErrorHandler, d.Logger)

	router.Route("/api", func(r chi.Router) {
		r.Get("/openapi", rt.openAPIHandler)

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groups.ListGroups)
			r.Post("/", groups.CreateGroup)
			r.Route("/{groupId}", func(r chi.Router) {
				r.Get("/", groups.GetGroup)
				r.Patch("/", groups.UpdateGroup)
				r.Post("/invite", groups.RegenerateInvite)
				r.Get("/members", groups.ListMembers)
				r.Post("/members", groups.AddMember)
				r.Get("/topics", groups.ListTopics)
				r.Post("/topics", groups.CreateTopic)
			})
		})

		r.Route("/topics/{topicId}", func(r chi.Router) {
			r.Get("/", topics.GetTopic)
			r.Patch("/", topics.UpdateTopic)
			r.Get("/graph", topics.GetGraph)
			r.Post("/graph", topics.UpdateGraph)
			r.Get("/swot", topics.ListSwot)
			r.Post("/swot", topics.AddSwot)
			r.Get("/ideas", topics.ListIdeas)
			r.Post("/ideas", topics.AddIdea)
		})

		r.Get("/invites/{code}", groups.ResolveInvite)

		r.Get("/presence", presence.GetPresence)
		r.Post("/presence", presence.Heartbeat)

		r.Post("/papers/search", research.SearchPapers)
		r.Post("/summary", research.Summarize)

		r.Method(http.MethodGet, "/stream", d.Stream)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck reports ready along with the persistence mode; a store
// that fell back to memory still serves traffic.
func (rt *Router) readinessCheck(w http.ResponseWriter, r *http.Request) {
	persistent := false
	if rt.deps.Store != nil {
		persistent = rt.deps.Store.Persistent()
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ready",
		"persistent": persistent,
	})
}
