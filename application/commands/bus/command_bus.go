package bus

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

// Command represents a request to change state
type Command interface {
	Validate() error
}

// CommandHandler handles a specific command type
type CommandHandler interface {
	Handle(ctx context.Context, cmd Command) (interface{}, error)
}

// CommandHandlerFunc is an adapter to allow functions to be used as handlers
type CommandHandlerFunc func(ctx context.Context, cmd Command) (interface{}, error)

// Handle implements CommandHandler
func (f CommandHandlerFunc) Handle(ctx context.Context, cmd Command) (interface{}, error) {
	return f(ctx, cmd)
}

// Typed adapts a handler written for one concrete command type.
func Typed[C Command, R any](fn func(ctx context.Context, cmd C) (R, error)) CommandHandler {
	return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
		typed, ok := cmd.(C)
		if !ok {
			return nil, fmt.Errorf("unexpected command type %T", cmd)
		}
		return fn(ctx, typed)
	})
}

// Middleware defines command middleware
type Middleware func(next CommandHandler) CommandHandler

// CommandBus dispatches commands to their handlers
type CommandBus struct {
	handlers map[reflect.Type]CommandHandler
	pipeline *Pipeline
	mu       sync.RWMutex
}

// NewCommandBus creates a command bus; every handler runs inside the
// given middlewares, outermost first.
func NewCommandBus(middlewares ...Middleware) *CommandBus {
	return &CommandBus{
		handlers: make(map[reflect.Type]CommandHandler),
		pipeline: NewPipeline(middlewares...),
	}
}

// Register registers a handler for a command type
func (b *CommandBus) Register(cmdType Command, handler CommandHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := reflect.TypeOf(cmdType)
	if _, exists := b.handlers[t]; exists {
		return fmt.Errorf("handler already registered for command type %s", t.Name())
	}

	b.handlers[t] = b.pipeline.Execute(handler)
	return nil
}

// Send validates cmd and dispatches it to its handler
func (b *CommandBus) Send(ctx context.Context, cmd Command) (interface{}, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("command validation failed: %w", err)
	}

	b.mu.RLock()
	handler, exists := b.handlers[reflect.TypeOf(cmd)]
	b.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %T", ErrHandlerNotFound, cmd)
	}

	result, err := handler.Handle(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("command handler failed: %w", err)
	}
	return result, nil
}

// Name returns the command's type name, used as a log and metric label.
func Name(cmd Command) string {
	t := reflect.TypeOf(cmd)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// LoggingMiddleware logs command execution
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
			cmdType := Name(cmd)
			logger.Debug("Executing command", zap.String("type", cmdType))

			result, err := next.Handle(ctx, cmd)
			switch {
			case err == nil:
				logger.Info("Command succeeded", zap.String("type", cmdType))
			case apperrors.IsValidation(err), apperrors.IsNotFound(err):
				logger.Info("Command rejected", zap.String("type", cmdType), zap.Error(err))
			default:
				logger.Warn("Command failed", zap.String("type", cmdType), zap.Error(err))
			}
			return result, err
		})
	}
}

// MetricsMiddleware records command outcomes and latency
func MetricsMiddleware(collector *observability.Collector) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
			start := time.Now()
			result, err := next.Handle(ctx, cmd)
			collector.RecordCommand(Name(cmd), time.Since(start), err)
			return result, err
		})
	}
}

// TracingMiddleware wraps each command in a span
func TracingMiddleware(tracer trace.Tracer) Middleware {
	return func(next CommandHandler) CommandHandler {
		return CommandHandlerFunc(func(ctx context.Context, cmd Command) (interface{}, error) {
			cmdType := Name(cmd)
			ctx, span := tracer.Start(ctx, "command."+cmdType,
				trace.WithAttributes(attribute.String("command.type", cmdType)),
			)

			result, err := next.Handle(ctx, cmd)
			observability.EndSpan(span, err)
			return result, err
		})
	}
}

// Pipeline chains multiple middleware together
type Pipeline struct {
	middlewares []Middleware
}

// NewPipeline creates a new middleware pipeline
func NewPipeline(middlewares ...Middleware) *Pipeline {
	return &Pipeline{
		middlewares: middlewares,
	}
}

// Execute wraps handler so the first middleware runs outermost
func (p *Pipeline) Execute(handler CommandHandler) CommandHandler {
	for i := len(p.middlewares) - 1; i >= 0; i-- {
		handler = p.middlewares[i](handler)
	}
	return handler
}

// ErrHandlerNotFound is returned by Send for unregistered command types
var ErrHandlerNotFound = errors.New("command handler not found")
