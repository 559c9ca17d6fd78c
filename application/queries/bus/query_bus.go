package bus

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Query represents a read-only query
type Query interface {
	Validate() error
}

// QueryHandler handles a specific query type
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}

// QueryHandlerFunc is an adapter to allow functions to be used as handlers
type QueryHandlerFunc func(ctx context.Context, query Query) (interface{}, error)

// Handle implements QueryHandler
func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (interface{}, error) {
	return f(ctx, query)
}

// Typed adapts a handler written for one concrete query type.
func Typed[Q Query, R any](fn func(ctx context.Context, query Q) (R, error)) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		typed, ok := query.(Q)
		if !ok {
			return nil, fmt.Errorf("unexpected query type %T", query)
		}
		return fn(ctx, typed)
	})
}

// Middleware defines query middleware
type Middleware func(next QueryHandler) QueryHandler

// QueryBus dispatches queries to their handlers
type QueryBus struct {
	handlers    map[reflect.Type]QueryHandler
	middlewares []Middleware
	mu          sync.RWMutex
}

// NewQueryBus creates a new query bus
func NewQueryBus(middlewares ...Middleware) *QueryBus {
	return &QueryBus{
		handlers:    make(map[reflect.Type]QueryHandler),
		middlewares: middlewares,
	}
}

// Register registers a handler for a query type
func (b *QueryBus) Register(queryType Query, handler QueryHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := reflect.TypeOf(queryType)
	if _, exists := b.handlers[t]; exists {
		return fmt.Errorf("handler already registered for query type %s", t.Name())
	}

	for i := len(b.middlewares) - 1; i >= 0; i-- {
		handler = b.middlewares[i](handler)
	}
	b.handlers[t] = handler
	return nil
}

// Ask dispatches a query to its handler and returns the result
func (b *QueryBus) Ask(ctx context.Context, query Query) (interface{}, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("query validation failed: %w", err)
	}

	b.mu.RLock()
	handler, exists := b.handlers[reflect.TypeOf(query)]
	b.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %T", ErrHandlerNotFound, query)
	}

	result, err := handler.Handle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query handler failed: %w", err)
	}
	return result, nil
}

// LoggingMiddleware logs slow or failing queries
func LoggingMiddleware(logger *zap.Logger, slow time.Duration) Middleware {
	return func(next QueryHandler) QueryHandler {
		return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
			start := time.Now()
			result, err := next.Handle(ctx, query)
			elapsed := time.Since(start)

			queryType := reflect.TypeOf(query).Name()
			switch {
			case err != nil:
				logger.Debug("Query failed", zap.String("type", queryType), zap.Error(err))
			case elapsed > slow:
				logger.Warn("Slow query", zap.String("type", queryType), zap.Duration("duration", elapsed))
			}
			return result, err
		})
	}
}

// ErrHandlerNotFound is returned by Ask for unregistered query types
var ErrHandlerNotFound = errors.New("query handler not found")
