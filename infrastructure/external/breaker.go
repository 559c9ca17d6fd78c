// Package external holds what the outbound HTTP adapters share.
package external

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
)

// BreakerConfig holds configuration for a circuit breaker
type BreakerConfig struct {
	Name        string
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration

	// The breaker trips once MinRequests calls have been seen in an
	// interval and the failure ratio reaches FailureThreshold.
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the settings used for upstream APIs.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Breaker guards calls to one upstream service.
type Breaker struct {
	name string
	cb   *gobreaker.CircuitBreaker
}

// NewBreaker creates a breaker that logs its state transitions.
func NewBreaker(config BreakerConfig, logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// A caller giving up is not the upstream's fault.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Breaker{name: config.Name, cb: cb}
}

// Do runs fn through the breaker. While the breaker is open the call is
// rejected with an UNAVAILABLE error without reaching the upstream.
func (b *Breaker) Do(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, apperrors.NewUnavailableError(b.name).WithCause(err)
	}
	return result, err
}

// State reports the breaker's current state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
