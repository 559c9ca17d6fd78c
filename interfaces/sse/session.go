// Package sse streams bus events to browsers as Server-Sent Events.
package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

// DefaultHeartbeat is the interval between keep-alive comments.
const DefaultHeartbeat = 15 * time.Second

var heartbeatFrame = []byte(": keep-alive\n\n")

// ErrQueueOverflow ends a session whose client could not keep up.
var ErrQueueOverflow = errors.New("sse: subscriber queue overflowed")

// EventQueue is the consumer side of a bounded bus subscription.
type EventQueue interface {
	Events() <-chan events.Event
	Overflowed() <-chan struct{}
	Cancel()
}

// Session pumps one queue into one client connection.
type Session struct {
	id        string
	queue     EventQueue
	w         io.Writer
	flush     func() error
	heartbeat time.Duration
	logger    *zap.Logger
	metrics   *observability.Collector

	ticker   *time.Ticker
	teardown sync.Once
}

// NewSession wires a queue to a writer. flush is called after every frame.
func NewSession(id string, queue EventQueue, w io.Writer, flush func() error, heartbeat time.Duration, logger *zap.Logger, metrics *observability.Collector) *Session {
	if heartbeat <= 0 {
		heartbeat = DefaultHeartbeat
	}
	return &Session{
		id:        id,
		queue:     queue,
		w:         w,
		flush:     flush,
		heartbeat: heartbeat,
		logger:    logger.With(zap.String("streamID", id)),
		metrics:   metrics,
	}
}

// Run writes frames until ctx is done, a write fails, or the queue
// overflows. A cancelled context is a normal end and returns nil.
func (s *Session) Run(ctx context.Context) error {
	s.ticker = time.NewTicker(s.heartbeat)
	defer s.close()

	s.metrics.ActiveStreams.Inc()
	defer s.metrics.ActiveStreams.Dec()

	for {
		// select picks randomly among ready cases; a frame must never
		// follow cancellation.
		select {
		case <-ctx.Done():
			s.logger.Debug("Client disconnected")
			return nil

		case <-s.queue.Overflowed():
			s.metrics.StreamOverflows.Inc()
			s.logger.Warn("Closing slow stream")
			return ErrQueueOverflow

		case ev := <-s.queue.Events():
			if ctx.Err() != nil {
				return nil
			}
			if err := s.writeEvent(ev); err != nil {
				s.logger.Debug("Failed to write event", zap.Error(err))
				return err
			}
			s.metrics.StreamFrames.WithLabelValues("event").Inc()

		case <-s.ticker.C:
			if ctx.Err() != nil {
				return nil
			}
			if err := s.writeFrame(heartbeatFrame); err != nil {
				s.logger.Debug("Failed to write heartbeat", zap.Error(err))
				return err
			}
			s.metrics.StreamFrames.WithLabelValues("heartbeat").Inc()
		}
	}
}

// close cancels the subscription before stopping the heartbeat, once.
func (s *Session) close() {
	s.teardown.Do(func() {
		s.queue.Cancel()
		if s.ticker != nil {
			s.ticker.Stop()
		}
	})
}

func (s *Session) writeEvent(ev events.Event) error {
	frame, err := EncodeEvent(ev)
	if err != nil {
		// A payload that cannot be encoded is skipped, not fatal.
		s.logger.Error("Failed to encode event", zap.String("eventType", string(ev.Type)), zap.Error(err))
		return nil
	}
	return s.writeFrame(frame)
}

func (s *Session) writeFrame(frame []byte) error {
	if _, err := s.w.Write(frame); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	if s.flush != nil {
		if err := s.flush(); err != nil {
			return fmt.Errorf("flush frame: %w", err)
		}
	}
	return nil
}

// EncodeEvent renders ev as a single "data:" record.
func EncodeEvent(ev events.Event) ([]byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	frame := make([]byte, 0, len(body)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, body...)
	frame = append(frame, '\n', '\n')
	return frame, nil
}
