package sse

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/messaging/eventbus"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

// DefaultBufferSize is the per-stream queue capacity.
const DefaultBufferSize = 64

// Subscriber hands out bounded queues for a channel.
type Subscriber interface {
	SubscribeQueue(channel string, size int) *eventbus.Queue
}

// Config tunes every stream served by a Handler.
type Config struct {
	Heartbeat  time.Duration
	BufferSize int
}

// Handler serves GET /api/stream.
type Handler struct {
	bus          Subscriber
	config       Config
	logger       *zap.Logger
	metrics      *observability.Collector
	errorHandler *apperrors.ErrorHandler
}

// NewHandler creates a stream handler.
func NewHandler(bus Subscriber, config Config, logger *zap.Logger, metrics *observability.Collector, errorHandler *apperrors.ErrorHandler) *Handler {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultBufferSize
	}
	if config.Heartbeat <= 0 {
		config.Heartbeat = DefaultHeartbeat
	}
	return &Handler{
		bus:          bus,
		config:       config,
		logger:       logger.Named("sse"),
		metrics:      metrics,
		errorHandler: errorHandler,
	}
}

// ChannelFor resolves the stream scope from the query string. Exactly one of
// groupId and topicId must be present.
func ChannelFor(r *http.Request) (string, bool) {
	groupID := r.URL.Query().Get("groupId")
	topicID := r.URL.Query().Get("topicId")

	switch {
	case groupID != "" && topicID == "":
		return events.GroupChannel(groupID), true
	case topicID != "" && groupID == "":
		return events.TopicChannel(topicID), true
	}
	return "", false
}

// ServeHTTP holds the connection open and streams events for one channel.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	channel, ok := ChannelFor(r)
	if !ok {
		h.errorHandler.HandleStatus(w, r, http.StatusBadRequest, "exactly one of groupId or topicId is required")
		return
	}

	rc := http.NewResponseController(w)
	// Streams outlive the server's write timeout.
	_ = rc.SetWriteDeadline(time.Time{})

	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache, no-transform")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.Error("Streaming unsupported by response writer", zap.Error(err))
		return
	}

	queue := h.bus.SubscribeQueue(channel, h.config.BufferSize)
	id := uuid.NewString()
	h.logger.Info("Stream opened", zap.String("streamID", id), zap.String("channel", channel))

	session := NewSession(id, queue, w, rc.Flush, h.config.Heartbeat, h.logger, h.metrics)
	err := session.Run(r.Context())

	h.logger.Info("Stream closed",
		zap.String("streamID", id),
		zap.String("channel", channel),
		zap.NamedError("reason", err),
	)
}
