// Package eventbus routes events to the handlers subscribed to a channel
// within this process.
package eventbus

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

// Handler receives events for one channel. Handlers run on the publisher's
// goroutine and must not block.
type Handler func(ctx context.Context, ev events.Event)

type registration struct {
	handler Handler
}

// Bus is an in-process publish/subscribe registry keyed by channel name.
type Bus struct {
	mu       sync.RWMutex
	channels map[string][]*registration

	logger  *zap.Logger
	metrics *observability.Collector
}

// New creates an empty bus.
func New(logger *zap.Logger, metrics *observability.Collector) *Bus {
	if metrics == nil {
		metrics = observability.NewCollector("eventbus")
	}
	return &Bus{
		channels: make(map[string][]*registration),
		logger:   logger.Named("eventbus"),
		metrics:  metrics,
	}
}

// Subscription is a single handler registration.
type Subscription struct {
	bus     *Bus
	channel string
	reg     *registration
	once    sync.Once
}

// Channel returns the channel this subscription listens on.
func (s *Subscription) Channel() string {
	return s.channel
}

// Cancel removes this registration. Calling it more than once is a no-op.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.bus.remove(s.channel, s.reg)
	})
}

// Subscribe registers handler for channel. Handlers of one channel are
// invoked in subscription order.
func (b *Bus) Subscribe(channel string, handler Handler) *Subscription {
	reg := &registration{handler: handler}

	b.mu.Lock()
	b.channels[channel] = append(b.channels[channel], reg)
	b.mu.Unlock()

	return &Subscription{bus: b, channel: channel, reg: reg}
}

func (b *Bus) remove(channel string, reg *registration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.channels[channel]
	for i, r := range regs {
		if r != reg {
			continue
		}
		// Copy so a concurrent Publish iterating the old slice is unaffected.
		next := make([]*registration, 0, len(regs)-1)
		next = append(next, regs[:i]...)
		next = append(next, regs[i+1:]...)
		if len(next) == 0 {
			delete(b.channels, channel)
		} else {
			b.channels[channel] = next
		}
		return
	}
}

// Publish delivers ev to every handler subscribed to channel at the moment
// of the call and returns how many were invoked. An event with no
// subscribers is discarded.
func (b *Bus) Publish(ctx context.Context, channel string, ev events.Event) int {
	ev.Channel = channel

	b.mu.RLock()
	regs := b.channels[channel]
	b.mu.RUnlock()

	b.metrics.EventsPublished.WithLabelValues(string(ev.Type)).Inc()

	for _, r := range regs {
		b.invoke(ctx, r.handler, ev)
	}
	b.metrics.EventsDelivered.Add(float64(len(regs)))
	return len(regs)
}

func (b *Bus) invoke(ctx context.Context, h Handler, ev events.Event) {
	defer func() {
		if rec := recover(); rec != nil {
			b.metrics.HandlerPanics.Inc()
			b.logger.Error("Event handler panicked",
				zap.String("channel", ev.Channel),
				zap.String("eventType", string(ev.Type)),
				zap.String("panic", fmt.Sprint(rec)),
			)
		}
	}()
	h(ctx, ev)
}

// SubscriberCount returns the number of handlers currently on channel.
func (b *Bus) SubscriberCount(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.channels[channel])
}
