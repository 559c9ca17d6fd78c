package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
)

// Queue is a subscription that buffers events for a single consumer.
// Publishing never blocks on it: when the buffer is full the event is
// dropped and the queue is marked overflowed.
type Queue struct {
	sub      *Subscription
	events   chan events.Event
	overflow chan struct{}
	once     sync.Once
}

// SubscribeQueue subscribes a bounded queue of the given size to channel.
func (b *Bus) SubscribeQueue(channel string, size int) *Queue {
	if size < 1 {
		size = 1
	}
	q := &Queue{
		events:   make(chan events.Event, size),
		overflow: make(chan struct{}),
	}
	q.sub = b.Subscribe(channel, func(_ context.Context, ev events.Event) {
		select {
		case q.events <- ev:
		default:
			b.metrics.EventsDropped.Inc()
			q.once.Do(func() {
				b.logger.Warn("Subscriber queue full, dropping events",
					zap.String("channel", channel),
					zap.Int("size", size),
				)
				close(q.overflow)
			})
		}
	})
	return q
}

// Events returns the buffered events in publish order. It is never closed;
// consumers stop by selecting on their own cancellation.
func (q *Queue) Events() <-chan events.Event {
	return q.events
}

// Overflowed is closed the first time an event is dropped.
func (q *Queue) Overflowed() <-chan struct{} {
	return q.overflow
}

// Cancel unsubscribes the queue. Idempotent.
func (q *Queue) Cancel() {
	q.sub.Cancel()
}
