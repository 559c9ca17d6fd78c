package eventbus

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

func newBus(t *testing.T) (*Bus, *observability.Collector) {
	t.Helper()
	metrics := observability.NewCollector("test")
	return New(zap.NewNop(), metrics), metrics
}

type recorder struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recorder) handle(_ context.Context, ev events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, ev)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	bus, metrics := newBus(t)
	channel := events.TopicChannel("nano-bio")

	recs := make([]*recorder, 3)
	for i := range recs {
		recs[i] = &recorder{}
		bus.Subscribe(channel, recs[i].handle)
	}

	n := bus.Publish(context.Background(), channel, events.New("", events.IdeaAdded, map[string]string{"id": "idea-1"}))

	assert.Equal(t, 3, n)
	for _, r := range recs {
		require.Equal(t, 1, r.count())
		assert.Equal(t, events.IdeaAdded, r.got[0].Type)
		assert.Equal(t, channel, r.got[0].Channel)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.EventsDelivered))
}

func TestPublishWithoutSubscribersIsDiscarded(t *testing.T) {
	bus, _ := newBus(t)

	n := bus.Publish(context.Background(), events.GroupChannel("empty"), events.New("", events.GroupUpdated, nil))

	assert.Zero(t, n)
}

func TestChannelsAreIsolated(t *testing.T) {
	bus, _ := newBus(t)
	group := &recorder{}
	topic := &recorder{}
	bus.Subscribe(events.GroupChannel("x"), group.handle)
	bus.Subscribe(events.TopicChannel("x"), topic.handle)

	bus.Publish(context.Background(), events.TopicChannel("x"), events.New("", events.SwotAdded, nil))

	assert.Zero(t, group.count())
	assert.Equal(t, 1, topic.count())
}

func TestSubscriptionOrderIsPreserved(t *testing.T) {
	bus, _ := newBus(t)
	var order []int
	for i := 0; i < 4; i++ {
		i := i
		bus.Subscribe("c", func(context.Context, events.Event) { order = append(order, i) })
	}

	bus.Publish(context.Background(), "c", events.Event{})

	assert.Equal(t, []int{0, 1, 2, 3}, order)
}

func TestLateSubscriberMissesEarlierEvent(t *testing.T) {
	bus, _ := newBus(t)
	bus.Publish(context.Background(), "c", events.New("", events.TopicCreated, nil))

	late := &recorder{}
	bus.Subscribe("c", late.handle)

	assert.Zero(t, late.count())
}

func TestCancelRemovesOnlyThatRegistration(t *testing.T) {
	bus, _ := newBus(t)
	a, b := &recorder{}, &recorder{}
	subA := bus.Subscribe("c", a.handle)
	bus.Subscribe("c", b.handle)

	subA.Cancel()
	subA.Cancel()

	assert.Equal(t, 1, bus.Publish(context.Background(), "c", events.Event{}))
	assert.Zero(t, a.count())
	assert.Equal(t, 1, b.count())
	assert.Equal(t, 1, bus.SubscriberCount("c"))
}

func TestCancelLastSubscriberDropsChannel(t *testing.T) {
	bus, _ := newBus(t)
	sub := bus.Subscribe("c", func(context.Context, events.Event) {})

	sub.Cancel()

	assert.Zero(t, bus.SubscriberCount("c"))
	assert.Equal(t, "c", sub.Channel())
}

func TestPanickingHandlerDoesNotStopDelivery(t *testing.T) {
	bus, metrics := newBus(t)
	after := &recorder{}
	bus.Subscribe("c", func(context.Context, events.Event) { panic("bad handler") })
	bus.Subscribe("c", after.handle)

	assert.NotPanics(t, func() {
		assert.Equal(t, 2, bus.Publish(context.Background(), "c", events.Event{Type: events.GraphUpdated}))
	})
	assert.Equal(t, 1, after.count())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HandlerPanics))
}

func TestHandlerMayCancelDuringDelivery(t *testing.T) {
	bus, _ := newBus(t)
	other := &recorder{}
	var sub *Subscription
	sub = bus.Subscribe("c", func(context.Context, events.Event) { sub.Cancel() })
	bus.Subscribe("c", other.handle)

	assert.Equal(t, 2, bus.Publish(context.Background(), "c", events.Event{}))
	assert.Equal(t, 1, other.count())
	assert.Equal(t, 1, bus.SubscriberCount("c"))
}

func TestConcurrentSubscribeAndPublish(t *testing.T) {
	bus, _ := newBus(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe("c", func(context.Context, events.Event) {})
			sub.Cancel()
		}()
		go func() {
			defer wg.Done()
			bus.Publish(context.Background(), "c", events.Event{})
		}()
	}
	wg.Wait()

	assert.Zero(t, bus.SubscriberCount("c"))
}
