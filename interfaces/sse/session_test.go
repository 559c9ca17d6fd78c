package sse

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/messaging/eventbus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

// frameSink collects frames and signals each flush.
type frameSink struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	flushed chan struct{}
	failAt  int
	writes  int
}

func newFrameSink() *frameSink {
	return &frameSink{flushed: make(chan struct{}, 64)}
}

func (f *frameSink) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.failAt > 0 && f.writes >= f.failAt {
		return 0, errors.New("connection reset")
	}
	return f.buf.Write(p)
}

func (f *frameSink) Flush() error {
	f.flushed <- struct{}{}
	return nil
}

func (f *frameSink) String() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf.String()
}

func (f *frameSink) waitFlushes(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.flushed:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for flush %d of %d", i+1, n)
		}
	}
}

func fixedTime() time.Time {
	return time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
}

func TestFrameFormatGolden(t *testing.T) {
	var buf bytes.Buffer
	for _, ev := range []events.Event{
		events.New(events.TopicChannel("nano-bio"), events.IdeaAdded, entities.Idea{
			ID: "idea-1", TopicID: "nano-bio", Content: "Try graphene", Author: "Member", CreatedAt: fixedTime(),
		}),
		events.New(events.TopicChannel("nano-bio"), events.SwotAdded, entities.SwotEntry{
			ID: "swot-1", TopicID: "nano-bio", Type: entities.SwotThreats, Content: "Cost", Author: "Ann", CreatedAt: fixedTime(),
		}),
	} {
		frame, err := EncodeEvent(ev)
		require.NoError(t, err)
		buf.Write(frame)
	}
	buf.Write(heartbeatFrame)

	g := goldie.New(t, goldie.WithFixtureDir("testdata"))
	g.Assert(t, "stream_frames", buf.Bytes())
}

func TestSessionDeliversInOrderAndStopsOnCancel(t *testing.T) {
	bus := eventbus.New(zap.NewNop(), observability.NewCollector("test"))
	metrics := observability.NewCollector("test")
	queue := bus.SubscribeQueue("topic:t", 8)
	sink := newFrameSink()

	ctx, cancel := context.WithCancel(context.Background())
	session := NewSession("s1", queue, sink, sink.Flush, time.Hour, zap.NewNop(), metrics)
	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	bus.Publish(ctx, "topic:t", events.New("", events.IdeaAdded, map[string]string{"id": "1"}))
	bus.Publish(ctx, "topic:t", events.New("", events.SwotAdded, map[string]string{"id": "2"}))
	sink.waitFlushes(t, 2)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancellation")
	}

	out := sink.String()
	assert.Less(t, strings.Index(out, "idea_added"), strings.Index(out, "swot_added"))
	assert.Zero(t, bus.SubscriberCount("topic:t"))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.ActiveStreams))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.StreamFrames.WithLabelValues("event")))

	// Nothing is delivered once torn down.
	assert.Zero(t, bus.Publish(context.Background(), "topic:t", events.Event{}))
}

func TestSessionWritesNothingAfterCancel(t *testing.T) {
	for i := 0; i < 50; i++ {
		bus := eventbus.New(zap.NewNop(), observability.NewCollector("test"))
		queue := bus.SubscribeQueue("topic:t", 8)
		bus.Publish(context.Background(), "topic:t", events.New("", events.IdeaAdded, map[string]string{"id": "1"}))
		sink := newFrameSink()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		session := NewSession("s1", queue, sink, sink.Flush, time.Nanosecond, zap.NewNop(), observability.NewCollector("test"))

		require.NoError(t, session.Run(ctx))
		require.Empty(t, sink.String(), "iteration %d", i)
	}
}

func TestSessionSendsHeartbeats(t *testing.T) {
	bus := eventbus.New(zap.NewNop(), nil)
	queue := bus.SubscribeQueue("group:g", 1)
	sink := newFrameSink()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	session := NewSession("s2", queue, sink, sink.Flush, 10*time.Millisecond, zap.NewNop(), observability.NewCollector("test"))
	go session.Run(ctx)

	sink.waitFlushes(t, 2)
	assert.True(t, strings.HasPrefix(sink.String(), ": keep-alive\n\n: keep-alive\n\n"))
}

func TestSessionEndsOnOverflow(t *testing.T) {
	bus := eventbus.New(zap.NewNop(), nil)
	metrics := observability.NewCollector("test")
	queue := bus.SubscribeQueue("group:g", 1)
	for i := 0; i < 3; i++ {
		bus.Publish(context.Background(), "group:g", events.New("", events.GroupUpdated, nil))
	}
	sink := newFrameSink()

	session := NewSession("s3", queue, sink, sink.Flush, time.Hour, zap.NewNop(), metrics)
	err := session.Run(context.Background())

	assert.ErrorIs(t, err, ErrQueueOverflow)
	assert.Zero(t, bus.SubscriberCount("group:g"))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StreamOverflows))
}

func TestSessionEndsOnWriteError(t *testing.T) {
	bus := eventbus.New(zap.NewNop(), nil)
	queue := bus.SubscribeQueue("group:g", 4)
	bus.Publish(context.Background(), "group:g", events.New("", events.MemberJoined, nil))
	sink := newFrameSink()
	sink.failAt = 1

	session := NewSession("s4", queue, sink, sink.Flush, time.Hour, zap.NewNop(), observability.NewCollector("test"))
	err := session.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Zero(t, bus.SubscriberCount("group:g"))
}

func TestSessionSkipsUnencodablePayload(t *testing.T) {
	bus := eventbus.New(zap.NewNop(), nil)
	queue := bus.SubscribeQueue("group:g", 4)
	bus.Publish(context.Background(), "group:g", events.New("", events.GroupUpdated, make(chan int)))
	bus.Publish(context.Background(), "group:g", events.New("", events.GroupUpdated, "ok"))
	sink := newFrameSink()

	ctx, cancel := context.WithCancel(context.Background())
	session := NewSession("s5", queue, sink, sink.Flush, time.Hour, zap.NewNop(), observability.NewCollector("test"))
	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	sink.waitFlushes(t, 1)
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, "data: {\"type\":\"group_updated\",\"payload\":\"ok\"}\n\n", sink.String())
}
