package presence

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTracker(t *testing.T) (*Tracker, *manualClock) {
	t.Helper()
	clock := &manualClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	return NewTracker(DefaultTTL, WithClock(clock.Now)), clock
}

func ids(records []entities.PresenceRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestUpdateReturnsRosterWithCaller(t *testing.T) {
	tr, clock := newTracker(t)

	roster := tr.Update("topic-1", entities.PresenceMember{ID: "m1", Name: "Ann", Role: entities.RoleHost})

	require.Len(t, roster, 1)
	assert.Equal(t, entities.PresenceRecord{TopicID: "topic-1", ID: "m1", Name: "Ann", Role: entities.RoleHost, LastSeen: clock.Now()}, roster[0])
}

func TestTTLBoundary(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		present bool
	}{
		{"just seen", 0, true},
		{"29 seconds later", 29 * time.Second, true},
		{"exactly the TTL", 30 * time.Second, true},
		{"31 seconds later", 31 * time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, clock := newTracker(t)
			tr.Update("t", entities.PresenceMember{ID: "m1", Name: "Ann"})

			clock.Advance(tt.elapsed)
			roster := tr.Get("t")

			if tt.present {
				assert.Equal(t, []string{"m1"}, ids(roster))
			} else {
				assert.Empty(t, roster)
			}
		})
	}
}

func TestHeartbeatRefreshesLastSeen(t *testing.T) {
	tr, clock := newTracker(t)
	tr.Update("t", entities.PresenceMember{ID: "m1", Name: "Ann"})

	clock.Advance(20 * time.Second)
	tr.Update("t", entities.PresenceMember{ID: "m1", Name: "Ann B."})
	clock.Advance(20 * time.Second)

	roster := tr.Get("t")
	require.Len(t, roster, 1)
	assert.Equal(t, "Ann B.", roster[0].Name)
}

func TestPruningIsIdempotent(t *testing.T) {
	tr, clock := newTracker(t)
	tr.Update("t", entities.PresenceMember{ID: "old"})
	clock.Advance(25 * time.Second)
	tr.Update("t", entities.PresenceMember{ID: "new"})
	clock.Advance(10 * time.Second)

	first := tr.Get("t")
	second := tr.Get("t")

	assert.Equal(t, []string{"new"}, ids(first))
	assert.Equal(t, first, second)
}

func TestRosterKeepsFirstInsertionOrder(t *testing.T) {
	tr, _ := newTracker(t)
	tr.Update("t", entities.PresenceMember{ID: "c"})
	tr.Update("t", entities.PresenceMember{ID: "a"})
	tr.Update("t", entities.PresenceMember{ID: "b"})
	tr.Update("t", entities.PresenceMember{ID: "c"})

	assert.Equal(t, []string{"c", "a", "b"}, ids(tr.Get("t")))
}

func TestExpiredMemberRejoinsAtTheEnd(t *testing.T) {
	tr, clock := newTracker(t)
	tr.Update("t", entities.PresenceMember{ID: "a"})
	clock.Advance(20 * time.Second)
	tr.Update("t", entities.PresenceMember{ID: "b"})
	clock.Advance(15 * time.Second)

	assert.Equal(t, []string{"b", "a"}, ids(tr.Update("t", entities.PresenceMember{ID: "a"})))
}

func TestTopicsAreIndependent(t *testing.T) {
	tr, _ := newTracker(t)
	tr.Update("t1", entities.PresenceMember{ID: "m1"})
	tr.Update("t2", entities.PresenceMember{ID: "m2"})

	assert.Equal(t, []string{"m1"}, ids(tr.Get("t1")))
	assert.Equal(t, []string{"m2"}, ids(tr.Get("t2")))
	assert.Empty(t, tr.Get("t3"))
}

func TestEmptyTopicIDYieldsEmptyRoster(t *testing.T) {
	tr, _ := newTracker(t)

	assert.Empty(t, tr.Update("", entities.PresenceMember{ID: "m1"}))
	assert.NotNil(t, tr.Get(""))
}

func TestMetricsCountUpdatesAndPrunes(t *testing.T) {
	clock := &manualClock{now: time.Unix(0, 0)}
	metrics := observability.NewCollector("test")
	tr := NewTracker(time.Second, WithClock(clock.Now), WithMetrics(metrics))

	tr.Update("t", entities.PresenceMember{ID: "a"})
	tr.Update("t", entities.PresenceMember{ID: "b"})
	clock.Advance(2 * time.Second)
	tr.Get("t")

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.PresenceUpdates))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.PresencePruned))
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewTracker(0).TTL())
}

func TestConcurrentHeartbeats(t *testing.T) {
	tr, _ := newTracker(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Update("t", entities.PresenceMember{ID: fmt.Sprintf("m%d", i)})
		}(i)
	}
	wg.Wait()

	assert.Len(t, tr.Get("t"), 20)
}
