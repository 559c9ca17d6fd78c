// Package presence keeps a per-topic roster of members who have sent a
// heartbeat recently. Records expire lazily: they are pruned whenever the
// topic's roster is touched, never by a background sweep.
package presence

import (
	"sync"
	"time"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
)

// DefaultTTL is how long a heartbeat keeps a member present.
const DefaultTTL = 30 * time.Second

type roster struct {
	order   []string
	records map[string]entities.PresenceRecord
}

// Tracker is safe for concurrent use.
type Tracker struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	topics  map[string]*roster
	metrics *observability.Collector
}

// Option customises a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithMetrics counts heartbeats and pruned records.
func WithMetrics(c *observability.Collector) Option {
	return func(t *Tracker) { t.metrics = c }
}

// NewTracker creates a tracker. A non-positive ttl selects DefaultTTL.
func NewTracker(ttl time.Duration, opts ...Option) *Tracker {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	t := &Tracker{
		ttl:    ttl,
		now:    time.Now,
		topics: make(map[string]*roster),
	}
	for _, o := range opts {
		o(t)
	}
	if t.metrics == nil {
		t.metrics = observability.NewCollector("presence")
	}
	return t
}

// TTL returns the expiry window.
func (t *Tracker) TTL() time.Duration {
	return t.ttl
}

// Update records a heartbeat for member in topicID, prunes expired entries
// and returns the surviving roster. An empty topicID yields an empty roster.
func (t *Tracker) Update(topicID string, m entities.PresenceMember) []entities.PresenceRecord {
	if topicID == "" {
		return []entities.PresenceRecord{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	// Prune first so an expired member rejoins at the end of the roster.
	t.pruneLocked(topicID, now)

	r, ok := t.topics[topicID]
	if !ok {
		r = &roster{records: make(map[string]entities.PresenceRecord)}
		t.topics[topicID] = r
	}
	if _, seen := r.records[m.ID]; !seen {
		r.order = append(r.order, m.ID)
	}
	r.records[m.ID] = entities.PresenceRecord{
		TopicID:  topicID,
		ID:       m.ID,
		Name:     m.Name,
		Role:     m.Role,
		LastSeen: now,
	}
	t.metrics.PresenceUpdates.Inc()

	out := make([]entities.PresenceRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out
}

// Get prunes and returns the roster of topicID without recording a heartbeat.
func (t *Tracker) Get(topicID string) []entities.PresenceRecord {
	if topicID == "" {
		return []entities.PresenceRecord{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pruneLocked(topicID, t.now())
}

// pruneLocked drops records whose age exceeds the TTL. A record exactly
// TTL old is kept.
func (t *Tracker) pruneLocked(topicID string, now time.Time) []entities.PresenceRecord {
	r, ok := t.topics[topicID]
	if !ok {
		return []entities.PresenceRecord{}
	}

	out := make([]entities.PresenceRecord, 0, len(r.order))
	kept := r.order[:0]
	for _, id := range r.order {
		rec := r.records[id]
		if now.Sub(rec.LastSeen) > t.ttl {
			delete(r.records, id)
			t.metrics.PresencePruned.Inc()
			continue
		}
		kept = append(kept, id)
		out = append(out, rec)
	}
	r.order = kept

	if len(r.order) == 0 {
		delete(t.topics, topicID)
	}
	return out
}
