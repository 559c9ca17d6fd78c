// Package snapshot implements the entity store: five in-memory collections
// that are written through to a single JSON snapshot file when persistence
// is available, and silently degrade to memory-only when it is not.
package snapshot

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/observability"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/utils"
)

// Options selects the persistence policy.
type Options struct {
	Enabled bool
	DataDir string
}

// Option customises a Store.
type Option func(*Store)

// WithMetrics records snapshot writes on the given collector.
func WithMetrics(c *observability.Collector) Option {
	return func(s *Store) { s.metrics = c }
}

// WithTracer wraps mutations in spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) { s.tracer = t }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store holds every entity of the workspace. The mutex protects the maps
// only; concurrent updates to the same record are last-write-wins.
type Store struct {
	opts    Options
	path    string
	logger  *zap.Logger
	metrics *observability.Collector
	tracer  trace.Tracer
	now     func() time.Time

	mu  sync.RWMutex
	doc Document

	persistent bool
	persistMu  sync.Mutex
	warned     sync.Once
}

// Open builds a Store and applies the persistence policy once. It never
// fails: filesystem problems downgrade the store to memory-only.
func Open(opts Options, logger *zap.Logger, options ...Option) *Store {
	s := &Store{
		opts:   opts,
		path:   filepath.Join(opts.DataDir, FileName),
		logger: logger.Named("store"),
		tracer: noop.NewTracerProvider().Tracer(""),
		now:    utils.Now,
	}
	for _, o := range options {
		o(s)
	}
	if s.metrics == nil {
		s.metrics = observability.NewCollector("store")
	}

	s.doc, s.persistent = s.load()
	return s
}

// Persistent reports whether mutations are currently written to disk.
func (s *Store) Persistent() bool {
	return s.persistent
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.clone()
}

// Close waits for an in-flight snapshot write to finish.
func (s *Store) Close() error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	return nil
}

func (s *Store) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "store."+name, trace.WithAttributes(attrs...))
}

// Counts are derived on every read and never stored.

func (s *Store) groupView(g entities.Group) entities.GroupView {
	v := entities.GroupView{Group: g}
	for _, m := range s.doc.Members {
		if m.GroupID == g.ID {
			v.MemberCount++
		}
	}
	for _, t := range s.doc.Topics {
		if t.GroupID == g.ID {
			v.TopicCount++
		}
	}
	return v
}

func (s *Store) topicView(t entities.Topic) entities.TopicView {
	v := entities.TopicView{Topic: t}
	for _, m := range s.doc.Members {
		if m.TopicID != nil && *m.TopicID == t.ID {
			v.MemberCount++
		}
	}
	for _, e := range s.doc.SwotEntries {
		if e.TopicID == t.ID {
			v.SwotCount++
		}
	}
	for _, i := range s.doc.Ideas {
		if i.TopicID == t.ID {
			v.IdeaCount++
		}
	}
	return v
}

func byCreated(ai, bi string, at, bt time.Time) bool {
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	return ai < bi
}

// GetGroup returns the group with fresh counts.
func (s *Store) GetGroup(_ context.Context, id string) (entities.GroupView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.doc.Groups[id]
	if !ok {
		return entities.GroupView{}, false
	}
	return s.groupView(g), true
}

// FindGroupByInvite looks a group up by its invite code.
func (s *Store) FindGroupByInvite(_ context.Context, code string) (entities.GroupView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.doc.Groups {
		if g.InviteCode == code {
			return s.groupView(g), true
		}
	}
	return entities.GroupView{}, false
}

// ListGroups returns every group with fresh counts.
func (s *Store) ListGroups(_ context.Context) []entities.GroupView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entities.GroupView, 0, len(s.doc.Groups))
	for _, g := range s.doc.Groups {
		out = append(out, s.groupView(g))
	}
	sort.Slice(out, func(i, j int) bool {
		return byCreated(out[i].ID, out[j].ID, out[i].CreatedAt, out[j].CreatedAt)
	})
	return out
}

// GetTopic returns the topic with fresh counts.
func (s *Store) GetTopic(_ context.Context, id string) (entities.TopicView, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.doc.Topics[id]
	if !ok {
		return entities.TopicView{}, false
	}
	return s.topicView(t), true
}

// ListTopics returns the topics of a group with fresh counts.
func (s *Store) ListTopics(_ context.Context, groupID string) []entities.TopicView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entities.TopicView{}
	for _, t := range s.doc.Topics {
		if t.GroupID == groupID {
			out = append(out, s.topicView(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return byCreated(out[i].ID, out[j].ID, out[i].CreatedAt, out[j].CreatedAt)
	})
	return out
}

// GetMember returns a member by id.
func (s *Store) GetMember(_ context.Context, id string) (entities.Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.doc.Members[id]
	return m, ok
}

// ListMembers returns the members of a group.
func (s *Store) ListMembers(_ context.Context, groupID string) []entities.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entities.Member{}
	for _, m := range s.doc.Members {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return byCreated(out[i].ID, out[j].ID, out[i].CreatedAt, out[j].CreatedAt)
	})
	return out
}

// GetSwot returns a SWOT entry by id.
func (s *Store) GetSwot(_ context.Context, id string) (entities.SwotEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.doc.SwotEntries[id]
	return e, ok
}

// ListSwot returns the SWOT entries of a topic.
func (s *Store) ListSwot(_ context.Context, topicID string) []entities.SwotEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entities.SwotEntry{}
	for _, e := range s.doc.SwotEntries {
		if e.TopicID == topicID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return byCreated(out[i].ID, out[j].ID, out[i].CreatedAt, out[j].CreatedAt)
	})
	return out
}

// GetIdea returns an idea by id.
func (s *Store) GetIdea(_ context.Context, id string) (entities.Idea, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.doc.Ideas[id]
	return i, ok
}

// ListIdeas returns the ideas of a topic.
func (s *Store) ListIdeas(_ context.Context, topicID string) []entities.Idea {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entities.Idea{}
	for _, i := range s.doc.Ideas {
		if i.TopicID == topicID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return byCreated(out[i].ID, out[j].ID, out[i].CreatedAt, out[j].CreatedAt)
	})
	return out
}
