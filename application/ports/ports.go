// Package ports declares what the application layer needs from the
// infrastructure around it.
package ports

import (
	"context"
	"errors"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
)

// EntityStore is the durable workspace state. Lookups report misses with
// ok=false; persistence problems never surface as errors.
type EntityStore interface {
	GetGroup(ctx context.Context, id string) (entities.GroupView, bool)
	ListGroups(ctx context.Context) []entities.GroupView
	FindGroupByInvite(ctx context.Context, code string) (entities.GroupView, bool)
	CreateGroup(ctx context.Context, in entities.GroupInput) entities.GroupView
	UpdateGroup(ctx context.Context, id string, patch entities.GroupPatch) (entities.GroupView, bool)

	GetTopic(ctx context.Context, id string) (entities.TopicView, bool)
	ListTopics(ctx context.Context, groupID string) []entities.TopicView
	CreateTopic(ctx context.Context, groupID string, in entities.TopicInput) entities.TopicView
	UpdateTopic(ctx context.Context, id string, patch entities.TopicPatch) (entities.TopicView, bool)

	ListMembers(ctx context.Context, groupID string) []entities.Member
	AddMember(ctx context.Context, groupID string, in entities.MemberInput) entities.Member

	ListSwot(ctx context.Context, topicID string) []entities.SwotEntry
	AddSwot(ctx context.Context, topicID string, in entities.SwotInput) entities.SwotEntry

	ListIdeas(ctx context.Context, topicID string) []entities.Idea
	AddIdea(ctx context.Context, topicID string, in entities.IdeaInput) entities.Idea
}

// EventPublisher fans an event out to the subscribers of a channel.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, ev events.Event) int
}

// PresenceTracker keeps the short-lived per-topic rosters.
type PresenceTracker interface {
	Update(topicID string, m entities.PresenceMember) []entities.PresenceRecord
	Get(topicID string) []entities.PresenceRecord
}

// Summarizer turns a prompt into generated text.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// PaperSearcher looks up literature for a free-text query.
type PaperSearcher interface {
	Search(ctx context.Context, query string) ([]entities.Paper, error)
}

// ErrNotConfigured is returned by adapters that lack credentials.
var ErrNotConfigured = errors.New("adapter not configured")
