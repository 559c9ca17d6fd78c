package queries

import (
	"context"
	"errors"
	"strings"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
)

func required(value, name string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(name + " is required")
	}
	return nil
}

// ListGroupsQuery lists every group.
type ListGroupsQuery struct{}

func (ListGroupsQuery) Validate() error { return nil }

// GetGroupQuery fetches one group.
type GetGroupQuery struct {
	GroupID string
}

func (q GetGroupQuery) Validate() error { return required(q.GroupID, "groupId") }

// ListTopicsQuery lists the topics of a group.
type ListTopicsQuery struct {
	GroupID string
}

func (q ListTopicsQuery) Validate() error { return required(q.GroupID, "groupId") }

// ListMembersQuery lists the members of a group.
type ListMembersQuery struct {
	GroupID string
}

func (q ListMembersQuery) Validate() error { return required(q.GroupID, "groupId") }

// GetTopicQuery fetches one topic.
type GetTopicQuery struct {
	TopicID string
}

func (q GetTopicQuery) Validate() error { return required(q.TopicID, "topicId") }

// GetGraphQuery fetches a topic's diagram document.
type GetGraphQuery struct {
	TopicID string
}

func (q GetGraphQuery) Validate() error { return required(q.TopicID, "topicId") }

// GraphResult wraps the stored diagram XML.
type GraphResult struct {
	GraphXML string `json:"graph_xml"`
}

// ListSwotQuery lists the SWOT entries of a topic.
type ListSwotQuery struct {
	TopicID string
}

func (q ListSwotQuery) Validate() error { return required(q.TopicID, "topicId") }

// ListIdeasQuery lists the ideas of a topic.
type ListIdeasQuery struct {
	TopicID string
}

func (q ListIdeasQuery) Validate() error { return required(q.TopicID, "topicId") }

// ResolveInviteQuery resolves an invite code to its group.
type ResolveInviteQuery struct {
	Code string
}

func (q ResolveInviteQuery) Validate() error { return required(q.Code, "code") }

// InviteResult is what a prospective member sees before joining.
type InviteResult struct {
	Group  entities.GroupView   `json:"group"`
	Topics []entities.TopicView `json:"topics"`
}

// GetPresenceQuery reads a topic roster without recording a heartbeat.
type GetPresenceQuery struct {
	TopicID string
}

func (GetPresenceQuery) Validate() error { return nil }

// SearchPapersQuery searches literature for a topic.
type SearchPapersQuery struct {
	Query  string
	Source string
}

// SourceOpenAlex and SourceScholar name the supported search backends.
const (
	SourceOpenAlex = "openalex"
	SourceScholar  = "scholar"
)

func (q SearchPapersQuery) Validate() error {
	if err := required(q.Query, "query"); err != nil {
		return err
	}
	switch q.Source {
	case "", SourceOpenAlex, SourceScholar:
		return nil
	}
	return apperrors.NewValidationError("source must be one of: openalex scholar")
}

// PapersResult wraps search hits.
type PapersResult struct {
	Results []entities.Paper `json:"results"`
}

// Handler answers every read-side query.
type Handler struct {
	store    ports.EntityStore
	presence ports.PresenceTracker
	papers   ports.PaperSearcher
}

// NewHandler creates a new query handler
func NewHandler(store ports.EntityStore, presence ports.PresenceTracker, papers ports.PaperSearcher) *Handler {
	return &Handler{store: store, presence: presence, papers: papers}
}

func (h *Handler) ListGroups(ctx context.Context, _ ListGroupsQuery) ([]entities.GroupView, error) {
	return h.store.ListGroups(ctx), nil
}

func (h *Handler) GetGroup(ctx context.Context, q GetGroupQuery) (entities.GroupView, error) {
	group, ok := h.store.GetGroup(ctx, q.GroupID)
	if !ok {
		return entities.GroupView{}, apperrors.NewNotFoundError("group")
	}
	return group, nil
}

func (h *Handler) ListTopics(ctx context.Context, q ListTopicsQuery) ([]entities.TopicView, error) {
	return h.store.ListTopics(ctx, q.GroupID), nil
}

func (h *Handler) ListMembers(ctx context.Context, q ListMembersQuery) ([]entities.Member, error) {
	return h.store.ListMembers(ctx, q.GroupID), nil
}

func (h *Handler) GetTopic(ctx context.Context, q GetTopicQuery) (entities.TopicView, error) {
	topic, ok := h.store.GetTopic(ctx, q.TopicID)
	if !ok {
		return entities.TopicView{}, apperrors.NewNotFoundError("topic")
	}
	return topic, nil
}

func (h *Handler) GetGraph(ctx context.Context, q GetGraphQuery) (GraphResult, error) {
	topic, ok := h.store.GetTopic(ctx, q.TopicID)
	if !ok {
		return GraphResult{}, apperrors.NewNotFoundError("topic")
	}
	return GraphResult{GraphXML: topic.GraphXML}, nil
}

func (h *Handler) ListSwot(ctx context.Context, q ListSwotQuery) ([]entities.SwotEntry, error) {
	return h.store.ListSwot(ctx, q.TopicID), nil
}

func (h *Handler) ListIdeas(ctx context.Context, q ListIdeasQuery) ([]entities.Idea, error) {
	return h.store.ListIdeas(ctx, q.TopicID), nil
}

func (h *Handler) ResolveInvite(ctx context.Context, q ResolveInviteQuery) (InviteResult, error) {
	group, ok := h.store.FindGroupByInvite(ctx, strings.TrimSpace(q.Code))
	if !ok {
		return InviteResult{}, apperrors.NewNotFoundError("invite code")
	}
	return InviteResult{Group: group, Topics: h.store.ListTopics(ctx, group.ID)}, nil
}

func (h *Handler) GetPresence(_ context.Context, q GetPresenceQuery) ([]entities.PresenceRecord, error) {
	return h.presence.Get(q.TopicID), nil
}

// SearchPapers queries OpenAlex. The scholar source needs an external
// scraper and is reported as unavailable.
func (h *Handler) SearchPapers(ctx context.Context, q SearchPapersQuery) (PapersResult, error) {
	if q.Source == SourceScholar {
		return PapersResult{}, apperrors.NewUnavailableError("scholar")
	}

	papers, err := h.papers.Search(ctx, strings.TrimSpace(q.Query))
	switch {
	case err == nil:
	case errors.Is(err, ports.ErrNotConfigured):
		return PapersResult{}, apperrors.NewUnavailableError("openalex")
	case apperrors.GetAppError(err) != nil:
		return PapersResult{}, err
	case apperrors.IsTimeout(err):
		return PapersResult{}, apperrors.NewTimeoutError("openalex search").WithCause(err)
	default:
		return PapersResult{}, apperrors.NewExternalError("openalex", err)
	}
	if papers == nil {
		papers = []entities.Paper{}
	}
	return PapersResult{Results: papers}, nil
}
