package snapshot

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/utils"
)

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// CreateGroup stores a new group, filling defaults, id and invite code.
func (s *Store) CreateGroup(ctx context.Context, in entities.GroupInput) entities.GroupView {
	_, span := s.startSpan(ctx, "CreateGroup")
	defer span.End()

	now := s.now()
	g := entities.Group{
		ID:          in.ID,
		Name:        in.Name,
		Focus:       in.Focus,
		Description: in.Description,
		Privacy:     orDefault(in.Privacy, entities.DefaultPrivacy),
		Size:        orDefault(in.Size, entities.DefaultSize),
		HostName:    orDefault(in.HostName, entities.DefaultHostName),
		InviteCode:  in.InviteCode,
		Status:      orDefault(in.Status, entities.DefaultStatus),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if g.ID == "" {
		g.ID = utils.SlugID(in.Name, "group")
	}
	if g.InviteCode == "" {
		g.InviteCode = utils.InviteCode()
	}
	span.SetAttributes(attribute.String("group.id", g.ID))

	s.mu.Lock()
	s.doc.Groups[g.ID] = g
	view := s.groupView(g)
	s.mu.Unlock()

	s.persist()
	return view
}

// UpdateGroup merges patch into the group and re-stamps updated_at.
func (s *Store) UpdateGroup(ctx context.Context, id string, patch entities.GroupPatch) (entities.GroupView, bool) {
	_, span := s.startSpan(ctx, "UpdateGroup", attribute.String("group.id", id))
	defer span.End()

	s.mu.Lock()
	g, ok := s.doc.Groups[id]
	if !ok {
		s.mu.Unlock()
		return entities.GroupView{}, false
	}
	patch.Apply(&g)
	g.ID = id
	g.UpdatedAt = s.now()
	s.doc.Groups[id] = g
	view := s.groupView(g)
	s.mu.Unlock()

	s.persist()
	return view, true
}

// CreateTopic stores a new topic under groupID. The group is not checked.
func (s *Store) CreateTopic(ctx context.Context, groupID string, in entities.TopicInput) entities.TopicView {
	_, span := s.startSpan(ctx, "CreateTopic", attribute.String("group.id", groupID))
	defer span.End()

	t := entities.Topic{
		ID:          in.ID,
		GroupID:     groupID,
		Title:       in.Title,
		Description: in.Description,
		Summary:     in.Summary,
		GraphXML:    in.GraphXML,
		Status:      orDefault(in.Status, entities.DefaultStatus),
		CreatedAt:   s.now(),
	}
	if t.ID == "" {
		t.ID = utils.SlugID(in.Title, "topic")
	}

	s.mu.Lock()
	s.doc.Topics[t.ID] = t
	view := s.topicView(t)
	s.mu.Unlock()

	s.persist()
	return view
}

// UpdateTopic merges patch into the topic.
func (s *Store) UpdateTopic(ctx context.Context, id string, patch entities.TopicPatch) (entities.TopicView, bool) {
	_, span := s.startSpan(ctx, "UpdateTopic", attribute.String("topic.id", id))
	defer span.End()

	s.mu.Lock()
	t, ok := s.doc.Topics[id]
	if !ok {
		s.mu.Unlock()
		return entities.TopicView{}, false
	}
	patch.Apply(&t)
	t.ID = id
	s.doc.Topics[id] = t
	view := s.topicView(t)
	s.mu.Unlock()

	s.persist()
	return view, true
}

// AddMember stores a new member under groupID.
func (s *Store) AddMember(ctx context.Context, groupID string, in entities.MemberInput) entities.Member {
	_, span := s.startSpan(ctx, "AddMember", attribute.String("group.id", groupID))
	defer span.End()

	now := s.now()
	m := entities.Member{
		ID:        in.ID,
		GroupID:   groupID,
		Name:      in.Name,
		Role:      in.Role,
		CreatedAt: now,
	}
	if m.ID == "" {
		m.ID = utils.KindID("member", now)
	}
	if m.Role == "" {
		m.Role = entities.DefaultRole
	}
	if in.TopicID != nil && *in.TopicID != "" {
		topicID := *in.TopicID
		m.TopicID = &topicID
	}

	s.mu.Lock()
	s.doc.Members[m.ID] = m
	s.mu.Unlock()

	s.persist()
	return m
}

// AddSwot stores a new SWOT entry under topicID.
func (s *Store) AddSwot(ctx context.Context, topicID string, in entities.SwotInput) entities.SwotEntry {
	_, span := s.startSpan(ctx, "AddSwot", attribute.String("topic.id", topicID))
	defer span.End()

	now := s.now()
	e := entities.SwotEntry{
		ID:        in.ID,
		TopicID:   topicID,
		Type:      in.Type,
		Content:   in.Content,
		Author:    orDefault(in.Author, entities.DefaultAuthor),
		CreatedAt: now,
	}
	if e.ID == "" {
		e.ID = utils.KindID("swot", now)
	}

	s.mu.Lock()
	s.doc.SwotEntries[e.ID] = e
	s.mu.Unlock()

	s.persist()
	return e
}

// AddIdea stores a new idea under topicID.
func (s *Store) AddIdea(ctx context.Context, topicID string, in entities.IdeaInput) entities.Idea {
	_, span := s.startSpan(ctx, "AddIdea", attribute.String("topic.id", topicID))
	defer span.End()

	now := s.now()
	i := entities.Idea{
		ID:        in.ID,
		TopicID:   topicID,
		Content:   in.Content,
		Author:    orDefault(in.Author, entities.DefaultAuthor),
		CreatedAt: now,
	}
	if i.ID == "" {
		i.ID = utils.KindID("idea", now)
	}

	s.mu.Lock()
	s.doc.Ideas[i.ID] = i
	s.mu.Unlock()

	s.persist()
	return i
}
