package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
)

// UpdateTopicCommand applies a shallow patch to a topic.
type UpdateTopicCommand struct {
	TopicID string `validate:"required"`
	Patch   entities.TopicPatch
}

func (c UpdateTopicCommand) Validate() error { return validate(c) }

// UpdateGraphCommand replaces a topic's diagram document.
type UpdateGraphCommand struct {
	TopicID  string `validate:"required"`
	GraphXML string
}

func (c UpdateGraphCommand) Validate() error { return validate(c) }

// AddSwotCommand adds a note to one SWOT quadrant of a topic.
type AddSwotCommand struct {
	TopicID string `validate:"required"`
	Input   entities.SwotInput
}

func (c AddSwotCommand) Validate() error { return validate(c) }

// AddIdeaCommand adds an idea to a topic.
type AddIdeaCommand struct {
	TopicID string `validate:"required"`
	Input   entities.IdeaInput
}

func (c AddIdeaCommand) Validate() error { return validate(c) }

// TopicHandler handles topic-level commands. Every change is published on
// the topic channel and, with fresh counts, on the owning group channel.
type TopicHandler struct {
	store     ports.EntityStore
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewTopicHandler creates a new handler instance
func NewTopicHandler(store ports.EntityStore, publisher ports.EventPublisher, logger *zap.Logger) *TopicHandler {
	return &TopicHandler{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// UpdateTopic patches the topic.
func (h *TopicHandler) UpdateTopic(ctx context.Context, cmd UpdateTopicCommand) (entities.TopicView, error) {
	topic, ok := h.store.UpdateTopic(ctx, cmd.TopicID, cmd.Patch)
	if !ok {
		return entities.TopicView{}, apperrors.NewNotFoundError("topic")
	}
	h.publishTopic(ctx, topic, events.TopicUpdated, topic)
	return topic, nil
}

// UpdateGraph stores the diagram XML as-is.
func (h *TopicHandler) UpdateGraph(ctx context.Context, cmd UpdateGraphCommand) (entities.TopicView, error) {
	xml := cmd.GraphXML
	topic, ok := h.store.UpdateTopic(ctx, cmd.TopicID, entities.TopicPatch{GraphXML: &xml})
	if !ok {
		return entities.TopicView{}, apperrors.NewNotFoundError("topic")
	}
	h.publishTopic(ctx, topic, events.GraphUpdated, topic)
	return topic, nil
}

// AddSwot stores the entry under an existing topic.
func (h *TopicHandler) AddSwot(ctx context.Context, cmd AddSwotCommand) (entities.SwotEntry, error) {
	if _, ok := h.store.GetTopic(ctx, cmd.TopicID); !ok {
		return entities.SwotEntry{}, apperrors.NewNotFoundError("topic")
	}

	entry := h.store.AddSwot(ctx, cmd.TopicID, cmd.Input)
	h.publishContribution(ctx, cmd.TopicID, events.SwotAdded, entry)
	return entry, nil
}

// AddIdea stores the idea under an existing topic.
func (h *TopicHandler) AddIdea(ctx context.Context, cmd AddIdeaCommand) (entities.Idea, error) {
	if _, ok := h.store.GetTopic(ctx, cmd.TopicID); !ok {
		return entities.Idea{}, apperrors.NewNotFoundError("topic")
	}

	idea := h.store.AddIdea(ctx, cmd.TopicID, cmd.Input)
	h.publishContribution(ctx, cmd.TopicID, events.IdeaAdded, idea)
	return idea, nil
}

// publishContribution announces a new child record, then the topic's new
// counts to the group.
func (h *TopicHandler) publishContribution(ctx context.Context, topicID string, eventType events.EventType, payload interface{}) {
	h.publisher.Publish(ctx, events.TopicChannel(topicID), events.New("", eventType, payload))

	topic, ok := h.store.GetTopic(ctx, topicID)
	if !ok || topic.GroupID == "" {
		return
	}
	h.publisher.Publish(ctx, events.GroupChannel(topic.GroupID), events.New("", events.TopicUpdated, topic))
}

func (h *TopicHandler) publishTopic(ctx context.Context, topic entities.TopicView, eventType events.EventType, payload interface{}) {
	h.publisher.Publish(ctx, events.TopicChannel(topic.ID), events.New("", eventType, payload))
	if topic.GroupID != "" {
		h.publisher.Publish(ctx, events.GroupChannel(topic.GroupID), events.New("", events.TopicUpdated, topic))
	}
}
