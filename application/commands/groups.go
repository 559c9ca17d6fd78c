package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/events"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/utils"
)

// CreateGroupCommand opens a new workspace.
type CreateGroupCommand struct {
	Input entities.GroupInput
}

func (c CreateGroupCommand) Validate() error { return validate(c) }

// UpdateGroupCommand applies a shallow patch to a group.
type UpdateGroupCommand struct {
	GroupID string `validate:"required"`
	Patch   entities.GroupPatch
}

func (c UpdateGroupCommand) Validate() error { return validate(c) }

// RegenerateInviteCommand replaces a group's invite code.
type RegenerateInviteCommand struct {
	GroupID string `validate:"required"`
}

func (c RegenerateInviteCommand) Validate() error { return validate(c) }

// AddMemberCommand joins a member to a group.
type AddMemberCommand struct {
	GroupID string `validate:"required"`
	Input   entities.MemberInput
}

func (c AddMemberCommand) Validate() error { return validate(c) }

// CreateTopicCommand opens a topic tab inside a group.
type CreateTopicCommand struct {
	GroupID string `validate:"required"`
	Input   entities.TopicInput
}

func (c CreateTopicCommand) Validate() error { return validate(c) }

// GroupHandler handles group-level commands.
type GroupHandler struct {
	store     ports.EntityStore
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewGroupHandler creates a new handler instance
func NewGroupHandler(store ports.EntityStore, publisher ports.EventPublisher, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateGroup stores the group and announces it on its own channel.
func (h *GroupHandler) CreateGroup(ctx context.Context, cmd CreateGroupCommand) (entities.GroupView, error) {
	group := h.store.CreateGroup(ctx, cmd.Input)
	h.publisher.Publish(ctx, events.GroupChannel(group.ID), events.New("", events.GroupCreated, group))

	h.logger.Info("Group created", zap.String("groupID", group.ID))
	return group, nil
}

// UpdateGroup patches the group and publishes the new state.
func (h *GroupHandler) UpdateGroup(ctx context.Context, cmd UpdateGroupCommand) (entities.GroupView, error) {
	group, ok := h.store.UpdateGroup(ctx, cmd.GroupID, cmd.Patch)
	if !ok {
		return entities.GroupView{}, apperrors.NewNotFoundError("group")
	}
	h.publisher.Publish(ctx, events.GroupChannel(group.ID), events.New("", events.GroupUpdated, group))
	return group, nil
}

// RegenerateInvite issues a fresh invite code. The old code stops resolving.
func (h *GroupHandler) RegenerateInvite(ctx context.Context, cmd RegenerateInviteCommand) (entities.GroupView, error) {
	code := utils.InviteCode()
	return h.UpdateGroup(ctx, UpdateGroupCommand{
		GroupID: cmd.GroupID,
		Patch:   entities.GroupPatch{InviteCode: &code},
	})
}

// AddMember joins a member to an existing group.
func (h *GroupHandler) AddMember(ctx context.Context, cmd AddMemberCommand) (entities.Member, error) {
	if _, ok := h.store.GetGroup(ctx, cmd.GroupID); !ok {
		return entities.Member{}, apperrors.NewNotFoundError("group")
	}

	member := h.store.AddMember(ctx, cmd.GroupID, cmd.Input)
	h.publisher.Publish(ctx, events.GroupChannel(cmd.GroupID), events.New("", events.MemberJoined, member))

	h.logger.Info("Member joined",
		zap.String("groupID", cmd.GroupID),
		zap.String("memberID", member.ID),
		zap.String("role", string(member.Role)),
	)
	return member, nil
}

// CreateTopic opens a topic inside an existing group.
func (h *GroupHandler) CreateTopic(ctx context.Context, cmd CreateTopicCommand) (entities.TopicView, error) {
	if _, ok := h.store.GetGroup(ctx, cmd.GroupID); !ok {
		return entities.TopicView{}, apperrors.NewNotFoundError("group")
	}

	topic := h.store.CreateTopic(ctx, cmd.GroupID, cmd.Input)
	h.publisher.Publish(ctx, events.GroupChannel(cmd.GroupID), events.New("", events.TopicCreated, topic))
	return topic, nil
}
