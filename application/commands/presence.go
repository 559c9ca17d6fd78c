package commands

import (
	"context"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
)

// HeartbeatCommand marks a member as present in a topic.
type HeartbeatCommand struct {
	TopicID  string
	MemberID string `validate:"required_with=TopicID"`
	Name     string `validate:"max=200"`
	Role     entities.Role
}

func (c HeartbeatCommand) Validate() error { return validate(c) }

// PresenceHandler handles HeartbeatCommand.
type PresenceHandler struct {
	tracker ports.PresenceTracker
}

// NewPresenceHandler creates a new handler instance
func NewPresenceHandler(tracker ports.PresenceTracker) *PresenceHandler {
	return &PresenceHandler{tracker: tracker}
}

// Heartbeat returns the topic roster after recording the heartbeat.
func (h *PresenceHandler) Heartbeat(_ context.Context, cmd HeartbeatCommand) ([]entities.PresenceRecord, error) {
	return h.tracker.Update(cmd.TopicID, entities.PresenceMember{
		ID:   cmd.MemberID,
		Name: cmd.Name,
		Role: cmd.Role,
	}), nil
}
