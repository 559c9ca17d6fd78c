package commands

import (
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
)

// Dependencies are the ports the command handlers need.
type Dependencies struct {
	Store      ports.EntityStore
	Publisher  ports.EventPublisher
	Presence   ports.PresenceTracker
	Summarizer ports.Summarizer
	Logger     *zap.Logger
}

// Register wires every command handler into b.
func Register(b *bus.CommandBus, deps Dependencies) error {
	logger := deps.Logger.Named("commands")
	groups := NewGroupHandler(deps.Store, deps.Publisher, logger)
	topics := NewTopicHandler(deps.Store, deps.Publisher, logger)
	summary := NewSummaryHandler(deps.Store, deps.Publisher, deps.Summarizer, logger)
	presence := NewPresenceHandler(deps.Presence)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{CreateGroupCommand{}, bus.Typed(groups.CreateGroup)},
		{UpdateGroupCommand{}, bus.Typed(groups.UpdateGroup)},
		{RegenerateInviteCommand{}, bus.Typed(groups.RegenerateInvite)},
		{AddMemberCommand{}, bus.Typed(groups.AddMember)},
		{CreateTopicCommand{}, bus.Typed(groups.CreateTopic)},
		{UpdateTopicCommand{}, bus.Typed(topics.UpdateTopic)},
		{UpdateGraphCommand{}, bus.Typed(topics.UpdateGraph)},
		{AddSwotCommand{}, bus.Typed(topics.AddSwot)},
		{AddIdeaCommand{}, bus.Typed(topics.AddIdea)},
		{SummarizeCommand{}, bus.Typed(summary.Summarize)},
		{HeartbeatCommand{}, bus.Typed(presence.Heartbeat)},
	}

	for _, r := range registrations {
		if err := b.Register(r.cmd, r.handler); err != nil {
			return err
		}
	}
	return nil
}
