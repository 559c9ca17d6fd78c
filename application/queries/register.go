package queries

import (
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries/bus"
)

// Dependencies are the ports the query handlers read from.
type Dependencies struct {
	Store    ports.EntityStore
	Presence ports.PresenceTracker
	Papers   ports.PaperSearcher
}

// Register wires every query handler into b.
func Register(b *bus.QueryBus, deps Dependencies) error {
	h := NewHandler(deps.Store, deps.Presence, deps.Papers)

	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{ListGroupsQuery{}, bus.Typed(h.ListGroups)},
		{GetGroupQuery{}, bus.Typed(h.GetGroup)},
		{ListTopicsQuery{}, bus.Typed(h.ListTopics)},
		{ListMembersQuery{}, bus.Typed(h.ListMembers)},
		{GetTopicQuery{}, bus.Typed(h.GetTopic)},
		{GetGraphQuery{}, bus.Typed(h.GetGraph)},
		{ListSwotQuery{}, bus.Typed(h.ListSwot)},
		{ListIdeasQuery{}, bus.Typed(h.ListIdeas)},
		{ResolveInviteQuery{}, bus.Typed(h.ResolveInvite)},
		{GetPresenceQuery{}, bus.Typed(h.GetPresence)},
		{SearchPapersQuery{}, bus.Typed(h.SearchPapers)},
	}

	for _, r := range registrations {
		if err := b.Register(r.query, r.handler); err != nil {
			return err
		}
	}
	return nil
}
