package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries"
	querybus "github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
)

// GroupHandler handles group, member and invite requests
type GroupHandler struct {
	base
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *GroupHandler {
	return &GroupHandler{base{commandBus, queryBus, errorHandler, logger}}
}

// ListGroups handles GET /api/groups
func (h *GroupHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListGroupsQuery{})
}

// CreateGroup handles POST /api/groups
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var in entities.GroupInput
	if !h.decode(w, r, &in) {
		return
	}
	h.send(w, r, http.StatusCreated, commands.CreateGroupCommand{Input: in})
}

// GetGroup handles GET /api/groups/{groupId}
func (h *GroupHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetGroupQuery{GroupID: chi.URLParam(r, "groupId")})
}

// UpdateGroup handles PATCH /api/groups/{groupId}
func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var patch entities.GroupPatch
	if !h.decode(w, r, &patch) {
		return
	}
	h.send(w, r, http.StatusOK, commands.UpdateGroupCommand{
		GroupID: chi.URLParam(r, "groupId"),
		Patch:   patch,
	})
}

// RegenerateInvite handles POST /api/groups/{groupId}/invite
func (h *GroupHandler) RegenerateInvite(w http.ResponseWriter, r *http.Request) {
	h.send(w, r, http.StatusOK, commands.RegenerateInviteCommand{GroupID: chi.URLParam(r, "groupId")})
}

// ListMembers handles GET /api/groups/{groupId}/members
func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListMembersQuery{GroupID: chi.URLParam(r, "groupId")})
}

// AddMember handles POST /api/groups/{groupId}/members
func (h *GroupHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var in entities.MemberInput
	if !h.decode(w, r, &in) {
		return
	}
	h.send(w, r, http.StatusCreated, commands.AddMemberCommand{
		GroupID: chi.URLParam(r, "groupId"),
		Input:   in,
	})
}

// ListTopics handles GET /api/groups/{groupId}/topics
func (h *GroupHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListTopicsQuery{GroupID: chi.URLParam(r, "groupId")})
}

// CreateTopic handles POST /api/groups/{groupId}/topics
func (h *GroupHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var in entities.TopicInput
	if !h.decode(w, r, &in) {
		return
	}
	h.send(w, r, http.StatusCreated, commands.CreateTopicCommand{
		GroupID: chi.URLParam(r, "groupId"),
		Input:   in,
	})
}

// ResolveInvite handles GET /api/invites/{code}
func (h *GroupHandler) ResolveInvite(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ResolveInviteQuery{Code: chi.URLParam(r, "code")})
}
