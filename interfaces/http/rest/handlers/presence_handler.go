package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries"
	querybus "github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
)

// PresenceHandler serves topic rosters
type PresenceHandler struct {
	base
}

// NewPresenceHandler creates a new presence handler
func NewPresenceHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *PresenceHandler {
	return &PresenceHandler{base{commandBus, queryBus, errorHandler, logger}}
}

// HeartbeatRequest is the body of POST /api/presence.
type HeartbeatRequest struct {
	TopicID  string        `json:"topicId"`
	MemberID string        `json:"memberId"`
	Name     string        `json:"name"`
	Role     entities.Role `json:"role"`
}

// GetPresence handles GET /api/presence?topicId=
func (h *PresenceHandler) GetPresence(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetPresenceQuery{TopicID: r.URL.Query().Get("topicId")})
}

// Heartbeat handles POST /api/presence
func (h *PresenceHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	var req HeartbeatRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.send(w, r, http.StatusOK, commands.HeartbeatCommand{
		TopicID:  req.TopicID,
		MemberID: req.MemberID,
		Name:     req.Name,
		Role:     req.Role,
	})
}
