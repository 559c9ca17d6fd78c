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

// TopicHandler handles topic, diagram and contribution requests
type TopicHandler struct {
	base
}

// NewTopicHandler creates a new topic handler
func NewTopicHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *TopicHandler {
	return &TopicHandler{base{commandBus, queryBus, errorHandler, logger}}
}

// UpdateGraphRequest accepts the diagram under either key the editor sends.
type UpdateGraphRequest struct {
	GraphXML *string `json:"graph_xml"`
	XML      *string `json:"xml"`
}

func (req UpdateGraphRequest) document() string {
	switch {
	case req.GraphXML != nil:
		return *req.GraphXML
	case req.XML != nil:
		return *req.XML
	}
	return ""
}

// GetTopic handles GET /api/topics/{topicId}
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetTopicQuery{TopicID: chi.URLParam(r, "topicId")})
}

// UpdateTopic handles PATCH /api/topics/{topicId}
func (h *TopicHandler) UpdateTopic(w http.ResponseWriter, r *http.Request) {
	var patch entities.TopicPatch
	if !h.decode(w, r, &patch) {
		return
	}
	h.send(w, r, http.StatusOK, commands.UpdateTopicCommand{
		TopicID: chi.URLParam(r, "topicId"),
		Patch:   patch,
	})
}

// GetGraph handles GET /api/topics/{topicId}/graph
func (h *TopicHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetGraphQuery{TopicID: chi.URLParam(r, "topicId")})
}

// UpdateGraph handles POST /api/topics/{topicId}/graph
func (h *TopicHandler) UpdateGraph(w http.ResponseWriter, r *http.Request) {
	var req UpdateGraphRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.send(w, r, http.StatusOK, commands.UpdateGraphCommand{
		TopicID:  chi.URLParam(r, "topicId"),
		GraphXML: req.document(),
	})
}

// ListSwot handles GET /api/topics/{topicId}/swot
func (h *TopicHandler) ListSwot(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListSwotQuery{TopicID: chi.URLParam(r, "topicId")})
}

// AddSwot handles POST /api/topics/{topicId}/swot
func (h *TopicHandler) AddSwot(w http.ResponseWriter, r *http.Request) {
	var in entities.SwotInput
	if !h.decode(w, r, &in) {
		return
	}
	h.send(w, r, http.StatusCreated, commands.AddSwotCommand{
		TopicID: chi.URLParam(r, "topicId"),
		Input:   in,
	})
}

// ListIdeas handles GET /api/topics/{topicId}/ideas
func (h *TopicHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListIdeasQuery{TopicID: chi.URLParam(r, "topicId")})
}

// AddIdea handles POST /api/topics/{topicId}/ideas
func (h *TopicHandler) AddIdea(w http.ResponseWriter, r *http.Request) {
	var in entities.IdeaInput
	if !h.decode(w, r, &in) {
		return
	}
	h.send(w, r, http.StatusCreated, commands.AddIdeaCommand{
		TopicID: chi.URLParam(r, "topicId"),
		Input:   in,
	})
}
