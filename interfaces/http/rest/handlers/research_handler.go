package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries"
	querybus "github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries/bus"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
)

// ResearchHandler handles literature search and idea summaries
type ResearchHandler struct {
	base
}

// NewResearchHandler creates a new research handler
func NewResearchHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *ResearchHandler {
	return &ResearchHandler{base{commandBus, queryBus, errorHandler, logger}}
}

// SearchPapersRequest is the body of POST /api/papers/search.
type SearchPapersRequest struct {
	Query  string `json:"query"`
	Source string `json:"source"`
}

// SummaryRequest is the body of POST /api/summary.
type SummaryRequest struct {
	Ideas   []string `json:"ideas"`
	TopicID string   `json:"topicId"`
}

// SearchPapers handles POST /api/papers/search
func (h *ResearchHandler) SearchPapers(w http.ResponseWriter, r *http.Request) {
	var req SearchPapersRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.ask(w, r, queries.SearchPapersQuery{Query: req.Query, Source: req.Source})
}

// Summarize handles POST /api/summary
func (h *ResearchHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.send(w, r, http.StatusOK, commands.SummarizeCommand{Ideas: req.Ideas, TopicID: req.TopicID})
}
