package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/commands/bus"
	querybus "github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/common"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
)

// base holds what every resource handler needs to turn a request into a
// command or query and the result back into JSON.
type base struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

func (h *base) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := common.ParseJSONBody(w, r, v, common.DefaultMaxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return false
	}
	return true
}

func (h *base) send(w http.ResponseWriter, r *http.Request, status int, cmd bus.Command) {
	result, err := h.commandBus.Send(r.Context(), cmd)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, status, result)
}

func (h *base) ask(w http.ResponseWriter, r *http.Request, query querybus.Query) {
	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}
