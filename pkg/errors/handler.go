package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/common"
)

// ErrorResponse represents the API error response format
type ErrorResponse struct {
	Error     bool                   `json:"error"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// ErrorHandler turns errors into JSON HTTP responses
type ErrorHandler struct {
	logger *zap.Logger
	debug  bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger, debug bool) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
		debug:  debug,
	}
}

// Handle processes an error and sends an HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	requestID := common.ExtractRequestID(r)

	appErr := GetAppError(err)
	if appErr == nil {
		h.logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestID),
		)

		message := "An internal error occurred"
		if h.debug {
			message = err.Error()
		}
		h.sendJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:     true,
			Type:      string(ErrorTypeInternal),
			Message:   message,
			RequestID: requestID,
		})
		return
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}
	h.logError(r, appErr, status, requestID)

	h.sendJSON(w, status, ErrorResponse{
		Error:     true,
		Type:      string(appErr.Type),
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: requestID,
	})
}

// HandleStatus sends an error response with a specific status code
func (h *ErrorHandler) HandleStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.logger.Warn("HTTP error",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("message", message),
	)

	h.sendJSON(w, status, ErrorResponse{
		Error:     true,
		Type:      statusToErrorType(status),
		Message:   message,
		RequestID: common.ExtractRequestID(r),
	})
}

func (h *ErrorHandler) logError(r *http.Request, err *AppError, status int, requestID string) {
	fields := []zap.Field{
		zap.String("error_type", string(err.Type)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("request_id", requestID),
	}
	if err.Cause != nil {
		fields = append(fields, zap.NamedError("cause", err.Cause))
	}

	switch {
	case status >= 500:
		if h.debug {
			fields = append(fields, zap.String("stack", err.StackTrace))
		}
		h.logger.Error(err.Message, fields...)
	case status >= 400:
		h.logger.Warn(err.Message, fields...)
	default:
		h.logger.Info(err.Message, fields...)
	}
}

func (h *ErrorHandler) sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode error response", zap.Error(err))
	}
}

func statusToErrorType(status int) string {
	switch status {
	case http.StatusBadRequest:
		return string(ErrorTypeValidation)
	case http.StatusNotFound:
		return string(ErrorTypeNotFound)
	case http.StatusGatewayTimeout:
		return string(ErrorTypeTimeout)
	case http.StatusServiceUnavailable:
		return string(ErrorTypeUnavailable)
	case http.StatusBadGateway:
		return string(ErrorTypeExternal)
	default:
		return string(ErrorTypeInternal)
	}
}

// Middleware recovers panics raised by downstream handlers
func (h *ErrorHandler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.Handle(w, r, NewInternalError(fmt.Sprintf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
