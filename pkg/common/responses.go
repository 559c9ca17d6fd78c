package common

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBodyBytes caps request bodies; graph XML is the largest payload.
const DefaultMaxBodyBytes = 4 << 20

// RespondJSON sends data as the JSON response body.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// ExtractRequestID returns the request id assigned by the RequestID middleware,
// falling back to the inbound header.
func ExtractRequestID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return r.Header.Get(middleware.RequestIDHeader)
}

// ParseJSONBody decodes a JSON request body with a size limit.
// An empty body leaves v untouched.
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
