package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Logger creates a logging middleware. Probe and scrape endpoints are
// logged at debug so they do not drown out API traffic.
func Logger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			level := zap.InfoLevel
			switch r.URL.Path {
			case "/health", "/ready", "/metrics":
				level = zap.DebugLevel
			}

			if ce := logger.Check(level, "HTTP Request"); ce != nil {
				ce.Write(
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("requestID", middleware.GetReqID(r.Context())),
					zap.String("remoteAddr", r.RemoteAddr),
					zap.String("userAgent", r.UserAgent()),
				)
			}
		})
	}
}
