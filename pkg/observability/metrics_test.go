package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("test")
	b := NewCollector("test")

	a.EventsDropped.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.EventsDropped))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EventsDropped))
}

func TestRecordHelpers(t *testing.T) {
	c := NewCollector("test")

	c.RecordCommand("CreateGroup", time.Millisecond, nil)
	c.RecordCommand("CreateGroup", time.Millisecond, errors.New("boom"))
	c.RecordSnapshotWrite(nil)
	c.RecordSnapshotWrite(errors.New("read-only"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Commands.WithLabelValues("CreateGroup", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Commands.WithLabelValues("CreateGroup", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.SnapshotWrites.WithLabelValues("failure")))
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	c := NewCollector("test")
	r := chi.NewRouter()
	r.Use(MetricsMiddleware(c))
	r.Get("/api/groups/{groupId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/groups/alpha-lab", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/api/groups/{groupId}", "404")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	c := NewCollector("brainstorm")
	c.ActiveStreams.Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "brainstorm_active_streams 1")
}

func TestNoopTracing(t *testing.T) {
	tp := NoopTracing()
	_, span := tp.Tracer().Start(context.Background(), "store.CreateGroup")
	EndSpan(span, errors.New("ignored"))
	assert.NoError(t, tp.Shutdown(context.Background()))
}
