package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/config"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/persistence/snapshot"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Environment = "test"
	cfg.LogLevel = "error"
	cfg.DataDir = filepath.Join(t.TempDir(), "store")
	return cfg
}

func TestInitializeContainer(t *testing.T) {
	cfg := testConfig(t)

	c, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, c.Store.Persistent())
	assert.FileExists(t, filepath.Join(cfg.DataDir, snapshot.FileName))
	assert.Equal(t, cfg.PresenceTTL, c.Presence.TTL())

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	for _, path := range []string{"/health", "/ready", "/metrics", "/api/groups"} {
		resp, err := srv.Client().Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestMetricsRouteFollowsConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnableMetrics = false
	cfg.EnablePersistence = false

	c, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, err = os.Stat(cfg.DataDir)
	assert.True(t, os.IsNotExist(err), "disabled persistence must not touch the data dir")
}

func TestInitializeContainerRejectsBadLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "chatty"

	_, _, err := InitializeContainer(context.Background(), cfg)

	assert.Error(t, err)
}

func TestApplyConfigChangesLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.EnablePersistence = false

	c, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	defer cleanup()
	require.False(t, c.Logger.Core().Enabled(zapcore.DebugLevel))

	next := *cfg
	next.LogLevel = "debug"
	c.ApplyConfig(cfg, &next)

	assert.True(t, c.Logger.Core().Enabled(zapcore.DebugLevel))
}
