package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so the host
// environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "SERVER_ADDRESS", "ENVIRONMENT", "LOG_LEVEL", "DATA_DIR",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "GEMINI_API_KEY", "OPENALEX_BASE_URL",
		"CORS_ALLOWED_ORIGINS", "ENABLE_METRICS", "ENABLE_TRACING",
		"STREAM_HEARTBEAT", "PRESENCE_TTL", "STREAM_BUFFER_SIZE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("ENABLE_PERSISTENCE", "true")
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 15*time.Second, cfg.StreamHeartbeat)
	assert.Equal(t, 30*time.Second, cfg.PresenceTTL)
}

func TestLoadConfigFromFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_address: ":9090"
environment: staging
data_dir: /var/lib/brainstorm
stream_heartbeat: 5s
presence_ttl: 1m
allowed_origins:
  - https://a.example
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_ADDRESS", ":7070")
	t.Setenv("STREAM_BUFFER_SIZE", "8")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "/var/lib/brainstorm", cfg.DataDir)
	assert.Equal(t, 5*time.Second, cfg.StreamHeartbeat)
	assert.Equal(t, time.Minute, cfg.PresenceTTL)
	assert.Equal(t, 8, cfg.StreamBufferSize)
	assert.Equal(t, []string{"https://a.example"}, cfg.AllowedOrigins)
}

func TestPersistenceToggle(t *testing.T) {
	tests := []struct {
		value   string
		enabled bool
	}{
		{"false", false},
		{"true", true},
		{"0", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ENABLE_PERSISTENCE", tt.value)

			cfg, err := LoadConfig()

			require.NoError(t, err)
			assert.Equal(t, tt.enabled, cfg.EnablePersistence)
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad duration", "STREAM_HEARTBEAT", "soon"},
		{"bad int", "STREAM_BUFFER_SIZE", "lots"},
		{"zero buffer", "STREAM_BUFFER_SIZE", "0"},
		{"negative ttl", "PRESENCE_TTL", "-1s"},
		{"bad level", "LOG_LEVEL", "loud"},
		{"bad environment", "ENVIRONMENT", "moon"},
		{"missing file", "CONFIG_FILE", "/nonexistent/config.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)

			_, err := LoadConfig()

			assert.Error(t, err)
		})
	}
}
