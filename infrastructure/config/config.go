package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress  string   `yaml:"server_address"`
	Environment    string   `yaml:"environment"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// Entity store
	EnablePersistence bool   `yaml:"enable_persistence"`
	DataDir           string `yaml:"data_dir"`

	// Realtime
	StreamHeartbeat  time.Duration `yaml:"stream_heartbeat"`
	StreamBufferSize int           `yaml:"stream_buffer_size"`
	PresenceTTL      time.Duration `yaml:"presence_ttl"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Observability
	EnableMetrics bool   `yaml:"enable_metrics"`
	EnableTracing bool   `yaml:"enable_tracing"`
	OTLPEndpoint  string `yaml:"otlp_endpoint"`

	// Upstream services
	GeminiAPIKey    string `yaml:"gemini_api_key"`
	OpenAlexBaseURL string `yaml:"openalex_base_url"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		ServerAddress:     ":8080",
		Environment:       "development",
		AllowedOrigins:    []string{"*"},
		EnablePersistence: true,
		DataDir:           "/tmp/brainstorm-store",
		StreamHeartbeat:   15 * time.Second,
		StreamBufferSize:  64,
		PresenceTTL:       30 * time.Second,
		LogLevel:          "info",
		EnableMetrics:     true,
		EnableTracing:     false,
		OTLPEndpoint:      "localhost:4317",
		OpenAlexBaseURL:   "https://api.openalex.org",
	}
}

// LoadConfig layers defaults, the YAML file named by CONFIG_FILE (if any)
// and environment variables, in increasing priority.
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.OTLPEndpoint)
	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.OpenAlexBaseURL = getEnv("OPENALEX_BASE_URL", c.OpenAlexBaseURL)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}

	// Only an explicit "false" turns persistence off.
	if v, ok := os.LookupEnv("ENABLE_PERSISTENCE"); ok {
		c.EnablePersistence = strings.TrimSpace(v) != "false"
	}
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)

	var err error
	if c.StreamHeartbeat, err = getEnvDuration("STREAM_HEARTBEAT", c.StreamHeartbeat); err != nil {
		return err
	}
	if c.PresenceTTL, err = getEnvDuration("PRESENCE_TTL", c.PresenceTTL); err != nil {
		return err
	}
	if c.StreamBufferSize, err = getEnvInt("STREAM_BUFFER_SIZE", c.StreamBufferSize); err != nil {
		return err
	}
	return nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("SERVER_ADDRESS must not be empty")
	}
	switch c.Environment {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("unknown ENVIRONMENT %q", c.Environment)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	if c.EnablePersistence && c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required when persistence is enabled")
	}
	if c.StreamHeartbeat <= 0 {
		return fmt.Errorf("STREAM_HEARTBEAT must be positive")
	}
	if c.StreamBufferSize < 1 {
		return fmt.Errorf("STREAM_BUFFER_SIZE must be at least 1")
	}
	if c.PresenceTTL <= 0 {
		return fmt.Errorf("PRESENCE_TTL must be positive")
	}
	if c.EnableTracing && c.OTLPEndpoint == "" {
		return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required when tracing is enabled")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
