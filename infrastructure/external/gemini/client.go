// Package gemini summarizes text with Google's Generative Language API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/external"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	ModelCacheTTL  = 10 * time.Minute

	requestTimeout = 60 * time.Second
	maxErrorBody   = 2 << 10
)

// DefaultModels is tried in order when the model list cannot be fetched.
var DefaultModels = []string{
	"gemini-2.5-pro",
	"gemini-2.5-flash",
	"gemini-2.0-pro",
	"gemini-2.0-flash",
	"gemini-1.5-pro",
	"gemini-1.5-flash",
	"gemini-1.0-pro",
}

// Config configures the client.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Breaker    external.BreakerConfig
}

// Client implements ports.Summarizer.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *external.Breaker
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	models   []string
	cachedAt time.Time
}

var _ ports.Summarizer = (*Client)(nil)

// NewClient creates a new Gemini client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Breaker.Name == "" {
		cfg.Breaker = external.DefaultBreakerConfig("gemini")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	logger = logger.Named("gemini")
	return &Client{
		cfg:     cfg,
		http:    httpClient,
		breaker: external.NewBreaker(cfg.Breaker, logger),
		logger:  logger,
		now:     time.Now,
	}
}

// Summarize sends prompt to the best available model, falling back
// through the ranked list until one produces text.
func (c *Client) Summarize(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", ports.ErrNotConfigured
	}

	result, err := c.breaker.Do(func() (interface{}, error) {
		var failures []error
		for _, model := range c.Models(ctx) {
			text, err := c.generate(ctx, model, prompt)
			if err == nil {
				return text, nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failures = append(failures, fmt.Errorf("%s: %w", model, err))
		}
		c.logger.Warn("All Gemini models failed", zap.Errors("errors", failures))
		return nil, fmt.Errorf("all gemini models failed: %w", errors.Join(failures...))
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Models returns the ranked candidate models, refreshing the cached list
// once it is older than ModelCacheTTL.
func (c *Client) Models(ctx context.Context) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.models != nil && now.Sub(c.cachedAt) < ModelCacheTTL {
		return c.models
	}

	models, err := c.listModels(ctx)
	if err != nil || len(models) == 0 {
		c.logger.Warn("Gemini model list failed, falling back to defaults", zap.Error(err))
		models = DefaultModels
	} else {
		models = RankModels(models)
	}

	c.models = models
	c.cachedAt = now
	return models
}

type modelList struct {
	Models []struct {
		Name                       string   `json:"name"`
		SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	} `json:"models"`
}

func (c *Client) listModels(ctx context.Context) ([]string, error) {
	endpoint := c.cfg.BaseURL + "/models?" + url.Values{"key": {c.cfg.APIKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var list modelList
	if err := c.do(req, &list); err != nil {
		return nil, fmt.Errorf("model list failed: %w", err)
	}

	var names []string
	for _, m := range list.Models {
		if !slices.Contains(m.SupportedGenerationMethods, "generateContent") {
			continue
		}
		name := strings.TrimPrefix(m.Name, "models/")
		if strings.Contains(name, "gemini") {
			names = append(names, name)
		}
	}
	return names, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, model, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?%s",
		c.cfg.BaseURL, url.PathEscape(model), url.Values{"key": {c.cfg.APIKey}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp generateResponse
	if err := c.do(req, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates returned")
	}
	var text strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return "", errors.New("empty response")
	}
	return text.String(), nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
