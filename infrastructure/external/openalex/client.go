// Package openalex searches scholarly works through the OpenAlex API.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/external"
)

const (
	DefaultBaseURL = "https://api.openalex.org"
	DefaultPerPage = 5
	SourceName     = "OpenAlex"

	requestTimeout = 20 * time.Second
)

// Config configures the client.
type Config struct {
	BaseURL    string
	PerPage    int
	HTTPClient *http.Client
	Breaker    external.BreakerConfig
}

// Client implements ports.PaperSearcher.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *external.Breaker
	logger  *zap.Logger
}

var _ ports.PaperSearcher = (*Client)(nil)

// NewClient creates a new OpenAlex client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = external.DefaultBreakerConfig("openalex")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}

	logger = logger.Named("openalex")
	return &Client{
		cfg:     cfg,
		http:    httpClient,
		breaker: external.NewBreaker(cfg.Breaker, logger),
		logger:  logger,
	}
}

type work struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	PublicationYear int    `json:"publication_year"`
	Authorships     []struct {
		Author struct {
			DisplayName string `json:"display_name"`
		} `json:"author"`
	} `json:"authorships"`
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}

type worksPage struct {
	Results []work `json:"results"`
}

// Search returns up to PerPage works matching query.
func (c *Client) Search(ctx context.Context, query string) ([]entities.Paper, error) {
	result, err := c.breaker.Do(func() (interface{}, error) {
		return c.fetch(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	page := result.(worksPage)
	papers := make([]entities.Paper, 0, len(page.Results))
	for _, w := range page.Results {
		papers = append(papers, toPaper(w))
	}

	c.logger.Debug("Searched works", zap.String("query", query), zap.Int("results", len(papers)))
	return papers, nil
}

func (c *Client) fetch(ctx context.Context, query string) (worksPage, error) {
	params := url.Values{
		"search":   {query},
		"per-page": {strconv.Itoa(c.cfg.PerPage)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/works?"+params.Encode(), nil)
	if err != nil {
		return worksPage{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return worksPage{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return worksPage{}, fmt.Errorf("openalex returned status %d", resp.StatusCode)
	}

	var page worksPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return worksPage{}, fmt.Errorf("decoding works: %w", err)
	}
	return page, nil
}

func toPaper(w work) entities.Paper {
	authors := make([]string, 0, len(w.Authorships))
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			authors = append(authors, a.Author.DisplayName)
		}
	}

	text := AbstractFromInvertedIndex(w.AbstractInvertedIndex)
	if text == "" {
		text = w.DisplayName
	}

	return entities.Paper{
		Title:   w.DisplayName,
		URL:     w.ID,
		Authors: strings.Join(authors, ", "),
		Year:    w.PublicationYear,
		Source:  SourceName,
		Summary: Summarize(text),
	}
}
