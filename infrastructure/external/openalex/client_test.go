package openalex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
)

const worksFixture = `{
  "results": [
    {
      "id": "https://openalex.org/W1",
      "display_name": "Solid-state hydrogen storage",
      "publication_year": 2021,
      "authorships": [
        {"author": {"display_name": "A. Nguyen"}},
        {"author": {}},
        {"author": {"display_name": "B. Tran"}}
      ],
      "abstract_inverted_index": {
        "Hydrogen": [0], "clean.": [2], "Storage": [3], "is": [1, 4], "hard.": [5], "We": [6], "review.": [7]
      }
    },
    {
      "id": "https://openalex.org/W2",
      "display_name": "Untitled preprint",
      "publication_year": null,
      "authorships": []
    }
  ]
}`

func TestSearch(t *testing.T) {
	var gotQuery, gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/works", r.URL.Path)
		gotQuery = r.URL.Query().Get("search")
		gotPerPage = r.URL.Query().Get("per-page")
		_, _ = w.Write([]byte(worksFixture))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zap.NewNop())
	papers, err := c.Search(context.Background(), "hydrogen storage")

	require.NoError(t, err)
	assert.Equal(t, "hydrogen storage", gotQuery)
	assert.Equal(t, "5", gotPerPage)
	require.Len(t, papers, 2)

	assert.Equal(t, entities.Paper{
		Title:   "Solid-state hydrogen storage",
		URL:     "https://openalex.org/W1",
		Authors: "A. Nguyen, B. Tran",
		Year:    2021,
		Source:  "OpenAlex",
		Summary: "Hydrogen is clean. Storage is hard.",
	}, papers[0])

	assert.Equal(t, "Untitled preprint", papers[1].Summary)
	assert.Zero(t, papers[1].Year)
}

func TestSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, zap.NewNop())
	_, err := c.Search(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestAbstractFromInvertedIndex(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{"nil", nil, ""},
		{"ordered", map[string][]int{"b": {1}, "a": {0}, "c": {2}}, "a b c"},
		{"repeated word", map[string][]int{"the": {0, 2}, "cat": {1}, "mat": {3}}, "the cat the mat"},
		{"gap", map[string][]int{"a": {0}, "z": {3}}, "a z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AbstractFromInvertedIndex(tt.index))
		})
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"empty", "   ", ""},
		{"one sentence", "Just one.", "Just one."},
		{"collapses whitespace", "First  one.\n\tSecond!   Third?", "First one. Second!"},
		{"no terminator", "no punctuation here", "no punctuation here"},
		{"abbreviation without space", "Version 2.5 works. It is fast. Done.", "Version 2.5 works. It is fast."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.text))
		})
	}
}
