package queries

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/ports"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/application/queries/bus"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/persistence/snapshot"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/infrastructure/presence"
	apperrors "github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/errors"
)

type stubPapers struct {
	papers []entities.Paper
	err    error
	query  string
}

func (s *stubPapers) Search(_ context.Context, query string) ([]entities.Paper, error) {
	s.query = query
	return s.papers, s.err
}

func newQueryBus(t *testing.T, papers ports.PaperSearcher) (*bus.QueryBus, *snapshot.Store, *presence.Tracker) {
	t.Helper()
	store := snapshot.Open(snapshot.Options{Enabled: false}, zap.NewNop())
	tracker := presence.NewTracker(presence.DefaultTTL)
	b := bus.NewQueryBus()
	require.NoError(t, Register(b, Dependencies{Store: store, Presence: tracker, Papers: papers}))
	return b, store, tracker
}

func ask(t *testing.T, b *bus.QueryBus, q bus.Query) interface{} {
	t.Helper()
	result, err := b.Ask(context.Background(), q)
	require.NoError(t, err)
	return result
}

func TestSeededWorkspaceReads(t *testing.T) {
	b, _, _ := newQueryBus(t, &stubPapers{})

	groups := ask(t, b, ListGroupsQuery{}).([]entities.GroupView)
	require.Len(t, groups, 1)
	assert.Equal(t, "alpha-lab", groups[0].ID)

	topics := ask(t, b, ListTopicsQuery{GroupID: "alpha-lab"}).([]entities.TopicView)
	assert.Len(t, topics, 3)

	members := ask(t, b, ListMembersQuery{GroupID: "alpha-lab"}).([]entities.Member)
	require.Len(t, members, 1)
	assert.Equal(t, entities.RoleHost, members[0].Role)

	topic := ask(t, b, GetTopicQuery{TopicID: "energy-storage"}).(entities.TopicView)
	assert.Equal(t, entities.StatusSynthesizing, topic.Status)
}

func TestResolveInvite(t *testing.T) {
	b, _, _ := newQueryBus(t, &stubPapers{})

	result := ask(t, b, ResolveInviteQuery{Code: "ALPHA2026"}).(InviteResult)
	assert.Equal(t, "alpha-lab", result.Group.ID)
	assert.Len(t, result.Topics, 3)

	_, err := b.Ask(context.Background(), ResolveInviteQuery{Code: "NOPE1234"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMissingEntities(t *testing.T) {
	b, _, _ := newQueryBus(t, &stubPapers{})

	for _, q := range []bus.Query{GetGroupQuery{GroupID: "x"}, GetTopicQuery{TopicID: "x"}, GetGraphQuery{TopicID: "x"}} {
		_, err := b.Ask(context.Background(), q)
		assert.True(t, apperrors.IsNotFound(err), "%T", q)
	}
}

func TestGetGraph(t *testing.T) {
	b, store, _ := newQueryBus(t, &stubPapers{})
	xml := "<mxGraphModel/>"
	store.UpdateTopic(context.Background(), "nano-bio", entities.TopicPatch{GraphXML: &xml})

	result := ask(t, b, GetGraphQuery{TopicID: "nano-bio"}).(GraphResult)

	assert.Equal(t, xml, result.GraphXML)
}

func TestGetPresenceDoesNotRecordHeartbeat(t *testing.T) {
	b, _, tracker := newQueryBus(t, &stubPapers{})
	tracker.Update("nano-bio", entities.PresenceMember{ID: "m1"})

	roster := ask(t, b, GetPresenceQuery{TopicID: "nano-bio"}).([]entities.PresenceRecord)
	assert.Len(t, roster, 1)

	assert.Empty(t, ask(t, b, GetPresenceQuery{}).([]entities.PresenceRecord))
}

func TestSearchPapers(t *testing.T) {
	papers := &stubPapers{papers: []entities.Paper{{Title: "Hydrogen storage", Source: "OpenAlex"}}}
	b, _, _ := newQueryBus(t, papers)

	result := ask(t, b, SearchPapersQuery{Query: "  hydrogen  "}).(PapersResult)

	assert.Equal(t, "hydrogen", papers.query)
	assert.Len(t, result.Results, 1)
}

func TestSearchPapersErrors(t *testing.T) {
	tests := []struct {
		name    string
		query   SearchPapersQuery
		err     error
		errType apperrors.ErrorType
	}{
		{"empty query", SearchPapersQuery{Query: " "}, nil, apperrors.ErrorTypeValidation},
		{"unknown source", SearchPapersQuery{Query: "x", Source: "bing"}, nil, apperrors.ErrorTypeValidation},
		{"scholar disabled", SearchPapersQuery{Query: "x", Source: SourceScholar}, nil, apperrors.ErrorTypeUnavailable},
		{"upstream down", SearchPapersQuery{Query: "x"}, errors.New("status 502"), apperrors.ErrorTypeExternal},
		{"upstream slow", SearchPapersQuery{Query: "x"}, fmt.Errorf("get works: %w", context.DeadlineExceeded), apperrors.ErrorTypeTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, _ := newQueryBus(t, &stubPapers{err: tt.err})
			_, err := b.Ask(context.Background(), tt.query)
			assert.True(t, apperrors.IsType(err, tt.errType), "got %v", err)
		})
	}
}

func TestSearchPapersNeverReturnsNil(t *testing.T) {
	b, _, _ := newQueryBus(t, &stubPapers{})

	result := ask(t, b, SearchPapersQuery{Query: "nothing"}).(PapersResult)

	assert.NotNil(t, result.Results)
}
