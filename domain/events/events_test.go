package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelNames(t *testing.T) {
	assert.Equal(t, "group:alpha-lab", GroupChannel("alpha-lab"))
	assert.Equal(t, "topic:nano-bio", TopicChannel("nano-bio"))
}

func TestEventJSONOmitsChannel(t *testing.T) {
	ev := New(TopicChannel("t1"), IdeaAdded, map[string]string{"id": "idea-1"})

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"idea_added","payload":{"id":"idea-1"}}`, string(data))
}
