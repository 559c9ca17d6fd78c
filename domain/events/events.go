// Package events defines the real-time notifications pushed to clients after
// a mutation, and the channel naming scheme used to route them.
package events

// EventType names what happened to the payload entity.
type EventType string

const (
	GroupCreated   EventType = "group_created"
	GroupUpdated   EventType = "group_updated"
	MemberJoined   EventType = "member_joined"
	TopicCreated   EventType = "topic_created"
	TopicUpdated   EventType = "topic_updated"
	IdeaAdded      EventType = "idea_added"
	SwotAdded      EventType = "swot_added"
	SummaryUpdated EventType = "summary_updated"
	GraphUpdated   EventType = "graph_updated"
)

// Event is a single notification. Payload is the affected entity's current
// snapshot; Channel is the routing key and is not part of the wire format.
type Event struct {
	Channel string      `json:"-"`
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload"`
}

// New builds an event for the given channel.
func New(channel string, eventType EventType, payload interface{}) Event {
	return Event{Channel: channel, Type: eventType, Payload: payload}
}

const (
	groupPrefix = "group:"
	topicPrefix = "topic:"
)

// GroupChannel returns the channel carrying group-level updates.
func GroupChannel(groupID string) string {
	return groupPrefix + groupID
}

// TopicChannel returns the channel carrying topic-level updates.
func TopicChannel(topicID string) string {
	return topicPrefix + topicID
}
