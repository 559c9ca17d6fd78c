package entities

import "time"

// PresenceMember identifies who sent a presence heartbeat. The identity is
// taken on trust.
type PresenceMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// PresenceRecord is one entry of a topic's live roster.
type PresenceRecord struct {
	TopicID  string    `json:"topic_id"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Role     Role      `json:"role"`
	LastSeen time.Time `json:"last_seen"`
}
