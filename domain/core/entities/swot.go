package entities

import "time"

// SwotType is the quadrant a SWOT entry belongs to.
type SwotType string

const (
	SwotStrengths     SwotType = "strengths"
	SwotWeaknesses    SwotType = "weaknesses"
	SwotOpportunities SwotType = "opportunities"
	SwotThreats       SwotType = "threats"
)

// SwotEntry is a single note in one SWOT quadrant of a topic.
type SwotEntry struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	Type      SwotType  `json:"type"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// SwotInput carries the caller-supplied fields for a new SWOT entry.
type SwotInput struct {
	ID      string   `json:"id"`
	Type    SwotType `json:"type" validate:"required,oneof=strengths weaknesses opportunities threats"`
	Content string   `json:"content" validate:"required,max=5000"`
	Author  string   `json:"author" validate:"max=200"`
}
