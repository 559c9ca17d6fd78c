package entities

import "time"

// Idea is a free-form contribution to a topic.
type Idea struct {
	ID        string    `json:"id"`
	TopicID   string    `json:"topic_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// IdeaInput carries the caller-supplied fields for a new idea.
type IdeaInput struct {
	ID      string `json:"id"`
	Content string `json:"content" validate:"required,max=5000"`
	Author  string `json:"author" validate:"max=200"`
}
