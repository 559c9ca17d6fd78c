package entities

import "time"

// Topic is a tab inside a group where SWOT entries and ideas are collected.
type Topic struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"group_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Summary     string    `json:"summary"`
	GraphXML    string    `json:"graph_xml"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// TopicView is a Topic augmented with counts computed at read time.
type TopicView struct {
	Topic
	MemberCount int `json:"member_count"`
	SwotCount   int `json:"swot_count"`
	IdeaCount   int `json:"idea_count"`
}

// TopicInput carries the caller-supplied fields for a new topic.
type TopicInput struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Summary     string `json:"summary"`
	GraphXML    string `json:"graph_xml"`
	Status      string `json:"status" validate:"max=100"`
}

// TopicPatch is a shallow update; nil fields are left untouched.
type TopicPatch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Summary     *string `json:"summary,omitempty"`
	GraphXML    *string `json:"graph_xml,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,max=100"`
}

// Apply merges the non-nil fields of the patch onto t.
func (p TopicPatch) Apply(t *Topic) {
	setIfPresent(&t.Title, p.Title)
	setIfPresent(&t.Description, p.Description)
	setIfPresent(&t.Summary, p.Summary)
	setIfPresent(&t.GraphXML, p.GraphXML)
	setIfPresent(&t.Status, p.Status)
}
