package entities

import "time"

// Role is the capability tag of a member. Enforcement happens outside the
// backend; the value is only stored and echoed.
type Role string

const (
	RoleHost Role = "host"
	RoleSwot Role = "swot"
	RoleIdea Role = "idea"
	RoleBoth Role = "both"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHost, RoleSwot, RoleIdea, RoleBoth:
		return true
	}
	return false
}

// Member belongs to a group and may be scoped to one topic.
type Member struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	TopicID   *string   `json:"topic_id"`
	CreatedAt time.Time `json:"created_at"`
}

// MemberInput carries the caller-supplied fields for a new member.
type MemberInput struct {
	ID      string  `json:"id"`
	Name    string  `json:"name" validate:"required,max=200"`
	Role    Role    `json:"role" validate:"omitempty,oneof=host swot idea both"`
	TopicID *string `json:"topic_id"`
}
