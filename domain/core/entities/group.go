package entities

import "time"

// Group is a brainstorming workspace that owns topics and members.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Focus       string    `json:"focus"`
	Description string    `json:"description"`
	Privacy     string    `json:"privacy"`
	Size        string    `json:"size"`
	HostName    string    `json:"host_name"`
	InviteCode  string    `json:"invite_code"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupView is a Group augmented with counts computed at read time.
type GroupView struct {
	Group
	MemberCount int `json:"member_count"`
	TopicCount  int `json:"topic_count"`
}

// GroupInput carries the caller-supplied fields for a new group.
// Empty fields fall back to the group defaults.
type GroupInput struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required,max=200"`
	Focus       string `json:"focus" validate:"max=500"`
	Description string `json:"description" validate:"max=5000"`
	Privacy     string `json:"privacy" validate:"omitempty,oneof=private public"`
	Size        string `json:"size" validate:"max=50"`
	HostName    string `json:"host_name" validate:"max=200"`
	InviteCode  string `json:"invite_code" validate:"max=32"`
	Status      string `json:"status" validate:"max=100"`
}

// GroupPatch is a shallow update; nil fields are left untouched.
type GroupPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Focus       *string `json:"focus,omitempty" validate:"omitempty,max=500"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Privacy     *string `json:"privacy,omitempty" validate:"omitempty,oneof=private public"`
	Size        *string `json:"size,omitempty" validate:"omitempty,max=50"`
	HostName    *string `json:"host_name,omitempty" validate:"omitempty,max=200"`
	InviteCode  *string `json:"invite_code,omitempty" validate:"omitempty,max=32"`
	Status      *string `json:"status,omitempty" validate:"omitempty,max=100"`
}

// Apply merges the non-nil fields of the patch onto g.
func (p GroupPatch) Apply(g *Group) {
	setIfPresent(&g.Name, p.Name)
	setIfPresent(&g.Focus, p.Focus)
	setIfPresent(&g.Description, p.Description)
	setIfPresent(&g.Privacy, p.Privacy)
	setIfPresent(&g.Size, p.Size)
	setIfPresent(&g.HostName, p.HostName)
	setIfPresent(&g.InviteCode, p.InviteCode)
	setIfPresent(&g.Status, p.Status)
}

// IsEmpty reports whether the patch changes nothing.
func (p GroupPatch) IsEmpty() bool {
	return p.Name == nil && p.Focus == nil && p.Description == nil && p.Privacy == nil &&
		p.Size == nil && p.HostName == nil && p.InviteCode == nil && p.Status == nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
