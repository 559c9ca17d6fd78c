package entities

// Defaults applied by the store when a create call leaves a field empty.
const (
	DefaultPrivacy  = "private"
	DefaultSize     = "small"
	DefaultHostName = "Host"
	DefaultStatus   = "open"
	DefaultRole     = RoleIdea
	DefaultAuthor   = "Member"
)

// Status values used by the demo dataset and the client.
const (
	StatusOpen         = "open"
	StatusSynthesizing = "synthesizing"
)
