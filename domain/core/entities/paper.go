package entities

// Paper is a literature search hit shown next to a topic. It is never stored.
type Paper struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Authors string `json:"authors"`
	Year    int    `json:"year,omitempty"`
	Source  string `json:"source"`
	Summary string `json:"summary"`
}
