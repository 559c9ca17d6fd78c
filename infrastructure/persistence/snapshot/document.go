package snapshot

import "github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"

// FileName is the snapshot file written inside the data directory.
const FileName = "store.json"

// Document is the full persisted state: one id-keyed map per entity kind.
type Document struct {
	Groups      map[string]entities.Group     `json:"groups"`
	Topics      map[string]entities.Topic     `json:"topics"`
	Members     map[string]entities.Member    `json:"members"`
	SwotEntries map[string]entities.SwotEntry `json:"swot_entries"`
	Ideas       map[string]entities.Idea      `json:"ideas"`
}

// NewDocument returns an empty document with all collections allocated.
func NewDocument() Document {
	return Document{
		Groups:      map[string]entities.Group{},
		Topics:      map[string]entities.Topic{},
		Members:     map[string]entities.Member{},
		SwotEntries: map[string]entities.SwotEntry{},
		Ideas:       map[string]entities.Idea{},
	}
}

// normalize allocates collections missing from a decoded file so that
// a partial document still behaves like an empty one.
func (d *Document) normalize() {
	if d.Groups == nil {
		d.Groups = map[string]entities.Group{}
	}
	if d.Topics == nil {
		d.Topics = map[string]entities.Topic{}
	}
	if d.Members == nil {
		d.Members = map[string]entities.Member{}
	}
	if d.SwotEntries == nil {
		d.SwotEntries = map[string]entities.SwotEntry{}
	}
	if d.Ideas == nil {
		d.Ideas = map[string]entities.Idea{}
	}
}

// clone copies every collection. Records are values, and the only pointer
// field (Member.TopicID) is never mutated in place.
func (d Document) clone() Document {
	out := NewDocument()
	for k, v := range d.Groups {
		out.Groups[k] = v
	}
	for k, v := range d.Topics {
		out.Topics[k] = v
	}
	for k, v := range d.Members {
		out.Members[k] = v
	}
	for k, v := range d.SwotEntries {
		out.SwotEntries[k] = v
	}
	for k, v := range d.Ideas {
		out.Ideas[k] = v
	}
	return out
}
