package snapshot

import (
	"time"

	"github.com/tinngotrung-dedicate/Brainstorm-Web/domain/core/entities"
	"github.com/tinngotrung-dedicate/Brainstorm-Web/pkg/utils"
)

const (
	seedGroupID    = "alpha-lab"
	seedInviteCode = "ALPHA2026"
)

// seedDocument builds the demo workspace used when no snapshot exists.
func seedDocument(now time.Time) Document {
	doc := NewDocument()

	doc.Groups[seedGroupID] = entities.Group{
		ID:          seedGroupID,
		Name:        "Alpha Lab",
		Focus:       "Nanomaterials for biomedical use",
		Description: "Overview: new materials and energy.",
		Privacy:     entities.DefaultPrivacy,
		Size:        entities.DefaultSize,
		HostName:    "Tin Ngo",
		InviteCode:  seedInviteCode,
		Status:      entities.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, t := range []struct {
		id, title, description, status string
	}{
		{"nano-bio", "Bio-nano materials", "Biomedicine and new materials", entities.StatusOpen},
		{"energy-storage", "Hydrogen storage", "Renewable energy", entities.StatusSynthesizing},
		{"ai-protocol", "AI for experiment prediction", "Simulation and optimisation", entities.StatusOpen},
	} {
		doc.Topics[t.id] = entities.Topic{
			ID:          t.id,
			GroupID:     seedGroupID,
			Title:       t.title,
			Description: t.description,
			Status:      t.status,
			CreatedAt:   now,
		}
	}

	hostID := utils.KindID("member", now)
	doc.Members[hostID] = entities.Member{
		ID:        hostID,
		GroupID:   seedGroupID,
		Name:      "Tin Ngo",
		Role:      entities.RoleHost,
		CreatedAt: now,
	}

	return doc
}
