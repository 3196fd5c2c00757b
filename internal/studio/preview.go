package studio

import (
	"fmt"
	"strings"

	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/model"
)

// EmptyGlyph marks a tier cell without rewards.
const EmptyGlyph = "—"

// FallbackGlyph stands for rewards no rule matches, including ids missing
// from the catalog.
const FallbackGlyph = "🎁"

// Cell is one track's side of a preview column.
type Cell struct {
	Track catalog.Track
	// Glyphs is the emoji strip shown on the tile, or EmptyGlyph.
	Glyphs string
	// Tooltip lines: tier, track, blank, then reward names or "No rewards".
	Tooltip []string
}

// Column is one tier id across both tracks.
type Column struct {
	TierID  string
	Premium Cell
	Free    Cell
}

// Preview lays out every tier id present in either track.
func (s *Studio) Preview() []Column {
	ids := s.tracks.TierIDs()
	out := make([]Column, 0, len(ids))
	for _, id := range ids {
		out = append(out, Column{
			TierID:  id,
			Premium: s.cell(catalog.Premium, id),
			Free:    s.cell(catalog.Free, id),
		})
	}
	return out
}

func (s *Studio) cell(track catalog.Track, tierID string) Cell {
	c := Cell{Track: track}
	tier, _ := s.Tier(track, tierID)
	var glyphs strings.Builder
	var names []string
	for _, rid := range tier.Rewards {
		r, ok := s.rewards.Lookup(rid)
		if !ok {
			glyphs.WriteString(FallbackGlyph)
			names = append(names, "Reward "+rid)
			continue
		}
		glyphs.WriteString(Emoji(r))
		names = append(names, r.Name)
	}
	c.Glyphs = glyphs.String()
	if c.Glyphs == "" {
		c.Glyphs = EmptyGlyph
	}
	c.Tooltip = []string{fmt.Sprintf("Tier %s", tierID), trackTitle(track), ""}
	if len(names) == 0 {
		c.Tooltip = append(c.Tooltip, "No rewards")
	} else {
		c.Tooltip = append(c.Tooltip, names...)
	}
	return c
}

func trackTitle(track catalog.Track) string {
	switch track {
	case catalog.Premium:
		return "Premium"
	case catalog.Free:
		return "Free"
	default:
		return string(track)
	}
}

// Emoji picks the glyph shown for a reward on a preview tile.
func Emoji(r model.Reward) string {
	switch p := r.Payload.(type) {
	case model.MoneyPayload:
		return "💰"
	case nil, model.CommandPayload:
		name := strings.ToLower(r.Name)
		switch {
		case containsAny(name, "crate", "key", "supply"):
			return "📦"
		case containsAny(name, "boost", "vip"):
			return "⭐"
		case containsAny(name, "cash", "coin", "gold"):
			return "💰"
		default:
			return "⚙️"
		}
	case model.ItemPayload:
		slot, _ := p.Primary()
		mat := strings.ToLower(slot.Material)
		switch {
		case containsAny(mat, "sword", "axe"):
			return "🗡️"
		case containsAny(mat, "pickaxe", "shovel", "hoe"):
			return "⛏️"
		case containsAny(mat, "chestplate", "helmet", "leggings", "boots"):
			return "🛡️"
		case containsAny(mat, "elytra"):
			return "🪽"
		case containsAny(mat, "totem"):
			return "🗿"
		case containsAny(mat, "apple"):
			return "🍎"
		case containsAny(mat, "pearl"):
			return "🧿"
		default:
			return FallbackGlyph
		}
	default:
		return FallbackGlyph
	}
}

// QuestLines lists quests as "id: name" in listing order.
func (s *Studio) QuestLines() []string {
	ids := s.quests.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		q, _ := s.quests.Lookup(id)
		out[i] = fmt.Sprintf("%s: %s", id, q.Name)
	}
	return out
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
