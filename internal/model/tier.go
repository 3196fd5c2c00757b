package model

import (
	"gopkg.in/yaml.v3"
)

// Tier is a progression checkpoint inside one track.
type Tier struct {
	RequiredPoints int
	// Rewards lists reward identifiers in the order entered. Duplicates are kept.
	Rewards []string
	Extra   Extras

	order []string
	kept  verbatim
}

// DefaultTier is the record inserted by Add.
func DefaultTier() Tier {
	return Tier{RequiredPoints: 0, Rewards: []string{}}
}

// Clone deep-copies the tier.
func (t Tier) Clone() Tier {
	t.Rewards = cloneStrings(t.Rewards)
	t.Extra = t.Extra.Clone()
	t.order = cloneStrings(t.order)
	t.kept = t.kept.clone()
	return t
}

// References reports whether the tier lists rewardID.
func (t Tier) References(rewardID string) bool {
	for _, id := range t.Rewards {
		if id == rewardID {
			return true
		}
	}
	return false
}

// Node encodes the tier in its persisted shape.
func (t Tier) Node() *yaml.Node {
	pairs := t.fields()
	t.kept.restore(pairs)
	return mapping(pairs, t.Extra, t.order)
}

func (t Tier) fields() []pair {
	rewards := t.Rewards
	if rewards == nil {
		rewards = []string{}
	}
	pairs := []pair{
		{"required-points", intNode(t.RequiredPoints)},
		{"rewards", listNode(rewards)},
	}
	return pairs
}

// MarshalYAML implements yaml.Marshaler.
func (t Tier) MarshalYAML() (any, error) { return t.Node(), nil }

// UnmarshalYAML implements yaml.Unmarshaler with lenient decoding.
func (t *Tier) UnmarshalYAML(n *yaml.Node) error {
	rec, err := DecodeTier(n)
	if err != nil {
		return err
	}
	*t = rec
	return nil
}

// DecodeTier reads a tier from a loaded document.
func DecodeTier(n *yaml.Node) (Tier, error) {
	return decodeTier(n, false)
}

// ParseTier validates raw YAML for the advanced editor.
func ParseTier(text string) (Tier, error) {
	root, err := ParseMapping("tier", text)
	if err != nil {
		return Tier{}, err
	}
	return decodeTier(root, true)
}

func decodeTier(n *yaml.Node, strict bool) (Tier, error) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return Tier{}, &FormatError{Entity: "tier", Err: ErrNotMapping}
	}
	d := decoder{entity: "tier", strict: strict}
	t := Tier{Rewards: []string{}}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v := n.Content[i+1]
		switch key {
		case "required-points", "required_points":
			t.order = append(t.order, "required-points")
			if d.track(func() { t.RequiredPoints = d.integer(key, v, 0) }) {
				t.kept.remember("required-points", v)
			}
		case "rewards":
			t.order = append(t.order, key)
			if d.track(func() { t.Rewards = d.lines(key, v) }) {
				t.kept.remember(key, v)
			}
		default:
			t.order = append(t.order, key)
			t.Extra = append(t.Extra, Field{Key: key, Value: CloneNode(v)})
		}
	}
	if d.err != nil {
		return Tier{}, d.err
	}
	t.kept.settle(t.fields())
	return t, nil
}
