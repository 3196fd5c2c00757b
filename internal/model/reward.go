package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RewardType tags the payload variant of a reward.
type RewardType string

const (
	RewardCommand RewardType = "command"
	RewardItem    RewardType = "item"
	RewardMoney   RewardType = "money"
)

// RewardTypes lists the variants in display order.
var RewardTypes = []RewardType{RewardCommand, RewardItem, RewardMoney}

// ParseRewardType normalizes a type tag. Blank input means command.
func ParseRewardType(s string) (RewardType, error) {
	t := RewardType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case "":
		return RewardCommand, nil
	case RewardCommand, RewardItem, RewardMoney:
		return t, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownType, s)
	}
}

// Known reports whether t is one of the modelled variants.
func (t RewardType) Known() bool {
	switch t {
	case RewardCommand, RewardItem, RewardMoney:
		return true
	default:
		return false
	}
}

// RewardPayload is the type-specific part of a reward. The concrete types are
// CommandPayload, ItemPayload, MoneyPayload and UnknownPayload.
type RewardPayload interface {
	Type() RewardType
	clonePayload() RewardPayload
}

// CommandPayload runs console command templates.
type CommandPayload struct {
	Commands []string
}

func (CommandPayload) Type() RewardType { return RewardCommand }

func (p CommandPayload) clonePayload() RewardPayload {
	return CommandPayload{Commands: cloneStrings(p.Commands)}
}

// ItemPayload grants items. Slot "1" is the slot the editor works on; other
// slots read from disk are carried along untouched.
type ItemPayload struct {
	Slots []ItemSlot

	kept verbatim
}

func (ItemPayload) Type() RewardType { return RewardItem }

func (p ItemPayload) clonePayload() RewardPayload {
	out := ItemPayload{kept: p.kept.clone()}
	if p.Slots != nil {
		out.Slots = make([]ItemSlot, len(p.Slots))
		for i, s := range p.Slots {
			out.Slots[i] = s.Clone()
		}
	}
	return out
}

// PrimarySlotKey is the slot edited through forms.
const PrimarySlotKey = "1"

// Primary returns slot "1", or the first slot when "1" is absent.
func (p ItemPayload) Primary() (ItemSlot, bool) {
	for _, s := range p.Slots {
		if s.Slot == PrimarySlotKey {
			return s, true
		}
	}
	if len(p.Slots) > 0 {
		return p.Slots[0], true
	}
	return ItemSlot{}, false
}

// WithPrimary replaces slot "1" (or inserts it first) and keeps other slots.
func (p ItemPayload) WithPrimary(slot ItemSlot) ItemPayload {
	slot.Slot = PrimarySlotKey
	out := ItemPayload{kept: p.kept.clone()}
	replaced := false
	for _, s := range p.Slots {
		if s.Slot == PrimarySlotKey {
			out.Slots = append(out.Slots, slot)
			replaced = true
			continue
		}
		out.Slots = append(out.Slots, s.Clone())
	}
	if !replaced {
		out.Slots = append([]ItemSlot{slot}, out.Slots...)
	}
	return out
}

// MoneyPayload grants currency.
type MoneyPayload struct {
	Value int
}

func (MoneyPayload) Type() RewardType { return RewardMoney }

func (p MoneyPayload) clonePayload() RewardPayload { return p }

// UnknownPayload stands in for a type tag the editor does not model. The
// reward's payload keys stay in its extras and are written back unchanged.
type UnknownPayload struct {
	Tag string
}

func (p UnknownPayload) Type() RewardType { return RewardType(p.Tag) }

func (p UnknownPayload) clonePayload() RewardPayload { return p }

func (p ItemPayload) node() *yaml.Node {
	pairs := make([]pair, 0, len(p.Slots))
	for _, slot := range p.Slots {
		pairs = append(pairs, pair{slot.Slot, slot.node()})
	}
	p.kept.restore(pairs)
	items := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, pr := range pairs {
		items.Content = append(items.Content, StringNode(pr.key), pr.value)
	}
	return items
}

// ItemSlot is one granted item stack.
type ItemSlot struct {
	Slot     string
	Material string
	Amount   int
	Name     string
	Lore     []string
	Glow     bool
	Extra    Extras

	order []string
	kept  verbatim
}

// Clone deep-copies the slot.
func (s ItemSlot) Clone() ItemSlot {
	s.Lore = cloneStrings(s.Lore)
	s.Extra = s.Extra.Clone()
	s.order = cloneStrings(s.order)
	s.kept = s.kept.clone()
	return s
}

func (s ItemSlot) node() *yaml.Node {
	pairs := s.fields()
	s.kept.restore(pairs)
	return mapping(pairs, s.Extra, s.order)
}

func (s ItemSlot) fields() []pair {
	read := func(key string) bool { return contains(s.order, key) }
	var pairs []pair
	if s.Material != "" || read("material") {
		pairs = append(pairs, pair{"material", StringNode(s.Material)})
	}
	if s.order == nil || s.Amount != 1 || read("amount") {
		pairs = append(pairs, pair{"amount", intNode(s.Amount)})
	}
	if s.Name != "" || read("name") {
		pairs = append(pairs, pair{"name", StringNode(s.Name)})
	}
	if s.Lore != nil {
		pairs = append(pairs, pair{"lore", listNode(s.Lore)})
	}
	if s.Glow || read("glow") {
		pairs = append(pairs, pair{"glow", boolNode(s.Glow)})
	}
	return pairs
}

// Variable is one placeholder definition of a reward.
type Variable struct {
	Key   string
	Value string
}

// Variables keeps placeholder definitions in the order they were written.
type Variables []Variable

// Reward is a grantable payoff.
type Reward struct {
	Name      string
	LoreAddon []string
	Variables Variables
	Payload   RewardPayload
	Extra     Extras

	order []string
	kept  verbatim
}

// DefaultReward is the record inserted by Add.
func DefaultReward() Reward {
	return Reward{
		Name:    "New Reward",
		Payload: CommandPayload{Commands: []string{"say %player% got a reward!"}},
	}
}

// Type reports the payload variant. A reward without payload is a command.
func (r Reward) Type() RewardType {
	if r.Payload == nil {
		return RewardCommand
	}
	return r.Payload.Type()
}

// Clone deep-copies the reward.
func (r Reward) Clone() Reward {
	out := r
	out.LoreAddon = cloneStrings(r.LoreAddon)
	if r.Variables != nil {
		out.Variables = append(Variables{}, r.Variables...)
	}
	if r.Payload != nil {
		out.Payload = r.Payload.clonePayload()
	}
	out.Extra = r.Extra.Clone()
	out.order = cloneStrings(r.order)
	out.kept = r.kept.clone()
	return out
}

// Node encodes the reward in its persisted shape.
func (r Reward) Node() *yaml.Node {
	pairs := r.fields()
	r.kept.restore(pairs)
	return mapping(pairs, r.Extra, r.order)
}

func (r Reward) fields() []pair {
	pairs := []pair{
		{"name", StringNode(r.Name)},
		{"type", StringNode(string(r.Type()))},
	}
	if r.LoreAddon != nil {
		pairs = append(pairs, pair{"lore-addon", listNode(r.LoreAddon)})
	}
	if r.Variables != nil {
		pairs = append(pairs, pair{"variables", variablesNode(r.Variables)})
	}
	switch p := r.Payload.(type) {
	case nil:
		pairs = append(pairs, pair{"commands", listNode(nil)})
	case CommandPayload:
		pairs = append(pairs, pair{"commands", listNode(p.Commands)})
	case ItemPayload:
		pairs = append(pairs, pair{"items", p.node()})
	case MoneyPayload:
		pairs = append(pairs, pair{"value", intNode(p.Value)})
	case UnknownPayload:
	default:
		panic(fmt.Sprintf("model: unhandled reward payload %T", p))
	}
	return pairs
}

// MarshalYAML implements yaml.Marshaler.
func (r Reward) MarshalYAML() (any, error) { return r.Node(), nil }

// UnmarshalYAML implements yaml.Unmarshaler with lenient decoding.
func (r *Reward) UnmarshalYAML(n *yaml.Node) error {
	rec, err := DecodeReward(n)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// DecodeReward reads a reward from a loaded document. Bad numbers fall back to
// defaults, values of the wrong shape are written back as loaded, and an
// unknown type tag decodes to an UnknownPayload.
func DecodeReward(n *yaml.Node) (Reward, error) {
	return decodeReward(n, false)
}

// ParseReward validates raw YAML for the advanced editor.
func ParseReward(text string) (Reward, error) {
	root, err := ParseMapping("reward", text)
	if err != nil {
		return Reward{}, err
	}
	return decodeReward(root, true)
}

func decodeReward(n *yaml.Node, strict bool) (Reward, error) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return Reward{}, &FormatError{Entity: "reward", Err: ErrNotMapping}
	}
	d := decoder{entity: "reward", strict: strict}
	var r Reward
	rawType := ""
	payload := map[string]*yaml.Node{}
	var payloadOrder []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v := n.Content[i+1]
		r.order = append(r.order, key)
		lost := d.track(func() {
			switch key {
			case "name":
				r.Name = d.text(key, v)
			case "type":
				rawType = d.text(key, v)
			case "lore-addon":
				r.LoreAddon = d.lines(key, v)
			case "variables":
				r.Variables = d.variables(key, v)
			case "commands", "items", "value":
				payload[key] = v
				payloadOrder = append(payloadOrder, key)
			default:
				r.Extra = append(r.Extra, Field{Key: key, Value: CloneNode(v)})
			}
		})
		if lost {
			r.kept.remember(key, v)
		}
	}
	typ, err := ParseRewardType(rawType)
	if err != nil {
		if strict {
			return Reward{}, &FormatError{Entity: "reward", Key: "type", Err: err}
		}
		typ = RewardType(strings.TrimSpace(rawType))
	}
	owned := payloadKey(typ)
	if strict {
		if _, ok := payload[owned]; !ok {
			return Reward{}, &FormatError{Entity: "reward", Key: owned, Err: fmt.Errorf("%w %s", ErrMissingPayload, typ)}
		}
	}
	for _, key := range payloadOrder {
		if key == owned {
			continue
		}
		if typ.Known() {
			d.fail(key, "not allowed for %s rewards", typ)
		}
		r.Extra = append(r.Extra, Field{Key: key, Value: CloneNode(payload[key])})
	}
	v, hasPayload := payload[owned]
	lost := d.track(func() {
		switch typ {
		case RewardCommand:
			p := CommandPayload{Commands: []string{}}
			if hasPayload {
				p.Commands = d.lines(owned, v)
			}
			r.Payload = p
		case RewardItem:
			p := ItemPayload{Slots: []ItemSlot{}}
			if hasPayload {
				p = decodeItems(&d, v)
			}
			r.Payload = p
		case RewardMoney:
			p := MoneyPayload{}
			if hasPayload {
				p.Value = d.integer(owned, v, 0)
			}
			r.Payload = p
		default:
			r.Payload = UnknownPayload{Tag: string(typ)}
		}
	})
	if lost && hasPayload {
		r.kept.remember(owned, v)
	}
	if d.err != nil {
		return Reward{}, d.err
	}
	r.kept.settle(r.fields())
	return r, nil
}

func decodeItems(d *decoder, n *yaml.Node) ItemPayload {
	p := ItemPayload{Slots: []ItemSlot{}}
	items := d.mapping("items", n)
	if items == nil {
		return p
	}
	for i := 0; i+1 < len(items.Content); i += 2 {
		key := items.Content[i].Value
		v := items.Content[i+1]
		var slot ItemSlot
		if d.track(func() { slot = decodeSlot(d, key, v) }) {
			p.kept.remember(key, v)
		}
		p.Slots = append(p.Slots, slot)
	}
	pairs := make([]pair, 0, len(p.Slots))
	for _, slot := range p.Slots {
		pairs = append(pairs, pair{slot.Slot, slot.node()})
	}
	p.kept.settle(pairs)
	return p
}

func payloadKey(t RewardType) string {
	switch t {
	case RewardCommand:
		return "commands"
	case RewardItem:
		return "items"
	case RewardMoney:
		return "value"
	default:
		return ""
	}
}

func decodeSlot(d *decoder, slot string, n *yaml.Node) ItemSlot {
	s := ItemSlot{Slot: slot, Amount: 1}
	prefix := "items." + slot + "."
	v := d.mapping("items."+slot, n)
	if v == nil {
		return s
	}
	for i := 0; i+1 < len(v.Content); i += 2 {
		key := v.Content[i].Value
		val := v.Content[i+1]
		s.order = append(s.order, key)
		lost := d.track(func() {
			switch key {
			case "material":
				s.Material = d.text(prefix+key, val)
			case "amount":
				s.Amount = d.integer(prefix+key, val, 1)
			case "name":
				s.Name = d.text(prefix+key, val)
			case "lore":
				s.Lore = d.lines(prefix+key, val)
			case "glow":
				s.Glow = d.flag(prefix+key, val)
			default:
				s.Extra = append(s.Extra, Field{Key: key, Value: CloneNode(val)})
			}
		})
		if lost {
			s.kept.remember(key, val)
		}
	}
	s.kept.settle(s.fields())
	return s
}
