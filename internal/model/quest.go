package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuestType tags what a quest counts.
type QuestType string

const (
	QuestBlockBreak QuestType = "block-break"
	QuestKillMob    QuestType = "kill-mob"
	QuestFish       QuestType = "fish"
	QuestCraftItem  QuestType = "craft-item"
)

// QuestTypes lists the variants in display order.
var QuestTypes = []QuestType{QuestBlockBreak, QuestKillMob, QuestFish, QuestCraftItem}

// ParseQuestType normalizes a quest type tag.
func ParseQuestType(s string) (QuestType, error) {
	t := QuestType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case QuestBlockBreak, QuestKillMob, QuestFish, QuestCraftItem:
		return t, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownType, s)
	}
}

// Known reports whether t is one of the modelled variants.
func (t QuestType) Known() bool {
	switch t {
	case QuestBlockBreak, QuestKillMob, QuestFish, QuestCraftItem:
		return true
	default:
		return false
	}
}

// Verb is the action word used in generated quest names.
func (t QuestType) Verb() string {
	switch t {
	case QuestBlockBreak:
		return "Mine"
	case QuestKillMob:
		return "Kill"
	case QuestFish:
		return "Catch"
	case QuestCraftItem:
		return "Craft"
	default:
		return "Complete"
	}
}

// QuestItem is the icon shown for a quest in game menus.
type QuestItem struct {
	Material string
	// Amount is omitted from output when zero unless it was read from disk.
	Amount int
	Name   string
	Lore   []string
	Extra  Extras

	order []string
	kept  verbatim
}

// Clone deep-copies the item.
func (i QuestItem) Clone() QuestItem {
	i.Lore = cloneStrings(i.Lore)
	i.Extra = i.Extra.Clone()
	i.order = cloneStrings(i.order)
	i.kept = i.kept.clone()
	return i
}

func (i QuestItem) node() *yaml.Node {
	pairs := i.fields()
	i.kept.restore(pairs)
	return mapping(pairs, i.Extra, i.order)
}

func (i QuestItem) fields() []pair {
	pairs := []pair{{"material", StringNode(i.Material)}}
	if i.Amount != 0 || contains(i.order, "amount") {
		pairs = append(pairs, pair{"amount", intNode(i.Amount)})
	}
	pairs = append(pairs, pair{"name", StringNode(i.Name)})
	if i.Lore != nil {
		pairs = append(pairs, pair{"lore", listNode(i.Lore)})
	}
	return pairs
}

// Quest is a trackable objective awarding points.
type Quest struct {
	Name             string
	Type             QuestType
	Variable         string
	RequiredProgress int
	Points           int
	// Exclusive is omitted from output when blank.
	Exclusive string
	// SpecialProgress is omitted from output when nil.
	SpecialProgress []string
	Item            QuestItem
	Extra           Extras

	order []string
	kept  verbatim
}

// Clone deep-copies the quest.
func (q Quest) Clone() Quest {
	q.SpecialProgress = cloneStrings(q.SpecialProgress)
	q.Item = q.Item.Clone()
	q.Extra = q.Extra.Clone()
	q.order = cloneStrings(q.order)
	q.kept = q.kept.clone()
	return q
}

// Node encodes the quest in its persisted shape.
func (q Quest) Node() *yaml.Node {
	pairs := q.fields()
	q.kept.restore(pairs)
	return mapping(pairs, q.Extra, q.order)
}

func (q Quest) fields() []pair {
	pairs := []pair{
		{"name", StringNode(q.Name)},
		{"type", StringNode(string(q.Type))},
		{"variable", StringNode(q.Variable)},
		{"required-progress", intNode(q.RequiredProgress)},
		{"points", intNode(q.Points)},
	}
	if q.Exclusive != "" {
		pairs = append(pairs, pair{"exclusive", StringNode(q.Exclusive)})
	}
	if q.SpecialProgress != nil {
		pairs = append(pairs, pair{"special-progress", listNode(q.SpecialProgress)})
	}
	pairs = append(pairs, pair{"item", q.Item.node()})
	return pairs
}

// MarshalYAML implements yaml.Marshaler.
func (q Quest) MarshalYAML() (any, error) { return q.Node(), nil }

// UnmarshalYAML implements yaml.Unmarshaler with lenient decoding.
func (q *Quest) UnmarshalYAML(n *yaml.Node) error {
	rec, err := DecodeQuest(n)
	if err != nil {
		return err
	}
	*q = rec
	return nil
}

// DecodeQuest reads a quest from a loaded document. An unknown type tag is
// kept as written.
func DecodeQuest(n *yaml.Node) (Quest, error) {
	return decodeQuest(n, false)
}

// ParseQuest validates raw YAML for the advanced editor.
func ParseQuest(text string) (Quest, error) {
	root, err := ParseMapping("quest", text)
	if err != nil {
		return Quest{}, err
	}
	return decodeQuest(root, true)
}

func decodeQuest(n *yaml.Node, strict bool) (Quest, error) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return Quest{}, &FormatError{Entity: "quest", Err: ErrNotMapping}
	}
	d := decoder{entity: "quest", strict: strict}
	var q Quest
	rawType := ""
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		v := n.Content[i+1]
		q.order = append(q.order, key)
		lost := d.track(func() {
			switch key {
			case "name":
				q.Name = d.text(key, v)
			case "type":
				rawType = d.text(key, v)
			case "variable":
				q.Variable = d.text(key, v)
			case "required-progress":
				q.RequiredProgress = d.integer(key, v, 0)
			case "points":
				q.Points = d.integer(key, v, 0)
			case "exclusive":
				q.Exclusive = d.text(key, v)
			case "special-progress":
				q.SpecialProgress = d.lines(key, v)
			case "item":
				q.Item = decodeQuestItem(&d, v)
			default:
				q.Extra = append(q.Extra, Field{Key: key, Value: CloneNode(v)})
			}
		})
		if lost {
			q.kept.remember(key, v)
		}
	}
	typ, err := ParseQuestType(rawType)
	if err != nil {
		if strict {
			return Quest{}, &FormatError{Entity: "quest", Key: "type", Err: err}
		}
		typ = QuestType(strings.TrimSpace(rawType))
	}
	q.Type = typ
	if d.err != nil {
		return Quest{}, d.err
	}
	q.kept.settle(q.fields())
	return q, nil
}

func decodeQuestItem(d *decoder, n *yaml.Node) QuestItem {
	var item QuestItem
	v := d.mapping("item", n)
	if v == nil {
		return item
	}
	for i := 0; i+1 < len(v.Content); i += 2 {
		key := v.Content[i].Value
		val := v.Content[i+1]
		item.order = append(item.order, key)
		lost := d.track(func() {
			switch key {
			case "material":
				item.Material = d.text("item."+key, val)
			case "amount":
				item.Amount = d.integer("item."+key, val, 1)
			case "name":
				item.Name = d.text("item."+key, val)
			case "lore":
				item.Lore = d.lines("item."+key, val)
			default:
				item.Extra = append(item.Extra, Field{Key: key, Value: CloneNode(val)})
			}
		})
		if lost {
			item.kept.remember(key, val)
		}
	}
	item.kept.settle(item.fields())
	return item
}
