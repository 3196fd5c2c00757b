package model

import (
	"strconv"
	"strings"
)

// RewardForm carries editor input for a reward. Multi-line fields hold one
// entry per line; variables are written as key=value lines.
type RewardForm struct {
	Name         string
	Type         string
	LoreAddon    string
	Variables    string
	Commands     string
	ItemMaterial string
	ItemAmount   string
	ItemName     string
	ItemLore     string
	ItemGlow     bool
	MoneyValue   string
}

// RewardFormFrom fills a form from a stored reward.
func RewardFormFrom(r Reward) RewardForm {
	f := RewardForm{
		Name:       r.Name,
		Type:       string(r.Type()),
		LoreAddon:  JoinLines(r.LoreAddon),
		Variables:  JoinLines(r.Variables.Lines()),
		ItemAmount: "1",
		MoneyValue: "0",
	}
	switch p := r.Payload.(type) {
	case nil:
	case CommandPayload:
		f.Commands = JoinLines(p.Commands)
	case ItemPayload:
		if slot, ok := p.Primary(); ok {
			f.ItemMaterial = slot.Material
			f.ItemAmount = strconv.Itoa(slot.Amount)
			f.ItemName = slot.Name
			f.ItemLore = JoinLines(slot.Lore)
			f.ItemGlow = slot.Glow
		}
	case MoneyPayload:
		f.MoneyValue = strconv.Itoa(p.Value)
	}
	return f
}

// ApplyTo overwrites prev with the form's values. Keys the form does not show
// are kept. Unparsable numbers fall back to defaults (amount 1, value 0). A
// reward of an unknown type keeps its payload while the form leaves the type
// as it was.
func (f RewardForm) ApplyTo(prev Reward) (Reward, error) {
	unknown, keepUnknown := prev.Payload.(UnknownPayload)
	keepUnknown = keepUnknown && strings.TrimSpace(f.Type) == unknown.Tag
	var typ RewardType
	if !keepUnknown {
		var err error
		if typ, err = ParseRewardType(f.Type); err != nil {
			return Reward{}, &FormatError{Entity: "reward", Key: "type", Err: err}
		}
	}
	r := prev.Clone()
	r.Name = strings.TrimSpace(f.Name)
	if r.Name == "" {
		r.Name = "Reward"
	}
	r.LoreAddon = SplitLines(f.LoreAddon)
	r.Variables = ParseVariables(SplitLines(f.Variables))
	if len(r.Variables) == 0 {
		r.Variables = nil
	}
	if keepUnknown {
		return r, nil
	}
	r.Extra = dropKeys(r.Extra, "commands", "items", "value")
	switch typ {
	case RewardCommand:
		r.Payload = CommandPayload{Commands: SplitLines(f.Commands)}
	case RewardItem:
		slot := ItemSlot{
			Material: strings.TrimSpace(f.ItemMaterial),
			Amount:   max(1, CoerceInt(f.ItemAmount, 1)),
			Name:     strings.TrimSpace(f.ItemName),
			Glow:     f.ItemGlow,
		}
		if lore := SplitLines(f.ItemLore); len(lore) > 0 {
			slot.Lore = lore
		}
		items, _ := prev.Payload.(ItemPayload)
		if old, ok := items.Primary(); ok && old.Slot == PrimarySlotKey {
			slot.Extra = old.Extra.Clone()
		}
		r.Payload = items.WithPrimary(slot)
	case RewardMoney:
		r.Payload = MoneyPayload{Value: CoerceInt(f.MoneyValue, 0)}
	}
	return r, nil
}

// TierForm carries editor input for a tier.
type TierForm struct {
	RequiredPoints string
	Rewards        []string
}

// TierFormFrom fills a form from a stored tier.
func TierFormFrom(t Tier) TierForm {
	return TierForm{
		RequiredPoints: strconv.Itoa(t.RequiredPoints),
		Rewards:        cloneStrings(t.Rewards),
	}
}

// Values coerces the form. Blank reward ids are dropped; order and
// duplicates are kept.
func (f TierForm) Values() (int, []string) {
	rewards := []string{}
	for _, id := range f.Rewards {
		if id = strings.TrimSpace(id); id != "" {
			rewards = append(rewards, id)
		}
	}
	return CoerceInt(f.RequiredPoints, 0), rewards
}

// QuestForm carries editor input for a quest.
type QuestForm struct {
	Name             string
	Type             string
	Variable         string
	RequiredProgress string
	Points           string
	Exclusive        string
	SpecialProgress  string
	ItemMaterial     string
	ItemAmount       string
	ItemName         string
	ItemLore         string
}

// QuestFormFrom fills a form from a stored quest.
func QuestFormFrom(q Quest) QuestForm {
	amount := q.Item.Amount
	if amount == 0 {
		amount = 1
	}
	return QuestForm{
		Name:             q.Name,
		Type:             string(q.Type),
		Variable:         q.Variable,
		RequiredProgress: strconv.Itoa(q.RequiredProgress),
		Points:           strconv.Itoa(q.Points),
		Exclusive:        q.Exclusive,
		SpecialProgress:  JoinLines(q.SpecialProgress),
		ItemMaterial:     q.Item.Material,
		ItemAmount:       strconv.Itoa(amount),
		ItemName:         q.Item.Name,
		ItemLore:         JoinLines(q.Item.Lore),
	}
}

// ApplyTo overwrites prev with the form's values. Unparsable numbers fall back
// to defaults (progress and points 0, item amount 1).
//
// A quest of an unknown type keeps it while the form leaves the type as it was.
func (f QuestForm) ApplyTo(prev Quest) (Quest, error) {
	typ, err := ParseQuestType(f.Type)
	if err != nil {
		if prev.Type.Known() || strings.TrimSpace(f.Type) != string(prev.Type) {
			return Quest{}, &FormatError{Entity: "quest", Key: "type", Err: err}
		}
		typ = prev.Type
	}
	q := prev.Clone()
	q.Name = strings.TrimSpace(f.Name)
	q.Type = typ
	q.Variable = strings.TrimSpace(f.Variable)
	q.RequiredProgress = CoerceInt(f.RequiredProgress, 0)
	q.Points = CoerceInt(f.Points, 0)
	q.Exclusive = strings.TrimSpace(f.Exclusive)
	q.SpecialProgress = nil
	if sp := SplitLines(f.SpecialProgress); len(sp) > 0 {
		q.SpecialProgress = sp
	}
	q.Item.Material = strings.TrimSpace(f.ItemMaterial)
	q.Item.Amount = CoerceInt(f.ItemAmount, 1)
	q.Item.Name = strings.TrimSpace(f.ItemName)
	q.Item.Lore = nil
	if lore := SplitLines(f.ItemLore); len(lore) > 0 {
		q.Item.Lore = lore
	}
	return q, nil
}

// Lines renders variables as key=value lines.
func (v Variables) Lines() []string {
	out := make([]string, 0, len(v))
	for _, kv := range v {
		out = append(out, kv.Key+"="+kv.Value)
	}
	return out
}

// ParseVariables reads key=value lines. Lines without '=' or with a blank key
// are ignored; a repeated key keeps its first position and last value.
func ParseVariables(lines []string) Variables {
	out := Variables{}
	for _, ln := range lines {
		k, v, ok := strings.Cut(ln, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		v = strings.TrimSpace(v)
		replaced := false
		for i := range out {
			if out[i].Key == k {
				out[i].Value = v
				replaced = true
			}
		}
		if !replaced {
			out = append(out, Variable{Key: k, Value: v})
		}
	}
	return out
}

// SplitLines splits editor text into entries, skipping blank lines.
func SplitLines(text string) []string {
	out := []string{}
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimRight(ln, "\r")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		out = append(out, ln)
	}
	return out
}

// JoinLines is the inverse of SplitLines for display.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// CoerceInt parses an integer field, returning fallback for blank or bad input.
func CoerceInt(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func dropKeys(extras Extras, keys ...string) Extras {
	if extras == nil {
		return nil
	}
	out := Extras{}
	for _, f := range extras {
		if !contains(keys, f.Key) {
			out = append(out, f)
		}
	}
	return out
}
