package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/model"
	"github.com/kingrea/battlepass-studio/internal/studio"
)

const pickerRows = 5

// field is one labelled editor input. Multi-line fields hold one entry per
// line.
type field struct {
	key   string
	label string
	multi bool
	input textinput.Model
	area  textarea.Model
}

func newInput(key, label, value string) *field {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 0
	in.SetValue(value)
	return &field{key: key, label: label, input: in}
}

func newArea(key, label, value string) *field {
	area := textarea.New()
	area.ShowLineNumbers = false
	area.Prompt = "│ "
	area.SetHeight(3)
	area.SetWidth(60)
	area.CharLimit = 0
	area.SetValue(value)
	return &field{key: key, label: label, multi: true, area: area}
}

func (f *field) Value() string {
	if f.multi {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *field) SetValue(v string) {
	if f.multi {
		f.area.SetValue(v)
		return
	}
	f.input.SetValue(v)
}

func (f *field) focus() tea.Cmd {
	if f.multi {
		return f.area.Focus()
	}
	return f.input.Focus()
}

func (f *field) blur() {
	if f.multi {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

func (f *field) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.multi {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return cmd
}

func (f *field) view(focused bool) string {
	label := labelStyle.Render(f.label)
	if focused {
		label = focusLabel.Render(f.label)
	}
	body := f.input.View()
	if f.multi {
		body = f.area.View()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, body)
}

type formKind int

const (
	formReward formKind = iota
	formTier
	formQuest
)

// formView edits one record through labelled fields.
type formView struct {
	kind   formKind
	track  catalog.Track
	id     string
	fields []*field
	focus  int

	hits     []catalog.RewardHit
	hitIndex int
}

func newRewardForm(id string, r model.Reward) *formView {
	f := model.RewardFormFrom(r)
	return newFormView(formReward, "", id,
		newInput("name", "Name", f.Name),
		newInput("type", "Type", f.Type),
		newArea("lore", "Lore addon", f.LoreAddon),
		newArea("variables", "Variables", f.Variables),
		newArea("commands", "Commands", f.Commands),
		newInput("material", "Item material", f.ItemMaterial),
		newInput("amount", "Item amount", f.ItemAmount),
		newInput("itemName", "Item name", f.ItemName),
		newArea("itemLore", "Item lore", f.ItemLore),
		newInput("glow", "Item glow", strconv.FormatBool(f.ItemGlow)),
		newInput("value", "Money value", f.MoneyValue),
	)
}

func newTierForm(track catalog.Track, id string, t model.Tier) *formView {
	f := model.TierFormFrom(t)
	return newFormView(formTier, track, id,
		newInput("points", "Required points", f.RequiredPoints),
		newArea("rewards", "Rewards", model.JoinLines(f.Rewards)),
		newInput("find", "Find reward", ""),
	)
}

func newQuestForm(id string, q model.Quest) *formView {
	f := model.QuestFormFrom(q)
	return newFormView(formQuest, "", id,
		newInput("name", "Name", f.Name),
		newInput("type", "Type", f.Type),
		newInput("variable", "Variable", f.Variable),
		newInput("progress", "Required progress", f.RequiredProgress),
		newInput("points", "Points", f.Points),
		newInput("exclusive", "Exclusive", f.Exclusive),
		newArea("special", "Special progress", f.SpecialProgress),
		newInput("material", "Item material", f.ItemMaterial),
		newInput("amount", "Item amount", f.ItemAmount),
		newInput("itemName", "Item name", f.ItemName),
		newArea("itemLore", "Item lore", f.ItemLore),
	)
}

func newFormView(kind formKind, track catalog.Track, id string, fields ...*field) *formView {
	v := &formView{kind: kind, track: track, id: id, fields: fields}
	v.fields[0].focus()
	return v
}

func (v *formView) get(key string) *field {
	for _, f := range v.fields {
		if f.key == key {
			return f
		}
	}
	return nil
}

func (v *formView) value(key string) string {
	if f := v.get(key); f != nil {
		return f.Value()
	}
	return ""
}

func (v *formView) focused() *field { return v.fields[v.focus] }

func (v *formView) move(delta int) tea.Cmd {
	v.fields[v.focus].blur()
	v.focus = (v.focus + delta + len(v.fields)) % len(v.fields)
	return v.fields[v.focus].focus()
}

func (v *formView) title() string {
	switch v.kind {
	case formTier:
		return fmt.Sprintf("Edit %s tier %s", v.track, v.id)
	case formQuest:
		return fmt.Sprintf("Edit quest %s", v.id)
	default:
		return fmt.Sprintf("Edit reward %s", v.id)
	}
}

func (v *formView) rewardForm() model.RewardForm {
	glow, _ := strconv.ParseBool(strings.TrimSpace(v.value("glow")))
	return model.RewardForm{
		Name:         v.value("name"),
		Type:         v.value("type"),
		LoreAddon:    v.value("lore"),
		Variables:    v.value("variables"),
		Commands:     v.value("commands"),
		ItemMaterial: v.value("material"),
		ItemAmount:   v.value("amount"),
		ItemName:     v.value("itemName"),
		ItemLore:     v.value("itemLore"),
		ItemGlow:     glow,
		MoneyValue:   v.value("value"),
	}
}

func (v *formView) tierForm() model.TierForm {
	return model.TierForm{
		RequiredPoints: v.value("points"),
		Rewards:        model.SplitLines(v.value("rewards")),
	}
}

func (v *formView) questForm() model.QuestForm {
	return model.QuestForm{
		Name:             v.value("name"),
		Type:             v.value("type"),
		Variable:         v.value("variable"),
		RequiredProgress: v.value("progress"),
		Points:           v.value("points"),
		Exclusive:        v.value("exclusive"),
		SpecialProgress:  v.value("special"),
		ItemMaterial:     v.value("material"),
		ItemAmount:       v.value("amount"),
		ItemName:         v.value("itemName"),
		ItemLore:         v.value("itemLore"),
	}
}

// apply commits the form. The returned id is the record that was written.
func (v *formView) apply(s *studio.Studio) (string, error) {
	switch v.kind {
	case formTier:
		return s.ApplyTier(v.track, v.id, v.tierForm())
	case formQuest:
		return s.ApplyQuest(v.id, v.questForm())
	default:
		return s.ApplyReward(v.id, v.rewardForm())
	}
}

func (v *formView) picking() bool {
	return v.kind == formTier && v.focused().key == "find"
}

func (v *formView) refreshHits(s *studio.Studio) {
	v.hits = s.SearchRewards(v.value("find"))
	if v.hitIndex >= len(v.hits) {
		v.hitIndex = max(0, len(v.hits)-1)
	}
}

// pick appends the highlighted search hit to the tier's reward list.
func (v *formView) pick() (string, bool) {
	if len(v.hits) == 0 {
		return "", false
	}
	id := v.hits[v.hitIndex].ID
	rewards := v.get("rewards")
	lines := model.SplitLines(rewards.Value())
	rewards.SetValue(model.JoinLines(append(lines, id)))
	return id, true
}

func (v *formView) View() string {
	rows := []string{headerStyle.Render(v.title()), ""}
	for i, f := range v.fields {
		rows = append(rows, f.view(i == v.focus))
	}
	if v.kind == formTier {
		rows = append(rows, v.pickerView())
	}
	hint := "Tab → next field    Ctrl+S → apply    Esc → cancel"
	if v.kind == formTier {
		hint += "    Enter in Find → add reward"
	}
	rows = append(rows, hintStyle.Render(hint))
	return strings.Join(rows, "\n")
}

func (v *formView) pickerView() string {
	if len(v.hits) == 0 {
		return mutedStyle.Render("  no matching rewards")
	}
	start := 0
	if v.hitIndex >= pickerRows {
		start = v.hitIndex - pickerRows + 1
	}
	var rows []string
	for i := start; i < len(v.hits) && i < start+pickerRows; i++ {
		line := fmt.Sprintf("  %s: %s", v.hits[i].ID, v.hits[i].Name)
		if i == v.hitIndex {
			line = selectedTile.Render("› " + strings.TrimPrefix(line, "  "))
		} else {
			line = mutedStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

// rawView edits one record, or the pool document, as YAML text.
type rawView struct {
	pool  bool
	tab   tab
	track catalog.Track
	id    string
	area  textarea.Model
}

func newRawView(t tab, track catalog.Track, id, text string) *rawView {
	area := textarea.New()
	area.ShowLineNumbers = true
	area.SetWidth(80)
	area.SetHeight(16)
	area.CharLimit = 0
	area.SetValue(text)
	area.Focus()
	return &rawView{tab: t, track: track, id: id, area: area}
}

func newPoolView(text string) *rawView {
	v := newRawView(tabPreview, "", "", text)
	v.pool = true
	return v
}

func (v *rawView) title() string {
	if v.pool {
		return "YAML · pool"
	}
	switch v.tab {
	case tabFree, tabPremium:
		return fmt.Sprintf("YAML · %s tier %s", v.track, v.id)
	case tabQuests:
		return fmt.Sprintf("YAML · quest %s", v.id)
	default:
		return fmt.Sprintf("YAML · reward %s", v.id)
	}
}

func (v *rawView) apply(s *studio.Studio) (string, error) {
	text := v.area.Value()
	if v.pool {
		return "", s.ApplyPoolRaw(text)
	}
	switch v.tab {
	case tabFree, tabPremium:
		return s.ApplyTierRaw(v.track, v.id, text)
	case tabQuests:
		return s.ApplyQuestRaw(v.id, text)
	default:
		return s.ApplyRewardRaw(v.id, text)
	}
}

func (v *rawView) View() string {
	return strings.Join([]string{
		headerStyle.Render(v.title()),
		"",
		v.area.View(),
		hintStyle.Render("Ctrl+S → apply    Esc → cancel"),
	}, "\n")
}
