package tui

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/document"
	"github.com/kingrea/battlepass-studio/internal/studio"
)

func TestAddRewardFromBrowse(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(app, runes("a"))
	if got := app.Studio().Status(); got != "Added reward 1." {
		t.Fatalf("unexpected status %q", got)
	}
	if id := app.selectedID(); id != "1" {
		t.Fatalf("expected new reward to be selected, got %q", id)
	}
	if !app.Studio().Dirty(document.RoleRewards) {
		t.Fatalf("rewards should be dirty")
	}
}

func TestGenerateDependsOnTab(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(app, key(tea.KeyTab), runes("a"), runes("g"))
	if app.tab != tabFree {
		t.Fatalf("expected free tab, got %d", app.tab)
	}
	if got := app.Studio().Status(); got != "Generated reward 1 and added to tier 1." {
		t.Fatalf("unexpected status %q", got)
	}
	tier, _ := app.Studio().Tier(catalog.Free, "1")
	if len(tier.Rewards) != 1 || tier.Rewards[0] != "1" {
		t.Fatalf("expected generated reward in tier, got %v", tier.Rewards)
	}

	press(app, key(tea.KeyTab), key(tea.KeyTab), runes("g"))
	if got := app.Studio().Status(); got != "Added quest 1." {
		t.Fatalf("quests tab should add a quest, got %q", got)
	}
	press(app, key(tea.KeyTab), runes("g"))
	if got := app.Studio().Status(); got != "Nothing to generate." {
		t.Fatalf("preview tab should not generate, got %q", got)
	}
}

func TestActionsWithoutSelection(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(app, runes("x"))
	if got := app.Studio().Status(); got != "Select a reward first." {
		t.Fatalf("unexpected status %q", got)
	}
	press(app, key(tea.KeyTab), runes("g"))
	if got := app.Studio().Status(); got != "Select a tier first." {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestRewardFormApply(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(app, runes("a"), runes("e"))
	if app.state != stateForm || app.form == nil {
		t.Fatalf("expected form to open")
	}
	press(app, runes("!"))
	if got := app.form.value("name"); got != "New Reward!" {
		t.Fatalf("typing should reach the focused field, got %q", got)
	}
	app.form.get("type").SetValue("money")
	app.form.get("value").SetValue("500")
	press(app, key(tea.KeyCtrlS))
	if app.state != stateBrowse {
		t.Fatalf("apply should return to browse")
	}
	r, _ := app.Studio().Reward("1")
	if r.Name != "New Reward!" || string(r.Type()) != "money" {
		t.Fatalf("unexpected reward %+v", r)
	}
	if got := app.Studio().Status(); got != "Applied changes to reward 1." {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestFormRejectsUnknownType(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(app, runes("a"), runes("e"))
	app.form.get("type").SetValue("potion")
	press(app, key(tea.KeyCtrlS))
	if app.state != stateForm {
		t.Fatalf("form should stay open on error")
	}
	if got := app.Studio().Status(); !strings.Contains(got, "unknown type") {
		t.Fatalf("unexpected status %q", got)
	}
	press(app, key(tea.KeyEsc))
	if app.state != stateBrowse || app.Studio().Status() != "Edit cancelled." {
		t.Fatalf("esc should cancel the form")
	}
}

func TestTierFormPicker(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"rewards.yml": "\"1\": {name: Coins, type: money, value: 5}\n\"2\": {name: Miner Kit, type: command, commands: []}\n",
		"free.yml":    "tiers:\n  \"1\":\n    required-points: 0\n    rewards: []\n",
	})
	app := newTestApp(t, dir)
	press(app, key(tea.KeyTab), runes("e"))
	if app.form == nil || app.form.kind != formTier {
		t.Fatalf("expected tier form")
	}
	press(app, key(tea.KeyTab), key(tea.KeyTab))
	if !app.form.picking() {
		t.Fatalf("expected the find field to be focused")
	}
	press(app, runes("Miner"))
	if len(app.form.hits) == 0 || app.form.hits[0].ID != "2" {
		t.Fatalf("expected Miner Kit as first hit, got %+v", app.form.hits)
	}
	press(app, key(tea.KeyEnter))
	if got := app.form.value("rewards"); got != "2" {
		t.Fatalf("picker should append the id, got %q", got)
	}
	press(app, key(tea.KeyCtrlS))
	tier, _ := app.Studio().Tier(catalog.Free, "1")
	if len(tier.Rewards) != 1 || tier.Rewards[0] != "2" {
		t.Fatalf("unexpected tier rewards %v", tier.Rewards)
	}
	if !app.Studio().Dirty(document.RoleFree) {
		t.Fatalf("free track should be dirty")
	}
}

func TestRawEditorKeepsModelOnError(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	press(app, runes("a"), runes("y"))
	if app.state != stateRaw {
		t.Fatalf("expected raw editor")
	}
	if !strings.Contains(app.raw.area.Value(), "name: New Reward") {
		t.Fatalf("raw editor should show the reward, got %q", app.raw.area.Value())
	}
	app.raw.area.SetValue("- a\n- b\n")
	press(app, key(tea.KeyCtrlS))
	if app.state != stateRaw {
		t.Fatalf("raw editor should stay open on error")
	}
	if got := app.Studio().Status(); got != "Reward YAML error: YAML must be a mapping (key: value)" {
		t.Fatalf("unexpected status %q", got)
	}
	app.raw.area.SetValue("name: Cash\ntype: money\nvalue: 7\n")
	press(app, key(tea.KeyCtrlS))
	if app.state != stateBrowse {
		t.Fatalf("apply should close the raw editor")
	}
	r, _ := app.Studio().Reward("1")
	if r.Name != "Cash" {
		t.Fatalf("unexpected reward %+v", r)
	}
}

func TestDeleteReferencedRewardIsRefused(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"rewards.yml": "\"1\": {name: Coins, type: money, value: 5}\n\"2\": {name: Kit, type: command, commands: []}\n",
		"premium.yml": "tiers:\n  \"3\":\n    required-points: 10\n    rewards: [\"2\"]\n",
	})
	app := newTestApp(t, dir)
	press(app, key(tea.KeyDown))
	if id := app.selectedID(); id != "2" {
		t.Fatalf("expected reward 2 selected, got %q", id)
	}
	press(app, runes("x"))
	if got := app.Studio().Status(); got != "Cannot delete reward 2: referenced by a tier." {
		t.Fatalf("unexpected status %q", got)
	}
	if len(app.Studio().RewardIDs()) != 2 {
		t.Fatalf("reward must not be deleted")
	}
}

func TestQuitPromptsWhenDirty(t *testing.T) {
	app := newTestApp(t, t.TempDir())
	_, cmd := app.Update(runes("q"))
	if !isQuit(cmd) {
		t.Fatalf("clean app should quit immediately")
	}

	press(app, runes("a"))
	_, cmd = app.Update(runes("q"))
	if isQuit(cmd) || app.state != stateConfirmQuit {
		t.Fatalf("dirty app should ask before quitting")
	}
	press(app, runes("n"))
	if app.state != stateBrowse {
		t.Fatalf("n should return to browse")
	}
	press(app, runes("q"))
	_, cmd = app.Update(runes("y"))
	if !isQuit(cmd) {
		t.Fatalf("y should quit")
	}
}

func TestSaveAndReloadKeys(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, dir)
	press(app, runes("a"), runes("s"))
	if got := app.Studio().Status(); got != "Saved." {
		t.Fatalf("unexpected status %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "rewards.yml")); err != nil {
		t.Fatalf("rewards.yml should be written: %v", err)
	}
	press(app, runes("a"), runes("R"))
	if ids := app.Studio().RewardIDs(); len(ids) != 1 {
		t.Fatalf("reload should discard the unsaved reward, got %v", ids)
	}
	if n := len(app.lists[tabRewards].Items()); n != 1 {
		t.Fatalf("list should follow reload, got %d items", n)
	}
}

func TestCycleQuestFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"daily-quests.yml":  "quests: {}\n",
		"week-1-quests.yml": "quests: {}\n",
	})
	app := newTestApp(t, dir)
	press(app, runes("f"))
	if got := app.Studio().Status(); got != "Selected quest file: week-1-quests.yml. Reload to apply." {
		t.Fatalf("unexpected status %q", got)
	}
	press(app, runes("f"))
	if got := app.Studio().QuestFile(); got != "daily-quests.yml" {
		t.Fatalf("cycling should wrap around, got %q", got)
	}
}

func TestCheckKeyShowsProblems(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"free.yml": "tiers:\n  \"1\":\n    required-points: 0\n    rewards: [\"9\"]\n",
	})
	app := newTestApp(t, dir)
	press(app, runes("v"))
	if len(app.problems) != 1 {
		t.Fatalf("expected one problem, got %v", app.problems)
	}
	if view := app.View(); !strings.Contains(view, "CHECK · 1 problem(s)") {
		t.Fatalf("problems panel missing from view")
	}
	press(app, key(tea.KeyDown))
	if app.problems != nil {
		t.Fatalf("problems should clear on the next key")
	}
}

func TestPreviewView(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"rewards.yml": "\"1\": {name: Coins, type: money, value: 5}\n",
		"premium.yml": "tiers:\n  \"1\":\n    required-points: 0\n    rewards: [\"1\"]\n",
	})
	app := newTestApp(t, dir)
	for i := 0; i < 4; i++ {
		press(app, key(tea.KeyTab))
	}
	if app.tab != tabPreview {
		t.Fatalf("expected preview tab")
	}
	view := app.View()
	for _, want := range []string{"Tier 1", "💰", studio.EmptyGlyph, "Coins"} {
		if !strings.Contains(view, want) {
			t.Fatalf("preview should contain %q", want)
		}
	}
}

func TestPoolEditor(t *testing.T) {
	dir := writeFiles(t, map[string]string{"week-pool.yml": "weeks: [1]\n"})
	app := newTestApp(t, dir)
	press(app, runes("w"))
	if app.state != stateRaw || !app.raw.pool {
		t.Fatalf("expected pool editor")
	}
	app.raw.area.SetValue("weeks: [1, 2]\n")
	press(app, key(tea.KeyCtrlS))
	if !app.Studio().Dirty(document.RolePool) {
		t.Fatalf("pool should be dirty")
	}
	if got := app.Studio().Status(); got != "Applied YAML to pool." {
		t.Fatalf("unexpected status %q", got)
	}
}

func newTestApp(t *testing.T, dir string) *App {
	t.Helper()
	app, err := NewApp(dir, WithStudioOptions(studio.WithRand(rand.New(rand.NewSource(7)))))
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func press(app *App, msgs ...tea.KeyMsg) {
	for _, msg := range msgs {
		app.Update(msg)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
