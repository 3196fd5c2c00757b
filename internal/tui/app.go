// internal/tui/app.go
//
// This is the terminal editor for battle-pass documents.
// It uses bubbletea, which follows The Elm Architecture:
//
// 1. Model: the studio plus which tab, form or editor is on screen
// 2. Update: key presses become studio actions
// 3. View: renders tabs, the active editor, the log and the status line
//
// Every edit goes through internal/studio, so the UI never touches the
// documents directly.

package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/config"
	"github.com/kingrea/battlepass-studio/internal/logbook"
	"github.com/kingrea/battlepass-studio/internal/studio"
	"go.uber.org/multierr"
)

// appState represents which "screen" we're on
type appState int

const (
	stateBrowse      appState = iota // Lists and preview, single-key actions
	stateForm                        // Field editor for one record
	stateRaw                         // YAML editor for one record or the pool
	stateConfirmQuit                 // Unsaved changes prompt
)

type tab int

const (
	tabRewards tab = iota
	tabFree
	tabPremium
	tabQuests
	tabPreview
	tabCount
)

var tabNames = [tabCount]string{"Rewards", "Free", "Premium", "Quests", "Preview"}

const logPanelLines = 6

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithQuestsFile opens a specific quest document instead of discovering one.
func WithQuestsFile(path string) AppOption {
	return func(a *App) {
		a.questsPath = strings.TrimSpace(path)
	}
}

// WithPoolFile overrides the pool document.
func WithPoolFile(path string) AppOption {
	return func(a *App) {
		a.poolPath = strings.TrimSpace(path)
	}
}

// WithStudioOptions passes options through to the studio, e.g. a fixed
// random source in tests.
func WithStudioOptions(opts ...studio.Option) AppOption {
	return func(a *App) {
		a.studioOpts = append(a.studioOpts, opts...)
	}
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state   appState
	tab     tab
	config  *config.Config
	studio  *studio.Studio
	logbook *logbook.Logbook

	lists        [tabPreview]list.Model
	form         *formView
	raw          *rawView
	previewIndex int
	problems     []string

	questsPath string
	poolPath   string
	studioOpts []studio.Option

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// menuItem implements list.Item for one record row.
type menuItem struct {
	id    string
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp opens the documents of projectDir and loads them.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	app := &App{state: stateBrowse, tab: tabRewards, config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.questsPath != "" {
		cfg.SetQuestsPath(app.questsPath)
	}
	if app.poolPath != "" {
		cfg.SetPoolPath(app.poolPath)
	}
	lb, err := logbook.New(cfg.LogPath())
	if err == nil {
		app.logbook = lb
		lb.Info("Session opened · %s", cfg.ProjectDir)
	}
	studioOpts := append([]studio.Option{studio.WithLogbook(app.logbook)}, app.studioOpts...)
	app.studio, err = studio.New(cfg, studioOpts...)
	if err != nil {
		_ = app.logbook.Close()
		return nil, err
	}
	// A failed load leaves an empty model and the error on the status line.
	_ = app.studio.Reload()

	for t := tabRewards; t < tabPreview; t++ {
		delegate := list.NewDefaultDelegate()
		delegate.ShowDescription = false
		delegate.SetSpacing(0)
		l := list.New(nil, delegate, 0, 0)
		l.Title = tabNames[t]
		l.SetShowStatusBar(false)
		l.SetFilteringEnabled(false)
		l.SetShowHelp(false)
		l.DisableQuitKeybindings()
		app.lists[t] = l
	}
	app.refreshLists("")
	return app, nil
}

// Studio exposes the editor state, mainly for tests.
func (a *App) Studio() *studio.Studio { return a.studio }

// Close releases the log file.
func (a *App) Close() error { return a.logbook.Close() }

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for t := range a.lists {
			a.lists[t].SetSize(max(20, msg.Width-6), max(5, msg.Height-logPanelLines-12))
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.state {
		case stateForm:
			return a, a.updateForm(msg)
		case stateRaw:
			return a, a.updateRaw(msg)
		case stateConfirmQuit:
			return a.updateConfirmQuit(msg)
		default:
			return a.updateBrowse(msg)
		}
	}
	switch {
	case a.state == stateForm:
		return a, a.form.focused().update(msg)
	case a.state == stateRaw:
		var cmd tea.Cmd
		a.raw.area, cmd = a.raw.area.Update(msg)
		return a, cmd
	case a.state == stateBrowse && a.tab < tabPreview:
		var cmd tea.Cmd
		a.lists[a.tab], cmd = a.lists[a.tab].Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "v" {
		a.problems = nil
	}
	switch key {
	case "q":
		return a.requestQuit()
	case "tab":
		a.tab = (a.tab + 1) % tabCount
		return a, nil
	case "shift+tab":
		a.tab = (a.tab + tabCount - 1) % tabCount
		return a, nil
	case "a":
		a.add()
		return a, nil
	case "c":
		a.duplicate()
		return a, nil
	case "x":
		a.remove()
		return a, nil
	case "g":
		a.generate()
		return a, nil
	case "e", "enter":
		return a, a.openForm()
	case "y":
		return a, a.openRaw()
	case "w":
		return a, a.openPool()
	case "s":
		_ = a.studio.SaveAll()
		return a, nil
	case "R":
		_ = a.studio.Reload()
		a.refreshLists("")
		return a, nil
	case "f":
		a.cycleQuestFile()
		return a, nil
	case "v":
		a.problems = nil
		for _, err := range multierr.Errors(a.studio.Check()) {
			a.problems = append(a.problems, err.Error())
		}
		return a, nil
	}
	if a.tab == tabPreview {
		switch key {
		case "left", "h":
			a.previewIndex = max(0, a.previewIndex-1)
		case "right", "l":
			a.previewIndex = min(max(0, len(a.studio.Preview())-1), a.previewIndex+1)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.lists[a.tab], cmd = a.lists[a.tab].Update(msg)
	return a, cmd
}

func (a *App) track() catalog.Track {
	if a.tab == tabPremium {
		return catalog.Premium
	}
	return catalog.Free
}

func (a *App) entityName() string {
	switch a.tab {
	case tabFree, tabPremium:
		return "tier"
	case tabQuests:
		return "quest"
	default:
		return "reward"
	}
}

// selectedID returns the id highlighted on the current tab, if any.
func (a *App) selectedID() string {
	if a.tab >= tabPreview {
		return ""
	}
	item, ok := a.lists[a.tab].SelectedItem().(menuItem)
	if !ok {
		return ""
	}
	return item.id
}

func (a *App) requireSelection() (string, bool) {
	id := a.selectedID()
	if id == "" {
		a.studio.Notify("Select a %s first.", a.entityName())
		return "", false
	}
	return id, true
}

func (a *App) add() {
	var id string
	switch a.tab {
	case tabRewards:
		id = a.studio.AddReward()
	case tabFree, tabPremium:
		id, _ = a.studio.AddTier(a.track())
	case tabQuests:
		id = a.studio.AddQuest()
	default:
		a.studio.Notify("Nothing to add.")
		return
	}
	a.refreshLists(id)
}

func (a *App) duplicate() {
	if a.tab == tabPreview {
		a.studio.Notify("Nothing to duplicate.")
		return
	}
	src, ok := a.requireSelection()
	if !ok {
		return
	}
	var id string
	var err error
	switch a.tab {
	case tabRewards:
		id, err = a.studio.DuplicateReward(src)
	case tabFree, tabPremium:
		id, err = a.studio.DuplicateTier(a.track(), src)
	case tabQuests:
		id, err = a.studio.DuplicateQuest(src)
	}
	if err == nil {
		a.refreshLists(id)
	}
}

func (a *App) remove() {
	if a.tab == tabPreview {
		a.studio.Notify("Nothing to delete.")
		return
	}
	id, ok := a.requireSelection()
	if !ok {
		return
	}
	var err error
	switch a.tab {
	case tabRewards:
		err = a.studio.DeleteReward(id)
	case tabFree, tabPremium:
		err = a.studio.DeleteTier(a.track(), id)
	case tabQuests:
		err = a.studio.DeleteQuest(id)
	}
	if err == nil {
		a.refreshLists("")
	}
}

// generate adds random content suited to the current tab: a reward, a reward
// inside the selected tier, or a quest.
func (a *App) generate() {
	switch a.tab {
	case tabRewards:
		a.refreshLists(a.studio.RandomReward())
	case tabFree, tabPremium:
		tierID, ok := a.requireSelection()
		if !ok {
			return
		}
		if _, err := a.studio.AddRandomRewardToTier(a.track(), tierID); err == nil {
			a.refreshLists(tierID)
		}
	case tabQuests:
		a.refreshLists(a.studio.AddQuest())
	default:
		a.studio.Notify("Nothing to generate.")
	}
}

func (a *App) openForm() tea.Cmd {
	if a.tab == tabPreview {
		return nil
	}
	id, ok := a.requireSelection()
	if !ok {
		return nil
	}
	switch a.tab {
	case tabRewards:
		r, _ := a.studio.Reward(id)
		a.form = newRewardForm(id, r)
	case tabFree, tabPremium:
		t, _ := a.studio.Tier(a.track(), id)
		a.form = newTierForm(a.track(), id, t)
		a.form.refreshHits(a.studio)
	case tabQuests:
		q, _ := a.studio.Quest(id)
		a.form = newQuestForm(id, q)
	}
	a.state = stateForm
	return a.form.focused().focus()
}

func (a *App) openRaw() tea.Cmd {
	if a.tab == tabPreview {
		return a.openPool()
	}
	id, ok := a.requireSelection()
	if !ok {
		return nil
	}
	var text string
	var err error
	switch a.tab {
	case tabRewards:
		text, err = a.studio.RewardText(id)
	case tabFree, tabPremium:
		text, err = a.studio.TierText(a.track(), id)
	case tabQuests:
		text, err = a.studio.QuestText(id)
	}
	if err != nil {
		a.studio.Notify("Cannot render %s %s: %v", a.entityName(), id, err)
		return nil
	}
	a.raw = newRawView(a.tab, a.track(), id, text)
	a.state = stateRaw
	return nil
}

func (a *App) openPool() tea.Cmd {
	text, err := a.studio.PoolText()
	if err != nil {
		a.studio.Notify("Cannot render pool: %v", err)
		return nil
	}
	a.raw = newPoolView(text)
	a.state = stateRaw
	return nil
}

func (a *App) updateForm(msg tea.KeyMsg) tea.Cmd {
	f := a.form
	switch msg.String() {
	case "esc":
		a.closeEditor("Edit cancelled.")
		return nil
	case "tab":
		return f.move(1)
	case "shift+tab":
		return f.move(-1)
	case "ctrl+s":
		id, err := f.apply(a.studio)
		if err != nil {
			return nil
		}
		a.state = stateBrowse
		a.form = nil
		a.refreshLists(id)
		return nil
	}
	if f.picking() {
		switch msg.String() {
		case "enter":
			if id, ok := f.pick(); ok {
				a.studio.Notify("Added reward %s to the list. Apply to keep it.", id)
			}
			return nil
		case "up":
			f.hitIndex = max(0, f.hitIndex-1)
			return nil
		case "down":
			f.hitIndex = min(max(0, len(f.hits)-1), f.hitIndex+1)
			return nil
		}
	}
	cmd := f.focused().update(msg)
	if f.picking() {
		f.refreshHits(a.studio)
	}
	return cmd
}

func (a *App) updateRaw(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		a.closeEditor("Edit cancelled.")
		return nil
	case "ctrl+s":
		id, err := a.raw.apply(a.studio)
		if err != nil {
			return nil
		}
		a.state = stateBrowse
		a.raw = nil
		a.refreshLists(id)
		return nil
	}
	var cmd tea.Cmd
	a.raw.area, cmd = a.raw.area.Update(msg)
	return cmd
}

func (a *App) closeEditor(status string) {
	a.state = stateBrowse
	a.form = nil
	a.raw = nil
	a.studio.Notify(status)
}

func (a *App) requestQuit() (tea.Model, tea.Cmd) {
	if !a.studio.AnyDirty() {
		return a, tea.Quit
	}
	a.state = stateConfirmQuit
	a.studio.Notify("%s. Quit anyway? (y)es / (s)ave and quit / (n)o", a.studio.DirtyLabel())
	return a, nil
}

func (a *App) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return a, tea.Quit
	case "s":
		if err := a.studio.SaveAll(); err != nil {
			a.state = stateBrowse
			return a, nil
		}
		return a, tea.Quit
	case "n", "N", "esc":
		a.state = stateBrowse
		a.studio.Notify("Quit cancelled.")
	}
	return a, nil
}

func (a *App) cycleQuestFile() {
	files, err := a.studio.QuestFiles()
	if err != nil {
		a.studio.Notify("Quest file scan failed: %v", err)
		return
	}
	if len(files) == 0 {
		a.studio.Notify("No quest files found in %s.", a.studio.ProjectDir())
		return
	}
	next := files[0]
	current := a.studio.QuestFile()
	for i, name := range files {
		if strings.EqualFold(name, current) {
			next = files[(i+1)%len(files)]
			break
		}
	}
	_ = a.studio.SelectQuestFile(next)
}

// refreshLists rebuilds every list from the studio. The current tab selects
// focusID when given; other lists keep their selection by id.
func (a *App) refreshLists(focusID string) {
	for t := tabRewards; t < tabPreview; t++ {
		keep := focusID
		if t != a.tab || keep == "" {
			if item, ok := a.lists[t].SelectedItem().(menuItem); ok {
				keep = item.id
			} else {
				keep = ""
			}
		}
		items := a.listItems(t)
		a.lists[t].SetItems(items)
		for i, item := range items {
			if item.(menuItem).id == keep {
				a.lists[t].Select(i)
				break
			}
		}
	}
	if n := len(a.studio.Preview()); a.previewIndex >= n {
		a.previewIndex = max(0, n-1)
	}
}

func (a *App) listItems(t tab) []list.Item {
	var items []list.Item
	switch t {
	case tabRewards:
		for _, id := range a.studio.RewardIDs() {
			items = append(items, menuItem{id: id, title: a.studio.RewardLabel(id)})
		}
	case tabFree, tabPremium:
		track := catalog.Free
		if t == tabPremium {
			track = catalog.Premium
		}
		for _, id := range a.studio.TierIDs(track) {
			tier, _ := a.studio.Tier(track, id)
			items = append(items, menuItem{
				id:    id,
				title: fmt.Sprintf("Tier %s · %d pts · %d reward(s)", id, tier.RequiredPoints, len(tier.Rewards)),
			})
		}
	case tabQuests:
		for _, id := range a.studio.QuestIDs() {
			items = append(items, menuItem{id: id, title: a.studio.QuestLabel(id)})
		}
	}
	return items
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	var content string
	switch a.state {
	case stateForm:
		content = a.form.View()
	case stateRaw:
		content = a.raw.View()
	default:
		if a.tab == tabPreview {
			content = a.renderPreview(width - 4)
		} else {
			content = a.lists[a.tab].View()
			if len(a.lists[a.tab].Items()) == 0 {
				content = mutedStyle.Render(fmt.Sprintf("No %ss yet. Press a to add one.", a.entityName()))
			}
		}
	}
	sections := []string{a.renderHeader(), panelStyle.Width(max(20, width-2)).Render(content)}
	if len(a.problems) > 0 {
		sections = append(sections, a.renderProblems(width-2))
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderFooter())
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	title := headerStyle.Render("⬡ BATTLEPASS STUDIO")
	var tabs []string
	for t := tab(0); t < tabCount; t++ {
		if t == a.tab {
			tabs = append(tabs, tabActiveStyle.Render(tabNames[t]))
		} else {
			tabs = append(tabs, tabStyle.Render(tabNames[t]))
		}
	}
	dirty := cleanStyle.Render(a.studio.DirtyLabel())
	if a.studio.AnyDirty() {
		dirty = dirtyStyle.Render(a.studio.DirtyLabel())
	}
	meta := mutedStyle.Render(fmt.Sprintf("Quests: %s · ", a.studio.QuestFile())) + dirty
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(tabs, " "), "   ", meta),
	)
}

func (a *App) renderProblems(width int) string {
	head := dirtyStyle.Render(fmt.Sprintf("CHECK · %d problem(s)", len(a.problems)))
	return panelStyle.Width(max(20, width)).BorderForeground(colorBad).
		Render(head + "\n" + strings.Join(a.problems, "\n"))
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines, total := a.logbook.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorFree).
		Render(fmt.Sprintf("LOG · %s (%d)", fileName, total))
	body := mutedStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderFooter() string {
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).MarginTop(1).Render(a.studio.Status())
	var hint string
	switch a.state {
	case stateBrowse:
		hint = "a add · c dup · x del · g random · e edit · y yaml · w pool · s save · R reload · f quest file · v check · tab switch · q quit"
		if a.tab == tabPreview {
			hint = "←/→ select tier · y/w pool yaml · s save · R reload · v check · tab switch · q quit"
		}
	case stateConfirmQuit:
		hint = "y quit · s save and quit · n stay"
	}
	if hint == "" {
		return status
	}
	return status + "\n" + mutedStyle.Render(hint)
}
