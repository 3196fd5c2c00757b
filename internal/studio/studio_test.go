package studio

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/config"
	"github.com/kingrea/battlepass-studio/internal/document"
	"github.com/kingrea/battlepass-studio/internal/logbook"
	"github.com/kingrea/battlepass-studio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const rewardsYAML = `"1":
  name: Coins
  type: money
  value: 500
"2":
  name: Miner Kit
  type: item
  items:
    "1":
      material: diamond_pickaxe:0
      amount: 1
"3":
  name: VIP Boost
  type: command
  commands:
    - lp user %player% parent add vip
`

const freeYAML = `tiers:
  "1":
    required-points: 0
    rewards:
      - "2"
  "2":
    required-points: 100
    rewards: []
`

const premiumYAML = `season: 4
tiers:
  "1":
    required-points: 0
    rewards:
      - "3"
      - "9"
  "5":
    required-points: 500
    rewards:
      - "1"
`

const questsYAML = `quests:
  "1":
    name: "&eKill &f10 &eZombie"
    type: kill-mob
    variable: zombie
    required-progress: 10
    points: 15
    item:
      material: iron_sword:0
      name: Kill
`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func newStudio(t *testing.T, dir string, opts ...Option) *Studio {
	t.Helper()
	cfg, err := config.NewConfig(dir)
	require.NoError(t, err)
	book, err := logbook.New(cfg.LogPath(), logbook.WithSession("test"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = book.Close() })
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1))), WithLogbook(book)}, opts...)
	s, err := New(cfg, opts...)
	require.NoError(t, err)
	require.NoError(t, s.Reload())
	return s
}

func fullProject(t *testing.T) string {
	return writeProject(t, map[string]string{
		"rewards.yml":       rewardsYAML,
		"free.yml":          freeYAML,
		"premium.yml":       premiumYAML,
		"week-1-quests.yml": questsYAML,
	})
}

func TestReloadReadsEveryDocument(t *testing.T) {
	s := newStudio(t, fullProject(t))
	assert.Equal(t, "Loaded.", s.Status())
	assert.Equal(t, []string{"1", "2", "3"}, s.RewardIDs())
	assert.Equal(t, []string{"1", "2"}, s.TierIDs(catalog.Free))
	assert.Equal(t, []string{"1", "5"}, s.TierIDs(catalog.Premium))
	assert.Equal(t, []string{"1"}, s.QuestIDs())
	assert.Equal(t, "week-1-quests.yml", s.QuestFile())
	assert.False(t, s.AnyDirty())
	assert.Equal(t, "Unsaved: none", s.DirtyLabel())
}

func TestEmptyProjectLoadsEmpty(t *testing.T) {
	s := newStudio(t, t.TempDir())
	assert.Empty(t, s.RewardIDs())
	assert.Empty(t, s.Preview())
	assert.Equal(t, "week-1-quests.yml", s.QuestFile())
}

func TestAddRewardYieldsDefault(t *testing.T) {
	s := newStudio(t, t.TempDir())
	id := s.AddReward()
	assert.Equal(t, "1", id)
	assert.Equal(t, "Added reward 1.", s.Status())
	r, ok := s.Reward(id)
	require.True(t, ok)
	assert.Equal(t, model.DefaultReward(), r)
	assert.True(t, s.Dirty(document.RoleRewards))
	assert.Equal(t, "Unsaved: rewards", s.DirtyLabel())
}

func TestRewardScenarioFromSingleMoneyReward(t *testing.T) {
	dir := writeProject(t, map[string]string{"rewards.yml": "\"1\": {name: Coins, type: money, value: 500}\n"})
	s := newStudio(t, dir)

	id := s.AddReward()
	assert.Equal(t, "2", id)
	require.NoError(t, s.DeleteReward("1"))
	assert.Equal(t, "Deleted reward 1.", s.Status())
	assert.Equal(t, []string{"2"}, s.RewardIDs())
}

func TestDeletionGuardScenario(t *testing.T) {
	s := newStudio(t, fullProject(t))
	before, _ := s.Tier(catalog.Free, "1")

	err := s.DeleteReward("2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalog.ErrRewardReferenced))
	assert.Equal(t, "Cannot delete reward 2: referenced by a tier.", s.Status())
	_, ok := s.Reward("2")
	assert.True(t, ok)
	after, _ := s.Tier(catalog.Free, "1")
	assert.Equal(t, before, after)
	assert.False(t, s.Dirty(document.RoleRewards))

	_, err = s.ApplyTier(catalog.Free, "1", model.TierForm{RequiredPoints: "100"})
	require.NoError(t, err)
	assert.Equal(t, "Applied changes to free tier 1.", s.Status())
	require.NoError(t, s.DeleteReward("2"))
	assert.True(t, s.Dirty(document.RoleFree))
	assert.True(t, s.Dirty(document.RoleRewards))
}

func TestDuplicateReward(t *testing.T) {
	s := newStudio(t, fullProject(t))
	id, err := s.DuplicateReward("2")
	require.NoError(t, err)
	assert.Equal(t, "4", id)
	assert.Equal(t, "Duplicated reward 2 -> 4.", s.Status())
	r, _ := s.Reward(id)
	assert.Equal(t, "Miner Kit (Copy)", r.Name)

	_, err = s.DuplicateReward("40")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Equal(t, "Reward 40 not found.", s.Status())
}

func TestApplyRewardRawReportsFormatError(t *testing.T) {
	s := newStudio(t, fullProject(t))
	before, _ := s.Reward("1")
	_, err := s.ApplyRewardRaw("1", "just a string")
	var fe *model.FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Reward YAML error: YAML must be a mapping (key: value)", s.Status())
	after, _ := s.Reward("1")
	assert.Equal(t, before, after)
	assert.False(t, s.AnyDirty())

	_, err = s.ApplyRewardRaw("1", "name: Big Coins\ntype: money\nvalue: 900\n")
	require.NoError(t, err)
	assert.Equal(t, "Applied YAML to reward 1.", s.Status())
}

func TestApplyWithoutSelection(t *testing.T) {
	s := newStudio(t, t.TempDir())
	_, err := s.ApplyReward("", model.RewardForm{Name: "X"})
	assert.ErrorIs(t, err, catalog.ErrMissingID)
	assert.Equal(t, "Select a reward first.", s.Status())
}

func TestRandomRewardAndQuest(t *testing.T) {
	s := newStudio(t, fullProject(t))
	id := s.RandomReward()
	assert.Equal(t, "4", id)
	assert.Equal(t, "Random-generated reward 4.", s.Status())

	qid := s.AddQuest()
	assert.Equal(t, "2", qid)
	assert.Equal(t, "Added quest 2.", s.Status())
	assert.True(t, s.Dirty(document.RoleQuests))
}

func TestTierOperations(t *testing.T) {
	s := newStudio(t, fullProject(t))
	id, err := s.AddTier(catalog.Premium)
	require.NoError(t, err)
	assert.Equal(t, "6", id)
	assert.Equal(t, "Added tier 6 to premium.", s.Status())

	dup, err := s.DuplicateTier(catalog.Premium, "5")
	require.NoError(t, err)
	assert.Equal(t, "7", dup)

	require.NoError(t, s.DeleteTier(catalog.Premium, "5"))
	assert.Equal(t, "Deleted tier 5 from premium.", s.Status())
	_, ok := s.Reward("1")
	assert.True(t, ok, "deleting a tier never touches rewards")
	assert.False(t, s.Dirty(document.RoleFree))
	assert.True(t, s.Dirty(document.RolePremium))

	_, err = s.ApplyTierRaw(catalog.Premium, "6", "required-points: 5\nrewards: ['1']\n")
	require.NoError(t, err)
	tier, _ := s.Tier(catalog.Premium, "6")
	assert.Equal(t, []string{"1"}, tier.Rewards)
}

func TestAddRandomRewardToTier(t *testing.T) {
	s := newStudio(t, fullProject(t))
	rid, err := s.AddRandomRewardToTier(catalog.Free, "2")
	require.NoError(t, err)
	assert.Equal(t, "4", rid)
	assert.Equal(t, "Generated reward 4 and added to tier 2.", s.Status())
	tier, _ := s.Tier(catalog.Free, "2")
	assert.Equal(t, []string{"4"}, tier.Rewards)
	assert.Equal(t, "Unsaved: free, rewards", s.DirtyLabel())
}

func TestSaveAllRoundTrip(t *testing.T) {
	dir := fullProject(t)
	s := newStudio(t, dir)
	_, err := s.ApplyTier(catalog.Premium, "1", model.TierForm{RequiredPoints: "10", Rewards: []string{"3"}})
	require.NoError(t, err)
	s.AddReward()
	require.NoError(t, s.SaveAll())
	assert.Equal(t, "Saved.", s.Status())
	assert.False(t, s.AnyDirty())

	data, err := os.ReadFile(filepath.Join(dir, "premium.yml"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "season: 4\ntiers:\n"), string(data))

	free, err := os.ReadFile(filepath.Join(dir, "free.yml"))
	require.NoError(t, err)
	assert.Equal(t, freeYAML, string(free), "clean documents are not rewritten")

	again := newStudio(t, dir)
	assert.Equal(t, []string{"1", "2", "3", "4"}, again.RewardIDs())
	tier, _ := again.Tier(catalog.Premium, "1")
	assert.Equal(t, 10, tier.RequiredPoints)
}

func TestSaveLoadSaveIsStable(t *testing.T) {
	dir := fullProject(t)
	s := newStudio(t, dir)
	s.AddReward()
	_, err := s.AddTier(catalog.Free)
	require.NoError(t, err)
	require.NoError(t, s.SaveAll())
	first := map[string]string{}
	for _, name := range []string{"rewards.yml", "free.yml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		first[name] = string(data)
	}

	again := newStudio(t, dir)
	again.docs.MarkDirty(document.RoleRewards)
	again.docs.MarkDirty(document.RoleFree)
	require.NoError(t, again.SaveAll())
	for name, want := range first {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data), name)
	}
}

func TestSaveAllStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("read-only filesystem")
	var written []string
	s := newStudio(t, fullProject(t), WithWriter(func(path string, _ *yaml.Node) error {
		if filepath.Base(path) == "premium.yml" {
			return boom
		}
		written = append(written, filepath.Base(path))
		return nil
	}))
	_, _ = s.AddTier(catalog.Free)
	_, _ = s.AddTier(catalog.Premium)
	s.AddReward()

	err := s.SaveAll()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "Save error: read-only filesystem", s.Status())
	assert.Equal(t, []string{"free.yml"}, written)
	assert.False(t, s.Dirty(document.RoleFree))
	assert.True(t, s.Dirty(document.RolePremium))
	assert.True(t, s.Dirty(document.RoleRewards))
}

func TestReloadDiscardsChanges(t *testing.T) {
	s := newStudio(t, fullProject(t))
	s.AddReward()
	require.NoError(t, s.Reload())
	assert.Equal(t, []string{"1", "2", "3"}, s.RewardIDs())
	assert.False(t, s.AnyDirty())
}

func TestReloadFailureKeepsModel(t *testing.T) {
	dir := fullProject(t)
	s := newStudio(t, dir)
	s.AddReward()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rewards.yml"), []byte("a: [1\n"), 0o644))

	err := s.Reload()
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(s.Status(), "Load error: "), s.Status())
	assert.Equal(t, []string{"1", "2", "3", "4"}, s.RewardIDs())
	assert.True(t, s.Dirty(document.RoleRewards))

	_, err = s.AddTier(catalog.Free)
	require.NoError(t, err)
	err = s.SaveAll()
	assert.ErrorIs(t, err, ErrNotLoaded)
	data, readErr := os.ReadFile(filepath.Join(dir, "rewards.yml"))
	require.NoError(t, readErr)
	assert.Equal(t, "a: [1\n", string(data), "the broken file is left for the user to fix")
	assert.False(t, s.Dirty(document.RoleFree), "documents that loaded still save")
	assert.True(t, s.Dirty(document.RoleRewards))
}

func TestFailedFirstLoadNeverOverwritesDocuments(t *testing.T) {
	broken := rewardsYAML + "\"4\": {name: [unclosed\n"
	dir := writeProject(t, map[string]string{
		"rewards.yml":       broken,
		"week-1-quests.yml": questsYAML,
	})
	cfg, err := config.NewConfig(dir)
	require.NoError(t, err)
	s, err := New(cfg, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	require.Error(t, s.Reload())
	assert.Empty(t, s.RewardIDs())
	s.AddReward()
	s.AddQuest()

	err = s.SaveAll()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.True(t, strings.HasPrefix(s.Status(), "Save error: "), s.Status())
	for name, want := range map[string]string{"rewards.yml": broken, "week-1-quests.yml": questsYAML} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, want, string(data), name)
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "rewards.yml"), []byte(rewardsYAML), 0o644))
	require.NoError(t, s.Reload())
	s.AddReward()
	require.NoError(t, s.SaveAll())
	require.NoError(t, s.Reload())
	assert.Equal(t, []string{"1", "2", "3", "4"}, s.RewardIDs())
}

func TestUnknownTypesLoadAndSurviveSave(t *testing.T) {
	rewards := rewardsYAML + `"4":
  name: XP
  type: exp
  amount: 250
`
	quests := questsYAML + `  "2":
    name: Place blocks
    type: block-place
    variable: stone
    required-progress: 64
    points: 5
    item:
      material: stone:0
      name: Place
`
	dir := writeProject(t, map[string]string{"rewards.yml": rewards, "week-1-quests.yml": quests})
	s := newStudio(t, dir)
	assert.Equal(t, []string{"1", "2", "3", "4"}, s.RewardIDs())
	assert.Equal(t, []string{"1", "2"}, s.QuestIDs())

	xp, ok := s.Reward("4")
	require.True(t, ok)
	assert.Equal(t, model.RewardType("exp"), xp.Type())
	assert.Equal(t, FallbackGlyph, Emoji(xp))

	problems := multierr.Errors(s.Check())
	require.Len(t, problems, 2)
	for _, p := range problems {
		assert.ErrorIs(t, p, model.ErrUnknownType)
	}

	assert.Equal(t, "5", s.AddReward())
	s.AddQuest()
	require.NoError(t, s.SaveAll())

	data, err := os.ReadFile(filepath.Join(dir, "rewards.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "  name: XP\n  type: exp\n  amount: 250\n")

	again := newStudio(t, dir)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, again.RewardIDs())
	coins, _ := again.Reward("1")
	assert.Equal(t, model.MoneyPayload{Value: 500}, coins.Payload)
	xp, _ = again.Reward("4")
	assert.Equal(t, model.RewardType("exp"), xp.Type())
	place, ok := again.Quest("2")
	require.True(t, ok)
	assert.Equal(t, model.QuestType("block-place"), place.Type)
	assert.Equal(t, 64, place.RequiredProgress)
	assert.Len(t, again.QuestIDs(), 3)
}

func TestUnreadableEntriesAreKept(t *testing.T) {
	rewards := rewardsYAML + "\"7\": retired\n"
	dir := writeProject(t, map[string]string{"rewards.yml": rewards})
	s := newStudio(t, dir)
	assert.Equal(t, []string{"1", "2", "3"}, s.RewardIDs())
	assert.Equal(t, "8", s.AddReward())

	problems := multierr.Errors(s.Check())
	require.Len(t, problems, 1)
	assert.ErrorIs(t, problems[0], ErrUnreadableEntry)

	require.NoError(t, s.SaveAll())
	data, err := os.ReadFile(filepath.Join(dir, "rewards.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"7\": retired\n")
}

func TestSelectQuestFileAppliesOnReload(t *testing.T) {
	dir := fullProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "daily-quests.yml"), []byte("quests: {}\n"), 0o644))
	s := newStudio(t, dir)
	assert.Equal(t, "daily-quests.yml", s.QuestFile(), "first discovered file wins")

	files, err := s.QuestFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"daily-quests.yml", "week-1-quests.yml"}, files)

	require.NoError(t, s.SelectQuestFile("week-1-quests.yml"))
	assert.Equal(t, "Selected quest file: week-1-quests.yml. Reload to apply.", s.Status())
	assert.Empty(t, s.QuestIDs())
	assert.Equal(t, filepath.Join(s.ProjectDir(), "daily-quests.yml"), s.Path(document.RoleQuests))

	require.NoError(t, s.Reload())
	assert.Equal(t, []string{"1"}, s.QuestIDs())
	assert.Equal(t, filepath.Join(s.ProjectDir(), "week-1-quests.yml"), s.Path(document.RoleQuests))
}

func TestQuestOperations(t *testing.T) {
	s := newStudio(t, fullProject(t))
	dup, err := s.DuplicateQuest("1")
	require.NoError(t, err)
	q, _ := s.Quest(dup)
	assert.Equal(t, "&eKill &f10 &eZombie (Copy)", q.Name)

	_, err = s.ApplyQuest(dup, model.QuestForm{Name: "Fish", Type: "fish", RequiredProgress: "5", Points: "10"})
	require.NoError(t, err)
	assert.Equal(t, "Applied changes to quest 2.", s.Status())

	_, err = s.ApplyQuestRaw(dup, "name: X\ntype: dance\n")
	assert.ErrorIs(t, err, model.ErrUnknownType)
	assert.True(t, strings.HasPrefix(s.Status(), "Quest YAML error: type: unknown type"), s.Status())

	require.NoError(t, s.DeleteQuest("1"))
	assert.Equal(t, []string{"2: Fish"}, s.QuestLines())
}

func TestPoolRawApply(t *testing.T) {
	dir := fullProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "week-pool.yml"), []byte("weeks:\n  - 1\n"), 0o644))
	s := newStudio(t, dir)
	text, err := s.PoolText()
	require.NoError(t, err)
	assert.Equal(t, "weeks:\n  - 1\n", text)

	err = s.ApplyPoolRaw("- not a mapping\n")
	assert.ErrorIs(t, err, model.ErrNotMapping)
	assert.False(t, s.Dirty(document.RolePool))

	require.NoError(t, s.ApplyPoolRaw("weeks: [1, 2]\n"))
	assert.True(t, s.Dirty(document.RolePool))
	require.NoError(t, s.SaveAll())
	data, err := os.ReadFile(filepath.Join(dir, "week-pool.yml"))
	require.NoError(t, err)
	assert.Equal(t, "weeks: [1, 2]\n", string(data))
}

func TestPoolIsNotAQuestFile(t *testing.T) {
	dir := writeProject(t, map[string]string{"week-pool.yml": "weeks: []\n"})
	s := newStudio(t, dir)
	assert.Equal(t, "week-1-quests.yml", s.QuestFile())
}

func TestPreview(t *testing.T) {
	s := newStudio(t, fullProject(t))
	cols := s.Preview()
	require.Len(t, cols, 3)
	assert.Equal(t, "1", cols[0].TierID)
	assert.Equal(t, "2", cols[1].TierID)
	assert.Equal(t, "5", cols[2].TierID)

	first := cols[0]
	assert.Equal(t, "🗡️", first.Free.Glyphs, "pickaxe contains axe")
	assert.Equal(t, []string{"Tier 1", "Free", "", "Miner Kit"}, first.Free.Tooltip)
	assert.Equal(t, "⭐🎁", first.Premium.Glyphs)
	assert.Equal(t, []string{"Tier 1", "Premium", "", "VIP Boost", "Reward 9"}, first.Premium.Tooltip)

	assert.Equal(t, EmptyGlyph, cols[1].Free.Glyphs)
	assert.Equal(t, EmptyGlyph, cols[1].Premium.Glyphs)
	assert.Equal(t, []string{"Tier 2", "Premium", "", "No rewards"}, cols[1].Premium.Tooltip)
	assert.Equal(t, "💰", cols[2].Premium.Glyphs)
}

func TestEmoji(t *testing.T) {
	cases := []struct {
		reward model.Reward
		want   string
	}{
		{model.Reward{Name: "Lucky Key", Payload: model.CommandPayload{}}, "📦"},
		{model.Reward{Name: "vip pass", Payload: model.CommandPayload{}}, "⭐"},
		{model.Reward{Name: "Cash Drop", Payload: model.CommandPayload{}}, "💰"},
		{model.Reward{Name: "Heal", Payload: model.CommandPayload{}}, "⚙️"},
		{model.Reward{Name: "Anything", Payload: model.MoneyPayload{Value: 5}}, "💰"},
		{model.Reward{Payload: model.ItemPayload{Slots: []model.ItemSlot{{Slot: "1", Material: "DIAMOND_HELMET"}}}}, "🛡️"},
		{model.Reward{Payload: model.ItemPayload{Slots: []model.ItemSlot{{Slot: "1", Material: "elytra:0"}}}}, "🪽"},
		{model.Reward{Payload: model.ItemPayload{Slots: []model.ItemSlot{{Slot: "1", Material: "totem_of_undying"}}}}, "🗿"},
		{model.Reward{Payload: model.ItemPayload{Slots: []model.ItemSlot{{Slot: "1", Material: "golden_apple"}}}}, "🍎"},
		{model.Reward{Payload: model.ItemPayload{Slots: []model.ItemSlot{{Slot: "1", Material: "ender_pearl"}}}}, "🧿"},
		{model.Reward{Payload: model.ItemPayload{Slots: []model.ItemSlot{{Slot: "1", Material: "dirt"}}}}, "🎁"},
		{model.Reward{Payload: model.ItemPayload{}}, "🎁"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Emoji(tc.reward), "%+v", tc.reward)
	}
}

func TestCheckReportsEveryProblem(t *testing.T) {
	dir := fullProject(t)
	s := newStudio(t, dir)
	_, err := s.ApplyTier(catalog.Free, "2", model.TierForm{RequiredPoints: "-1", Rewards: []string{"77"}})
	require.NoError(t, err)
	_, err = s.ApplyQuestRaw("1", "name: Q\ntype: fish\nrequired-progress: 0\npoints: -3\nitem: {material: x, name: Q}\n")
	require.NoError(t, err)
	_, err = s.ApplyRewardRaw("2", "name: Bad\ntype: item\nitems:\n  '1':\n    material: stone\n    amount: 0\n")
	require.NoError(t, err)

	err = s.Check()
	problems := multierr.Errors(err)
	require.Len(t, problems, 6)
	assert.Equal(t, "Check found 6 problem(s).", s.Status())
	var dangling int
	for _, p := range problems {
		if errors.Is(p, ErrDanglingReference) {
			dangling++
		}
	}
	assert.Equal(t, 2, dangling)
}

func TestCheckPassesOnCleanModel(t *testing.T) {
	s := newStudio(t, t.TempDir())
	s.AddReward()
	assert.NoError(t, s.Check())
	assert.Equal(t, "Check passed.", s.Status())
}

func TestStatusIsJournaled(t *testing.T) {
	dir := t.TempDir()
	s := newStudio(t, dir)
	s.AddReward()
	lines, _ := s.log.Tail(10)
	require.NotEmpty(t, lines)
	assert.Contains(t, strings.Join(lines, "\n"), "Added reward 1.")
}
