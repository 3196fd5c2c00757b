// Package generator builds random rewards and quests from fixed vocabularies.
// Every function draws from the supplied source only, so a seeded source
// reproduces the same records.
package generator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/kingrea/battlepass-studio/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Materials are the item materials rewards draw from.
var Materials = []string{
	"diamond:0",
	"emerald:0",
	"gold_ingot:0",
	"iron_ingot:0",
	"netherite_ingot:0",
	"totem_of_undying:0",
	"enchanted_golden_apple:0",
	"ender_pearl:0",
	"diamond_sword:0",
	"diamond_pickaxe:0",
	"diamond_chestplate:0",
	"shulker_box:0",
	"elytra:0",
	"trident:0",
	"experience_bottle:0",
	"golden_apple:0",
	"netherite_sword:0",
	"netherite_pickaxe:0",
	"bow:0",
	"crossbow:0",
	"arrow:0",
}

var (
	Mobs       = []string{"zombie", "skeleton", "creeper", "spider", "enderman", "witch", "slime", "pillager", "guardian", "blaze"}
	Blocks     = []string{"stone", "coal_ore", "iron_ore", "diamond_ore", "oak_log", "sand", "netherrack", "obsidian", "deepslate"}
	Fish       = []string{"cod", "salmon", "tropical_fish", "pufferfish"}
	Craftables = []string{"bread", "torch", "iron_pickaxe", "diamond_sword", "golden_apple"}
)

// RewardLore is attached to every generated reward.
var RewardLore = []string{"&7Auto-generated reward."}

// QuestLore is the progress lore carried by every generated quest item.
var QuestLore = []string{
	"&7Progress: &f%progress_bar% &7(&f%percentage_progress%%&7)",
	"&7Progress: &f%progress%&7/&f%required_progress%",
	"",
	"&7Points: &f%points%",
}

var (
	commandNames = []string{"Starter Bundle", "Lucky Key", "Cash Drop", "VIP Boost", "Supply Crate", "Charm Pack"}
	itemNames    = []string{"Loot Pack", "Miner Kit", "PvP Kit", "Explorer Bundle", "Treasure Drop", "Supply Cache"}
	moneyNames   = []string{"Coins", "Pouch of Coins", "Gold Stash", "Bank Transfer"}

	commandTemplates = []string{
		"give %player% diamond {amt}",
		"eco give %player% {money}",
		"lp user %player% permission settemp battlepass.boost.{n} true {dur}d",
		"crate key give %player% {key} {amt}",
		"minecraft:give %player% experience_bottle {amt}",
	}

	commandAmounts = []int{1, 2, 3, 5, 8, 16}
	itemAmounts    = []int{1, 1, 2, 3, 5, 8, 16}
	moneyValues    = []int{250, 500, 750, 1000, 1500, 2000}
	boostLevels    = []int{1, 2, 3}
	boostDays      = []int{1, 3, 7, 14}
	crateKeys      = []string{"basic", "rare", "epic"}
)

// Reward draws a variant (45% command, 40% item, 15% money) and generates it.
func Reward(rng *rand.Rand) model.Reward {
	p := rng.Float64()
	switch {
	case p < 0.45:
		return CommandReward(rng)
	case p < 0.85:
		return ItemReward(rng)
	default:
		return MoneyReward(rng)
	}
}

// CommandReward generates a reward running one templated console command.
func CommandReward(rng *rand.Rand) model.Reward {
	name := pick(rng, commandNames)
	tmpl := pick(rng, commandTemplates)
	cmd := strings.NewReplacer(
		"{amt}", fmt.Sprint(pick(rng, commandAmounts)),
		"{money}", fmt.Sprint(pick(rng, moneyValues)),
		"{n}", fmt.Sprint(pick(rng, boostLevels)),
		"{dur}", fmt.Sprint(pick(rng, boostDays)),
		"{key}", pick(rng, crateKeys),
	).Replace(tmpl)
	return model.Reward{
		Name:      name,
		LoreAddon: append([]string(nil), RewardLore...),
		Payload:   model.CommandPayload{Commands: []string{cmd}},
	}
}

// ItemReward generates a reward granting one item stack.
func ItemReward(rng *rand.Rand) model.Reward {
	mat := pick(rng, Materials)
	amt := pick(rng, itemAmounts)
	name := pick(rng, itemNames)
	slot := model.ItemSlot{
		Slot:     model.PrimarySlotKey,
		Material: mat,
		Amount:   amt,
		Name:     "&b" + name,
		Lore: []string{
			"&7Auto-generated item reward.",
			fmt.Sprintf("&7Contains: &f%dx &f%s", amt, Title(strings.SplitN(mat, ":", 2)[0])),
		},
		Glow: rng.Float64() < 0.25,
	}
	return model.Reward{
		Name:      name,
		LoreAddon: append([]string(nil), RewardLore...),
		Payload:   model.ItemPayload{Slots: []model.ItemSlot{slot}},
	}
}

// MoneyReward generates a currency reward.
func MoneyReward(rng *rand.Rand) model.Reward {
	return model.Reward{
		Name:      pick(rng, moneyNames),
		LoreAddon: append([]string(nil), RewardLore...),
		Payload:   model.MoneyPayload{Value: pick(rng, moneyValues)},
	}
}

type questShape struct {
	subjects []string
	needs    []int
	points   []int
	icon     string
}

var questShapes = map[model.QuestType]questShape{
	model.QuestKillMob:    {subjects: Mobs, needs: []int{5, 10, 15, 20, 25, 30}, points: []int{10, 15, 20, 25, 30}, icon: "iron_sword:0"},
	model.QuestBlockBreak: {subjects: Blocks, needs: []int{16, 32, 64, 128}, points: []int{10, 15, 20, 25}, icon: "diamond_pickaxe:0"},
	model.QuestFish:       {subjects: Fish, needs: []int{5, 10, 15, 20}, points: []int{10, 15, 20, 25}, icon: "fishing_rod:0"},
	model.QuestCraftItem:  {subjects: Craftables, needs: []int{4, 8, 16, 24, 32}, points: []int{10, 15, 20, 25, 30}, icon: "crafting_table:0"},
}

// Quest draws a quest type uniformly and generates a quest of that type.
func Quest(rng *rand.Rand) model.Quest {
	return QuestOf(rng, pick(rng, model.QuestTypes))
}

// QuestOf generates a quest of the given type.
func QuestOf(rng *rand.Rand, typ model.QuestType) model.Quest {
	shape, ok := questShapes[typ]
	if !ok {
		panic(fmt.Sprintf("generator: unhandled quest type %q", typ))
	}
	subject := pick(rng, shape.subjects)
	need := pick(rng, shape.needs)
	points := pick(rng, shape.points)
	name := fmt.Sprintf("&e%s &f%d &e%s", typ.Verb(), need, Title(subject))
	return model.Quest{
		Name:             name,
		Type:             typ,
		Variable:         subject,
		RequiredProgress: need,
		Points:           points,
		Item: model.QuestItem{
			Material: shape.icon,
			Name:     name,
			Lore:     append([]string(nil), QuestLore...),
		},
	}
}

// Title turns a material id such as "tropical_fish" into "Tropical Fish".
func Title(id string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(id, "_", " "))
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.Intn(len(values))]
}
