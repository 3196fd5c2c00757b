package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/kingrea/battlepass-studio/internal/generator"
	"github.com/kingrea/battlepass-studio/internal/model"
	"gopkg.in/yaml.v3"
)

// Referencer reports which tiers list a reward.
type Referencer interface {
	Referrers(rewardID string) []TierRef
}

// Rewards is the reward catalog document: an id mapping at the top level.
type Rewards struct {
	items *Ordered[model.Reward]
}

// NewRewards returns an empty catalog.
func NewRewards() *Rewards {
	return &Rewards{items: NewOrdered[model.Reward]()}
}

// DecodeRewards reads the catalog from a loaded document.
func DecodeRewards(root *yaml.Node) (*Rewards, error) {
	items, err := decodeOrdered("reward", root, model.DecodeReward)
	if err != nil {
		return nil, err
	}
	return &Rewards{items: items}, nil
}

// Node encodes the catalog for saving.
func (r *Rewards) Node() *yaml.Node { return r.items.Node() }

func (r *Rewards) Len() int { return r.items.Len() }

// Unreadable lists ids whose entries are not rewards and are kept as loaded.
func (r *Rewards) Unreadable() []string { return r.items.Unreadable() }

// IDs returns reward ids in listing order.
func (r *Rewards) IDs() []string { return r.items.Sorted() }

// Lookup returns a copy of the reward stored under id.
func (r *Rewards) Lookup(id string) (model.Reward, bool) { return r.items.Get(id) }

// Clone deep-copies the catalog.
func (r *Rewards) Clone() *Rewards { return &Rewards{items: r.items.Clone()} }

// Insert stores rec under the next free id.
func (r *Rewards) Insert(rec model.Reward) string {
	id := r.items.NextID()
	r.items.Set(id, rec)
	return id
}

// Add inserts the default reward.
func (r *Rewards) Add() string {
	return r.Insert(model.DefaultReward())
}

// Random inserts a generated reward.
func (r *Rewards) Random(rng *rand.Rand) string {
	return r.Insert(generator.Reward(rng))
}

// Duplicate copies a reward to the next free id, suffixing its name.
func (r *Rewards) Duplicate(id string) (string, error) {
	src, ok := r.items.Get(id)
	if !ok {
		return "", notFound("reward", id)
	}
	if src.Name == "" {
		src.Name = "Reward"
	}
	src.Name += " (Copy)"
	return r.Insert(src), nil
}

// Delete removes a reward unless a tier still lists it.
func (r *Rewards) Delete(id string, refs Referencer) error {
	if !r.items.Has(id) {
		return notFound("reward", id)
	}
	if refs != nil {
		if found := refs.Referrers(id); len(found) > 0 {
			return &ReferenceError{RewardID: id, Refs: found}
		}
	}
	r.items.Delete(id)
	return nil
}

// Apply merges form values into the reward stored under id, creating it when
// absent.
func (r *Rewards) Apply(id string, form model.RewardForm) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	prev, _ := r.items.Get(id)
	next, err := form.ApplyTo(prev)
	if err != nil {
		return "", err
	}
	r.items.Set(id, next)
	return id, nil
}

// ApplyRaw replaces the reward stored under id with parsed YAML. The catalog
// is unchanged when text does not describe a valid reward.
func (r *Rewards) ApplyRaw(id, text string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	rec, err := model.ParseReward(text)
	if err != nil {
		return "", err
	}
	r.items.Set(id, rec)
	return id, nil
}

// Text renders one reward as YAML for the raw editor.
func (r *Rewards) Text(id string) (string, error) {
	rec, ok := r.items.Get(id)
	if !ok {
		return "", notFound("reward", id)
	}
	return model.Text(rec)
}

// Label is the one-line list entry for a reward.
func (r *Rewards) Label(id string) string {
	rec, ok := r.items.Get(id)
	if !ok {
		return fmt.Sprintf("%s: (missing)", id)
	}
	return fmt.Sprintf("%s: %s [%s]", id, rec.Name, rec.Type())
}
