package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/kingrea/battlepass-studio/internal/model"
	"gopkg.in/yaml.v3"
)

// Track names one of the two tier ladders.
type Track string

const (
	Free    Track = "free"
	Premium Track = "premium"
)

// TrackNames lists the tracks in the order they are scanned and saved.
var TrackNames = []Track{Free, Premium}

// ParseTrack normalizes a track name.
func ParseTrack(s string) (Track, error) {
	switch t := Track(strings.ToLower(strings.TrimSpace(s))); t {
	case Free, Premium:
		return t, nil
	default:
		return "", fmt.Errorf("catalog: %w %q", ErrUnknownTrack, s)
	}
}

// Tiers is one track document. Tiers live under its "tiers" key.
type Tiers struct {
	doc section[model.Tier]
}

// NewTiers returns an empty track document.
func NewTiers() *Tiers {
	return &Tiers{doc: section[model.Tier]{key: "tiers", items: NewOrdered[model.Tier]()}}
}

// DecodeTiers reads a track document.
func DecodeTiers(root *yaml.Node) (*Tiers, error) {
	doc, err := decodeSection("tier", "tiers", root, model.DecodeTier)
	if err != nil {
		return nil, err
	}
	return &Tiers{doc: doc}, nil
}

// Node encodes the track document for saving.
func (t *Tiers) Node() *yaml.Node { return t.doc.node() }

func (t *Tiers) Len() int { return t.doc.items.Len() }

// Unreadable lists ids whose entries are not tiers and are kept as loaded.
func (t *Tiers) Unreadable() []string { return t.doc.items.Unreadable() }

// IDs returns tier ids in listing order.
func (t *Tiers) IDs() []string { return t.doc.items.Sorted() }

// Lookup returns a copy of the tier stored under id.
func (t *Tiers) Lookup(id string) (model.Tier, bool) { return t.doc.items.Get(id) }

// Clone deep-copies the document.
func (t *Tiers) Clone() *Tiers { return &Tiers{doc: t.doc.clone()} }

// Add inserts the default tier.
func (t *Tiers) Add() string {
	id := t.doc.items.NextID()
	t.doc.items.Set(id, model.DefaultTier())
	return id
}

// Duplicate copies a tier to the next free id.
func (t *Tiers) Duplicate(id string) (string, error) {
	src, ok := t.doc.items.Get(id)
	if !ok {
		return "", notFound("tier", id)
	}
	next := t.doc.items.NextID()
	t.doc.items.Set(next, src)
	return next, nil
}

// Delete removes a tier. Rewards are never touched.
func (t *Tiers) Delete(id string) error {
	if !t.doc.items.Delete(id) {
		return notFound("tier", id)
	}
	return nil
}

// Apply sets a tier's threshold and reward list, creating the tier when
// absent. Blank reward ids are dropped; order and duplicates are kept.
func (t *Tiers) Apply(id string, form model.TierForm) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	tier, ok := t.doc.items.Get(id)
	if !ok {
		tier = model.DefaultTier()
	}
	tier.RequiredPoints, tier.Rewards = form.Values()
	t.doc.items.Set(id, tier)
	return id, nil
}

// ApplyRaw replaces a tier with parsed YAML.
func (t *Tiers) ApplyRaw(id, text string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	tier, err := model.ParseTier(text)
	if err != nil {
		return "", err
	}
	t.doc.items.Set(id, tier)
	return id, nil
}

// AppendReward adds rewardID to the end of a tier's list unless it is
// already listed.
func (t *Tiers) AppendReward(id, rewardID string) error {
	tier, ok := t.doc.items.Get(id)
	if !ok {
		return notFound("tier", id)
	}
	if !tier.References(rewardID) {
		tier.Rewards = append(tier.Rewards, rewardID)
		t.doc.items.Set(id, tier)
	}
	return nil
}

// Referencing lists the tier ids whose reward list contains rewardID.
func (t *Tiers) Referencing(rewardID string) []string {
	var out []string
	for _, id := range t.doc.items.Sorted() {
		tier, _ := t.doc.items.Get(id)
		if tier.References(rewardID) {
			out = append(out, id)
		}
	}
	return out
}

// Text renders one tier as YAML for the raw editor.
func (t *Tiers) Text(id string) (string, error) {
	tier, ok := t.doc.items.Get(id)
	if !ok {
		return "", notFound("tier", id)
	}
	return model.Text(tier)
}

// Tracks holds the free and premium ladders.
type Tracks struct {
	Free    *Tiers
	Premium *Tiers
}

// NewTracks returns two empty ladders.
func NewTracks() *Tracks {
	return &Tracks{Free: NewTiers(), Premium: NewTiers()}
}

// Get returns the ladder for track.
func (ts *Tracks) Get(track Track) (*Tiers, error) {
	switch track {
	case Free:
		return ts.Free, nil
	case Premium:
		return ts.Premium, nil
	default:
		return nil, fmt.Errorf("catalog: %w %q", ErrUnknownTrack, track)
	}
}

// Referrers lists every tier in both tracks that lists rewardID.
func (ts *Tracks) Referrers(rewardID string) []TierRef {
	var out []TierRef
	for _, track := range TrackNames {
		tiers, _ := ts.Get(track)
		for _, id := range tiers.Referencing(rewardID) {
			out = append(out, TierRef{Track: track, TierID: id})
		}
	}
	return out
}

// Add inserts the default tier into track.
func (ts *Tracks) Add(track Track) (string, error) {
	tiers, err := ts.Get(track)
	if err != nil {
		return "", err
	}
	return tiers.Add(), nil
}

// Duplicate copies a tier within its track.
func (ts *Tracks) Duplicate(track Track, id string) (string, error) {
	tiers, err := ts.Get(track)
	if err != nil {
		return "", err
	}
	return tiers.Duplicate(id)
}

// Delete removes a tier from its track.
func (ts *Tracks) Delete(track Track, id string) error {
	tiers, err := ts.Get(track)
	if err != nil {
		return err
	}
	return tiers.Delete(id)
}

// Apply updates a tier from form values.
func (ts *Tracks) Apply(track Track, id string, form model.TierForm) (string, error) {
	tiers, err := ts.Get(track)
	if err != nil {
		return "", err
	}
	return tiers.Apply(id, form)
}

// ApplyRaw replaces a tier with parsed YAML.
func (ts *Tracks) ApplyRaw(track Track, id, text string) (string, error) {
	tiers, err := ts.Get(track)
	if err != nil {
		return "", err
	}
	return tiers.ApplyRaw(id, text)
}

// AddRandomReward generates a reward into rewards and appends its id to the
// tier. Nothing is generated when the tier does not exist.
func (ts *Tracks) AddRandomReward(track Track, tierID string, rewards *Rewards, rng *rand.Rand) (string, error) {
	tiers, err := ts.Get(track)
	if err != nil {
		return "", err
	}
	if _, ok := tiers.Lookup(tierID); !ok {
		return "", notFound("tier", tierID)
	}
	rid := rewards.Random(rng)
	if err := tiers.AppendReward(tierID, rid); err != nil {
		return "", err
	}
	return rid, nil
}

// TierIDs returns the union of tier ids across both tracks in listing order.
func (ts *Tracks) TierIDs() []string {
	seen := map[string]bool{}
	var ids []string
	for _, track := range TrackNames {
		tiers, _ := ts.Get(track)
		for _, id := range tiers.doc.items.Keys() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return SortIDs(ids)
}

// Clone deep-copies both ladders.
func (ts *Tracks) Clone() *Tracks {
	return &Tracks{Free: ts.Free.Clone(), Premium: ts.Premium.Clone()}
}
