package catalog

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/kingrea/battlepass-studio/internal/generator"
	"github.com/kingrea/battlepass-studio/internal/model"
	"gopkg.in/yaml.v3"
)

// Quests is one quest document. Quests live under its "quests" key.
type Quests struct {
	doc section[model.Quest]
}

// NewQuests returns an empty quest document.
func NewQuests() *Quests {
	return &Quests{doc: section[model.Quest]{key: "quests", items: NewOrdered[model.Quest]()}}
}

// DecodeQuests reads a quest document.
func DecodeQuests(root *yaml.Node) (*Quests, error) {
	doc, err := decodeSection("quest", "quests", root, model.DecodeQuest)
	if err != nil {
		return nil, err
	}
	return &Quests{doc: doc}, nil
}

// Node encodes the quest document for saving.
func (q *Quests) Node() *yaml.Node { return q.doc.node() }

func (q *Quests) Len() int { return q.doc.items.Len() }

// Unreadable lists ids whose entries are not quests and are kept as loaded.
func (q *Quests) Unreadable() []string { return q.doc.items.Unreadable() }

// IDs returns quest ids in listing order.
func (q *Quests) IDs() []string { return q.doc.items.Sorted() }

// Lookup returns a copy of the quest stored under id.
func (q *Quests) Lookup(id string) (model.Quest, bool) { return q.doc.items.Get(id) }

// Clone deep-copies the document.
func (q *Quests) Clone() *Quests { return &Quests{doc: q.doc.clone()} }

// Insert stores rec under the next free id.
func (q *Quests) Insert(rec model.Quest) string {
	id := q.doc.items.NextID()
	q.doc.items.Set(id, rec)
	return id
}

// Add inserts a generated quest; quests have no fixed default.
func (q *Quests) Add(rng *rand.Rand) string {
	return q.Random(rng)
}

// Random inserts a generated quest.
func (q *Quests) Random(rng *rand.Rand) string {
	return q.Insert(generator.Quest(rng))
}

// Duplicate copies a quest to the next free id, suffixing its name.
func (q *Quests) Duplicate(id string) (string, error) {
	src, ok := q.doc.items.Get(id)
	if !ok {
		return "", notFound("quest", id)
	}
	if src.Name == "" {
		src.Name = "Quest"
	}
	src.Name += " (Copy)"
	return q.Insert(src), nil
}

// Delete removes a quest.
func (q *Quests) Delete(id string) error {
	if !q.doc.items.Delete(id) {
		return notFound("quest", id)
	}
	return nil
}

// Apply merges form values into the quest stored under id, creating it when
// absent.
func (q *Quests) Apply(id string, form model.QuestForm) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	prev, _ := q.doc.items.Get(id)
	next, err := form.ApplyTo(prev)
	if err != nil {
		return "", err
	}
	q.doc.items.Set(id, next)
	return id, nil
}

// ApplyRaw replaces a quest with parsed YAML.
func (q *Quests) ApplyRaw(id, text string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	rec, err := model.ParseQuest(text)
	if err != nil {
		return "", err
	}
	q.doc.items.Set(id, rec)
	return id, nil
}

// Text renders one quest as YAML for the raw editor.
func (q *Quests) Text(id string) (string, error) {
	rec, ok := q.doc.items.Get(id)
	if !ok {
		return "", notFound("quest", id)
	}
	return model.Text(rec)
}

// Label is the one-line list entry for a quest.
func (q *Quests) Label(id string) string {
	rec, ok := q.doc.items.Get(id)
	if !ok {
		return fmt.Sprintf("%s: (missing)", id)
	}
	return fmt.Sprintf("%s: %s", id, rec.Name)
}
