package catalog

import (
	"fmt"

	"github.com/kingrea/battlepass-studio/internal/model"
	"gopkg.in/yaml.v3"
)

// record is implemented by model.Reward, model.Tier and model.Quest.
type record[T any] interface {
	Clone() T
	Node() *yaml.Node
}

// Ordered is an id-keyed collection that remembers insertion order. Values
// are copied on the way in and out so callers never alias stored records.
// Entries that are not records at all are kept as loaded, hidden from
// listings and written back in place.
type Ordered[T record[T]] struct {
	keys  []string
	items map[string]T
	raw   map[string]*yaml.Node
}

// NewOrdered returns an empty collection.
func NewOrdered[T record[T]]() *Ordered[T] {
	return &Ordered[T]{items: map[string]T{}, raw: map[string]*yaml.Node{}}
}

func (o *Ordered[T]) Len() int { return len(o.items) }

func (o *Ordered[T]) Has(id string) bool {
	_, ok := o.items[id]
	return ok
}

// Get returns a copy of the record stored under id.
func (o *Ordered[T]) Get(id string) (T, bool) {
	v, ok := o.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	return v.Clone(), true
}

// Set stores a copy of v. New ids are appended; existing ids keep their place.
func (o *Ordered[T]) Set(id string, v T) {
	if !o.known(id) {
		o.keys = append(o.keys, id)
	}
	delete(o.raw, id)
	o.items[id] = v.Clone()
}

func (o *Ordered[T]) setRaw(id string, n *yaml.Node) {
	if !o.known(id) {
		o.keys = append(o.keys, id)
	}
	delete(o.items, id)
	o.raw[id] = model.CloneNode(n)
}

func (o *Ordered[T]) known(id string) bool {
	_, item := o.items[id]
	_, raw := o.raw[id]
	return item || raw
}

// Unreadable lists ids whose entries are kept as loaded, in listing order.
func (o *Ordered[T]) Unreadable() []string {
	var out []string
	for _, k := range o.keys {
		if _, ok := o.raw[k]; ok {
			out = append(out, k)
		}
	}
	return SortIDs(out)
}

// Delete removes id and reports whether it was present.
func (o *Ordered[T]) Delete(id string) bool {
	if _, ok := o.items[id]; !ok {
		return false
	}
	delete(o.items, id)
	for i, k := range o.keys {
		if k == id {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns record ids in insertion order.
func (o *Ordered[T]) Keys() []string {
	out := make([]string, 0, len(o.items))
	for _, k := range o.keys {
		if _, ok := o.items[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Sorted returns record ids in listing order.
func (o *Ordered[T]) Sorted() []string {
	return SortIDs(o.Keys())
}

// NextID is the id Add would assign. Unreadable entries keep their ids.
func (o *Ordered[T]) NextID() string {
	return NextID(o.keys)
}

// Clone deep-copies the collection.
func (o *Ordered[T]) Clone() *Ordered[T] {
	out := NewOrdered[T]()
	for _, k := range o.keys {
		if n, ok := o.raw[k]; ok {
			out.setRaw(k, n)
			continue
		}
		out.Set(k, o.items[k])
	}
	return out
}

// Node encodes the collection as an id mapping in insertion order.
func (o *Ordered[T]) Node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range o.keys {
		if v, ok := o.raw[k]; ok {
			n.Content = append(n.Content, model.StringNode(k), model.CloneNode(v))
			continue
		}
		n.Content = append(n.Content, model.StringNode(k), o.items[k].Node())
	}
	return n
}

// decodeOrdered reads an id mapping. A missing or null node is an empty
// collection; a null record decodes as an empty mapping. A record that is
// not a mapping is kept as loaded.
func decodeOrdered[T record[T]](entity string, n *yaml.Node, decode func(*yaml.Node) (T, error)) (*Ordered[T], error) {
	out := NewOrdered[T]()
	n = model.Resolve(n)
	if n == nil || isNull(n) {
		return out, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("catalog: %s: %w", entity, model.ErrNotMapping)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		id := n.Content[i].Value
		v := n.Content[i+1]
		r := model.Resolve(v)
		if r == nil || isNull(r) {
			v = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		} else if r.Kind != yaml.MappingNode {
			out.setRaw(id, v)
			continue
		}
		rec, err := decode(v)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s %q: %w", entity, id, err)
		}
		out.Set(id, rec)
	}
	return out, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// section is a document whose records live under one top-level key, next to
// keys the editor leaves alone (track and quest documents).
type section[T record[T]] struct {
	key   string
	items *Ordered[T]
	extra model.Extras
	order []string
}

func decodeSection[T record[T]](entity, key string, root *yaml.Node, decode func(*yaml.Node) (T, error)) (section[T], error) {
	s := section[T]{key: key}
	var body *yaml.Node
	if r := model.Resolve(root); r != nil && r.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(r.Content); i += 2 {
			if r.Content[i].Value == key {
				body = r.Content[i+1]
			}
		}
		s.extra, s.order = model.DecodeExtras(r, key)
	}
	items, err := decodeOrdered(entity, body, decode)
	if err != nil {
		return section[T]{}, err
	}
	s.items = items
	return s, nil
}

// node writes the section back, keeping the records key where it was read.
func (s section[T]) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	wrote := false
	for _, k := range s.order {
		if k == s.key {
			if !wrote {
				n.Content = append(n.Content, model.StringNode(k), s.items.Node())
				wrote = true
			}
			continue
		}
		if v, ok := s.extra.Get(k); ok {
			n.Content = append(n.Content, model.StringNode(k), model.CloneNode(v))
		}
	}
	if !wrote {
		n.Content = append(n.Content, model.StringNode(s.key), s.items.Node())
	}
	return n
}

func (s section[T]) clone() section[T] {
	return section[T]{
		key:   s.key,
		items: s.items.Clone(),
		extra: s.extra.Clone(),
		order: append([]string(nil), s.order...),
	}
}
