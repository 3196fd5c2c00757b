package model

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is a key the model does not interpret. Its value is kept verbatim so
// editing a record never drops plugin settings the editor does not know.
type Field struct {
	Key   string
	Value *yaml.Node
}

// Extras holds uninterpreted keys in document order.
type Extras []Field

// Clone deep-copies the extras and their YAML trees.
func (e Extras) Clone() Extras {
	if e == nil {
		return nil
	}
	out := make(Extras, len(e))
	for i, f := range e {
		out[i] = Field{Key: f.Key, Value: CloneNode(f.Value)}
	}
	return out
}

// Get returns the value stored under key, if any.
func (e Extras) Get(key string) (*yaml.Node, bool) {
	for _, f := range e {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// DecodeExtras collects every pair of a mapping node except the listed keys.
// Container documents use it to keep top-level keys around the record map.
func DecodeExtras(n *yaml.Node, skip ...string) (Extras, []string) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, nil
	}
	var extras Extras
	var order []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		order = append(order, key)
		if contains(skip, key) {
			continue
		}
		extras = append(extras, Field{Key: key, Value: CloneNode(n.Content[i+1])})
	}
	return extras, order
}

// CloneNode deep-copies a YAML tree. Alias targets are shared with the copy's
// anchors only when both live inside the cloned tree.
func CloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	seen := map[*yaml.Node]*yaml.Node{}
	return cloneNode(n, seen)
}

func cloneNode(n *yaml.Node, seen map[*yaml.Node]*yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if c, ok := seen[n]; ok {
		return c
	}
	c := *n
	seen[n] = &c
	if n.Content != nil {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = cloneNode(child, seen)
		}
	}
	if n.Alias != nil {
		c.Alias = cloneNode(n.Alias, seen)
	}
	return &c
}

// Resolve unwraps document and alias nodes.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// Text renders a value as YAML using the same layout as saved documents.
func Text(v any) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("model: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("model: encode: %w", err)
	}
	return buf.String(), nil
}

// ParseMapping decodes a raw YAML blob into its root mapping. Blank input and
// non-mapping roots are format errors.
func ParseMapping(entity, text string) (*yaml.Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &FormatError{Entity: entity, Err: ErrEmpty}
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, &FormatError{Entity: entity, Err: err}
	}
	root := Resolve(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, &FormatError{Entity: entity, Err: ErrNotMapping}
	}
	return root, nil
}

// pair is one key/value about to be written.
type pair struct {
	key   string
	value *yaml.Node
}

// mapping builds a mapping node, ordering known keys by the order the record
// was read with. Keys the record did not have before follow in canonical order.
func mapping(pairs []pair, extras Extras, order []string) *yaml.Node {
	for _, f := range extras {
		pairs = append(pairs, pair{key: f.Key, value: CloneNode(f.Value)})
	}
	if len(order) > 0 {
		rank := make(map[string]int, len(order))
		for i, key := range order {
			if _, ok := rank[key]; !ok {
				rank[key] = i
			}
		}
		sort.SliceStable(pairs, func(i, j int) bool {
			ri, iok := rank[pairs[i].key]
			rj, jok := rank[pairs[j].key]
			switch {
			case iok && jok:
				return ri < rj
			case iok:
				return true
			default:
				return false
			}
		})
	}
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range pairs {
		n.Content = append(n.Content, StringNode(p.key), p.value)
	}
	return n
}

// StringNode is a string scalar. Numeric-looking values stay quoted on output.
func StringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
}

func boolNode(v bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)}
}

func listNode(values []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		n.Content = append(n.Content, StringNode(v))
	}
	return n
}

func variablesNode(vars Variables) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, v := range vars {
		n.Content = append(n.Content, StringNode(v.Key), StringNode(v.Value))
	}
	return n
}

// verbatim remembers values lenient decoding could only read in part, keyed
// by the field they were read from. Each is written back as loaded until the
// record's value for that key changes.
type verbatim map[string]loadedValue

type loadedValue struct {
	node    *yaml.Node
	decoded *yaml.Node
}

func (v *verbatim) remember(key string, n *yaml.Node) {
	if *v == nil {
		*v = verbatim{}
	}
	(*v)[key] = loadedValue{node: CloneNode(n)}
}

// settle records what the model made of each remembered value.
func (v verbatim) settle(pairs []pair) {
	for _, p := range pairs {
		if l, ok := v[p.key]; ok {
			l.decoded = CloneNode(p.value)
			v[p.key] = l
		}
	}
}

// restore puts loaded values back for keys the record left alone.
func (v verbatim) restore(pairs []pair) {
	for i, p := range pairs {
		l, ok := v[p.key]
		if ok && l.decoded != nil && sameNode(p.value, l.decoded) {
			pairs[i].value = CloneNode(l.node)
		}
	}
}

func (v verbatim) clone() verbatim {
	if v == nil {
		return nil
	}
	out := make(verbatim, len(v))
	for k, l := range v {
		out[k] = l
	}
	return out
}

func sameNode(a, b *yaml.Node) bool {
	a, b = Resolve(a), Resolve(b)
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Value != b.Value || len(a.Content) != len(b.Content) {
		return false
	}
	if a.Kind == yaml.ScalarNode && a.Tag != b.Tag {
		return false
	}
	for i := range a.Content {
		if !sameNode(a.Content[i], b.Content[i]) {
			return false
		}
	}
	return true
}

// decoder reads record fields. Lenient decoding coerces bad values to
// defaults and flags the value as lossy; strict decoding records the first
// problem as a FormatError.
type decoder struct {
	entity string
	strict bool
	err    error
	lossy  bool
}

// track runs read and reports whether it hit a value the model cannot hold.
func (d *decoder) track(read func()) bool {
	outer := d.lossy
	d.lossy = false
	read()
	lost := d.lossy
	d.lossy = outer || lost
	return lost
}

func (d *decoder) fail(key string, format string, args ...any) {
	d.lossy = true
	if !d.strict || d.err != nil {
		return
	}
	d.err = &FormatError{Entity: d.entity, Key: key, Err: fmt.Errorf(format, args...)}
}

func (d *decoder) text(key string, v *yaml.Node) string {
	v = Resolve(v)
	if v == nil {
		return ""
	}
	if v.Kind != yaml.ScalarNode {
		d.fail(key, "expected a string")
		return ""
	}
	if v.Tag == "!!null" {
		return ""
	}
	return v.Value
}

// lines reads a list of strings. A present key always yields a non-nil slice
// so an empty list survives a round trip.
func (d *decoder) lines(key string, v *yaml.Node) []string {
	v = Resolve(v)
	out := []string{}
	if v == nil || (v.Kind == yaml.ScalarNode && v.Tag == "!!null") {
		return out
	}
	if v.Kind != yaml.SequenceNode {
		d.fail(key, "expected a list")
		return out
	}
	for i, item := range v.Content {
		item = Resolve(item)
		if item == nil || item.Kind != yaml.ScalarNode {
			d.fail(fmt.Sprintf("%s[%d]", key, i), "expected a string")
			continue
		}
		out = append(out, item.Value)
	}
	return out
}

func (d *decoder) integer(key string, v *yaml.Node, fallback int) int {
	v = Resolve(v)
	if v == nil || v.Kind != yaml.ScalarNode {
		d.fail(key, "expected an integer")
		return fallback
	}
	var n int
	if err := v.Decode(&n); err == nil {
		return n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.Value)); err == nil {
		return n
	}
	d.fail(key, "expected an integer, got %q", v.Value)
	return fallback
}

func (d *decoder) flag(key string, v *yaml.Node) bool {
	v = Resolve(v)
	if v == nil || v.Kind != yaml.ScalarNode {
		d.fail(key, "expected true or false")
		return false
	}
	var b bool
	if err := v.Decode(&b); err != nil {
		d.fail(key, "expected true or false, got %q", v.Value)
		return false
	}
	return b
}

func (d *decoder) variables(key string, v *yaml.Node) Variables {
	v = Resolve(v)
	out := Variables{}
	if v == nil || (v.Kind == yaml.ScalarNode && v.Tag == "!!null") {
		return out
	}
	if v.Kind != yaml.MappingNode {
		d.fail(key, "expected a mapping")
		return out
	}
	for i := 0; i+1 < len(v.Content); i += 2 {
		k := v.Content[i].Value
		out = append(out, Variable{Key: k, Value: d.text(key+"."+k, v.Content[i+1])})
	}
	return out
}

func (d *decoder) mapping(key string, v *yaml.Node) *yaml.Node {
	v = Resolve(v)
	if v == nil || v.Kind != yaml.MappingNode {
		d.fail(key, "expected a mapping")
		return nil
	}
	return v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
