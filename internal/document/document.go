// Package document reads and writes the YAML documents the editor works on
// and tracks which of them have unsaved changes.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EmptyMapping returns a fresh empty mapping node.
func EmptyMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// Load reads a document and returns its root mapping. A missing file, an
// empty file or a document whose root is not a mapping all load as an empty
// mapping. Read failures and YAML syntax errors are returned.
func Load(path string) (*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return EmptyMapping(), nil
		}
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	return Decode(data, path)
}

// Decode parses document bytes. name is only used in errors.
func Decode(data []byte, name string) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return EmptyMapping(), nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document: parse %s: %w", name, err)
	}
	root := &doc
	for root != nil && (root.Kind == yaml.DocumentNode || root.Kind == yaml.AliasNode) {
		if root.Kind == yaml.AliasNode {
			root = root.Alias
			continue
		}
		if len(root.Content) == 0 {
			root = nil
			break
		}
		root = root.Content[0]
	}
	if root == nil || root.Kind != yaml.MappingNode {
		return EmptyMapping(), nil
	}
	return root, nil
}

// Encode renders a document with two-space indentation and keys in the order
// they appear in the tree.
func Encode(root *yaml.Node) ([]byte, error) {
	if root == nil {
		root = EmptyMapping()
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("document: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes a document, creating parent directories as needed. The file
// is overwritten in place.
func Save(path string, root *yaml.Node) error {
	data, err := Encode(root)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("document: create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("document: write %s: %w", path, err)
	}
	return nil
}
