package document

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Role identifies one of the documents the editor keeps open.
type Role string

const (
	RoleFree    Role = "free"
	RolePremium Role = "premium"
	RoleRewards Role = "rewards"
	RoleQuests  Role = "quests"
	RolePool    Role = "pool"
)

// Roles lists every role in save order.
var Roles = []Role{RoleFree, RolePremium, RoleRewards, RoleQuests, RolePool}

// Writer persists one document.
type Writer func(path string, root *yaml.Node) error

// Set tracks the path and dirty flag of each role.
type Set struct {
	paths map[Role]string
	dirty map[Role]bool
	write Writer
}

// SetOption customizes a Set during construction.
type SetOption func(*Set)

// WithWriter overrides how documents are written.
func WithWriter(w Writer) SetOption {
	return func(s *Set) {
		s.write = w
	}
}

// NewSet builds a set for the given paths. A role with a blank path is
// never written.
func NewSet(paths map[Role]string, opts ...SetOption) *Set {
	s := &Set{
		paths: map[Role]string{},
		dirty: map[Role]bool{},
		write: Save,
	}
	for role, path := range paths {
		s.paths[role] = strings.TrimSpace(path)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file backing role.
func (s *Set) Path(role Role) string { return s.paths[role] }

// SetPath changes the file backing role. The dirty flag is left alone.
func (s *Set) SetPath(role Role, path string) { s.paths[role] = strings.TrimSpace(path) }

// MarkDirty flags role as having unsaved changes.
func (s *Set) MarkDirty(role Role) { s.dirty[role] = true }

// Dirty reports whether role has unsaved changes.
func (s *Set) Dirty(role Role) bool { return s.dirty[role] }

// DirtyRoles lists roles with unsaved changes in save order.
func (s *Set) DirtyRoles() []Role {
	var out []Role
	for _, role := range Roles {
		if s.dirty[role] {
			out = append(out, role)
		}
	}
	return out
}

// AnyDirty reports whether any role has unsaved changes.
func (s *Set) AnyDirty() bool { return len(s.DirtyRoles()) > 0 }

// MarkClean clears every dirty flag. Reload uses it.
func (s *Set) MarkClean() {
	s.dirty = map[Role]bool{}
}

// SaveAll writes every dirty document in role order. Each flag is cleared
// once its write succeeds; the first failure stops the run and leaves that
// role and every later one dirty.
func (s *Set) SaveAll(render func(Role) (*yaml.Node, error)) ([]Role, error) {
	var saved []Role
	for _, role := range s.DirtyRoles() {
		path := s.paths[role]
		if path == "" {
			continue
		}
		root, err := render(role)
		if err != nil {
			return saved, fmt.Errorf("document: render %s: %w", role, err)
		}
		if err := s.write(path, root); err != nil {
			return saved, err
		}
		s.dirty[role] = false
		saved = append(saved, role)
	}
	return saved, nil
}
