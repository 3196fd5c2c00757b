// Package studio owns the editor's application state: the open documents,
// the catalogs decoded from them, and the status line shown to the user.
// Every user action is one method; each sets exactly one status message.
package studio

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/config"
	"github.com/kingrea/battlepass-studio/internal/document"
	"github.com/kingrea/battlepass-studio/internal/logbook"
	"github.com/kingrea/battlepass-studio/internal/model"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrNotLoaded is returned by SaveAll for a document the editor could not
// read. The file on disk is left alone until a Reload reads it.
var ErrNotLoaded = errors.New("document was not loaded; fix it and reload before saving")

// Studio is the single owner of the in-memory model. It is not safe for
// concurrent use; the UI loop is its only caller.
type Studio struct {
	cfg  *config.Config
	docs *document.Set
	log  *logbook.Logbook
	rng  *rand.Rand

	rewards *catalog.Rewards
	tracks  *catalog.Tracks
	quests  *catalog.Quests
	pool    *yaml.Node

	// questPath is the quest document the next Reload opens.
	questPath string
	status    string

	// loaded is set by the first successful Reload. unread maps the path of
	// every document the model does not reflect to the error that kept it
	// from loading, if any.
	loaded bool
	unread map[string]error
}

// Option customizes a Studio during construction.
type Option func(*Studio)

// WithRand sets the random source used by generators.
func WithRand(rng *rand.Rand) Option {
	return func(s *Studio) {
		s.rng = rng
	}
}

// WithLogbook journals every status message.
func WithLogbook(book *logbook.Logbook) Option {
	return func(s *Studio) {
		s.log = book
	}
}

// WithWriter overrides how documents are written on save.
func WithWriter(w document.Writer) Option {
	return func(s *Studio) {
		s.docs = document.NewSet(nil, document.WithWriter(w))
	}
}

// New builds a studio over the documents named by cfg. Nothing is read
// until Reload.
func New(cfg *config.Config, opts ...Option) (*Studio, error) {
	if cfg == nil {
		return nil, errors.New("studio: config is required")
	}
	s := &Studio{
		cfg:     cfg,
		docs:    document.NewSet(nil),
		rewards: catalog.NewRewards(),
		tracks:  catalog.NewTracks(),
		quests:  catalog.NewQuests(),
		pool:    document.EmptyMapping(),
		status:  "Ready.",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	docs := cfg.Documents()
	s.docs.SetPath(document.RoleFree, docs.Free)
	s.docs.SetPath(document.RolePremium, docs.Premium)
	s.docs.SetPath(document.RoleRewards, docs.Rewards)
	s.docs.SetPath(document.RolePool, docs.Pool)
	s.questPath = docs.Quests
	if s.questPath == "" {
		name, err := document.PickQuestFile(cfg.ProjectDir, cfg.QuestExclusions())
		if err != nil {
			return nil, fmt.Errorf("studio: %w", err)
		}
		s.questPath = filepath.Join(cfg.ProjectDir, name)
	}
	s.docs.SetPath(document.RoleQuests, s.questPath)
	s.unread = map[string]error{}
	for _, path := range s.rolePaths() {
		if path != "" {
			s.unread[path] = nil
		}
	}
	return s, nil
}

// rolePaths names the file each role is read from on the next Reload.
func (s *Studio) rolePaths() map[document.Role]string {
	return map[document.Role]string{
		document.RoleFree:    s.docs.Path(document.RoleFree),
		document.RolePremium: s.docs.Path(document.RolePremium),
		document.RoleRewards: s.docs.Path(document.RoleRewards),
		document.RoleQuests:  s.questPath,
		document.RolePool:    s.docs.Path(document.RolePool),
	}
}

// Status returns the message set by the last action.
func (s *Studio) Status() string { return s.status }

// Dirty reports whether role has unsaved changes.
func (s *Studio) Dirty(role document.Role) bool { return s.docs.Dirty(role) }

// AnyDirty reports whether any document has unsaved changes.
func (s *Studio) AnyDirty() bool { return s.docs.AnyDirty() }

// DirtyLabel summarizes unsaved documents, e.g. "Unsaved: free, rewards".
func (s *Studio) DirtyLabel() string {
	roles := s.docs.DirtyRoles()
	if len(roles) == 0 {
		return "Unsaved: none"
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return "Unsaved: " + strings.Join(names, ", ")
}

// Path returns the file currently backing role.
func (s *Studio) Path(role document.Role) string { return s.docs.Path(role) }

// ProjectDir is the directory documents are resolved against.
func (s *Studio) ProjectDir() string { return s.cfg.ProjectDir }

// Reload reads every document. The model is swapped only when all of them
// load; unsaved changes are discarded. Documents that fail to load are
// protected from SaveAll until a later Reload reads them.
func (s *Studio) Reload() error {
	paths := s.rolePaths()
	failed := map[string]error{}
	var errs error
	fail := func(role document.Role, err error) {
		failed[paths[role]] = err
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", role, err))
	}
	roots := map[document.Role]*yaml.Node{}
	for _, role := range document.Roles {
		roots[role] = document.EmptyMapping()
		path := paths[role]
		if path == "" {
			continue
		}
		root, err := document.Load(path)
		if err != nil {
			fail(role, err)
			continue
		}
		roots[role] = root
	}
	free, err := catalog.DecodeTiers(roots[document.RoleFree])
	if err != nil {
		fail(document.RoleFree, err)
	}
	premium, err := catalog.DecodeTiers(roots[document.RolePremium])
	if err != nil {
		fail(document.RolePremium, err)
	}
	rewards, err := catalog.DecodeRewards(roots[document.RoleRewards])
	if err != nil {
		fail(document.RoleRewards, err)
	}
	quests, err := catalog.DecodeQuests(roots[document.RoleQuests])
	if err != nil {
		fail(document.RoleQuests, err)
	}
	if errs != nil {
		return s.loadFailed(paths, failed, errs)
	}

	s.tracks = &catalog.Tracks{Free: free, Premium: premium}
	s.rewards = rewards
	s.quests = quests
	s.pool = roots[document.RolePool]
	s.docs.SetPath(document.RoleQuests, s.questPath)
	s.docs.MarkClean()
	s.loaded = true
	s.unread = map[string]error{}
	s.log.Logger().Info("documents loaded",
		zap.Int("rewards", rewards.Len()),
		zap.Int("free_tiers", free.Len()),
		zap.Int("premium_tiers", premium.Len()),
		zap.Int("quests", quests.Len()),
		zap.String("quest_file", s.questPath),
	)
	s.report(logbook.LevelInfo, "Loaded.")
	return nil
}

func (s *Studio) loadFailed(paths map[document.Role]string, failed map[string]error, err error) error {
	if !s.loaded {
		for _, path := range paths {
			if _, ok := failed[path]; !ok && path != "" {
				failed[path] = nil
			}
		}
	}
	s.unread = failed
	for path, cause := range failed {
		if cause != nil {
			s.log.Logger().Error("document not loaded", zap.String("path", path), zap.Error(cause))
		}
	}
	s.report(logbook.LevelError, "Load error: %v", err)
	return err
}

// SaveAll writes every dirty document in role order and stops at the first
// failure.
func (s *Studio) SaveAll() error {
	saved, err := s.docs.SaveAll(s.render)
	for _, role := range saved {
		s.log.Logger().Info("document saved", zap.String("role", string(role)), zap.String("path", s.docs.Path(role)))
	}
	if err != nil {
		s.report(logbook.LevelError, "Save error: %v", err)
		return err
	}
	s.report(logbook.LevelInfo, "Saved.")
	return nil
}

func (s *Studio) render(role document.Role) (*yaml.Node, error) {
	if cause, ok := s.unread[s.docs.Path(role)]; ok {
		if cause == nil {
			return nil, ErrNotLoaded
		}
		return nil, fmt.Errorf("%w: %v", ErrNotLoaded, cause)
	}
	switch role {
	case document.RoleFree:
		return s.tracks.Free.Node(), nil
	case document.RolePremium:
		return s.tracks.Premium.Node(), nil
	case document.RoleRewards:
		return s.rewards.Node(), nil
	case document.RoleQuests:
		return s.quests.Node(), nil
	case document.RolePool:
		return model.CloneNode(s.pool), nil
	default:
		return nil, fmt.Errorf("studio: unknown document role %q", role)
	}
}

// QuestFiles lists the quest documents found in the project directory.
func (s *Studio) QuestFiles() ([]string, error) {
	return document.DiscoverQuestFiles(s.cfg.ProjectDir, s.cfg.QuestExclusions())
}

// QuestFile is the base name of the quest document the next Reload opens.
func (s *Studio) QuestFile() string { return filepath.Base(s.questPath) }

// SelectQuestFile switches the quest document. The switch takes effect on
// the next Reload; saving before that still writes the loaded file.
func (s *Studio) SelectQuestFile(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		s.report(logbook.LevelWarn, "Select a quest file first.")
		return catalog.ErrMissingID
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.cfg.ProjectDir, name)
	}
	s.questPath = path
	s.report(logbook.LevelInfo, "Selected quest file: %s. Reload to apply.", filepath.Base(path))
	return nil
}

// PoolText renders the pool document for the raw editor.
func (s *Studio) PoolText() (string, error) {
	return model.Text(s.pool)
}

// ApplyPoolRaw replaces the whole pool document.
func (s *Studio) ApplyPoolRaw(text string) error {
	if s.docs.Path(document.RolePool) == "" {
		s.report(logbook.LevelWarn, "No pool file configured.")
		return errors.New("studio: no pool file configured")
	}
	root, err := model.ParseMapping("pool", text)
	if err != nil {
		return s.fail("pool", "", err)
	}
	s.pool = model.CloneNode(root)
	s.docs.MarkDirty(document.RolePool)
	s.report(logbook.LevelInfo, "Applied YAML to pool.")
	return nil
}

// Notify sets the status line without touching the model.
func (s *Studio) Notify(format string, args ...any) {
	s.report(logbook.LevelInfo, format, args...)
}

func (s *Studio) report(level logbook.Level, format string, args ...any) {
	s.status = fmt.Sprintf(format, args...)
	s.log.Append(level, s.status)
}

// fail turns an operation error into the status line and returns it.
func (s *Studio) fail(entity, id string, err error) error {
	var refErr *catalog.ReferenceError
	var formatErr *model.FormatError
	switch {
	case errors.As(err, &refErr):
		refs := make([]string, len(refErr.Refs))
		for i, r := range refErr.Refs {
			refs[i] = r.String()
		}
		s.log.Logger().Warn("reward delete refused", zap.String("reward", refErr.RewardID), zap.Strings("tiers", refs))
		s.report(logbook.LevelWarn, "Cannot delete reward %s: referenced by a tier.", refErr.RewardID)
	case errors.As(err, &formatErr):
		s.report(logbook.LevelWarn, "%s", upperFirst(formatErr.Error()))
	case errors.Is(err, catalog.ErrMissingID):
		s.report(logbook.LevelWarn, "Select a %s first.", entity)
	case errors.Is(err, catalog.ErrNotFound):
		s.report(logbook.LevelWarn, "%s %s not found.", upperFirst(entity), id)
	default:
		s.report(logbook.LevelError, "%s", upperFirst(err.Error()))
	}
	return err
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
