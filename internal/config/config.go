// internal/config/config.go
//
// This package handles configuration and the .bpstudio directory structure.
// Every project opened with the studio gets a .bpstudio/ folder in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// StudioDir is the name of the directory we create in each project
	StudioDir = ".bpstudio"

	defaultFreeFile    = "free.yml"
	defaultPremiumFile = "premium.yml"
	defaultRewardsFile = "rewards.yml"
	defaultPoolFile    = "week-pool.yml"
)

const defaultProjectConfigYAML = `# battlepass studio project configuration
version: 1

# Documents are resolved relative to the project directory.
documents:
  free: free.yml
  premium: premium.yml
  rewards: rewards.yml
  # Leave quests empty to open the first quest file found in the project.
  quests: ""
  # Set pool to "" when the project has no week pool.
  pool: week-pool.yml

# File names that are never offered as quest files.
discovery:
  exclude: []
`

// DocumentPaths names the file behind each document role.
type DocumentPaths struct {
	Free    string `yaml:"free"`
	Premium string `yaml:"premium"`
	Rewards string `yaml:"rewards"`
	Quests  string `yaml:"quests"`
	Pool    string `yaml:"pool"`
}

// DiscoveryConfig tunes quest-file discovery.
type DiscoveryConfig struct {
	Exclude []string `yaml:"exclude,omitempty"`
}

// ProjectConfig models .bpstudio/config.yaml.
type ProjectConfig struct {
	Version   int             `yaml:"version"`
	Documents DocumentPaths   `yaml:"documents"`
	Discovery DiscoveryConfig `yaml:"discovery"`
}

// Config holds the runtime configuration for the studio.
type Config struct {
	// ProjectDir is the directory holding the battle-pass documents
	ProjectDir string

	// StudioProjectDir is ProjectDir/.bpstudio
	StudioProjectDir string

	Project ProjectConfig
}

// InitStudioDir creates the .bpstudio directory structure in the given
// project directory and writes a default config.yaml when none exists.
//
// Structure created:
// .bpstudio/
// ├── config.yaml
// └── logs/         <- studio.log
func InitStudioDir(projectDir string) error {
	studioDir := filepath.Join(projectDir, StudioDir)
	if err := os.MkdirAll(filepath.Join(studioDir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureProjectConfig(filepath.Join(studioDir, "config.yaml"))
}

// NewConfig creates a new Config instance populated with project settings.
// A missing config.yaml leaves every setting at its default.
func NewConfig(projectDir string) (*Config, error) {
	if strings.TrimSpace(projectDir) == "" {
		projectDir = "."
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", projectDir, err)
	}
	cfg := &Config{
		ProjectDir:       abs,
		StudioProjectDir: filepath.Join(abs, StudioDir),
		Project:          defaultProjectConfig(),
	}
	cfg.Project.normalize(abs)
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.StudioProjectDir, "logs")
}

// LogPath returns the journal file written by the logbook.
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "studio.log")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.StudioProjectDir, "config.yaml")
}

// Documents returns the resolved document paths. Quests is blank when the
// quest file is left to discovery; Pool is blank when the project has none.
func (c *Config) Documents() DocumentPaths {
	return c.Project.Documents
}

// SetQuestsPath overrides the quest document for this run.
func (c *Config) SetQuestsPath(path string) {
	c.Project.Documents.Quests = resolvePath(c.ProjectDir, path)
}

// SetPoolPath overrides the pool document for this run.
func (c *Config) SetPoolPath(path string) {
	c.Project.Documents.Pool = resolvePath(c.ProjectDir, path)
}

// QuestExclusions lists the file names discovery must skip: the configured
// excludes plus the fixed documents and the pool.
func (c *Config) QuestExclusions() []string {
	out := append([]string{}, c.Project.Discovery.Exclude...)
	docs := c.Project.Documents
	for _, path := range []string{docs.Free, docs.Premium, docs.Rewards, docs.Pool} {
		if path != "" {
			out = append(out, filepath.Base(path))
		}
	}
	return out
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Documents: DocumentPaths{
			Free:    defaultFreeFile,
			Premium: defaultPremiumFile,
			Rewards: defaultRewardsFile,
			Pool:    defaultPoolFile,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Documents.Free) == "" {
		pc.Documents.Free = defaultFreeFile
	}
	if strings.TrimSpace(pc.Documents.Premium) == "" {
		pc.Documents.Premium = defaultPremiumFile
	}
	if strings.TrimSpace(pc.Documents.Rewards) == "" {
		pc.Documents.Rewards = defaultRewardsFile
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Documents.Free = resolvePath(base, pc.Documents.Free)
	pc.Documents.Premium = resolvePath(base, pc.Documents.Premium)
	pc.Documents.Rewards = resolvePath(base, pc.Documents.Rewards)
	pc.Documents.Quests = resolvePath(base, pc.Documents.Quests)
	pc.Documents.Pool = resolvePath(base, pc.Documents.Pool)
	var exclude []string
	for _, name := range pc.Discovery.Exclude {
		name = strings.TrimSpace(name)
		if name != "" && !contains(exclude, name) {
			exclude = append(exclude, name)
		}
	}
	pc.Discovery.Exclude = exclude
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	seen := map[string]string{}
	docs := []struct{ role, path string }{
		{"free", pc.Documents.Free},
		{"premium", pc.Documents.Premium},
		{"rewards", pc.Documents.Rewards},
		{"quests", pc.Documents.Quests},
		{"pool", pc.Documents.Pool},
	}
	for _, doc := range docs {
		if doc.path == "" {
			continue
		}
		if other, ok := seen[doc.path]; ok {
			return fmt.Errorf("documents.%s and documents.%s both point at %s", other, doc.role, doc.path)
		}
		seen[doc.path] = doc.role
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), target) {
			return true
		}
	}
	return false
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
