package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// DefaultQuestFile is used when no quest document is found.
const DefaultQuestFile = "week-1-quests.yml"

// ReservedNames are never offered as quest documents.
var ReservedNames = []string{"free.yml", "premium.yml", "rewards.yml", "settings.yml"}

var questPrefixes = []string{"week-", "daily-", "event-"}

// IsQuestFileName reports whether a file name looks like a quest document.
func IsQuestFileName(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if !isYAMLFile(lower) {
		return false
	}
	if strings.Contains(lower, "quest") {
		return true
	}
	for _, prefix := range questPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// DiscoverQuestFiles lists quest documents in dir, sorted by lower-cased
// name. Names in ReservedNames and exclude are skipped, compared without
// case. A missing directory yields no files.
func DiscoverQuestFiles(dir string, exclude []string) ([]string, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		trimmed = "."
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("document: read %s: %w", trimmed, err)
	}
	skip := map[string]bool{}
	for _, name := range append(append([]string{}, ReservedNames...), exclude...) {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			skip[name] = true
		}
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if skip[strings.ToLower(name)] || !IsQuestFileName(name) {
			continue
		}
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// PickQuestFile returns the first discovered quest document, or
// DefaultQuestFile when there is none.
func PickQuestFile(dir string, exclude []string) (string, error) {
	names, err := DiscoverQuestFiles(dir, exclude)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return DefaultQuestFile, nil
	}
	return names[0], nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
