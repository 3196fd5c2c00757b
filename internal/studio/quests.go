package studio

import (
	"github.com/kingrea/battlepass-studio/internal/document"
	"github.com/kingrea/battlepass-studio/internal/logbook"
	"github.com/kingrea/battlepass-studio/internal/model"
)

// QuestIDs lists quest ids in listing order.
func (s *Studio) QuestIDs() []string { return s.quests.IDs() }

// Quest returns a copy of a quest.
func (s *Studio) Quest(id string) (model.Quest, bool) { return s.quests.Lookup(id) }

// QuestLabel is the list entry for a quest.
func (s *Studio) QuestLabel(id string) string { return s.quests.Label(id) }

// QuestText renders a quest for the raw editor.
func (s *Studio) QuestText(id string) (string, error) { return s.quests.Text(id) }

// AddQuest inserts a generated quest.
func (s *Studio) AddQuest() string {
	id := s.quests.Add(s.rng)
	s.docs.MarkDirty(document.RoleQuests)
	s.report(logbook.LevelInfo, "Added quest %s.", id)
	return id
}

func (s *Studio) DuplicateQuest(id string) (string, error) {
	next, err := s.quests.Duplicate(id)
	if err != nil {
		return "", s.fail("quest", id, err)
	}
	s.docs.MarkDirty(document.RoleQuests)
	s.report(logbook.LevelInfo, "Duplicated quest %s -> %s.", id, next)
	return next, nil
}

func (s *Studio) DeleteQuest(id string) error {
	if err := s.quests.Delete(id); err != nil {
		return s.fail("quest", id, err)
	}
	s.docs.MarkDirty(document.RoleQuests)
	s.report(logbook.LevelInfo, "Deleted quest %s.", id)
	return nil
}

func (s *Studio) ApplyQuest(id string, form model.QuestForm) (string, error) {
	got, err := s.quests.Apply(id, form)
	if err != nil {
		return "", s.fail("quest", id, err)
	}
	id = got
	s.docs.MarkDirty(document.RoleQuests)
	s.report(logbook.LevelInfo, "Applied changes to quest %s.", id)
	return id, nil
}

func (s *Studio) ApplyQuestRaw(id, text string) (string, error) {
	got, err := s.quests.ApplyRaw(id, text)
	if err != nil {
		return "", s.fail("quest", id, err)
	}
	id = got
	s.docs.MarkDirty(document.RoleQuests)
	s.report(logbook.LevelInfo, "Applied YAML to quest %s.", id)
	return id, nil
}
