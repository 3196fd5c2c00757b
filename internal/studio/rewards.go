package studio

import (
	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/document"
	"github.com/kingrea/battlepass-studio/internal/logbook"
	"github.com/kingrea/battlepass-studio/internal/model"
)

// RewardIDs lists reward ids in listing order.
func (s *Studio) RewardIDs() []string { return s.rewards.IDs() }

// Reward returns a copy of a reward.
func (s *Studio) Reward(id string) (model.Reward, bool) { return s.rewards.Lookup(id) }

// RewardLabel is the list entry for a reward.
func (s *Studio) RewardLabel(id string) string { return s.rewards.Label(id) }

// RewardText renders a reward for the raw editor.
func (s *Studio) RewardText(id string) (string, error) { return s.rewards.Text(id) }

// SearchRewards fuzzy-matches rewards by id and name.
func (s *Studio) SearchRewards(query string) []catalog.RewardHit {
	return catalog.SearchRewards(s.rewards, query)
}

// RewardReferrers lists the tiers that keep a reward from being deleted.
func (s *Studio) RewardReferrers(id string) []catalog.TierRef {
	return s.tracks.Referrers(id)
}

func (s *Studio) AddReward() string {
	id := s.rewards.Add()
	s.docs.MarkDirty(document.RoleRewards)
	s.report(logbook.LevelInfo, "Added reward %s.", id)
	return id
}

func (s *Studio) DuplicateReward(id string) (string, error) {
	next, err := s.rewards.Duplicate(id)
	if err != nil {
		return "", s.fail("reward", id, err)
	}
	s.docs.MarkDirty(document.RoleRewards)
	s.report(logbook.LevelInfo, "Duplicated reward %s -> %s.", id, next)
	return next, nil
}

// DeleteReward removes a reward unless a tier in either track lists it.
func (s *Studio) DeleteReward(id string) error {
	if err := s.rewards.Delete(id, s.tracks); err != nil {
		return s.fail("reward", id, err)
	}
	s.docs.MarkDirty(document.RoleRewards)
	s.report(logbook.LevelInfo, "Deleted reward %s.", id)
	return nil
}

func (s *Studio) RandomReward() string {
	id := s.rewards.Random(s.rng)
	s.docs.MarkDirty(document.RoleRewards)
	s.report(logbook.LevelInfo, "Random-generated reward %s.", id)
	return id
}

func (s *Studio) ApplyReward(id string, form model.RewardForm) (string, error) {
	got, err := s.rewards.Apply(id, form)
	if err != nil {
		return "", s.fail("reward", id, err)
	}
	id = got
	s.docs.MarkDirty(document.RoleRewards)
	s.report(logbook.LevelInfo, "Applied changes to reward %s.", id)
	return id, nil
}

func (s *Studio) ApplyRewardRaw(id, text string) (string, error) {
	got, err := s.rewards.ApplyRaw(id, text)
	if err != nil {
		return "", s.fail("reward", id, err)
	}
	id = got
	s.docs.MarkDirty(document.RoleRewards)
	s.report(logbook.LevelInfo, "Applied YAML to reward %s.", id)
	return id, nil
}
