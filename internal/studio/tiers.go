package studio

import (
	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/document"
	"github.com/kingrea/battlepass-studio/internal/logbook"
	"github.com/kingrea/battlepass-studio/internal/model"
)

func trackRole(track catalog.Track) document.Role {
	if track == catalog.Premium {
		return document.RolePremium
	}
	return document.RoleFree
}

// TierIDs lists the tier ids of a track in listing order.
func (s *Studio) TierIDs(track catalog.Track) []string {
	tiers, err := s.tracks.Get(track)
	if err != nil {
		return nil
	}
	return tiers.IDs()
}

// Tier returns a copy of a tier.
func (s *Studio) Tier(track catalog.Track, id string) (model.Tier, bool) {
	tiers, err := s.tracks.Get(track)
	if err != nil {
		return model.Tier{}, false
	}
	return tiers.Lookup(id)
}

// TierText renders a tier for the raw editor.
func (s *Studio) TierText(track catalog.Track, id string) (string, error) {
	tiers, err := s.tracks.Get(track)
	if err != nil {
		return "", err
	}
	return tiers.Text(id)
}

func (s *Studio) AddTier(track catalog.Track) (string, error) {
	id, err := s.tracks.Add(track)
	if err != nil {
		return "", s.fail("tier", "", err)
	}
	s.docs.MarkDirty(trackRole(track))
	s.report(logbook.LevelInfo, "Added tier %s to %s.", id, track)
	return id, nil
}

func (s *Studio) DuplicateTier(track catalog.Track, id string) (string, error) {
	next, err := s.tracks.Duplicate(track, id)
	if err != nil {
		return "", s.fail("tier", id, err)
	}
	s.docs.MarkDirty(trackRole(track))
	s.report(logbook.LevelInfo, "Duplicated tier %s -> %s in %s.", id, next, track)
	return next, nil
}

// DeleteTier removes a tier. Rewards it listed stay in the catalog.
func (s *Studio) DeleteTier(track catalog.Track, id string) error {
	if err := s.tracks.Delete(track, id); err != nil {
		return s.fail("tier", id, err)
	}
	s.docs.MarkDirty(trackRole(track))
	s.report(logbook.LevelInfo, "Deleted tier %s from %s.", id, track)
	return nil
}

func (s *Studio) ApplyTier(track catalog.Track, id string, form model.TierForm) (string, error) {
	got, err := s.tracks.Apply(track, id, form)
	if err != nil {
		return "", s.fail("tier", id, err)
	}
	id = got
	s.docs.MarkDirty(trackRole(track))
	s.report(logbook.LevelInfo, "Applied changes to %s tier %s.", track, id)
	return id, nil
}

func (s *Studio) ApplyTierRaw(track catalog.Track, id, text string) (string, error) {
	got, err := s.tracks.ApplyRaw(track, id, text)
	if err != nil {
		return "", s.fail("tier", id, err)
	}
	id = got
	s.docs.MarkDirty(trackRole(track))
	s.report(logbook.LevelInfo, "Applied YAML to %s tier %s.", track, id)
	return id, nil
}

// AddRandomRewardToTier generates a reward and appends it to a tier.
func (s *Studio) AddRandomRewardToTier(track catalog.Track, tierID string) (string, error) {
	rid, err := s.tracks.AddRandomReward(track, tierID, s.rewards, s.rng)
	if err != nil {
		return "", s.fail("tier", tierID, err)
	}
	s.docs.MarkDirty(document.RoleRewards)
	s.docs.MarkDirty(trackRole(track))
	s.report(logbook.LevelInfo, "Generated reward %s and added to tier %s.", rid, tierID)
	return rid, nil
}
