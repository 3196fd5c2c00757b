package studio

import (
	"errors"
	"fmt"

	"github.com/kingrea/battlepass-studio/internal/catalog"
	"github.com/kingrea/battlepass-studio/internal/logbook"
	"github.com/kingrea/battlepass-studio/internal/model"
	"go.uber.org/multierr"
)

// ErrDanglingReference classifies a tier listing a reward id that is not in
// the catalog.
var ErrDanglingReference = errors.New("references a missing reward")

// ErrUnreadableEntry classifies an entry that is not a record. It is saved
// back exactly as loaded.
var ErrUnreadableEntry = errors.New("is not a mapping and is kept as written")

// Check validates the loaded model and returns every problem combined.
// Use multierr.Errors to list them.
func (s *Studio) Check() error {
	var errs error
	for _, track := range catalog.TrackNames {
		if tiers, err := s.tracks.Get(track); err == nil {
			for _, id := range tiers.Unreadable() {
				errs = multierr.Append(errs, fmt.Errorf("%s tier %s %w", track, id, ErrUnreadableEntry))
			}
		}
		for _, id := range s.TierIDs(track) {
			tier, _ := s.Tier(track, id)
			if tier.RequiredPoints < 0 {
				errs = multierr.Append(errs, fmt.Errorf("%s tier %s: required-points %d is negative", track, id, tier.RequiredPoints))
			}
			for _, rid := range tier.Rewards {
				if _, ok := s.rewards.Lookup(rid); !ok {
					errs = multierr.Append(errs, fmt.Errorf("%s tier %s: %w %s", track, id, ErrDanglingReference, rid))
				}
			}
		}
	}
	for _, id := range s.rewards.Unreadable() {
		errs = multierr.Append(errs, fmt.Errorf("reward %s %w", id, ErrUnreadableEntry))
	}
	for _, id := range s.rewards.IDs() {
		r, _ := s.rewards.Lookup(id)
		if t := r.Type(); !t.Known() {
			errs = multierr.Append(errs, fmt.Errorf("reward %s: %w %q", id, model.ErrUnknownType, t))
		}
		if p, ok := r.Payload.(model.ItemPayload); ok {
			for _, slot := range p.Slots {
				if slot.Amount < 1 {
					errs = multierr.Append(errs, fmt.Errorf("reward %s: item slot %s amount %d is below 1", id, slot.Slot, slot.Amount))
				}
			}
		}
	}
	for _, id := range s.quests.Unreadable() {
		errs = multierr.Append(errs, fmt.Errorf("quest %s %w", id, ErrUnreadableEntry))
	}
	for _, id := range s.quests.IDs() {
		q, _ := s.quests.Lookup(id)
		if !q.Type.Known() {
			errs = multierr.Append(errs, fmt.Errorf("quest %s: %w %q", id, model.ErrUnknownType, q.Type))
		}
		if q.RequiredProgress < 1 {
			errs = multierr.Append(errs, fmt.Errorf("quest %s: required-progress %d is below 1", id, q.RequiredProgress))
		}
		if q.Points < 0 {
			errs = multierr.Append(errs, fmt.Errorf("quest %s: points %d is negative", id, q.Points))
		}
	}
	if n := len(multierr.Errors(errs)); n > 0 {
		s.report(logbook.LevelWarn, "Check found %d problem(s).", n)
	} else {
		s.report(logbook.LevelInfo, "Check passed.")
	}
	return errs
}
