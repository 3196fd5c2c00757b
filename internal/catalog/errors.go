package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an id is absent from its collection.
	ErrNotFound = errors.New("not found")
	// ErrRewardReferenced classifies a refused reward deletion.
	ErrRewardReferenced = errors.New("reward is referenced by a tier")
	// ErrUnknownTrack is returned for a track name other than free or premium.
	ErrUnknownTrack = errors.New("unknown track")
	// ErrMissingID is returned when an operation needs an id and got a blank one.
	ErrMissingID = errors.New("no id selected")
)

// TierRef points at one tier of one track.
type TierRef struct {
	Track  Track
	TierID string
}

func (r TierRef) String() string {
	return fmt.Sprintf("%s tier %s", r.Track, r.TierID)
}

// ReferenceError reports the tiers that keep a reward alive.
type ReferenceError struct {
	RewardID string
	Refs     []TierRef
}

func (e *ReferenceError) Error() string {
	refs := make([]string, len(e.Refs))
	for i, r := range e.Refs {
		refs[i] = r.String()
	}
	return fmt.Sprintf("cannot delete reward %s: referenced by %s", e.RewardID, strings.Join(refs, ", "))
}

func (e *ReferenceError) Is(target error) bool { return target == ErrRewardReferenced }

func notFound(entity, id string) error {
	return fmt.Errorf("catalog: %s %q: %w", entity, id, ErrNotFound)
}
