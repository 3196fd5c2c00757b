package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// RewardHit is one search result.
type RewardHit struct {
	ID    string
	Name  string
	Score int
}

// rewardSource implements fuzzy.Source over "id name" strings.
type rewardSource []RewardHit

func (s rewardSource) String(i int) string { return s[i].ID + " " + s[i].Name }

func (s rewardSource) Len() int { return len(s) }

// SearchRewards fuzzy-matches query against reward ids and names. A blank
// query returns every reward in listing order.
func SearchRewards(rewards *Rewards, query string) []RewardHit {
	ids := rewards.IDs()
	src := make(rewardSource, 0, len(ids))
	for _, id := range ids {
		rec, _ := rewards.Lookup(id)
		src = append(src, RewardHit{ID: id, Name: rec.Name})
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return src
	}
	matches := fuzzy.FindFrom(query, src)
	out := make([]RewardHit, len(matches))
	for i, m := range matches {
		out[i] = src[m.Index]
		out[i].Score = m.Score
	}
	return out
}
