package catalog

import (
	"math/big"
	"sort"
	"strings"
)

var one = big.NewInt(1)

// NextID returns one more than the largest numeric id, or "1" when no id is
// numeric. Non-numeric ids are ignored. Ids are not limited to the range of
// an int.
func NextID(ids []string) string {
	var highest *big.Int
	for _, id := range ids {
		n, ok := numericID(id)
		if !ok {
			continue
		}
		if highest == nil || n.Cmp(highest) > 0 {
			highest = n
		}
	}
	if highest == nil {
		return "1"
	}
	return new(big.Int).Add(highest, one).String()
}

// SortIDs orders ids numerically by value. Non-numeric ids follow all numeric
// ones; ties break on the raw string.
func SortIDs(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.SliceStable(out, func(i, j int) bool {
		return lessID(out[i], out[j])
	})
	return out
}

func lessID(a, b string) bool {
	na, aok := numericID(a)
	nb, bok := numericID(b)
	switch {
	case aok && bok:
		if c := na.Cmp(nb); c != 0 {
			return c < 0
		}
		return a < b
	case aok:
		return true
	case bok:
		return false
	default:
		return a < b
	}
}

func numericID(id string) (*big.Int, bool) {
	return new(big.Int).SetString(strings.TrimSpace(id), 10)
}
