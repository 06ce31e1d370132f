// Package digest picks the bills for the periodic notification and renders
// its content. Delivery and scheduling belong to the caller.
package digest

import (
	"sort"

	"github.com/ppiankov/billtrack/internal/model"
)

// DefaultMaxCount is the digest size used when none is configured.
const DefaultMaxCount = 5

// Select ranks candidates for a digest. Bills matching an interest are
// listed ahead of the full candidate set, the combined list is ordered by
// last update (missing dates last), duplicates keep their first position and
// the result is cut to maxCount. The result is filled from non-matching
// bills when too few match.
func Select(candidates []model.BillRecord, interests []string, maxCount int) []model.BillRecord {
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}

	ranked := make([]model.BillRecord, 0, 2*len(candidates))
	for _, b := range candidates {
		if b.MatchesAny(interests) {
			ranked = append(ranked, b)
		}
	}
	ranked = append(ranked, candidates...)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LastUpdatedOrZero().After(ranked[j].LastUpdatedOrZero().Time)
	})

	seen := make(map[string]struct{}, len(ranked))
	out := make([]model.BillRecord, 0, maxCount)
	for _, b := range ranked {
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
		if len(out) == maxCount {
			break
		}
	}
	return out
}
