// Package result implements pagination over a query match set: given the
// set of matching ids and an externally supplied sort order, it walks the
// order, skips the requested offset, and collects up to limit ids.
package result

import (
	"github.com/edirooss/booru-index/internal/bitset"
	"github.com/edirooss/booru-index/internal/index"
)

// Page selects ids from sortOrder that are set in matched, skipping the
// first offset hits and collecting up to limit of the rest. sortOrder is
// walked back-to-front when reverse is true (e.g. the "-score" sort over a
// RangeIndex whose natural Ids() order is ascending).
//
// Time: O(len(sortOrder)) in the worst case (offset+limit near the end of
// an otherwise-unmatching order), O(offset+limit) in the common case of a
// page near the front.
func Page(matched *bitset.Bitset, sortOrder []index.ID, reverse bool, offset, limit int) []index.ID {
	out := make([]index.ID, 0, limit)
	if limit <= 0 {
		return out
	}

	n := len(sortOrder)
	seen := 0
	for i := 0; i < n; i++ {
		id := sortOrder[i]
		if reverse {
			id = sortOrder[n-1-i]
		}
		if !matched.Get(id) {
			continue
		}
		if seen < offset {
			seen++
			continue
		}
		out = append(out, id)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Count reports how many ids are set in matched, ignoring order and
// pagination — the total-matched figure surfaced alongside a page of
// results.
func Count(matched *bitset.Bitset) int {
	return matched.Popcount()
}
