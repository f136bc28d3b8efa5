// Package index implements the reusable secondary-index primitives: the
// Queryable posting handle and the four concrete index kinds (KeyIndex,
// RangeIndex, KeysIndex, NgramIndex) plus IdentityIndex. None of these
// types know about the application's record type; field-specific
// projections live in the booru package.
package index

import (
	"sort"

	"github.com/edirooss/booru-index/internal/bitset"
)

// ID is a dense record identifier, allocated by the Database.
type ID = uint32

// Queryable is a polymorphic handle to a posting (a set of dense IDs).
// It is either a borrowed bitset reference into an index, an owned sorted
// ID list synthesized on the fly (n-gram shortlist results), or a lazy
// slice of an ordered RangeIndex.
type Queryable interface {
	Contains(id ID) bool
	Iter() []ID
	Popcount() int
	ToBitset(universe ID) *bitset.Bitset
}

// Borrowed is a zero-copy reference into an index's own bitset.
type Borrowed struct {
	Set *bitset.Bitset
}

func (b Borrowed) Contains(id ID) bool { return b.Set.Get(id) }
func (b Borrowed) Iter() []ID          { return b.Set.Iter() }
func (b Borrowed) Popcount() int       { return b.Set.Popcount() }
func (b Borrowed) ToBitset(universe ID) *bitset.Bitset {
	return b.Set.Clone()
}

// IDsOwned is a materialized, ascending, deduplicated list of IDs; used by
// indexes (n-gram, comma-lists) that don't maintain a bitset per query.
type IDsOwned struct {
	IDs []ID
}

func (o IDsOwned) Contains(id ID) bool {
	for _, v := range o.IDs {
		if v == id {
			return true
		}
		if v > id {
			break
		}
	}
	return false
}
func (o IDsOwned) Iter() []ID    { return o.IDs }
func (o IDsOwned) Popcount() int { return len(o.IDs) }
func (o IDsOwned) ToBitset(universe ID) *bitset.Bitset {
	bs := bitset.New(universe)
	for _, id := range o.IDs {
		bs.Set(id)
	}
	return bs
}

// Union merges any number of postings into their set union, for grammars
// (comma-separated id lists, tag wildcards) that resolve to more than one
// underlying posting and need them OR'd together. A RangeSlice yields its
// IDs in value order rather than ID order, so the deduplicated result is
// sorted ascending before it is returned.
func Union(qs ...Queryable) Queryable {
	var out []ID
	seen := map[ID]struct{}{}
	for _, q := range qs {
		if q == nil {
			continue
		}
		for _, id := range q.Iter() {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return IDsOwned{IDs: out}
}

// RangeSlice is a lazy, contiguous slice of ascending positions [Lo, Hi)
// in a RangeIndex's value-ordered array of ids.
type RangeSlice struct {
	IDs    []ID // the full value-ordered id array owned by the RangeIndex
	Lo, Hi int  // [Lo, Hi) bounds within IDs
}

func (r RangeSlice) Contains(id ID) bool {
	for _, v := range r.IDs[r.Lo:r.Hi] {
		if v == id {
			return true
		}
	}
	return false
}
func (r RangeSlice) Iter() []ID {
	out := make([]ID, r.Hi-r.Lo)
	copy(out, r.IDs[r.Lo:r.Hi])
	return out
}
func (r RangeSlice) Popcount() int { return r.Hi - r.Lo }
func (r RangeSlice) ToBitset(universe ID) *bitset.Bitset {
	bs := bitset.New(universe)
	for _, id := range r.IDs[r.Lo:r.Hi] {
		bs.Set(id)
	}
	return bs
}
