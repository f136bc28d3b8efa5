package index

import (
	"github.com/edirooss/booru-index/internal/bitset"
)

// Grams splits text into its overlapping, fixed-width runs of n Unicode
// scalars. Text shorter than n produces no grams.
func Grams(text string, n int) []string {
	r := []rune(text)
	if len(r) < n {
		return nil
	}
	out := make([]string, 0, len(r)-n+1)
	for i := 0; i+n <= len(r); i++ {
		out = append(out, string(r[i:i+n]))
	}
	return out
}

// NgramIndexLoader bulk-builds a fixed-N NgramIndex.
type NgramIndexLoader struct {
	n        int
	postings map[string]*bitset.Bitset
}

// NewNgramIndexLoader returns an empty loader over n-grams of width n.
func NewNgramIndexLoader(n int) *NgramIndexLoader {
	return &NgramIndexLoader{n: n, postings: map[string]*bitset.Bitset{}}
}

// Add records every n-gram of text as carried by id.
func (l *NgramIndexLoader) Add(id ID, text string) {
	for _, g := range Grams(text, l.n) {
		bs, ok := l.postings[g]
		if !ok {
			bs = bitset.New(id + 1)
			l.postings[g] = bs
		}
		bs.Set(id)
	}
}

// Load freezes the loader into a serving-phase NgramIndex.
func (l *NgramIndexLoader) Load() *NgramIndex {
	return &NgramIndex{n: l.n, postings: l.postings}
}

// NgramIndex shortlists candidate ids for substring queries by indexing
// every fixed-width n-gram of an indexed string. A positive hit in the
// index only proves candidacy: the caller still applies the TextQuery
// predicate against the actual field value to confirm a match, since a
// string can contain all of a query's n-grams without containing the
// query as a contiguous substring.
type NgramIndex struct {
	n        int
	postings map[string]*bitset.Bitset
}

// N reports the gram width this index was built with.
func (idx *NgramIndex) N() int {
	return idx.n
}

// Candidates returns the shortlist for text: the smallest posting among
// text's n-grams, intersected with the rest. Returns false if text is
// shorter than N (too short to produce any gram) — the caller should fall
// back to a different N or a full scan in that case — and also when no id
// carries every one of text's n-grams.
func (idx *NgramIndex) Candidates(text string) (Queryable, bool) {
	grams := Grams(text, idx.n)
	if len(grams) == 0 {
		return nil, false
	}

	var best *bitset.Bitset
	for _, g := range grams {
		bs, ok := idx.postings[g]
		if !ok || bs.Popcount() == 0 {
			return nil, false
		}
		if best == nil || bs.Popcount() < best.Popcount() {
			best = bs
		}
	}

	acc := best.Clone()
	for _, g := range grams {
		bs := idx.postings[g]
		if bs == best {
			continue
		}
		acc.Intersect(bs)
	}
	if acc.Popcount() == 0 {
		return nil, false
	}
	return Borrowed{Set: acc}, true
}

// Insert adds every n-gram of text as carried by id.
func (idx *NgramIndex) Insert(id ID, text string) {
	for _, g := range Grams(text, idx.n) {
		bs, ok := idx.postings[g]
		if !ok {
			bs = bitset.New(id + 1)
			idx.postings[g] = bs
		}
		bs.Set(id)
	}
}

// Remove clears id from every n-gram posting of text; empty postings are
// dropped.
func (idx *NgramIndex) Remove(id ID, text string) {
	for _, g := range Grams(text, idx.n) {
		bs, ok := idx.postings[g]
		if !ok {
			continue
		}
		bs.Clear(id)
		if bs.Popcount() == 0 {
			delete(idx.postings, g)
		}
	}
}

// Update moves id from oldText's grams to newText's; a no-op if unchanged.
func (idx *NgramIndex) Update(id ID, oldText, newText string) {
	if oldText == newText {
		return
	}
	idx.Remove(id, oldText)
	idx.Insert(id, newText)
}
