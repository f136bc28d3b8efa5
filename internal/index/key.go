package index

import "github.com/edirooss/booru-index/internal/bitset"

// KeyIndexLoader bulk-builds a KeyIndex from a finite stream of (id, key)
// pairs during the loader phase.
type KeyIndexLoader[K comparable] struct {
	postings map[K]*bitset.Bitset
	universe ID
}

// NewKeyIndexLoader returns an empty loader.
func NewKeyIndexLoader[K comparable]() *KeyIndexLoader[K] {
	return &KeyIndexLoader[K]{postings: map[K]*bitset.Bitset{}}
}

// Add records that record id maps to key.
func (l *KeyIndexLoader[K]) Add(id ID, key K) {
	bs, ok := l.postings[key]
	if !ok {
		bs = bitset.New(id + 1)
		l.postings[key] = bs
	}
	bs.Set(id)
	if id+1 > l.universe {
		l.universe = id + 1
	}
}

// Load freezes the loader into a serving-phase KeyIndex.
func (l *KeyIndexLoader[K]) Load() *KeyIndex[K] {
	return &KeyIndex[K]{postings: l.postings}
}

// KeyIndex is an equality index: each id belongs to exactly one posting,
// the one for its current key.
type KeyIndex[K comparable] struct {
	postings map[K]*bitset.Bitset
}

// Get returns the posting for key, or false if no live id maps to it.
func (idx *KeyIndex[K]) Get(key K) (Queryable, bool) {
	bs, ok := idx.postings[key]
	if !ok || bs.Popcount() == 0 {
		return nil, false
	}
	return Borrowed{Set: bs}, true
}

// Insert adds id to the posting for key, creating the posting if absent.
func (idx *KeyIndex[K]) Insert(id ID, key K) {
	bs, ok := idx.postings[key]
	if !ok {
		bs = bitset.New(id + 1)
		idx.postings[key] = bs
	}
	bs.Set(id)
}

// Remove clears id from the posting for key; drops the posting if it
// becomes empty.
func (idx *KeyIndex[K]) Remove(id ID, key K) {
	bs, ok := idx.postings[key]
	if !ok {
		return
	}
	bs.Clear(id)
	if bs.Popcount() == 0 {
		delete(idx.postings, key)
	}
}

// Update moves id from oldKey's posting to newKey's; a no-op if unchanged.
func (idx *KeyIndex[K]) Update(id ID, oldKey, newKey K) {
	if oldKey == newKey {
		return
	}
	idx.Remove(id, oldKey)
	idx.Insert(id, newKey)
}

// Items enumerates every (key, Queryable) pair currently populated; used
// by dependent indexes (e.g. the tag index builds a secondary database
// from a KeysIndex enumeration in the same shape).
func (idx *KeyIndex[K]) Items() map[K]Queryable {
	out := make(map[K]Queryable, len(idx.postings))
	for k, bs := range idx.postings {
		out[k] = Borrowed{Set: bs}
	}
	return out
}
