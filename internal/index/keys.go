package index

import "github.com/edirooss/booru-index/internal/bitset"

// KeysIndexLoader bulk-builds a KeysIndex from a finite stream of
// (id, []key) pairs, where each id may carry any number of keys.
type KeysIndexLoader[K comparable] struct {
	postings map[K]*bitset.Bitset
}

// NewKeysIndexLoader returns an empty loader.
func NewKeysIndexLoader[K comparable]() *KeysIndexLoader[K] {
	return &KeysIndexLoader[K]{postings: map[K]*bitset.Bitset{}}
}

// Add records that record id carries every key in keys.
func (l *KeysIndexLoader[K]) Add(id ID, keys []K) {
	for _, k := range keys {
		bs, ok := l.postings[k]
		if !ok {
			bs = bitset.New(id + 1)
			l.postings[k] = bs
		}
		bs.Set(id)
	}
}

// Load freezes the loader into a serving-phase KeysIndex.
func (l *KeysIndexLoader[K]) Load() *KeysIndex[K] {
	return &KeysIndex[K]{postings: l.postings}
}

// KeysIndex is a multi-valued index: an id may belong to the posting of
// any number of keys simultaneously (e.g. a post's tag list).
type KeysIndex[K comparable] struct {
	postings map[K]*bitset.Bitset
}

// Get returns the posting for key, or false if no live id carries it.
func (idx *KeysIndex[K]) Get(key K) (Queryable, bool) {
	bs, ok := idx.postings[key]
	if !ok || bs.Popcount() == 0 {
		return nil, false
	}
	return Borrowed{Set: bs}, true
}

// Insert adds key to id's posting, creating the posting if absent. A no-op
// if id already carries key.
func (idx *KeysIndex[K]) Insert(id ID, key K) {
	bs, ok := idx.postings[key]
	if !ok {
		bs = bitset.New(id + 1)
		idx.postings[key] = bs
	}
	bs.Set(id)
}

// Remove drops key from id's posting; the posting itself is dropped once
// empty.
func (idx *KeysIndex[K]) Remove(id ID, key K) {
	bs, ok := idx.postings[key]
	if !ok {
		return
	}
	bs.Clear(id)
	if bs.Popcount() == 0 {
		delete(idx.postings, key)
	}
}

// Update replaces id's key set, removing keys no longer present and adding
// newly introduced ones. Keys unchanged between oldKeys and newKeys are
// left untouched.
func (idx *KeysIndex[K]) Update(id ID, oldKeys, newKeys []K) {
	oldSet := make(map[K]struct{}, len(oldKeys))
	for _, k := range oldKeys {
		oldSet[k] = struct{}{}
	}
	newSet := make(map[K]struct{}, len(newKeys))
	for _, k := range newKeys {
		newSet[k] = struct{}{}
	}
	for k := range oldSet {
		if _, keep := newSet[k]; !keep {
			idx.Remove(id, k)
		}
	}
	for k := range newSet {
		if _, had := oldSet[k]; !had {
			idx.Insert(id, k)
		}
	}
}

// Items enumerates every (key, Queryable) pair currently populated.
func (idx *KeysIndex[K]) Items() map[K]Queryable {
	out := make(map[K]Queryable, len(idx.postings))
	for k, bs := range idx.postings {
		out[k] = Borrowed{Set: bs}
	}
	return out
}

// Matched reports how many live ids currently carry key.
func (idx *KeysIndex[K]) Matched(key K) int {
	bs, ok := idx.postings[key]
	if !ok {
		return 0
	}
	return bs.Popcount()
}
