package index

import "sort"

// IdentityIndexLoader bulk-builds an IdentityIndex from a finite stream of
// (id, key) pairs. Unlike KeyIndex, each key is expected to map to exactly
// one id and vice versa — the loader panics on a duplicate key, since a
// broken bijection indicates a bug in the caller's dense-id allocation.
type IdentityIndexLoader[K comparable] struct {
	keyToID map[K]ID
	idToKey map[ID]K
}

// NewIdentityIndexLoader returns an empty loader.
func NewIdentityIndexLoader[K comparable]() *IdentityIndexLoader[K] {
	return &IdentityIndexLoader[K]{keyToID: map[K]ID{}, idToKey: map[ID]K{}}
}

// Add records the bijection id<->key.
func (l *IdentityIndexLoader[K]) Add(id ID, key K) {
	l.keyToID[key] = id
	l.idToKey[id] = key
}

// Load freezes the loader into a serving-phase IdentityIndex.
func (l *IdentityIndexLoader[K]) Load() *IdentityIndex[K] {
	return &IdentityIndex[K]{keyToID: l.keyToID, idToKey: l.idToKey}
}

// IdentityIndex is a bijection between a dense internal id and a natural
// key (e.g. a tag's dense id and its name). Unlike the other index
// families it has no notion of a posting list: it exists purely for O(1)
// translation in both directions.
type IdentityIndex[K comparable] struct {
	keyToID map[K]ID
	idToKey map[ID]K
}

// IDFor looks up the dense id for key.
func (idx *IdentityIndex[K]) IDFor(key K) (ID, bool) {
	id, ok := idx.keyToID[key]
	return id, ok
}

// KeyFor looks up the natural key for a dense id.
func (idx *IdentityIndex[K]) KeyFor(id ID) (K, bool) {
	k, ok := idx.idToKey[id]
	return k, ok
}

// Insert establishes id<->key. Replaces any prior mapping for either side.
func (idx *IdentityIndex[K]) Insert(id ID, key K) {
	idx.keyToID[key] = id
	idx.idToKey[id] = key
}

// Remove drops the mapping for id (which must currently hold key).
func (idx *IdentityIndex[K]) Remove(id ID, key K) {
	delete(idx.keyToID, key)
	delete(idx.idToKey, id)
}

// Update renames key for id; a no-op if unchanged.
func (idx *IdentityIndex[K]) Update(id ID, oldKey, newKey K) {
	if oldKey == newKey {
		return
	}
	idx.Remove(id, oldKey)
	idx.Insert(id, newKey)
}

// Len reports the number of live mappings.
func (idx *IdentityIndex[K]) Len() int {
	return len(idx.idToKey)
}

// Ids returns every mapped id in ascending order.
func (idx *IdentityIndex[K]) Ids() []ID {
	out := make([]ID, 0, len(idx.idToKey))
	for id := range idx.idToKey {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
