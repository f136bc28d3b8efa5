package index

import "sort"

// RangeIndexLoader bulk-builds a RangeIndex, keeping its entries sorted by
// (value, id) once Load is called.
type RangeIndexLoader[V any] struct {
	less    func(a, b V) bool
	values  []V
	ids     []ID
}

// NewRangeIndexLoader returns an empty loader ordered by less.
func NewRangeIndexLoader[V any](less func(a, b V) bool) *RangeIndexLoader[V] {
	return &RangeIndexLoader[V]{less: less}
}

// Add records that record id projects to value.
func (l *RangeIndexLoader[V]) Add(id ID, value V) {
	l.values = append(l.values, value)
	l.ids = append(l.ids, id)
}

// Load sorts the accumulated entries by (value, id) and freezes the index.
func (l *RangeIndexLoader[V]) Load() *RangeIndex[V] {
	n := len(l.ids)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if l.less(l.values[a], l.values[b]) {
			return true
		}
		if l.less(l.values[b], l.values[a]) {
			return false
		}
		return l.ids[a] < l.ids[b]
	})

	values := make([]V, n)
	ids := make([]ID, n)
	idPos := make(map[ID]int, n)
	for i, o := range order {
		values[i] = l.values[o]
		ids[i] = l.ids[o]
		idPos[ids[i]] = i
	}
	idValues := make(map[ID]V, n)
	for i, id := range l.ids {
		idValues[id] = l.values[i]
	}

	return &RangeIndex[V]{
		less:     l.less,
		values:   values,
		ids:      ids,
		idPos:    idPos,
		idValues: idValues,
	}
}

// RangeIndex is an ordered structure keyed by V, kept as a sorted
// (value, id) array plus a parallel id->position map and an id->value map
// for reverse lookup.
type RangeIndex[V any] struct {
	less     func(a, b V) bool
	values   []V
	ids      []ID
	idPos    map[ID]int
	idValues map[ID]V
}

// Ids returns the id-order iterator (ascending by V) used as an external
// sort key by the result materializer.
func (idx *RangeIndex[V]) Ids() []ID {
	out := make([]ID, len(idx.ids))
	copy(out, idx.ids)
	return out
}

// IDValues exposes the id->value reverse map.
func (idx *RangeIndex[V]) IDValues() map[ID]V {
	return idx.idValues
}

// Get returns the RangeSlice Queryable selecting every live id whose value
// satisfies q, in V-order.
func (idx *RangeIndex[V]) Get(q RangeQuery[V]) Queryable {
	lo := 0
	if q.HasLo {
		if q.LoInclusive {
			lo = sort.Search(len(idx.values), func(i int) bool { return !idx.less(idx.values[i], q.Lo) })
		} else {
			lo = sort.Search(len(idx.values), func(i int) bool { return idx.less(q.Lo, idx.values[i]) })
		}
	}
	hi := len(idx.values)
	if q.HasHi {
		if q.HiInclusive {
			hi = sort.Search(len(idx.values), func(i int) bool { return idx.less(q.Hi, idx.values[i]) })
		} else {
			hi = sort.Search(len(idx.values), func(i int) bool { return !idx.less(idx.values[i], q.Hi) })
		}
	}
	if lo > hi {
		lo = hi
	}
	return RangeSlice{IDs: idx.ids, Lo: lo, Hi: hi}
}

// Insert adds id with value, re-establishing sorted order.
func (idx *RangeIndex[V]) Insert(id ID, value V) {
	pos := sort.Search(len(idx.values), func(i int) bool {
		if idx.less(idx.values[i], value) {
			return false
		}
		if idx.less(value, idx.values[i]) {
			return true
		}
		return idx.ids[i] >= id
	})
	idx.values = append(idx.values, value)
	copy(idx.values[pos+1:], idx.values[pos:])
	idx.values[pos] = value

	idx.ids = append(idx.ids, 0)
	copy(idx.ids[pos+1:], idx.ids[pos:])
	idx.ids[pos] = id

	idx.idValues[id] = value
	idx.reindexFrom(pos)
}

// Remove drops id (which must currently hold value) from the index.
func (idx *RangeIndex[V]) Remove(id ID, value V) {
	pos, ok := idx.idPos[id]
	if !ok {
		return
	}
	idx.values = append(idx.values[:pos], idx.values[pos+1:]...)
	idx.ids = append(idx.ids[:pos], idx.ids[pos+1:]...)
	delete(idx.idValues, id)
	delete(idx.idPos, id)
	idx.reindexFrom(pos)
}

// Update moves id from oldValue to newValue; a no-op if unchanged.
func (idx *RangeIndex[V]) Update(id ID, oldValue, newValue V) {
	if !idx.less(oldValue, newValue) && !idx.less(newValue, oldValue) {
		return
	}
	idx.Remove(id, oldValue)
	idx.Insert(id, newValue)
}

func (idx *RangeIndex[V]) reindexFrom(pos int) {
	for i := pos; i < len(idx.ids); i++ {
		idx.idPos[idx.ids[i]] = i
	}
}
