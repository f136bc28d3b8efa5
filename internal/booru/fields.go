package booru

import (
	"strings"

	"github.com/edirooss/booru-index/internal/db"
	"github.com/edirooss/booru-index/internal/index"
)

// KeyField binds a single-valued, equality-queryable scalar field (e.g.
// status, rating, file_ext) to a db.Index[Post] via a generic
// index.KeyIndex[K]. It replaces what the original implementation
// expressed as a per-field declarative macro: one generic wrapper
// parameterized by an accessor and an atom parser stands in for all of
// them.
type KeyField[K comparable] struct {
	idx       *index.KeyIndex[K]
	get       func(*Post) K
	parseAtom func(string) (K, bool)
}

type keyFieldLoader[K comparable] struct {
	inner     *index.KeyIndexLoader[K]
	get       func(*Post) K
	parseAtom func(string) (K, bool)
}

// NewKeyField returns the IndexLoader for a KeyField over get/parseAtom.
func NewKeyField[K comparable](get func(*Post) K, parseAtom func(string) (K, bool)) db.IndexLoader[Post] {
	return &keyFieldLoader[K]{inner: index.NewKeyIndexLoader[K](), get: get, parseAtom: parseAtom}
}

func (l *keyFieldLoader[K]) Add(id index.ID, rec *Post) {
	l.inner.Add(id, l.get(rec))
}

func (l *keyFieldLoader[K]) Load() db.Index[Post] {
	return &KeyField[K]{idx: l.inner.Load(), get: l.get, parseAtom: l.parseAtom}
}

func (f *KeyField[K]) Insert(id index.ID, rec *Post) { f.idx.Insert(id, f.get(rec)) }
func (f *KeyField[K]) Remove(id index.ID, rec *Post) { f.idx.Remove(id, f.get(rec)) }
func (f *KeyField[K]) Update(id index.ID, old, new *Post) {
	f.idx.Update(id, f.get(old), f.get(new))
}
// Resolve answers a bare value ("general") or a comma-separated list of
// values ("general,sensitive"), the latter matching the union of each
// value's posting — the key-index analogue of an id-list grammar.
func (f *KeyField[K]) Resolve(_, text string) (index.Queryable, bool) {
	if !strings.Contains(text, ",") {
		v, ok := f.parseAtom(text)
		if !ok {
			return nil, false
		}
		return f.idx.Get(v)
	}

	var postings []index.Queryable
	for _, part := range strings.Split(text, ",") {
		v, ok := f.parseAtom(part)
		if !ok {
			continue
		}
		if q, ok := f.idx.Get(v); ok {
			postings = append(postings, q)
		}
	}
	if len(postings) == 0 {
		return nil, false
	}
	return index.Union(postings...), true
}

// RangeField binds an ordered scalar field (created_at, score, width...)
// to a db.Index[Post] via a generic index.RangeIndex[V], answering range
// grammar atoms ("10..20", "<5", ">100", exact).
type RangeField[V any] struct {
	idx       *index.RangeIndex[V]
	get       func(*Post) V
	parseAtom func(string) (V, bool)
}

type rangeFieldLoader[V any] struct {
	inner     *index.RangeIndexLoader[V]
	get       func(*Post) V
	parseAtom func(string) (V, bool)
}

// NewRangeField returns the IndexLoader for a RangeField ordered by less.
func NewRangeField[V any](get func(*Post) V, less func(a, b V) bool, parseAtom func(string) (V, bool)) db.IndexLoader[Post] {
	return &rangeFieldLoader[V]{inner: index.NewRangeIndexLoader[V](less), get: get, parseAtom: parseAtom}
}

func (l *rangeFieldLoader[V]) Add(id index.ID, rec *Post) {
	l.inner.Add(id, l.get(rec))
}

func (l *rangeFieldLoader[V]) Load() db.Index[Post] {
	return &RangeField[V]{idx: l.inner.Load(), get: l.get, parseAtom: l.parseAtom}
}

func (f *RangeField[V]) Insert(id index.ID, rec *Post) { f.idx.Insert(id, f.get(rec)) }
func (f *RangeField[V]) Remove(id index.ID, rec *Post) { f.idx.Remove(id, f.get(rec)) }
func (f *RangeField[V]) Update(id index.ID, old, new *Post) {
	f.idx.Update(id, f.get(old), f.get(new))
}
// Resolve answers a single range expression ("10..20", "<5", exact) or a
// comma-separated list of them ("1,2,3", "1,5..10"), the latter matching
// the union of each member's posting.
func (f *RangeField[V]) Resolve(_, text string) (index.Queryable, bool) {
	if !strings.Contains(text, ",") {
		rq, ok := index.ParseRangeQuery(text, f.parseAtom)
		if !ok {
			return nil, false
		}
		return f.idx.Get(rq), true
	}

	var postings []index.Queryable
	for _, part := range strings.Split(text, ",") {
		rq, ok := index.ParseRangeQuery(part, f.parseAtom)
		if !ok {
			continue
		}
		postings = append(postings, f.idx.Get(rq))
	}
	if len(postings) == 0 {
		return nil, false
	}
	return index.Union(postings...), true
}

// Ids exposes the field's id-order iterator, used as a sort key by the
// HTTP layer (e.g. "sort=id" or "sort=score" walk this in forward or
// reverse order).
func (f *RangeField[V]) Ids() []index.ID { return f.idx.Ids() }

// KeysField binds a multi-valued field (a list-shaped column) to a
// db.Index[Post] via a generic index.KeysIndex[K], answering exact-match
// atoms against any one of the record's values.
type KeysField[K comparable] struct {
	idx       *index.KeysIndex[K]
	get       func(*Post) []K
	parseAtom func(string) (K, bool)
}

type keysFieldLoader[K comparable] struct {
	inner     *index.KeysIndexLoader[K]
	get       func(*Post) []K
	parseAtom func(string) (K, bool)
}

// NewKeysField returns the IndexLoader for a KeysField.
func NewKeysField[K comparable](get func(*Post) []K, parseAtom func(string) (K, bool)) db.IndexLoader[Post] {
	return &keysFieldLoader[K]{inner: index.NewKeysIndexLoader[K](), get: get, parseAtom: parseAtom}
}

func (l *keysFieldLoader[K]) Add(id index.ID, rec *Post) {
	l.inner.Add(id, l.get(rec))
}

func (l *keysFieldLoader[K]) Load() db.Index[Post] {
	return &KeysField[K]{idx: l.inner.Load(), get: l.get, parseAtom: l.parseAtom}
}

func (f *KeysField[K]) Insert(id index.ID, rec *Post) {
	for _, k := range f.get(rec) {
		f.idx.Insert(id, k)
	}
}
func (f *KeysField[K]) Remove(id index.ID, rec *Post) {
	for _, k := range f.get(rec) {
		f.idx.Remove(id, k)
	}
}
func (f *KeysField[K]) Update(id index.ID, old, new *Post) {
	f.idx.Update(id, f.get(old), f.get(new))
}
func (f *KeysField[K]) Resolve(_, text string) (index.Queryable, bool) {
	v, ok := f.parseAtom(text)
	if !ok {
		return nil, false
	}
	return f.idx.Get(v)
}

// Index exposes the underlying KeysIndex for dependent construction (the
// tag index builds its tag-db from exactly this shape of enumeration).
func (f *KeysField[K]) Index() *index.KeysIndex[K] { return f.idx }
