package db

import (
	"fmt"

	"github.com/edirooss/booru-index/internal/bitset"
	"github.com/edirooss/booru-index/internal/index"
	"github.com/edirooss/booru-index/internal/query"
)

// ErrNotFound is the error value for a dense id that is not currently
// occupied. No Database method returns it: Remove and Update report an
// unoccupied id by returning false, and Get by returning ok == false.
var ErrNotFound = fmt.Errorf("db: record not found")

// Database is the generic, record-type-agnostic core: it owns the dense
// id allocator and fans every mutation out to a registry of named
// indexes plus one default index, and evaluates boolean queries over
// that registry. Database itself never interprets R beyond handing it to
// indexes — it does not know what a "tag" or a "score" is.
type Database[R any] struct {
	occupied *bitset.Bitset
	records  map[index.ID]*R
	indexes  map[string]Index[R]
	def      Index[R]
}

// NextID returns the lowest-numbered id not currently occupied. Reused
// after a Remove makes a lower id available again.
func (d *Database[R]) NextID() index.ID {
	return d.occupied.NextClear()
}

// Insert stores rec at a freshly allocated id and fans it out to every
// index. Returns the allocated id.
func (d *Database[R]) Insert(rec R) index.ID {
	id := d.NextID()
	d.occupied.Set(id)
	d.records[id] = &rec
	for _, idx := range d.indexes {
		idx.Insert(id, &rec)
	}
	d.def.Insert(id, &rec)
	return id
}

// Remove drops id's record from storage and every index. Returns false
// if id was not occupied.
func (d *Database[R]) Remove(id index.ID) bool {
	rec, ok := d.records[id]
	if !ok {
		return false
	}
	for _, idx := range d.indexes {
		idx.Remove(id, rec)
	}
	d.def.Remove(id, rec)
	delete(d.records, id)
	d.occupied.Clear(id)
	return true
}

// Update replaces id's record with newRec, fanning the diff out to every
// index. Returns false if id was not occupied.
func (d *Database[R]) Update(id index.ID, newRec R) bool {
	old, ok := d.records[id]
	if !ok {
		return false
	}
	for _, idx := range d.indexes {
		idx.Update(id, old, &newRec)
	}
	d.def.Update(id, old, &newRec)
	d.records[id] = &newRec
	return true
}

// Get returns the live record at id.
func (d *Database[R]) Get(id index.ID) (*R, bool) {
	rec, ok := d.records[id]
	return rec, ok
}

// Len reports the number of live records.
func (d *Database[R]) Len() int {
	return d.occupied.Popcount()
}

// Typed returns the named index, type-asserted to T. Panics if the name
// is unregistered or registered under a different concrete type — both
// indicate a wiring bug at startup, not a runtime condition callers
// should need to recover from.
func Typed[T any, R any](d *Database[R], name string) T {
	idx, ok := d.indexes[name]
	if !ok {
		panic(fmt.Sprintf("db: no index registered as %q", name))
	}
	t, ok := idx.(T)
	if !ok {
		panic(fmt.Sprintf("db: index %q is not of the requested type", name))
	}
	return t
}

// TypedDefault returns the database's default (unqualified-atom) index,
// type-asserted to T.
func TypedDefault[T any, R any](d *Database[R]) T {
	t, ok := d.def.(T)
	if !ok {
		panic("db: default index is not of the requested type")
	}
	return t
}

// Query parses and evaluates a surface-syntax query against the full
// registry, returning the matching bitset over the live id universe.
// Returns a *query.ParseError for malformed syntax (unbalanced parens,
// an empty identifier before ":") or an unregistered field name; an
// atom that merely fails to parse against an otherwise-valid field is
// dropped silently rather than erroring (see query.InvalidAtom).
func (d *Database[R]) Query(text string) (*bitset.Bitset, error) {
	q, err := query.Parse(text, d.resolve)
	if err != nil {
		return nil, err
	}
	universe := uint32(0)
	if d.occupied != nil {
		universe = d.occupied.Len()
	}
	matched := query.Eval(q, universe)
	matched.Intersect(d.occupied)
	return matched, nil
}

func (d *Database[R]) resolve(ident, text string) (index.Queryable, query.ResolveOutcome) {
	if ident == "" {
		if q, ok := d.def.Resolve(ident, text); ok {
			return q, query.Resolved
		}
		return nil, query.InvalidAtom
	}
	idx, ok := d.indexes[ident]
	if !ok {
		return nil, query.UnknownIdentifier
	}
	if q, ok := idx.Resolve(ident, text); ok {
		return q, query.Resolved
	}
	return nil, query.InvalidAtom
}
