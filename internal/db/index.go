// Package db implements the generic, record-type-agnostic core: a
// Database[R] that owns a dense id space and a registry of named indexes,
// fans inserts/removals/updates out to them, and evaluates boolean
// queries against the registry.
package db

import "github.com/edirooss/booru-index/internal/index"

// Index is one named facet of a Database[R]: it keeps its own posting
// structure in sync with every mutation and answers atom lookups during
// query evaluation.
type Index[R any] interface {
	// Insert adds rec (now living at id) to this index's postings.
	Insert(id index.ID, rec *R)
	// Remove drops id (which held rec) from this index's postings.
	Remove(id index.ID, rec *R)
	// Update moves id from old to new within this index's postings.
	Update(id index.ID, old, new *R)
	// Resolve looks up the posting for one query atom. ident is the
	// atom's "field:" prefix (the name this index was registered under),
	// or "" when the index is invoked as the default index; returns false
	// for an atom this index cannot answer (malformed grammar, unknown
	// value).
	Resolve(ident, text string) (index.Queryable, bool)
}

// IndexLoader builds an Index[R] from a finite stream of records seen
// during Database construction, before any index needs to answer queries.
type IndexLoader[R any] interface {
	Add(id index.ID, rec *R)
	Load() Index[R]
}
