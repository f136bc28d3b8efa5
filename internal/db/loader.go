package db

import (
	"github.com/edirooss/booru-index/internal/bitset"
	"github.com/edirooss/booru-index/internal/index"
)

// DatabaseLoader is the builder that assembles a Database[R]'s index
// registry before any record is visible to queries:
//
//	db := NewDatabaseLoader[booru.Post]().
//	    WithLoader("rating", booru.NewKeyField(
//	        func(p *booru.Post) booru.Rating { return p.Rating },
//	        booru.ParseRating,
//	    )).
//	    WithDefault(booru.NewTagField()).
//	    Load(posts)
type DatabaseLoader[R any] struct {
	loaders map[string]IndexLoader[R]
	def     IndexLoader[R]
}

// NewDatabaseLoader returns an empty builder.
func NewDatabaseLoader[R any]() *DatabaseLoader[R] {
	return &DatabaseLoader[R]{loaders: map[string]IndexLoader[R]{}}
}

// WithLoader registers a named index loader.
func (b *DatabaseLoader[R]) WithLoader(name string, l IndexLoader[R]) *DatabaseLoader[R] {
	b.loaders[name] = l
	return b
}

// WithDefault registers the loader used for unqualified (no "field:")
// query atoms.
func (b *DatabaseLoader[R]) WithDefault(l IndexLoader[R]) *DatabaseLoader[R] {
	b.def = l
	return b
}

// Load assigns each record a dense id in slice order, feeds every
// registered loader, and returns the resulting Database.
func (b *DatabaseLoader[R]) Load(records []R) *Database[R] {
	n := uint32(len(records))
	occupied := bitset.New(n)
	stored := make(map[index.ID]*R, n)

	for i := range records {
		id := index.ID(i)
		rec := records[i]
		stored[id] = &rec
		occupied.Set(id)
		for _, l := range b.loaders {
			l.Add(id, &rec)
		}
		if b.def != nil {
			b.def.Add(id, &rec)
		}
	}

	indexes := make(map[string]Index[R], len(b.loaders))
	for name, l := range b.loaders {
		indexes[name] = l.Load()
	}
	var def Index[R]
	if b.def != nil {
		def = b.def.Load()
	}

	return &Database[R]{
		occupied: occupied,
		records:  stored,
		indexes:  indexes,
		def:      def,
	}
}
