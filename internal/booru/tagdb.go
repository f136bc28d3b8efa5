package booru

import (
	"sort"

	"github.com/edirooss/booru-index/internal/db"
	"github.com/edirooss/booru-index/internal/index"
)

// Tag is the record type of the nested tag database: one row per distinct
// tag name currently carried by at least one live post.
type Tag struct {
	Name  string
	Count uint32
}

// TagIDIndex is the tag-db's "id" index: a bijection between a tag's
// dense id within the tag database and its name. It is not itself
// query-dispatchable (a tag's dense id has no meaning to a client); it
// exists so the outer tag field can translate between the two spaces.
type TagIDIndex struct {
	idx *index.IdentityIndex[string]
}

type tagIDLoader struct {
	inner *index.IdentityIndexLoader[string]
}

func newTagIDLoader() db.IndexLoader[Tag] {
	return &tagIDLoader{inner: index.NewIdentityIndexLoader[string]()}
}

func (l *tagIDLoader) Add(id index.ID, t *Tag)  { l.inner.Add(id, t.Name) }
func (l *tagIDLoader) Load() db.Index[Tag]      { return &TagIDIndex{idx: l.inner.Load()} }
func (f *TagIDIndex) Insert(id index.ID, t *Tag) { f.idx.Insert(id, t.Name) }
func (f *TagIDIndex) Remove(id index.ID, t *Tag) { f.idx.Remove(id, t.Name) }
func (f *TagIDIndex) Update(id index.ID, old, new *Tag) {
	f.idx.Update(id, old.Name, new.Name)
}
func (f *TagIDIndex) Resolve(string, string) (index.Queryable, bool) { return nil, false }

// IDFor looks up a tag's dense id by name.
func (f *TagIDIndex) IDFor(name string) (index.ID, bool) { return f.idx.IDFor(name) }

// KeyFor looks up a tag's name by dense id.
func (f *TagIDIndex) KeyFor(id index.ID) (string, bool) { return f.idx.KeyFor(id) }

// TagCountIndex is the tag-db's "count" index: an ordered index over each
// tag's live usage count, answering range-grammar atoms and providing the
// sort order for count-based pagination.
type TagCountIndex struct {
	idx *index.RangeIndex[uint32]
}

type tagCountLoader struct {
	inner *index.RangeIndexLoader[uint32]
}

func newTagCountLoader() db.IndexLoader[Tag] {
	return &tagCountLoader{inner: index.NewRangeIndexLoader[uint32](func(a, b uint32) bool { return a < b })}
}

func (l *tagCountLoader) Add(id index.ID, t *Tag) { l.inner.Add(id, t.Count) }
func (l *tagCountLoader) Load() db.Index[Tag]     { return &TagCountIndex{idx: l.inner.Load()} }
func (f *TagCountIndex) Insert(id index.ID, t *Tag) { f.idx.Insert(id, t.Count) }
func (f *TagCountIndex) Remove(id index.ID, t *Tag) { f.idx.Remove(id, t.Count) }
func (f *TagCountIndex) Update(id index.ID, old, new *Tag) {
	f.idx.Update(id, old.Count, new.Count)
}
func (f *TagCountIndex) Resolve(_, text string) (index.Queryable, bool) {
	rq, ok := index.ParseRangeQuery(text, ParseUint32)
	if !ok {
		return nil, false
	}
	return f.idx.Get(rq), true
}

// Ids exposes the count-order iterator, used by the tag listing endpoint
// to paginate by popularity.
func (f *TagCountIndex) Ids() []index.ID { return f.idx.Ids() }

// TagNameIndex is the tag-db's default index: a pair of fixed-width
// n-gram shortlists (n=1, n=2) over tag names, dispatched by query length
// the way the original chose its gram width — an empty query matches
// nothing, a single-rune query uses the 1-gram index (2-grams can't
// shortlist it), anything longer uses the 2-gram index.
type TagNameIndex struct {
	gram1  *index.NgramIndex
	gram2  *index.NgramIndex
	names  map[index.ID]string
}

type tagNameLoader struct {
	l1    *index.NgramIndexLoader
	l2    *index.NgramIndexLoader
	names map[index.ID]string
}

func newTagNameLoader() db.IndexLoader[Tag] {
	return &tagNameLoader{
		l1:    index.NewNgramIndexLoader(1),
		l2:    index.NewNgramIndexLoader(2),
		names: map[index.ID]string{},
	}
}

func (l *tagNameLoader) Add(id index.ID, t *Tag) {
	l.l1.Add(id, t.Name)
	l.l2.Add(id, t.Name)
	l.names[id] = t.Name
}

func (l *tagNameLoader) Load() db.Index[Tag] {
	return &TagNameIndex{gram1: l.l1.Load(), gram2: l.l2.Load(), names: l.names}
}

func (f *TagNameIndex) Insert(id index.ID, t *Tag) {
	f.gram1.Insert(id, t.Name)
	f.gram2.Insert(id, t.Name)
	f.names[id] = t.Name
}
func (f *TagNameIndex) Remove(id index.ID, t *Tag) {
	f.gram1.Remove(id, t.Name)
	f.gram2.Remove(id, t.Name)
	delete(f.names, id)
}
func (f *TagNameIndex) Update(id index.ID, old, new *Tag) {
	f.gram1.Update(id, old.Name, new.Name)
	f.gram2.Update(id, old.Name, new.Name)
	f.names[id] = new.Name
}

// Resolve answers a wildcard text query over tag names, returning the
// matching set of tag-db dense ids.
func (f *TagNameIndex) Resolve(_, text string) (index.Queryable, bool) {
	tq := index.ParseTextQuery(text)
	if tq.Text == "" {
		return index.IDsOwned{}, true
	}

	var cand index.Queryable
	var ok bool
	if len([]rune(tq.Text)) < 2 {
		cand, ok = f.gram1.Candidates(tq.Text)
	} else {
		cand, ok = f.gram2.Candidates(tq.Text)
	}
	if !ok {
		return index.IDsOwned{}, true
	}

	var matched []index.ID
	for _, id := range cand.Iter() {
		if name, ok := f.names[id]; ok && tq.Match(name) {
			matched = append(matched, id)
		}
	}
	if len(matched) == 0 {
		return index.IDsOwned{}, true
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i] < matched[j] })
	return index.IDsOwned{IDs: matched}, true
}

// newTagDB assembles the nested tag database with its three indexes.
func newTagDB() *db.Database[Tag] {
	return db.NewDatabaseLoader[Tag]().
		WithLoader("id", newTagIDLoader()).
		WithLoader("count", newTagCountLoader()).
		WithDefault(newTagNameLoader()).
		Load(nil)
}
