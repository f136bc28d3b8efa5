package booru

import (
	"sort"
	"strings"

	"github.com/edirooss/booru-index/internal/db"
	"github.com/edirooss/booru-index/internal/index"
)

// TagField binds Post.Tags to db.Index[Post]. Besides the direct
// name->posts posting list (index.KeysIndex[string]), it owns a nested
// tag database tracking each live tag's usage count, and an abbreviation
// table resolving "/abv" lookups to the most popular matching tag.
type TagField struct {
	outer *index.KeysIndex[string]
	tagDB *db.Database[Tag]
	idIdx *TagIDIndex
	name  *TagNameIndex
	abv   *tagAbbreviations
}

type tagFieldLoader struct {
	inner *index.KeysIndexLoader[string]
}

// NewTagField returns the IndexLoader for the tags field.
func NewTagField() db.IndexLoader[Post] {
	return &tagFieldLoader{inner: index.NewKeysIndexLoader[string]()}
}

func (l *tagFieldLoader) Add(id index.ID, rec *Post) {
	l.inner.Add(id, rec.Tags)
}

func (l *tagFieldLoader) Load() db.Index[Post] {
	outer := l.inner.Load()
	tagDB := newTagDB()
	idIdx := db.Typed[*TagIDIndex](tagDB, "id")
	nameIdx := db.TypedDefault[*TagNameIndex](tagDB)

	f := &TagField{outer: outer, tagDB: tagDB, idIdx: idIdx, name: nameIdx, abv: newTagAbbreviations()}
	for name, q := range outer.Items() {
		count := q.Popcount()
		f.tagDB.Insert(Tag{Name: name, Count: uint32(count)})
		f.abv.insert(name, uint32(count))
	}
	return f
}

func (f *TagField) Insert(id index.ID, rec *Post) {
	for _, t := range rec.Tags {
		f.outer.Insert(id, t)
		f.bumpCount(t, 1)
	}
}

func (f *TagField) Remove(id index.ID, rec *Post) {
	for _, t := range rec.Tags {
		f.outer.Remove(id, t)
		f.bumpCount(t, -1)
	}
}

func (f *TagField) Update(id index.ID, old, new *Post) {
	f.outer.Update(id, old.Tags, new.Tags)

	oldSet := make(map[string]struct{}, len(old.Tags))
	for _, t := range old.Tags {
		oldSet[t] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(new.Tags))
	for _, t := range new.Tags {
		newSet[t] = struct{}{}
	}
	for t := range oldSet {
		if _, keep := newSet[t]; !keep {
			f.bumpCount(t, -1)
		}
	}
	for t := range newSet {
		if _, had := oldSet[t]; !had {
			f.bumpCount(t, 1)
		}
	}
}

// bumpCount adjusts a tag's live usage count, inserting a new tag-db row
// on first use and dropping the row once its count reaches zero.
func (f *TagField) bumpCount(name string, delta int) {
	tagID, ok := f.idIdx.IDFor(name)
	if !ok {
		if delta <= 0 {
			return
		}
		f.tagDB.Insert(Tag{Name: name, Count: uint32(delta)})
		f.abv.insert(name, uint32(delta))
		return
	}

	tag, ok := f.tagDB.Get(tagID)
	if !ok {
		return
	}
	next := int(tag.Count) + delta
	if next <= 0 {
		f.tagDB.Remove(tagID)
		f.abv.remove(name)
		return
	}
	f.tagDB.Update(tagID, Tag{Name: name, Count: uint32(next)})
	f.abv.updateCount(name, uint32(next))
}

// Resolve implements three query grammars over the "tags" field:
//
//	tag_name       exact match against the outer posting list
//	*partial*      wildcard match, shortlisted via the tag-db's n-gram
//	                index and unioned across every matching tag name
//	/abbreviation  resolves to the most popular tag with that
//	                abbreviation (see abbreviate)
func (f *TagField) Resolve(_, text string) (index.Queryable, bool) {
	if rest, ok := strings.CutPrefix(text, "/"); ok {
		name, ok := f.abv.Best(rest)
		if !ok {
			return nil, false
		}
		return f.outer.Get(name)
	}

	if !strings.ContainsRune(text, '*') {
		return f.outer.Get(text)
	}

	cand, ok := f.name.Resolve("", text)
	if !ok {
		return index.IDsOwned{}, true
	}

	var matched []index.ID
	seen := map[index.ID]struct{}{}
	for _, tagID := range cand.Iter() {
		name, ok := f.idIdx.KeyFor(tagID)
		if !ok {
			continue
		}
		posting, ok := f.outer.Get(name)
		if !ok {
			continue
		}
		for _, postID := range posting.Iter() {
			if _, dup := seen[postID]; !dup {
				seen[postID] = struct{}{}
				matched = append(matched, postID)
			}
		}
	}
	if len(matched) == 0 {
		return index.IDsOwned{}, true
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i] < matched[j] })
	return index.IDsOwned{IDs: matched}, true
}

// TagDB exposes the nested tag database, queried directly by the tag
// listing endpoint.
func (f *TagField) TagDB() *db.Database[Tag] { return f.tagDB }

// TagIDIndex exposes the dense-id<->name translation for the tag
// listing endpoint's response mapping.
func (f *TagField) TagIDIndex() *TagIDIndex { return f.idIdx }
