package booru

import (
	"sort"
	"strings"
)

// abbreviate derives a tag's abbreviation key: parens are stripped, the
// name is split on underscores, and the first rune of each non-empty part
// is concatenated. "blue_eyes" -> "be", "hatsune_miku_(vocaloid)" -> "hmv".
func abbreviate(name string) string {
	stripped := strings.NewReplacer("(", "", ")", "").Replace(name)
	parts := strings.Split(stripped, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		b.WriteRune(r[0])
	}
	return b.String()
}

type abvEntry struct {
	name  string
	count uint32
}

// tagAbbreviations maintains, for every abbreviation key, the tags that
// abbreviate to it ordered most-popular-first, so a "/abv" lookup can
// return the single best match in O(1) once positioned.
type tagAbbreviations struct {
	items map[string][]abvEntry
	keyOf map[string]string
}

func newTagAbbreviations() *tagAbbreviations {
	return &tagAbbreviations{items: map[string][]abvEntry{}, keyOf: map[string]string{}}
}

// less orders entries most-popular-first, breaking a count tie toward the
// lexicographically larger name so the ordering is stable regardless of
// insertion order.
func (a abvEntry) less(b abvEntry) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.name > b.name
}

func (t *tagAbbreviations) insert(name string, count uint32) {
	key := abbreviate(name)
	t.keyOf[name] = key
	e := abvEntry{name: name, count: count}
	list := t.items[key]
	pos := sort.Search(len(list), func(i int) bool { return !list[i].less(e) })
	list = append(list, abvEntry{})
	copy(list[pos+1:], list[pos:])
	list[pos] = e
	t.items[key] = list
}

func (t *tagAbbreviations) remove(name string) {
	key, ok := t.keyOf[name]
	if !ok {
		return
	}
	list := t.items[key]
	for i, e := range list {
		if e.name == name {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(t.items, key)
	} else {
		t.items[key] = list
	}
	delete(t.keyOf, name)
}

func (t *tagAbbreviations) updateCount(name string, count uint32) {
	t.remove(name)
	t.insert(name, count)
}

// Best returns the most popular tag abbreviating to key.
func (t *tagAbbreviations) Best(key string) (string, bool) {
	list, ok := t.items[key]
	if !ok || len(list) == 0 {
		return "", false
	}
	return list[0].name, true
}
