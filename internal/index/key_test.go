package index

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyIndexLoaderBasic(t *testing.T) {
	l := NewKeyIndexLoader[string]()
	l.Add(0, "a")
	l.Add(1, "b")
	l.Add(2, "a")
	idx := l.Load()

	q, ok := idx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []ID{0, 2}, q.Iter())

	_, ok = idx.Get("missing")
	assert.False(t, ok)
}

func TestKeyIndexInsertRemoveUpdate(t *testing.T) {
	idx := NewKeyIndexLoader[string]().Load()
	idx.Insert(0, "a")
	idx.Insert(1, "a")

	q, ok := idx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, q.Popcount())

	idx.Update(0, "a", "b")
	_, ok = idx.Get("b")
	assert.True(t, ok)

	qa, ok := idx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []ID{1}, qa.Iter())

	idx.Remove(1, "a")
	_, ok = idx.Get("a")
	assert.False(t, ok)
}

func TestKeyIndexItems(t *testing.T) {
	idx := NewKeyIndexLoader[string]().Load()
	idx.Insert(0, "a")
	idx.Insert(1, "b")
	items := idx.Items()
	assert.Len(t, items, 2)
	var keys []string
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "b"}, keys)
}
