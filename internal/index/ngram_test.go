package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrams(t *testing.T) {
	assert.Equal(t, []string{"ab", "bc", "cd"}, Grams("abcd", 2))
	assert.Nil(t, Grams("a", 2))
	assert.Equal(t, []string{"a"}, Grams("a", 1))
}

func TestGramsUnicode(t *testing.T) {
	grams := Grams("日本語", 2)
	assert.Equal(t, []string{"日本", "本語"}, grams)
}

func TestNgramIndexCandidates(t *testing.T) {
	l := NewNgramIndexLoader(2)
	l.Add(0, "hatsune_miku")
	l.Add(1, "kagamine_rin")
	l.Add(2, "hatsune")
	idx := l.Load()

	q, ok := idx.Candidates("hatsu")
	assert.True(t, ok)
	ids := q.Iter()
	assert.ElementsMatch(t, []ID{0, 2}, ids)

	_, ok = idx.Candidates("zz")
	assert.False(t, ok)

	_, ok = idx.Candidates("h")
	assert.False(t, ok)
}

func TestNgramIndexInsertRemoveUpdate(t *testing.T) {
	idx := NewNgramIndexLoader(2).Load()
	idx.Insert(0, "miku")
	q, ok := idx.Candidates("mi")
	assert.True(t, ok)
	assert.Equal(t, []ID{0}, q.Iter())

	idx.Update(0, "miku", "rin")
	_, ok = idx.Candidates("mi")
	assert.False(t, ok)

	q, ok = idx.Candidates("rin")
	assert.True(t, ok)
	assert.Equal(t, []ID{0}, q.Iter())

	idx.Remove(0, "rin")
	_, ok = idx.Candidates("rin")
	assert.False(t, ok)
}
