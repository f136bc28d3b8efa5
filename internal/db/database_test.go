package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edirooss/booru-index/internal/index"
)

// record is a minimal test record: a name (equality-indexed) and a score
// (range-indexed), mirroring the shape of booru.Post's field bindings
// without pulling in the full record-binding package.
type record struct {
	Name  string
	Score int
}

type nameIndex struct{ idx *index.KeyIndex[string] }

func (n *nameIndex) Insert(id index.ID, rec *record) { n.idx.Insert(id, rec.Name) }
func (n *nameIndex) Remove(id index.ID, rec *record) { n.idx.Remove(id, rec.Name) }
func (n *nameIndex) Update(id index.ID, old, new *record) {
	n.idx.Update(id, old.Name, new.Name)
}
func (n *nameIndex) Resolve(_, text string) (index.Queryable, bool) {
	return n.idx.Get(text)
}

type nameLoader struct{ l *index.KeyIndexLoader[string] }

func newNameLoader() *nameLoader { return &nameLoader{l: index.NewKeyIndexLoader[string]()} }
func (n *nameLoader) Add(id index.ID, rec *record) { n.l.Add(id, rec.Name) }
func (n *nameLoader) Load() Index[record] {
	return &nameIndex{idx: n.l.Load()}
}

type scoreIndex struct{ idx *index.RangeIndex[int] }

func (s *scoreIndex) Insert(id index.ID, rec *record) { s.idx.Insert(id, rec.Score) }
func (s *scoreIndex) Remove(id index.ID, rec *record) { s.idx.Remove(id, rec.Score) }
func (s *scoreIndex) Update(id index.ID, old, new *record) {
	s.idx.Update(id, old.Score, new.Score)
}
func (s *scoreIndex) Resolve(_, text string) (index.Queryable, bool) {
	rq, ok := index.ParseRangeQuery[int](text, parseIntForTest)
	if !ok {
		return nil, false
	}
	return s.idx.Get(rq), true
}

func parseIntForTest(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

type scoreLoader struct{ l *index.RangeIndexLoader[int] }

func newScoreLoader() *scoreLoader {
	return &scoreLoader{l: index.NewRangeIndexLoader[int](func(a, b int) bool { return a < b })}
}
func (s *scoreLoader) Add(id index.ID, rec *record) { s.l.Add(id, rec.Score) }
func (s *scoreLoader) Load() Index[record] {
	return &scoreIndex{idx: s.l.Load()}
}

func buildTestDatabase() *Database[record] {
	records := []record{
		{Name: "alice", Score: 10},
		{Name: "bob", Score: 20},
		{Name: "carol", Score: 30},
	}
	return NewDatabaseLoader[record]().
		WithLoader("score", newScoreLoader()).
		WithDefault(newNameLoader()).
		Load(records)
}

func TestDatabaseInsertGetLen(t *testing.T) {
	d := buildTestDatabase()
	assert.Equal(t, 3, d.Len())

	rec, ok := d.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "alice", rec.Name)
}

func TestDatabaseQueryDefaultIndex(t *testing.T) {
	d := buildTestDatabase()
	matched, err := d.Query("bob")
	assert.NoError(t, err)
	assert.Equal(t, []index.ID{1}, matched.Iter())
}

func TestDatabaseQueryNamedIndexRange(t *testing.T) {
	d := buildTestDatabase()
	matched, err := d.Query("score:20..")
	assert.NoError(t, err)
	assert.Equal(t, []index.ID{1, 2}, matched.Iter())
}

func TestDatabaseQueryNegation(t *testing.T) {
	d := buildTestDatabase()
	matched, err := d.Query("-bob")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []index.ID{0, 2}, matched.Iter())
}

func TestDatabaseQueryUnknownIdentifierErrors(t *testing.T) {
	d := buildTestDatabase()
	_, err := d.Query("nosuchfield:bob")
	assert.Error(t, err)
}

func TestDatabaseQueryUnbalancedParenErrors(t *testing.T) {
	d := buildTestDatabase()
	_, err := d.Query("(bob")
	assert.Error(t, err)

	_, err = d.Query("bob)")
	assert.Error(t, err)
}

func TestDatabaseQueryEmptyIdentifierErrors(t *testing.T) {
	d := buildTestDatabase()
	_, err := d.Query(":bob")
	assert.Error(t, err)
}

func TestDatabaseInsertAllocatesLowestFreeID(t *testing.T) {
	d := buildTestDatabase()
	assert.True(t, d.Remove(1))
	assert.Equal(t, 2, d.Len())

	id := d.Insert(record{Name: "dave", Score: 40})
	assert.Equal(t, index.ID(1), id)
	assert.Equal(t, 3, d.Len())

	matched, err := d.Query("dave")
	assert.NoError(t, err)
	assert.Equal(t, []index.ID{1}, matched.Iter())
}

func TestDatabaseRemoveUnknownID(t *testing.T) {
	d := buildTestDatabase()
	assert.False(t, d.Remove(99))
}

func TestDatabaseUpdate(t *testing.T) {
	d := buildTestDatabase()
	ok := d.Update(0, record{Name: "alicia", Score: 15})
	assert.True(t, ok)

	_, found := func() (index.ID, bool) {
		m, err := d.Query("alice")
		assert.NoError(t, err)
		if m.Popcount() == 0 {
			return 0, false
		}
		return m.Iter()[0], true
	}()
	assert.False(t, found)

	matched, err := d.Query("alicia")
	assert.NoError(t, err)
	assert.Equal(t, []index.ID{0}, matched.Iter())

	matched, err = d.Query("score:10..20")
	assert.NoError(t, err)
	assert.Equal(t, []index.ID{0, 1}, matched.Iter())
}

func TestDatabaseUpdateUnknownID(t *testing.T) {
	d := buildTestDatabase()
	assert.False(t, d.Update(99, record{Name: "x", Score: 1}))
}

func TestTypedPanicsOnUnknownName(t *testing.T) {
	d := buildTestDatabase()
	assert.Panics(t, func() {
		Typed[*scoreIndex](d, "missing")
	})
}

func TestTypedReturnsRegisteredIndex(t *testing.T) {
	d := buildTestDatabase()
	si := Typed[*scoreIndex](d, "score")
	assert.NotNil(t, si)
}

func TestTypedDefaultReturnsDefaultIndex(t *testing.T) {
	d := buildTestDatabase()
	ni := TypedDefault[*nameIndex](d)
	assert.NotNil(t, ni)
}
