package booru

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbbreviate(t *testing.T) {
	assert.Equal(t, "be", abbreviate("blue_eyes"))
	assert.Equal(t, "hmv", abbreviate("hatsune_miku_(vocaloid)"))
	assert.Equal(t, "a", abbreviate("a"))
}

func TestTagAbbreviationsBestPicksMostPopular(t *testing.T) {
	a := newTagAbbreviations()
	a.insert("blue_eyes", 10)
	a.insert("black_eyes", 50)

	best, ok := a.Best("be")
	assert.True(t, ok)
	assert.Equal(t, "black_eyes", best)
}

func TestTagAbbreviationsUpdateCountReorders(t *testing.T) {
	a := newTagAbbreviations()
	a.insert("blue_eyes", 10)
	a.insert("black_eyes", 50)

	a.updateCount("blue_eyes", 100)
	best, ok := a.Best("be")
	assert.True(t, ok)
	assert.Equal(t, "blue_eyes", best)
}

func TestTagAbbreviationsRemove(t *testing.T) {
	a := newTagAbbreviations()
	a.insert("blue_eyes", 10)
	a.remove("blue_eyes")
	_, ok := a.Best("be")
	assert.False(t, ok)
}

func TestTagAbbreviationsTieBreakByName(t *testing.T) {
	a := newTagAbbreviations()
	a.insert("black_eyes", 10)
	a.insert("blue_eyes", 10)
	best, ok := a.Best("be")
	assert.True(t, ok)
	assert.Equal(t, "blue_eyes", best, "count tie breaks toward the lexicographically larger name")
}
