package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTextQueryKinds(t *testing.T) {
	cases := []struct {
		in   string
		kind TextQueryKind
		text string
	}{
		{"miku", TextContains, "miku"},
		{"*miku", TextEndsWith, "miku"},
		{"miku*", TextStartsWith, "miku"},
		{"*miku*", TextContains, "miku"},
	}
	for _, c := range cases {
		got := ParseTextQuery(c.in)
		assert.Equal(t, c.kind, got.Kind, c.in)
		assert.Equal(t, c.text, got.Text, c.in)
	}
}

func TestTextQueryMatch(t *testing.T) {
	assert.True(t, ParseTextQuery("*miku").Match("hatsune_miku"))
	assert.False(t, ParseTextQuery("*miku").Match("mikuhatsune"))

	assert.True(t, ParseTextQuery("hatsune*").Match("hatsune_miku"))
	assert.False(t, ParseTextQuery("hatsune*").Match("vocaloid_hatsune"))

	assert.True(t, ParseTextQuery("tsune_mi").Match("hatsune_miku"))
}
