package booru

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingParseAndString(t *testing.T) {
	r, ok := ParseRating("Questionable")
	assert.True(t, ok)
	assert.Equal(t, RatingQuestionable, r)
	assert.Equal(t, "questionable", r.String())

	r, ok = ParseRating("e")
	assert.True(t, ok)
	assert.Equal(t, RatingExplicit, r)

	_, ok = ParseRating("bogus")
	assert.False(t, ok)
}

func TestFileExtParseAndString(t *testing.T) {
	e, ok := ParseFileExt("WEBM")
	assert.True(t, ok)
	assert.Equal(t, ExtWEBM, e)
	assert.Equal(t, "webm", e.String())

	_, ok = ParseFileExt("mov")
	assert.False(t, ok)
}

func TestStatusFromFlagsPriority(t *testing.T) {
	assert.Equal(t, StatusBanned, StatusFromFlags(true, true, true, true))
	assert.Equal(t, StatusDeleted, StatusFromFlags(false, true, true, true))
	assert.Equal(t, StatusFlagged, StatusFromFlags(false, false, true, true))
	assert.Equal(t, StatusPending, StatusFromFlags(false, false, false, true))
	assert.Equal(t, StatusActive, StatusFromFlags(false, false, false, false))
}

func TestOptionalIDParsing(t *testing.T) {
	none, ok := ParseOptionalID("")
	assert.True(t, ok)
	assert.Equal(t, NoID, none)

	none, ok = ParseOptionalID("None")
	assert.True(t, ok)
	assert.Equal(t, NoID, none)

	some, ok := ParseOptionalID("42")
	assert.True(t, ok)
	assert.Equal(t, SomeID(42), some)
	assert.Equal(t, "42", some.String())
	assert.Equal(t, "none", NoID.String())

	_, ok = ParseOptionalID("nope")
	assert.False(t, ok)
}

func TestAspectRatioParsing(t *testing.T) {
	r, ok := ParseAspectRatio("16/9")
	assert.True(t, ok)
	assert.InDelta(t, 1.777, r.Float(), 0.001)

	r, ok = ParseAspectRatio("1.5")
	assert.True(t, ok)
	assert.InDelta(t, 1.5, r.Float(), 0.001)

	_, ok = ParseAspectRatio("16/0")
	assert.False(t, ok)
}

func TestMPixelParsingClampsRange(t *testing.T) {
	m, ok := ParseMPixel("2.5")
	assert.True(t, ok)
	assert.InDelta(t, 2.5, m.Float(), 0.0001)

	m, ok = ParseMPixel("-5")
	assert.True(t, ok)
	assert.Equal(t, MPixel(0), m)

	m, ok = ParseMPixel("5000")
	assert.True(t, ok)
	assert.Equal(t, MPixel(1000*1e6), m)
}

func TestParseUint32AndInt64(t *testing.T) {
	v, ok := ParseUint32("42")
	assert.True(t, ok)
	assert.Equal(t, uint32(42), v)

	_, ok = ParseUint32("-1")
	assert.False(t, ok)

	i, ok := ParseInt64("-42")
	assert.True(t, ok)
	assert.Equal(t, int64(-42), i)
}
