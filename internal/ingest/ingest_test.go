package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edirooss/booru-index/internal/booru"
)

func TestOptionalIDNilAndValue(t *testing.T) {
	assert.Equal(t, booru.NoID, optionalID(nil))

	v := int64(42)
	assert.Equal(t, booru.SomeID(42), optionalID(&v))
}

func TestRawRowToRawPost(t *testing.T) {
	parentID := int64(5)
	row := rawRow{
		ID:         1,
		ParentID:   &parentID,
		UploaderID: 10,
		IsPending:  true,
		FileExt:    "png",
		Rating:     "general",
		TagString:  "a b c",
	}

	raw := row.toRawPost()
	assert.Equal(t, int64(1), raw.PostID)
	assert.Equal(t, booru.SomeID(5), raw.ParentID)
	assert.Equal(t, booru.NoID, raw.PixivID)
	assert.Equal(t, booru.ExtPNG, raw.FileExt)
	assert.Equal(t, booru.RatingGeneral, raw.Rating)
	assert.Equal(t, "a b c", raw.TagString)
}

func TestRawRowToRawPostInvalidEnumsDefault(t *testing.T) {
	row := rawRow{ID: 2, FileExt: "unknown-ext", Rating: "unknown-rating"}
	raw := row.toRawPost()
	// ParseFileExt/ParseRating fail silently here (the ingest boundary
	// trusts the upstream schema's CHECK constraints); the zero value is
	// the first declared enum member.
	assert.Equal(t, booru.ExtAVIF, raw.FileExt)
	assert.Equal(t, booru.RatingGeneral, raw.Rating)
}
