package booru

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(RatingExplicit)
	assert.NoError(t, err)
	assert.Equal(t, `"explicit"`, string(b))

	var r Rating
	assert.NoError(t, json.Unmarshal([]byte(`"sensitive"`), &r))
	assert.Equal(t, RatingSensitive, r)

	assert.Error(t, json.Unmarshal([]byte(`"bogus"`), &r))
}

func TestFileExtJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(ExtWEBP)
	assert.NoError(t, err)
	assert.Equal(t, `"webp"`, string(b))

	var e FileExt
	assert.NoError(t, json.Unmarshal([]byte(`"gif"`), &e))
	assert.Equal(t, ExtGIF, e)
}

func TestStatusJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(StatusBanned)
	assert.NoError(t, err)
	assert.Equal(t, `"banned"`, string(b))

	var s Status
	assert.NoError(t, json.Unmarshal([]byte(`"active"`), &s))
	assert.Equal(t, StatusActive, s)
}

func TestOptionalIDJSONRoundTrip(t *testing.T) {
	b, err := json.Marshal(SomeID(7))
	assert.NoError(t, err)
	assert.Equal(t, `7`, string(b))

	b, err = json.Marshal(NoID)
	assert.NoError(t, err)
	assert.Equal(t, `null`, string(b))

	var o OptionalID
	assert.NoError(t, json.Unmarshal([]byte(`null`), &o))
	assert.Equal(t, NoID, o)

	assert.NoError(t, json.Unmarshal([]byte(`99`), &o))
	assert.Equal(t, SomeID(99), o)
}

func TestRawPostJSONFieldNames(t *testing.T) {
	raw := RawPost{PostID: 1, ParentID: NoID, IsPending: true, Rating: RatingGeneral, FileExt: ExtPNG}
	b, err := json.Marshal(raw)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(b, &decoded))
	assert.Contains(t, decoded, "post_id")
	assert.Contains(t, decoded, "is_pending")
	assert.Contains(t, decoded, "parent_id")
}
