package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecordKey(t *testing.T) {
	typ, id, ok := ParseRecordKey("Article:12")
	assert.True(t, ok)
	assert.Equal(t, "Article", typ)
	assert.Equal(t, "12", id)

	typ, id, ok = ParseRecordKey("ReviewAssignment:3:41")
	assert.True(t, ok)
	assert.Equal(t, "ReviewAssignment", typ)
	assert.Equal(t, "41", id)

	for _, bad := range []string{"", "Article", ":12", "Article:", "   "} {
		_, _, ok := ParseRecordKey(bad)
		assert.False(t, ok, bad)
	}
}

func TestLocalID_RoundTrip(t *testing.T) {
	key := SourceRecordKey("Journal", 42)
	assert.Equal(t, "Journal:42", key)

	id, ok := LocalID(key)
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = LocalID("Journal:abc")
	assert.False(t, ok)
}

func TestReferenceKey(t *testing.T) {
	k, ok := referenceKey(map[string]any{TargetRecordKey: "Issue:3"})
	assert.True(t, ok)
	assert.Equal(t, "Issue:3", k)

	_, ok = referenceKey(map[string]any{"other": "x"})
	assert.False(t, ok)

	k, ok = referenceKey("File:9")
	assert.True(t, ok)
	assert.Equal(t, "File:9", k)
}

func TestReferenceIDAcceptsBareIdentifiers(t *testing.T) {
	id, ok := referenceID(map[string]any{TargetRecordKey: "Issue:3"})
	assert.True(t, ok)
	assert.Equal(t, uint(3), id)

	id, ok = referenceID(7)
	assert.True(t, ok)
	assert.Equal(t, uint(7), id)

	_, ok = referenceID(nil)
	assert.False(t, ok)
	_, ok = referenceID("no-colon")
	assert.False(t, ok)
}
