package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalSortsKeys(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"zebra": int64(1),
		"alpha": int64(2),
		"mango": int64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"mango":3,"zebra":1}`, string(data))
}

func TestMarshalCanonicalNoHTMLEscaping(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{"expr": "a < b && c > d"})
	require.NoError(t, err)
	assert.Equal(t, `{"expr":"a < b && c > d"}`, string(data))
}

func TestMarshalCanonicalRejectsFloats(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"score": 0.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")
}

func TestMarshalCanonicalRejectsNull(t *testing.T) {
	_, err := MarshalCanonical(map[string]any{"missing": nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "null is forbidden")
}

func TestMarshalCanonicalNestedObjects(t *testing.T) {
	data, err := MarshalCanonical(map[string]any{
		"outer": map[string]any{"b": true, "a": "x"},
		"list":  []any{int64(1), "two"},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"list":[1,"two"],"outer":{"a":"x","b":true}}`, string(data))
}

func TestMarshalCanonicalStringSlice(t *testing.T) {
	data, err := MarshalCanonical([]string{"b", "a"})
	require.NoError(t, err)
	// []string is a convenience for callers; element order is preserved
	assert.Equal(t, `["b","a"]`, string(data))
}

func TestMarshalCanonicalLineSeparators(t *testing.T) {
	// U+2028 must appear literally, not as   (RFC 8785)
	data, err := MarshalCanonical("a b")
	require.NoError(t, err)
	assert.Equal(t, "\"a b\"", string(data))

	// A literal backslash followed by "u2028" text must stay escaped
	data, err = MarshalCanonical(`a\u2028b`)
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(data))
}

func TestMarshalCanonicalUTF16KeyOrder(t *testing.T) {
	// U+1D306 (TETRAGRAM, surrogate pair starting 0xD834) sorts before
	// U+FF01 (FULLWIDTH EXCLAMATION, one UTF-16 unit 0xFF01) under UTF-16
	// ordering, but after it under UTF-8 byte ordering (F0 9D.. vs EF BC..).
	data, err := MarshalCanonical(map[string]any{
		"\U0001D306": int64(1),
		"！":     int64(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U0001D306\":1,\"！\":2}", string(data))
}

func TestReportHashDeterminism(t *testing.T) {
	payload := map[string]any{
		"check":    "dupes",
		"findings": int64(3),
		"files":    []string{"a.go", "b.go"},
	}

	h1, err := ReportHash(payload)
	require.NoError(t, err)
	h2, err := ReportHash(payload)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
}

func TestReportHashRejectsFloatPayload(t *testing.T) {
	_, err := ReportHash(map[string]any{"ratio": 1.5})
	assert.Error(t, err)
}
