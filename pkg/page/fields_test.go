package page

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribeContent_IntrospectsShape(t *testing.T) {
	c := Content{
		"headline":   "Big Title",
		"body":       "Long text",
		"paragraphs": []string{"one", "two"},
		"weird":      42, // not a supported shape, skipped
	}

	fields := DescribeContent(c)
	require.Len(t, fields, 3)

	byKey := make(map[string]FieldDescriptor)
	for _, f := range fields {
		byKey[f.Key] = f
	}

	require.Equal(t, FieldMultiline, byKey["body"].Kind)
	require.Equal(t, FieldText, byKey["headline"].Kind)
	require.Equal(t, "Big Title", byKey["headline"].Value)
	require.Equal(t, FieldList, byKey["paragraphs"].Kind)
	require.Equal(t, []string{"one", "two"}, byKey["paragraphs"].Items)
}

func TestDescribeContent_UnknownStringKeyIsGeneric(t *testing.T) {
	fields := DescribeContent(Content{"neverSeenBefore": "value"})
	require.Len(t, fields, 1)
	require.Equal(t, FieldText, fields[0].Kind)
	require.Equal(t, "neverSeenBefore", fields[0].Key)
}

func TestDescribeContent_SurvivesJSONRoundTrip(t *testing.T) {
	// JSON decoding turns []string into []any; descriptors must not care.
	raw, err := json.Marshal(Content{"paragraphs": []string{"a", "b"}})
	require.NoError(t, err)

	var decoded Content
	require.NoError(t, json.Unmarshal(raw, &decoded))

	fields := DescribeContent(decoded)
	require.Len(t, fields, 1)
	require.Equal(t, FieldList, fields[0].Kind)
	require.Equal(t, []string{"a", "b"}, fields[0].Items)
}

func TestDocumentJSON_SectionsNeverNull(t *testing.T) {
	raw, err := json.Marshal(Document{ID: "empty"})
	require.NoError(t, err)
	require.Contains(t, string(raw), `"sections":[]`)
}
