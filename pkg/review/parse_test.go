package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PlainJSON(t *testing.T) {
	raw := `{
		"language": "en",
		"confidence": 0.85,
		"labels": [
			{"category": "Communication", "subcategory": "Delayed Responses", "sentiment": "Negative", "confidence": 0.9},
			{"category": "Billing & Payments", "subcategory": "Fees Amount", "sentiment": "Neutral"}
		]
	}`

	a, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "en", a.Language)
	require.NotNil(t, a.Confidence)
	assert.InDelta(t, 0.85, *a.Confidence, 1e-9)
	require.Len(t, a.Labels, 2)
	assert.Equal(t, "Communication", a.Labels[0].Category)
	require.NotNil(t, a.Labels[0].Confidence)
	assert.InDelta(t, 0.9, *a.Labels[0].Confidence, 1e-9)
	assert.Nil(t, a.Labels[1].Confidence)
}

func TestParse_FencedJSON(t *testing.T) {
	raw := "Here is the classification you asked for:\n" +
		"```json\n" +
		`{"labels": [{"category": "Communication", "subcategory": "No Response", "sentiment": "Negative"}]}` +
		"\n```\n" +
		"Let me know if you need anything else."

	a, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, a.Labels, 1)
	assert.Equal(t, "No Response", a.Labels[0].Subcategory)
}

func TestParse_SurroundingProse(t *testing.T) {
	raw := `Sure! {"labels": [{"category": "Miscellaneous", "subcategory": "Other", "sentiment": "Neutral"}]} Done.`

	a, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, a.Labels, 1)
}

func TestParse_EmptyLabels(t *testing.T) {
	a, err := Parse(`{"labels": []}`)
	require.NoError(t, err)
	assert.Empty(t, a.Labels)
	assert.Nil(t, a.Confidence)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no JSON at all", "I am unable to classify this review."},
		{"invalid JSON", `{"labels": [}`},
		{"labels missing", `{"language": "en"}`},
		{"label missing sentiment", `{"labels": [{"category": "A", "subcategory": "B"}]}`},
		{"empty category", `{"labels": [{"category": "", "subcategory": "B", "sentiment": "Neutral"}]}`},
		{"sentiment wrong type", `{"labels": [{"category": "A", "subcategory": "B", "sentiment": 1}]}`},
		{"label confidence above one", `{"labels": [{"category": "A", "subcategory": "B", "sentiment": "Neutral", "confidence": 1.5}]}`},
		{"overall confidence negative", `{"confidence": -0.1, "labels": []}`},
		{"labels not an array", `{"labels": {"category": "A"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestExtractJSON_PrefersFencedBlock(t *testing.T) {
	raw := "{\"stray\": true}\n```json\n{\"labels\": []}\n```"

	doc, err := ExtractJSON(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"labels": []}`, doc)
}
