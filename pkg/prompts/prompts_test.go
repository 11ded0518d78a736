package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sentimenthub/sentimenthub/pkg/review"
	"github.com/sentimenthub/sentimenthub/pkg/taxonomy"
)

func TestFormatTaxonomy(t *testing.T) {
	out := FormatTaxonomy(taxonomy.Default())

	for _, category := range taxonomy.Default().Categories() {
		assert.Contains(t, out, category)
	}
	assert.Contains(t, out, "Negative sentiment subcategories:")
	assert.Contains(t, out, "- Progress Pace")
}

func TestSystem_IncludesFormatInstructions(t *testing.T) {
	out := System(taxonomy.Default())

	assert.Contains(t, out, `"labels"`)
	assert.Contains(t, out, "single JSON object")
	assert.Contains(t, out, "Miscellaneous")
}

func TestCorrection_NumbersIssues(t *testing.T) {
	out := Correction([]review.ValidationIssue{
		{Kind: review.IssueUnknownCategory, Message: `category "Shipping" is not in the taxonomy`},
		{Kind: review.IssueInvalidSentiment, Message: `sentiment "Mixed" is not one of Positive, Negative, Neutral`},
	})

	assert.Contains(t, out, `1. category "Shipping" is not in the taxonomy`)
	assert.Contains(t, out, `2. sentiment "Mixed"`)
	assert.Contains(t, out, "corrected response")
}
