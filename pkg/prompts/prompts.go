// Package prompts builds the payloads sent to the language model: the
// analysis instructions with the taxonomy rendered inline, and correction
// feedback for the self-correction loop.
package prompts

import (
	"fmt"
	"strings"

	"github.com/sentimenthub/sentimenthub/pkg/review"
	"github.com/sentimenthub/sentimenthub/pkg/taxonomy"
)

const systemTemplate = `You are an expert in customer feedback analysis for debt settlement services.

Your task is to analyze customer reviews and classify them according to the following taxonomy:

%s

IMPORTANT RULES:
1. Sentiment must be ONLY "Positive", "Negative", or "Neutral" - these are NOT categories
2. Each review can have multiple labels (category, subcategory, sentiment triplets)
3. You MUST ONLY use the exact categories and subcategories listed above
4. DO NOT use "Positive", "Negative", or "Neutral" as categories - they are sentiments only
5. Determine sentiment SPECIFICALLY for each category/subcategory pair, NOT for the overall review
6. Use "Neutral" when the sentiment is neither clearly positive nor negative
7. If the review has no clear topics, return an empty labels array

%s`

const formatInstructions = `Respond with a single JSON object and nothing else, in this shape:

{
  "language": "<two-letter language code of the review>",
  "confidence": <overall confidence between 0 and 1>,
  "labels": [
    {
      "category": "<main category>",
      "subcategory": "<subcategory>",
      "sentiment": "Positive" | "Negative" | "Neutral",
      "confidence": <confidence for this label between 0 and 1>,
      "snippet": "<short quote from the review supporting this label>"
    }
  ]
}`

// System renders the system prompt for review analysis against the registry.
func System(reg *taxonomy.Registry) string {
	return fmt.Sprintf(systemTemplate, FormatTaxonomy(reg), formatInstructions)
}

// Review renders one review text as the user message.
func Review(text string) string {
	return fmt.Sprintf("Review to classify:\n\n%s", text)
}

// FormatTaxonomy renders the registry as prompt text, listing subcategories
// per category and sentiment.
func FormatTaxonomy(reg *taxonomy.Registry) string {
	var b strings.Builder

	b.WriteString("For review classification, use ONLY the following taxonomy:\n\n")
	b.WriteString("MAIN CATEGORIES:\n")
	for _, category := range reg.Categories() {
		fmt.Fprintf(&b, "- %s\n", category)
	}

	b.WriteString("\nFOR EACH MAIN CATEGORY, USE ONLY THESE SUBCATEGORIES:\n")
	for _, category := range reg.Categories() {
		fmt.Fprintf(&b, "\n%s:\n", category)
		for _, sentiment := range taxonomy.Sentiments {
			subs := reg.SubcategoriesFor(category, sentiment)
			if len(subs) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %s sentiment subcategories:\n", sentiment)
			for _, sub := range subs {
				fmt.Fprintf(&b, "  - %s\n", sub)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// Correction renders validation issues as feedback for a retry. The message
// follows the assistant's previous (rejected) response in the conversation.
func Correction(issues []review.ValidationIssue) string {
	var b strings.Builder

	b.WriteString("Your previous response could not be accepted for the following reasons:\n\n")
	for i, issue := range issues {
		fmt.Fprintf(&b, "%d. %s\n", i+1, issue.Message)
	}
	b.WriteString("\nProduce a corrected response. Use only categories and subcategories from the taxonomy, ")
	b.WriteString("exactly as spelled there, and respond with a single JSON object in the required shape.")

	return b.String()
}
