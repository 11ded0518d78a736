// Package validation checks candidate analyses against the taxonomy
// registry. It normalizes what it can (whitespace, casing, sentiment
// synonyms) and records a typed issue for everything it cannot.
package validation

import (
	"fmt"
	"strings"

	"github.com/sentimenthub/sentimenthub/pkg/review"
	"github.com/sentimenthub/sentimenthub/pkg/taxonomy"
)

// sentimentSynonyms maps common model variations onto canonical sentiment
// values. Lookups are lowercase.
var sentimentSynonyms = map[string]string{
	"positive":  taxonomy.SentimentPositive,
	"pos":       taxonomy.SentimentPositive,
	"good":      taxonomy.SentimentPositive,
	"favorable": taxonomy.SentimentPositive,

	"negative":    taxonomy.SentimentNegative,
	"neg":         taxonomy.SentimentNegative,
	"bad":         taxonomy.SentimentNegative,
	"unfavorable": taxonomy.SentimentNegative,

	"neutral":  taxonomy.SentimentNeutral,
	"neither":  taxonomy.SentimentNeutral,
	"mixed":    taxonomy.SentimentNeutral,
	"balanced": taxonomy.SentimentNeutral,
}

// Outcome is the result of validating one candidate analysis. When Accepted
// is true, Analysis holds the normalized candidate (casing corrected,
// duplicates removed) annotated with any soft issues. When it is false,
// Issues holds everything found, hard and soft.
type Outcome struct {
	Accepted bool
	Analysis review.Analysis
	Issues   []review.ValidationIssue
}

// HardIssues returns only the issues that forced rejection.
func (o Outcome) HardIssues() []review.ValidationIssue {
	var out []review.ValidationIssue
	for _, issue := range o.Issues {
		if issue.Kind.Hard() {
			out = append(out, issue)
		}
	}
	return out
}

// Validator validates candidates against one registry. It precomputes
// case-insensitive indexes so the registry itself stays exact-match only.
type Validator struct {
	registry *taxonomy.Registry
	catIndex map[string]string            // lowercase -> canonical category
	subIndex map[string]map[string]string // canonical category -> lowercase -> canonical subcategory
}

// New builds a validator over the registry.
func New(registry *taxonomy.Registry) *Validator {
	v := &Validator{
		registry: registry,
		catIndex: make(map[string]string),
		subIndex: make(map[string]map[string]string),
	}

	for _, cat := range registry.Categories() {
		v.catIndex[strings.ToLower(cat)] = cat

		subs, _ := registry.Subcategories(cat)
		idx := make(map[string]string, len(subs))
		for _, sub := range subs {
			idx[strings.ToLower(sub)] = sub
		}
		v.subIndex[cat] = idx
	}

	return v
}

// Validate runs the candidate through normalization, membership, sentiment,
// duplicate, and confidence checks, in the candidate's label order. The
// outcome is deterministic for a given candidate and registry.
func (v *Validator) Validate(candidate review.Analysis, confidenceThreshold float64) Outcome {
	var issues []review.ValidationIssue

	kept := make([]review.Label, 0, len(candidate.Labels))
	winners := make(map[string]int) // (category, subcategory) -> index in kept

	for i := range candidate.Labels {
		normalized, labelIssues := v.normalizeLabel(candidate.Labels[i])
		if len(labelIssues) > 0 {
			issues = append(issues, labelIssues...)
			continue
		}

		key := normalized.Category + "\x00" + normalized.Subcategory
		if w, dup := winners[key]; dup {
			winner, dropped := resolveDuplicate(kept[w], normalized)
			kept[w] = winner
			issues = append(issues, duplicateIssue(dropped))
			continue
		}

		winners[key] = len(kept)
		kept = append(kept, normalized)
	}

	confidence := overallConfidence(candidate, kept)
	if confidence != nil && *confidence < confidenceThreshold {
		issues = append(issues, review.ValidationIssue{
			Kind: review.IssueConfidenceBelowThreshold,
			Message: fmt.Sprintf("overall confidence %.2f is below the threshold %.2f",
				*confidence, confidenceThreshold),
		})
	}

	for _, issue := range issues {
		if issue.Kind.Hard() {
			return Outcome{Accepted: false, Issues: issues}
		}
	}

	return Outcome{
		Accepted: true,
		Analysis: review.Analysis{
			Labels:     kept,
			Language:   candidate.Language,
			Confidence: confidence,
			Issues:     issues,
		},
		Issues: issues,
	}
}

// normalizeLabel trims and canonicalizes one label. Issues are returned
// instead of silently substituting values the model never produced.
func (v *Validator) normalizeLabel(label review.Label) (review.Label, []review.ValidationIssue) {
	var issues []review.ValidationIssue

	label.Category = strings.TrimSpace(label.Category)
	label.Subcategory = strings.TrimSpace(label.Subcategory)
	label.Sentiment = strings.TrimSpace(label.Sentiment)

	category, ok := v.catIndex[strings.ToLower(label.Category)]
	if !ok {
		issues = append(issues, review.ValidationIssue{
			Kind:    review.IssueUnknownCategory,
			Label:   &label,
			Message: fmt.Sprintf("category %q is not in the taxonomy; valid categories are: %s", label.Category, strings.Join(v.registry.Categories(), ", ")),
		})
		return label, issues
	}
	label.Category = category

	subcategory, ok := v.subIndex[category][strings.ToLower(label.Subcategory)]
	if !ok {
		valid, _ := v.registry.Subcategories(category)
		issues = append(issues, review.ValidationIssue{
			Kind:    review.IssueUnknownSubcategory,
			Label:   &label,
			Message: fmt.Sprintf("subcategory %q is not valid under %q; valid subcategories are: %s", label.Subcategory, category, strings.Join(valid, ", ")),
		})
		return label, issues
	}
	label.Subcategory = subcategory

	sentiment, ok := sentimentSynonyms[strings.ToLower(label.Sentiment)]
	if !ok || !v.registry.IsValidSentiment(sentiment) {
		issues = append(issues, review.ValidationIssue{
			Kind:    review.IssueInvalidSentiment,
			Label:   &label,
			Message: fmt.Sprintf("sentiment %q is not one of %s", label.Sentiment, strings.Join(taxonomy.Sentiments, ", ")),
		})
		return label, issues
	}
	label.Sentiment = sentiment

	return label, nil
}

// resolveDuplicate picks which of two labels with the same (category,
// subcategory) survives: the one with the strictly higher confidence, with
// the incumbent (earlier occurrence) winning when confidences are absent or
// tied. The winner keeps the incumbent's position.
func resolveDuplicate(incumbent, challenger review.Label) (kept, dropped review.Label) {
	if challengerWins(incumbent, challenger) {
		return challenger, incumbent
	}
	return incumbent, challenger
}

func challengerWins(incumbent, challenger review.Label) bool {
	if challenger.Confidence == nil {
		return false
	}
	if incumbent.Confidence == nil {
		return true
	}
	return *challenger.Confidence > *incumbent.Confidence
}

func duplicateIssue(dropped review.Label) review.ValidationIssue {
	label := dropped
	return review.ValidationIssue{
		Kind:    review.IssueDuplicateLabel,
		Label:   &label,
		Message: fmt.Sprintf("duplicate label %s dropped; only one label per category/subcategory pair is kept", label),
	}
}

// overallConfidence reuses the declared overall confidence or derives the
// mean of the per-label confidences. Nil means no confidence information
// exists anywhere, in which case the threshold check is skipped.
func overallConfidence(candidate review.Analysis, kept []review.Label) *float64 {
	if candidate.Confidence != nil {
		c := *candidate.Confidence
		return &c
	}

	var sum float64
	var n int
	for _, label := range kept {
		if label.Confidence != nil {
			sum += *label.Confidence
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := sum / float64(n)
	return &mean
}
