// Package review defines the value objects exchanged by the classification
// pipeline: a Label is one (category, subcategory, sentiment) finding, an
// Analysis is the full structured result for one review, and a
// ProcessingResult is the typed success/failure outcome of an extraction.
// None of these are mutated after construction.
package review

import "fmt"

// Label is one classified finding within a review.
type Label struct {
	Category    string   `json:"category"`
	Subcategory string   `json:"subcategory"`
	Sentiment   string   `json:"sentiment"`
	Confidence  *float64 `json:"confidence,omitempty"`
	Snippet     string   `json:"snippet,omitempty"`
}

func (l Label) String() string {
	return fmt.Sprintf("(%s, %s, %s)", l.Category, l.Subcategory, l.Sentiment)
}

// Analysis is the structured output for one review. Labels keep extraction
// order. Confidence is the model's overall confidence for the review; nil
// means the model declared none and no per-label confidences were available
// to derive it from.
type Analysis struct {
	Labels     []Label           `json:"labels"`
	Language   string            `json:"language,omitempty"`
	Confidence *float64          `json:"confidence,omitempty"`
	Issues     []ValidationIssue `json:"issues,omitempty"`
}

// IssueKind classifies one validation problem.
type IssueKind string

const (
	IssueUnknownCategory          IssueKind = "unknown_category"
	IssueUnknownSubcategory       IssueKind = "unknown_subcategory"
	IssueInvalidSentiment         IssueKind = "invalid_sentiment"
	IssueDuplicateLabel           IssueKind = "duplicate_label"
	IssueConfidenceBelowThreshold IssueKind = "confidence_below_threshold"
	IssueMalformedResponse        IssueKind = "malformed_response"
)

// Hard reports whether the issue forces rejection of the candidate.
// Duplicate removal and low overall confidence are reported but recoverable.
func (k IssueKind) Hard() bool {
	switch k {
	case IssueUnknownCategory, IssueUnknownSubcategory, IssueInvalidSentiment, IssueMalformedResponse:
		return true
	default:
		return false
	}
}

// ValidationIssue describes one problem found in a candidate analysis. The
// message is written to double as correction feedback for the model.
type ValidationIssue struct {
	Kind    IssueKind `json:"kind"`
	Label   *Label    `json:"label,omitempty"`
	Message string    `json:"message"`
}

// FailureKind classifies the terminal failure of one extraction.
type FailureKind string

const (
	FailureValidation       FailureKind = "validation_failed"
	FailureModelUnavailable FailureKind = "model_unavailable"
	FailureCancelled        FailureKind = "cancelled"
)

// Failure carries the reason an extraction gave up.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

// ProcessingResult is the outcome for one input review. Exactly one of
// Analysis and Failure is set. Attempts counts model requests made,
// including the initial one.
type ProcessingResult struct {
	Analysis *Analysis `json:"analysis,omitempty"`
	Failure  *Failure  `json:"failure,omitempty"`
	Attempts int       `json:"attempts"`
}

// Succeeded reports whether the extraction produced an accepted analysis.
func (r ProcessingResult) Succeeded() bool {
	return r.Analysis != nil
}

// Success builds a successful result.
func Success(a Analysis, attempts int) ProcessingResult {
	return ProcessingResult{Analysis: &a, Attempts: attempts}
}

// Fail builds a failed result.
func Fail(kind FailureKind, message string, attempts int) ProcessingResult {
	return ProcessingResult{Failure: &Failure{Kind: kind, Message: message}, Attempts: attempts}
}
