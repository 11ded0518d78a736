package extraction

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentimenthub/sentimenthub/pkg/llm"
	"github.com/sentimenthub/sentimenthub/pkg/review"
	"github.com/sentimenthub/sentimenthub/pkg/taxonomy"
)

// scriptedModel returns canned responses in order and records every request.
type scriptedModel struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	requests  []llm.GenerateRequest
}

func (m *scriptedModel) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := len(m.requests)
	m.requests = append(m.requests, req)

	if call < len(m.errs) && m.errs[call] != nil {
		return nil, m.errs[call]
	}
	if call >= len(m.responses) {
		return nil, errors.New("scripted model exhausted")
	}
	return &llm.GenerateResponse{Content: m.responses[call], Model: "scripted"}, nil
}

func (m *scriptedModel) ID() string { return "scripted" }

const validResponse = `{
	"language": "en",
	"confidence": 0.9,
	"labels": [
		{"category": "Communication", "subcategory": "Delayed Responses", "sentiment": "Negative", "confidence": 0.9}
	]
}`

const invalidCategoryResponse = `{
	"labels": [
		{"category": "Shipping", "subcategory": "Delayed Responses", "sentiment": "Negative"}
	]
}`

func newTestOrchestrator(model llm.LanguageModel, maxAttempts int) *Orchestrator {
	return NewOrchestrator(model, taxonomy.Default(), Options{
		MaxAttempts:         maxAttempts,
		ConfidenceThreshold: 0.3,
	})
}

func TestExtract_AcceptedFirstAttempt(t *testing.T) {
	model := &scriptedModel{responses: []string{validResponse}}
	o := newTestOrchestrator(model, 2)

	result := o.Extract(context.Background(), "Nobody answers my calls.")

	require.True(t, result.Succeeded())
	assert.Equal(t, 1, result.Attempts)
	require.Len(t, result.Analysis.Labels, 1)
	assert.Equal(t, "Delayed Responses", result.Analysis.Labels[0].Subcategory)
	assert.Len(t, model.requests, 1)
}

func TestExtract_RejectedThenAccepted(t *testing.T) {
	model := &scriptedModel{responses: []string{invalidCategoryResponse, validResponse}}
	o := newTestOrchestrator(model, 2)

	result := o.Extract(context.Background(), "Nobody answers my calls.")

	require.True(t, result.Succeeded())
	assert.Equal(t, 2, result.Attempts)

	// The retry carries the rejected response and corrective feedback.
	require.Len(t, model.requests, 2)
	retry := model.requests[1]
	require.Len(t, retry.Messages, 3)
	assert.Equal(t, llm.RoleAssistant, retry.Messages[1].Role)
	assert.Contains(t, retry.Messages[1].Content, "Shipping")
	assert.Equal(t, llm.RoleUser, retry.Messages[2].Role)
	assert.Contains(t, retry.Messages[2].Content, `"Shipping"`)
	assert.Contains(t, retry.Messages[2].Content, "corrected response")
}

func TestExtract_ExhaustedRetries(t *testing.T) {
	model := &scriptedModel{responses: []string{invalidCategoryResponse, invalidCategoryResponse}}
	o := newTestOrchestrator(model, 2)

	result := o.Extract(context.Background(), "Nobody answers my calls.")

	require.False(t, result.Succeeded())
	assert.Equal(t, review.FailureValidation, result.Failure.Kind)
	assert.Equal(t, 2, result.Attempts)
	assert.Contains(t, result.Failure.Message, `"Shipping"`)
	assert.Len(t, model.requests, 2)
}

func TestExtract_MalformedResponseRetried(t *testing.T) {
	model := &scriptedModel{responses: []string{"I cannot classify this.", validResponse}}
	o := newTestOrchestrator(model, 2)

	result := o.Extract(context.Background(), "Nobody answers my calls.")

	require.True(t, result.Succeeded())
	assert.Equal(t, 2, result.Attempts)

	retry := model.requests[1]
	require.Len(t, retry.Messages, 3)
	assert.Contains(t, retry.Messages[2].Content, "no JSON object")
}

func TestExtract_ModelUnavailable(t *testing.T) {
	model := &scriptedModel{errs: []error{errors.New("connection refused")}}
	o := newTestOrchestrator(model, 3)

	result := o.Extract(context.Background(), "Nobody answers my calls.")

	require.False(t, result.Succeeded())
	assert.Equal(t, review.FailureModelUnavailable, result.Failure.Kind)
	assert.Equal(t, 1, result.Attempts)
	assert.Contains(t, result.Failure.Message, "connection refused")
	// Provider errors are not retried by this loop.
	assert.Len(t, model.requests, 1)
}

func TestExtract_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := &scriptedModel{errs: []error{context.Canceled}}
	o := newTestOrchestrator(model, 3)

	result := o.Extract(ctx, "Nobody answers my calls.")

	require.False(t, result.Succeeded())
	assert.Equal(t, review.FailureCancelled, result.Failure.Kind)
}

func TestExtract_SoftIssuesSurviveOnSuccess(t *testing.T) {
	lowConfidence := `{
		"confidence": 0.1,
		"labels": [
			{"category": "Miscellaneous", "subcategory": "Other", "sentiment": "Neutral"}
		]
	}`

	model := &scriptedModel{responses: []string{lowConfidence}}
	o := newTestOrchestrator(model, 2)

	result := o.Extract(context.Background(), "It was fine, I guess.")

	require.True(t, result.Succeeded())
	assert.Equal(t, 1, result.Attempts)
	require.Len(t, result.Analysis.Issues, 1)
	assert.Equal(t, review.IssueConfidenceBelowThreshold, result.Analysis.Issues[0].Kind)
	// Soft issues alone never trigger a retry.
	assert.Len(t, model.requests, 1)
}

func TestNewOrchestrator_ClampsMaxAttempts(t *testing.T) {
	model := &scriptedModel{responses: []string{invalidCategoryResponse}}
	o := NewOrchestrator(model, taxonomy.Default(), Options{MaxAttempts: 0})

	result := o.Extract(context.Background(), "text")

	assert.Equal(t, 1, result.Attempts)
	assert.Len(t, model.requests, 1)
}
