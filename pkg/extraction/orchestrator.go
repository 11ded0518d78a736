// Package extraction turns raw review text into validated analyses. The
// Orchestrator runs the request/parse/validate loop for one review with
// bounded self-correction retries; the Processor fans a batch of reviews out
// across the orchestrator with bounded concurrency.
package extraction

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sentimenthub/sentimenthub/pkg/llm"
	"github.com/sentimenthub/sentimenthub/pkg/prompts"
	"github.com/sentimenthub/sentimenthub/pkg/review"
	"github.com/sentimenthub/sentimenthub/pkg/taxonomy"
	"github.com/sentimenthub/sentimenthub/pkg/validation"
)

// Options configure one extraction.
type Options struct {
	// MaxAttempts is the total number of model requests allowed per review,
	// the initial request included. Values below 1 are treated as 1.
	MaxAttempts int

	// ConfidenceThreshold is the overall confidence below which a soft
	// ConfidenceBelowThreshold issue is attached to the result.
	ConfidenceThreshold float64

	// Temperature and MaxOutputTokens are passed through to the model.
	Temperature     float32
	MaxOutputTokens int
}

// Orchestrator extracts labels for single reviews. It holds no state across
// calls; the registry it validates against is read-only.
type Orchestrator struct {
	model     llm.LanguageModel
	registry  *taxonomy.Registry
	validator *validation.Validator
	system    string
	opts      Options
}

// NewOrchestrator builds an orchestrator over one model and registry.
func NewOrchestrator(model llm.LanguageModel, registry *taxonomy.Registry, opts Options) *Orchestrator {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	return &Orchestrator{
		model:     model,
		registry:  registry,
		validator: validation.New(registry),
		system:    prompts.System(registry),
		opts:      opts,
	}
}

// Extract classifies one review. All failure modes are returned as typed
// results; Extract never panics and never returns an error value.
func (o *Orchestrator) Extract(ctx context.Context, text string) review.ProcessingResult {
	extractionID := uuid.New().String()

	messages := []llm.Message{
		{Role: llm.RoleUser, Content: prompts.Review(text)},
	}

	var lastIssues []review.ValidationIssue

	for attempt := 1; attempt <= o.opts.MaxAttempts; attempt++ {
		resp, err := o.model.Generate(ctx, llm.GenerateRequest{
			Messages:    messages,
			System:      o.system,
			Temperature: o.opts.Temperature,
			MaxTokens:   o.opts.MaxOutputTokens,
		})
		if err != nil {
			if ctx.Err() != nil {
				return review.Fail(review.FailureCancelled, ctx.Err().Error(), attempt)
			}
			log.Error().
				Str("extraction_id", extractionID).
				Int("attempt", attempt).
				Err(err).
				Msg("Model request failed")
			return review.Fail(review.FailureModelUnavailable, err.Error(), attempt)
		}

		var issues []review.ValidationIssue

		candidate, perr := review.Parse(resp.Content)
		if perr != nil {
			issues = []review.ValidationIssue{{
				Kind:    review.IssueMalformedResponse,
				Message: perr.Error(),
			}}
		} else {
			outcome := o.validator.Validate(candidate, o.opts.ConfidenceThreshold)
			if outcome.Accepted {
				log.Debug().
					Str("extraction_id", extractionID).
					Int("attempt", attempt).
					Int("labels", len(outcome.Analysis.Labels)).
					Msg("Analysis accepted")
				return review.Success(outcome.Analysis, attempt)
			}
			issues = outcome.Issues
		}

		lastIssues = issues
		log.Warn().
			Str("extraction_id", extractionID).
			Int("attempt", attempt).
			Str("issues", joinIssueMessages(issues)).
			Msg("Candidate rejected")

		if attempt < o.opts.MaxAttempts {
			messages = append(messages,
				llm.Message{Role: llm.RoleAssistant, Content: resp.Content},
				llm.Message{Role: llm.RoleUser, Content: prompts.Correction(issues)},
			)
		}
	}

	return review.Fail(review.FailureValidation, joinIssueMessages(lastIssues), o.opts.MaxAttempts)
}

func joinIssueMessages(issues []review.ValidationIssue) string {
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = issue.Message
	}
	return strings.Join(parts, "; ")
}
