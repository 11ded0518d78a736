package controllers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/sentimenthub/sentimenthub/pkg/extraction"
	"github.com/sentimenthub/sentimenthub/pkg/review"
	"github.com/sentimenthub/sentimenthub/pkg/taxonomy"
)

// Request limits mirror what the service accepts per call.
const (
	maxReviewsPerRequest = 500
	maxReviewLength      = 5000
)

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Texts []string `json:"texts"`
}

// AnalyzedReview is one entry of the analyze response. Error is set when the
// extraction failed; Labels and friends are populated on success.
type AnalyzedReview struct {
	ReviewID   string                   `json:"review_id"`
	Text       string                   `json:"text"`
	Labels     []review.Label           `json:"labels"`
	Language   string                   `json:"language,omitempty"`
	Confidence *float64                 `json:"confidence,omitempty"`
	Issues     []review.ValidationIssue `json:"issues,omitempty"`
	Attempts   int                      `json:"attempts"`
	Error      string                   `json:"error,omitempty"`
}

// AnalyzeResponse is the body returned by POST /analyze.
type AnalyzeResponse struct {
	Reviews []AnalyzedReview `json:"reviews"`
}

// ReviewController handles review classification requests.
type ReviewController struct {
	processor *extraction.Processor
	registry  *taxonomy.Registry
}

type ReviewControllerDependencies struct {
	Processor *extraction.Processor
	Registry  *taxonomy.Registry
}

func NewReviewController(deps ReviewControllerDependencies) *ReviewController {
	return &ReviewController{
		processor: deps.Processor,
		registry:  deps.Registry,
	}
}

// AnalyzeReviews classifies a batch of review texts.
func (c *ReviewController) AnalyzeReviews(ctx fiber.Ctx) error {
	var req AnalyzeRequest

	if err := ctx.Bind().Body(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validateAnalyzeRequest(req); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}

	log.Info().Int("reviews", len(req.Texts)).Msg("Analyzing reviews")

	results := c.processor.ProcessAll(ctx.RequestCtx(), req.Texts)

	resp := AnalyzeResponse{Reviews: make([]AnalyzedReview, len(results))}
	for i, result := range results {
		resp.Reviews[i] = toAnalyzedReview(i, req.Texts[i], result)
	}

	return ctx.JSON(resp)
}

// GetTaxonomy returns the active taxonomy definition.
func (c *ReviewController) GetTaxonomy(ctx fiber.Ctx) error {
	categories := make([]fiber.Map, 0, len(c.registry.Categories()))
	for _, category := range c.registry.Categories() {
		subs, _ := c.registry.Subcategories(category)
		categories = append(categories, fiber.Map{
			"name":          category,
			"subcategories": subs,
		})
	}

	return ctx.JSON(fiber.Map{
		"sentiments": taxonomy.Sentiments,
		"categories": categories,
	})
}

func validateAnalyzeRequest(req AnalyzeRequest) error {
	if len(req.Texts) == 0 {
		return fmt.Errorf("texts must contain at least one review")
	}
	if len(req.Texts) > maxReviewsPerRequest {
		return fmt.Errorf("texts must contain at most %d reviews", maxReviewsPerRequest)
	}
	for i, text := range req.Texts {
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("review at index %d is empty or contains only whitespace", i)
		}
		if len(text) > maxReviewLength {
			return fmt.Errorf("review at index %d exceeds maximum length of %d characters", i, maxReviewLength)
		}
	}
	return nil
}

func toAnalyzedReview(index int, text string, result review.ProcessingResult) AnalyzedReview {
	out := AnalyzedReview{
		ReviewID: fmt.Sprintf("%d", 1000+index),
		Text:     text,
		Labels:   []review.Label{},
		Attempts: result.Attempts,
	}

	if result.Succeeded() {
		out.Labels = result.Analysis.Labels
		out.Language = result.Analysis.Language
		out.Confidence = result.Analysis.Confidence
		out.Issues = result.Analysis.Issues
		return out
	}

	out.Error = result.Failure.Error()
	return out
}
