package extraction

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sentimenthub/sentimenthub/pkg/review"
)

// Extractor classifies one review. Satisfied by *Orchestrator.
type Extractor interface {
	Extract(ctx context.Context, text string) review.ProcessingResult
}

// Processor fans reviews out across an extractor with bounded concurrency.
type Processor struct {
	extractor   Extractor
	concurrency int
}

// NewProcessor builds a processor. Concurrency values below 1 are treated
// as 1.
func NewProcessor(extractor Extractor, concurrency int) *Processor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Processor{extractor: extractor, concurrency: concurrency}
}

// ProcessAll classifies every review and returns one result per input, in
// input order. An individual review's failure never affects the others; a
// cancelled context materializes Cancelled results for reviews that have
// not completed.
func (p *Processor) ProcessAll(ctx context.Context, texts []string) []review.ProcessingResult {
	results := make([]review.ProcessingResult, len(texts))

	var g errgroup.Group
	g.SetLimit(p.concurrency)

	for i, text := range texts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = review.Fail(review.FailureCancelled, err.Error(), 0)
				return nil
			}
			results[i] = p.extractor.Extract(ctx, text)
			return nil
		})
	}

	// Workers never return errors; failures are materialized per slot.
	_ = g.Wait()

	return results
}
