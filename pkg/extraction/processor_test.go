package extraction

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentimenthub/sentimenthub/pkg/review"
)

// funcExtractor adapts a function to the Extractor interface.
type funcExtractor func(ctx context.Context, text string) review.ProcessingResult

func (f funcExtractor) Extract(ctx context.Context, text string) review.ProcessingResult {
	return f(ctx, text)
}

func successResult(text string) review.ProcessingResult {
	return review.Success(review.Analysis{Language: "en", Labels: []review.Label{
		{Category: "Miscellaneous", Subcategory: "Other", Sentiment: "Neutral", Snippet: text},
	}}, 1)
}

func TestProcessAll_PreservesInputOrder(t *testing.T) {
	extractor := funcExtractor(func(_ context.Context, text string) review.ProcessingResult {
		// Finishing order is scrambled on purpose; slot order must not be.
		time.Sleep(time.Duration(len(text)%3) * time.Millisecond)
		return successResult(text)
	})

	p := NewProcessor(extractor, 4)

	texts := make([]string, 10)
	for i := range texts {
		texts[i] = fmt.Sprintf("review number %d", i)
	}

	results := p.ProcessAll(context.Background(), texts)

	require.Len(t, results, 10)
	for i, result := range results {
		require.True(t, result.Succeeded(), "result %d", i)
		assert.Equal(t, texts[i], result.Analysis.Labels[0].Snippet)
	}
}

func TestProcessAll_IsolatesFailures(t *testing.T) {
	extractor := funcExtractor(func(_ context.Context, text string) review.ProcessingResult {
		if text == "review number 5" {
			return review.Fail(review.FailureModelUnavailable, "connection refused", 1)
		}
		return successResult(text)
	})

	p := NewProcessor(extractor, 3)

	texts := make([]string, 10)
	for i := range texts {
		texts[i] = fmt.Sprintf("review number %d", i)
	}

	results := p.ProcessAll(context.Background(), texts)

	require.Len(t, results, 10)
	for i, result := range results {
		if i == 5 {
			require.False(t, result.Succeeded())
			assert.Equal(t, review.FailureModelUnavailable, result.Failure.Kind)
			continue
		}
		assert.True(t, result.Succeeded(), "result %d", i)
	}
}

func TestProcessAll_RespectsConcurrencyLimit(t *testing.T) {
	const limit = 2

	var inFlight, peak atomic.Int64

	extractor := funcExtractor(func(_ context.Context, text string) review.ProcessingResult {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)

		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}

		time.Sleep(5 * time.Millisecond)
		return successResult(text)
	})

	p := NewProcessor(extractor, limit)

	texts := make([]string, 8)
	for i := range texts {
		texts[i] = fmt.Sprintf("review number %d", i)
	}

	results := p.ProcessAll(context.Background(), texts)

	require.Len(t, results, 8)
	assert.LessOrEqual(t, peak.Load(), int64(limit))
}

func TestProcessAll_CancellationMaterializesResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var once sync.Once

	extractor := funcExtractor(func(ctx context.Context, text string) review.ProcessingResult {
		// The first extraction completes and cancels everything behind it.
		var completed bool
		once.Do(func() {
			completed = true
			cancel()
		})
		if completed {
			return successResult(text)
		}
		return review.Fail(review.FailureCancelled, ctx.Err().Error(), 0)
	})

	p := NewProcessor(extractor, 1)

	results := p.ProcessAll(ctx, []string{"first", "second", "third"})

	require.Len(t, results, 3)
	assert.True(t, results[0].Succeeded())
	for _, result := range results[1:] {
		require.False(t, result.Succeeded())
		assert.Equal(t, review.FailureCancelled, result.Failure.Kind)
	}
}

func TestProcessAll_EmptyInput(t *testing.T) {
	p := NewProcessor(funcExtractor(func(_ context.Context, text string) review.ProcessingResult {
		return successResult(text)
	}), 4)

	results := p.ProcessAll(context.Background(), nil)

	assert.Empty(t, results)
}
