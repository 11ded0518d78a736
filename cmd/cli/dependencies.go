package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/sentimenthub/sentimenthub/pkg/extraction"
	"github.com/sentimenthub/sentimenthub/pkg/llm"
	"github.com/sentimenthub/sentimenthub/pkg/llm/anthropic"
	"github.com/sentimenthub/sentimenthub/pkg/llm/gemini"
	"github.com/sentimenthub/sentimenthub/pkg/llm/openai"
	"github.com/sentimenthub/sentimenthub/pkg/taxonomy"
)

// buildLanguageModel constructs the provider selected by the config.
func buildLanguageModel(ctx context.Context, config *Config) (llm.LanguageModel, error) {
	switch config.Provider {
	case "gemini":
		model, err := gemini.New(ctx, config.GeminiAPIKey, config.Model)
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		return model, nil
	case "openai":
		return openai.New(config.OpenAIAPIKey, config.Model), nil
	case "anthropic":
		return anthropic.New(config.AnthropicAPIKey, config.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", config.Provider)
	}
}

// loadRegistry returns the built-in taxonomy, or the one at TaxonomyPath
// when configured.
func loadRegistry(config *Config) (*taxonomy.Registry, error) {
	if config.TaxonomyPath == "" {
		return taxonomy.Default(), nil
	}

	f, err := os.Open(config.TaxonomyPath)
	if err != nil {
		return nil, fmt.Errorf("opening taxonomy file: %w", err)
	}
	defer f.Close()

	registry, err := taxonomy.Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy from %s: %w", config.TaxonomyPath, err)
	}

	return registry, nil
}

// buildProcessor wires the model, registry and options into a batch processor.
func buildProcessor(model llm.LanguageModel, registry *taxonomy.Registry, config *Config) *extraction.Processor {
	orchestrator := extraction.NewOrchestrator(model, registry, extraction.Options{
		MaxAttempts:         config.MaxAttempts,
		ConfidenceThreshold: config.ConfidenceThreshold,
		Temperature:         config.Temperature,
		MaxOutputTokens:     config.MaxOutputTokens,
	})

	return extraction.NewProcessor(orchestrator, config.Concurrency)
}
