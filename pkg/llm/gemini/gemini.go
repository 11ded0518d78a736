// Package gemini adapts Google Gemini to the llm.LanguageModel interface.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/sentimenthub/sentimenthub/pkg/llm"
)

// Provider implements llm.LanguageModel for Google Gemini.
type Provider struct {
	client *genai.Client
	model  string
}

// New creates a new Gemini provider.
func New(ctx context.Context, apiKey, model string) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Provider{client: client, model: model}, nil
}

// Generate implements llm.LanguageModel.
func (p *Provider) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	config := &genai.GenerateContentConfig{}

	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(req.Temperature)
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(req.System)},
		}
	}

	contents := p.convertMessages(req.Messages)

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini api error: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, llm.ErrEmptyResponse
	}

	response := &llm.GenerateResponse{Model: p.model}

	if resp.UsageMetadata != nil {
		response.Usage = llm.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	if candidate := resp.Candidates[0]; candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			response.Content += part.Text
		}
	}

	if response.Content == "" {
		return nil, llm.ErrEmptyResponse
	}

	return response, nil
}

// ID returns the model identifier.
func (p *Provider) ID() string {
	return fmt.Sprintf("gemini:%s", p.model)
}

// convertMessages converts llm messages to Gemini content format. Gemini
// uses "user" and "model" roles.
func (p *Provider) convertMessages(messages []llm.Message) []*genai.Content {
	var result []*genai.Content

	for _, msg := range messages {
		role := "user"
		if msg.Role == llm.RoleAssistant {
			role = "model"
		}

		result = append(result, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
		})
	}

	return result
}
