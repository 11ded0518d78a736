// Package llm defines the language-model capability the extraction pipeline
// consumes. Provider packages adapt vendor SDKs to this interface; the
// pipeline never sees a vendor type.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the provider produces no content.
var ErrEmptyResponse = errors.New("empty response from provider")

// LanguageModel is implemented by every provider.
type LanguageModel interface {
	// Generate produces a complete response (blocking).
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// ID returns the unique identifier for this model.
	ID() string
}

// MessageRole defines the role of a message sender.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is a single message in a conversation.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// GenerateRequest contains all parameters for generating text.
type GenerateRequest struct {
	// Messages is the conversation so far.
	Messages []Message `json:"messages"`

	// System is an optional system prompt.
	System string `json:"system,omitempty"`

	// Temperature controls randomness.
	Temperature float32 `json:"temperature,omitempty"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens,omitempty"`
}

// Usage reports token consumption for one request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// GenerateResponse represents a response from text generation.
type GenerateResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}
