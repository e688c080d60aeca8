package port

import (
	"context"

	"munidocs/internal/domain"
)

// InvokeInput carries one chat-completion call.
type InvokeInput struct {
	Prompt      domain.Prompt
	Model       string
	Temperature float64
	MaxTokens   int
}

// LLMInvoker issues exactly one chat-completion call per Invoke. It never
// retries and never persists anything.
type LLMInvoker interface {
	Invoke(ctx context.Context, input InvokeInput) (*domain.GenerationResult, error)
	Provider() string
}
