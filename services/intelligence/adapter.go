package intelligence

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoProviderAvailable is returned by provider selection when the
// configured set is empty or every provider is marked unavailable.
var ErrNoProviderAvailable = errors.New("no AI provider available")

// ProviderError wraps a vendor-side failure (network, auth, quota, timeout).
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ProviderAdapter is the uniform interface over one externally-hosted
// text-generation backend. Adapters map the call onto the vendor's
// chat-completion shape and do not retry; retry policy belongs to the
// plan generation service.
type ProviderAdapter interface {
	// Name identifies the provider ("openai", "anthropic", "gemini").
	Name() string
	// Model returns the model identifier this adapter sends to the vendor.
	Model() string
	// Generate sends the system and user prompts with the given sampling
	// parameters and returns the raw text response. Failures are returned
	// as *ProviderError.
	Generate(ctx context.Context, prompt, systemPrompt string, temperature float64, maxTokens int) (string, error)
}
