package driven

import "context"

// GenerateOptions bounds a generation call.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// Completion is the provider's answer plus its reported usage.
type Completion struct {
	// Text is the generated text.
	Text string

	// TokensUsed is the total token usage reported by the provider.
	TokensUsed int
}

// LLMService produces bounded text completions from the external
// generation provider.
type LLMService interface {
	// Complete generates a response to userPrompt under systemPrompt.
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts GenerateOptions) (Completion, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
