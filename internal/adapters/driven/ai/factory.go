// Package ai builds the configured provider adapters for embeddings
// and generation.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/lectern-ai/lectern/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/lectern-ai/lectern/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/lectern-ai/lectern/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/lectern-ai/lectern/internal/adapters/driven/llm/ollama"
	openaillm "github.com/lectern-ai/lectern/internal/adapters/driven/llm/openai"
	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// Keys carries provider API keys. They come from the environment, not
// the config file.
type Keys struct {
	OpenAI    string
	Anthropic string
}

// CreateEmbeddingService builds the embedding adapter for the
// configured provider.
func CreateEmbeddingService(settings domain.EmbeddingSettings, keys Keys) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI, "":
		if keys.OpenAI == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", domain.ErrEmbeddingUnavailable)
		}
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  keys.OpenAI,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService builds the generation adapter for the configured
// provider.
func CreateLLMService(settings domain.LLMSettings, keys Keys) (driven.LLMService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI, "":
		if keys.OpenAI == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", domain.ErrLLMUnavailable)
		}
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  keys.OpenAI,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		if keys.Anthropic == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", domain.ErrLLMUnavailable)
		}
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  keys.Anthropic,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}

// Configured reports whether the provider can be built at all with the
// available keys. Ollama needs no key.
func Configured(provider domain.AIProvider, keys Keys) bool {
	switch provider {
	case domain.AIProviderOllama:
		return true
	case domain.AIProviderAnthropic:
		return keys.Anthropic != ""
	default:
		return keys.OpenAI != ""
	}
}

// ValidateEmbeddingService pings the embedding provider with a bounded
// timeout.
func ValidateEmbeddingService(svc driven.EmbeddingService) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%v)", domain.ErrEmbeddingUnavailable, err)
	}
	return nil
}

// ValidateLLMService pings the generation provider with a bounded
// timeout.
func ValidateLLMService(svc driven.LLMService) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%v)", domain.ErrLLMUnavailable, err)
	}
	return nil
}
