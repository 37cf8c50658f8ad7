package ai

import (
	"strings"
	"testing"

	"github.com/lectern-ai/lectern/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    domain.EmbeddingSettings
		keys        Keys
		wantErr     bool
		errContains string
		wantModel   string
	}{
		{
			name: "ollama provider needs no key",
			settings: domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				Model:    "nomic-embed-text",
			},
			wantModel: "nomic-embed-text",
		},
		{
			name: "openai provider creates service",
			settings: domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "text-embedding-3-small",
			},
			keys:      Keys{OpenAI: "test-key"},
			wantModel: "text-embedding-3-small",
		},
		{
			name: "empty provider defaults to openai",
			settings: domain.EmbeddingSettings{
				Model: "text-embedding-3-small",
			},
			keys:      Keys{OpenAI: "test-key"},
			wantModel: "text-embedding-3-small",
		},
		{
			name: "openai without key returns error",
			settings: domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantErr:     true,
			errContains: "OPENAI_API_KEY",
		},
		{
			name: "anthropic provider returns error",
			settings: domain.EmbeddingSettings{
				Provider: domain.AIProviderAnthropic,
			},
			keys:        Keys{Anthropic: "test-key"},
			wantErr:     true,
			errContains: "does not support embeddings",
		},
		{
			name: "unknown provider returns error",
			settings: domain.EmbeddingSettings{
				Provider: "abacus",
			},
			wantErr:     true,
			errContains: "unsupported embedding provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings, tt.keys)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc.ModelName() != tt.wantModel {
				t.Errorf("model = %q, want %q", svc.ModelName(), tt.wantModel)
			}
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name        string
		settings    domain.LLMSettings
		keys        Keys
		wantErr     bool
		errContains string
		wantModel   string
	}{
		{
			name: "ollama provider needs no key",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				Model:    "llama3.2",
			},
			wantModel: "llama3.2",
		},
		{
			name: "openai provider creates service",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				Model:    "gpt-4o-mini",
			},
			keys:      Keys{OpenAI: "test-key"},
			wantModel: "gpt-4o-mini",
		},
		{
			name: "anthropic provider creates service",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				Model:    "claude-3-5-haiku-latest",
			},
			keys:      Keys{Anthropic: "test-key"},
			wantModel: "claude-3-5-haiku-latest",
		},
		{
			name: "anthropic without key returns error",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
			},
			wantErr:     true,
			errContains: "ANTHROPIC_API_KEY",
		},
		{
			name: "openai without key returns error",
			settings: domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
			},
			wantErr:     true,
			errContains: "OPENAI_API_KEY",
		},
		{
			name: "unknown provider returns error",
			settings: domain.LLMSettings{
				Provider: "abacus",
			},
			wantErr:     true,
			errContains: "unsupported LLM provider",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings, tt.keys)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if svc.ModelName() != tt.wantModel {
				t.Errorf("model = %q, want %q", svc.ModelName(), tt.wantModel)
			}
		})
	}
}

func TestConfigured(t *testing.T) {
	tests := []struct {
		name     string
		provider domain.AIProvider
		keys     Keys
		want     bool
	}{
		{"ollama never needs a key", domain.AIProviderOllama, Keys{}, true},
		{"openai with key", domain.AIProviderOpenAI, Keys{OpenAI: "k"}, true},
		{"openai without key", domain.AIProviderOpenAI, Keys{}, false},
		{"empty provider follows openai", "", Keys{OpenAI: "k"}, true},
		{"anthropic with key", domain.AIProviderAnthropic, Keys{Anthropic: "k"}, true},
		{"anthropic without key", domain.AIProviderAnthropic, Keys{OpenAI: "k"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Configured(tt.provider, tt.keys); got != tt.want {
				t.Errorf("Configured(%q) = %v, want %v", tt.provider, got, tt.want)
			}
		})
	}
}
