package domain

import "time"

// PipelineSettings controls how ingested text is split into chunks.
type PipelineSettings struct {
	ChunkSize    int
	ChunkOverlap int
}

// SearchSettings controls retrieval behaviour.
type SearchSettings struct {
	MaxResults          int
	SimilarityThreshold float64
	MaxContextLength    int
}

// AIProvider identifies a supported provider backend.
type AIProvider string

const (
	// AIProviderOpenAI is the OpenAI API (or a compatible endpoint).
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderAnthropic is the Anthropic API. Generation only; it has
	// no embeddings endpoint.
	AIProviderAnthropic AIProvider = "anthropic"
)

// EmbeddingSettings configures the embedding provider.
type EmbeddingSettings struct {
	Provider AIProvider
	Model    string
	BaseURL  string
}

// LLMSettings configures the generation provider.
type LLMSettings struct {
	Provider    AIProvider
	Model       string
	BaseURL     string
	MaxTokens   int
	Temperature float64
}

// RateLimitSettings configures the per-user fixed-window limiter.
type RateLimitSettings struct {
	Window      time.Duration
	MaxRequests int
}

// TaskSettings configures reclamation of abandoned task slots.
type TaskSettings struct {
	MaxAge        time.Duration
	SweepInterval time.Duration
}

// SeedSettings configures operator knowledge seeding.
type SeedSettings struct {
	Dir        string
	Collection string
	Watch      bool
}

// AppSettings aggregates all application settings.
type AppSettings struct {
	Pipeline  PipelineSettings
	Search    SearchSettings
	Embedding EmbeddingSettings
	LLM       LLMSettings
	RateLimit RateLimitSettings
	Tasks     TaskSettings
	Seed      SeedSettings
}

// DefaultAppSettings returns the default application settings.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Pipeline: PipelineSettings{
			ChunkSize:    1000,
			ChunkOverlap: 200,
		},
		Search: SearchSettings{
			MaxResults:          5,
			SimilarityThreshold: 0.7,
			MaxContextLength:    8000,
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOpenAI,
			Model:    "text-embedding-3-small",
		},
		LLM: LLMSettings{
			Provider:    AIProviderOpenAI,
			Model:       "gpt-4o-mini",
			MaxTokens:   300,
			Temperature: 0.7,
		},
		RateLimit: RateLimitSettings{
			Window:      time.Minute,
			MaxRequests: 3,
		},
		Tasks: TaskSettings{
			MaxAge:        5 * time.Minute,
			SweepInterval: 5 * time.Minute,
		},
		Seed: SeedSettings{
			Collection: CollectionDoctrine,
		},
	}
}
