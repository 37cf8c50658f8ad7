package services

import (
	"time"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
)

// Config keys for settings storage.
const (
	keyChunkSize     = "pipeline.chunk_size"
	keyChunkOverlap  = "pipeline.chunk_overlap"
	keyMaxResults    = "search.max_results"
	keyThreshold     = "search.similarity_threshold"
	keyMaxContext    = "search.max_context_length"
	keyEmbedProvider = "embedding.provider"
	keyEmbedModel    = "embedding.model"
	keyEmbedBaseURL  = "embedding.base_url"
	keyLLMProvider   = "llm.provider"
	keyLLMModel      = "llm.model"
	keyLLMBaseURL    = "llm.base_url"
	keyLLMMaxTokens  = "llm.max_tokens"
	keyLLMTemp       = "llm.temperature"
	keyRateWindow    = "rate_limit.window"
	keyRateMax       = "rate_limit.max_requests"
	keyTaskMaxAge    = "tasks.max_age"
	keyTaskSweep     = "tasks.sweep_interval"
	keySeedDir       = "seed.dir"
	keySeedCollect   = "seed.collection"
	keySeedWatch     = "seed.watch"
)

// SettingsService reads typed application settings from the config
// store, applying defaults for anything unset. Secrets (the provider
// API key) are not config; they come from the environment.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() domain.AppSettings {
	defaults := domain.DefaultAppSettings()

	return domain.AppSettings{
		Pipeline: domain.PipelineSettings{
			ChunkSize:    s.getInt(keyChunkSize, defaults.Pipeline.ChunkSize),
			ChunkOverlap: s.getInt(keyChunkOverlap, defaults.Pipeline.ChunkOverlap),
		},
		Search: domain.SearchSettings{
			MaxResults:          s.getInt(keyMaxResults, defaults.Search.MaxResults),
			SimilarityThreshold: s.getFloat(keyThreshold, defaults.Search.SimilarityThreshold),
			MaxContextLength:    s.getInt(keyMaxContext, defaults.Search.MaxContextLength),
		},
		Embedding: domain.EmbeddingSettings{
			Provider: domain.AIProvider(s.getString(keyEmbedProvider, string(defaults.Embedding.Provider))),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty means the provider default
		},
		LLM: domain.LLMSettings{
			Provider:    domain.AIProvider(s.getString(keyLLMProvider, string(defaults.LLM.Provider))),
			Model:       s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:     s.configStore.GetString(keyLLMBaseURL),
			MaxTokens:   s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
			Temperature: s.getFloat(keyLLMTemp, defaults.LLM.Temperature),
		},
		RateLimit: domain.RateLimitSettings{
			Window:      s.getDuration(keyRateWindow, defaults.RateLimit.Window),
			MaxRequests: s.getInt(keyRateMax, defaults.RateLimit.MaxRequests),
		},
		Tasks: domain.TaskSettings{
			MaxAge:        s.getDuration(keyTaskMaxAge, defaults.Tasks.MaxAge),
			SweepInterval: s.getDuration(keyTaskSweep, defaults.Tasks.SweepInterval),
		},
		Seed: domain.SeedSettings{
			Dir:        s.configStore.GetString(keySeedDir),
			Collection: s.getString(keySeedCollect, defaults.Seed.Collection),
			Watch:      s.getBool(keySeedWatch, defaults.Seed.Watch),
		},
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getDuration parses a duration string like "60s" or "5m".
func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
