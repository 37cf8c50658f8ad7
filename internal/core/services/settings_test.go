package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-ai/lectern/internal/adapters/driven/config/file"
	"github.com/lectern-ai/lectern/internal/core/domain"
)

func TestSettingsService_Defaults(t *testing.T) {
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings := NewSettingsService(store).Get()

	assert.Equal(t, domain.DefaultAppSettings(), settings)
}

func TestSettingsService_Overrides(t *testing.T) {
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(keyChunkSize, 500))
	require.NoError(t, store.Set(keyThreshold, 0.5))
	require.NoError(t, store.Set(keyMaxResults, 10))
	require.NoError(t, store.Set(keyLLMProvider, "ollama"))
	require.NoError(t, store.Set(keyLLMModel, "llama3.2"))
	require.NoError(t, store.Set(keyRateWindow, "30s"))
	require.NoError(t, store.Set(keyRateMax, 5))
	require.NoError(t, store.Set(keyTaskMaxAge, "2m"))
	require.NoError(t, store.Set(keySeedDir, "/srv/seed"))
	require.NoError(t, store.Set(keySeedWatch, true))

	settings := NewSettingsService(store).Get()

	assert.Equal(t, 500, settings.Pipeline.ChunkSize)
	assert.InDelta(t, 0.5, settings.Search.SimilarityThreshold, 1e-9)
	assert.Equal(t, 10, settings.Search.MaxResults)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
	assert.Equal(t, "llama3.2", settings.LLM.Model)
	assert.Equal(t, 30*time.Second, settings.RateLimit.Window)
	assert.Equal(t, 5, settings.RateLimit.MaxRequests)
	assert.Equal(t, 2*time.Minute, settings.Tasks.MaxAge)
	assert.Equal(t, "/srv/seed", settings.Seed.Dir)
	assert.True(t, settings.Seed.Watch)

	// Untouched keys keep their defaults.
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Pipeline.ChunkOverlap, settings.Pipeline.ChunkOverlap)
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Embedding.Model, settings.Embedding.Model)
	assert.Equal(t, defaults.Tasks.SweepInterval, settings.Tasks.SweepInterval)
}

func TestSettingsService_BadDurationFallsBack(t *testing.T) {
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(keyRateWindow, "not a duration"))

	settings := NewSettingsService(store).Get()
	assert.Equal(t, domain.DefaultAppSettings().RateLimit.Window, settings.RateLimit.Window)
}
