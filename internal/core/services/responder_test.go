package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
)

func testSettings() domain.AppSettings {
	s := domain.DefaultAppSettings()
	s.Search.MaxResults = 5
	s.Search.SimilarityThreshold = 0.7
	s.Search.MaxContextLength = 8000
	return s
}

func searchResult(source, content string, similarity float64) domain.SearchResult {
	return domain.SearchResult{
		Chunk:      domain.Chunk{Content: content, Metadata: domain.Metadata{Source: source}},
		Similarity: similarity,
		Source:     source,
	}
}

func TestRAGService_Answer(t *testing.T) {
	store := &fakeStore{
		searchResults: []domain.SearchResult{
			searchResult("creed.txt", "the founding creed", 0.91),
			searchResult("notes.txt", "a study note", 0.82),
		},
	}
	embedder := &fakeEmbedder{vector: []float32{1, 0, 0}}
	llm := &fakeLLM{completion: driven.Completion{Text: "a grounded answer", TokensUsed: 42}}

	svc := NewRAGService(store, embedder, llm, testSettings())
	answer := svc.Answer(context.Background(), "what is the creed?", domain.CommandLookup)

	assert.Equal(t, "a grounded answer", answer.Response)
	assert.Len(t, answer.Sources, 2)
	assert.Equal(t, 42, answer.TokensUsed)

	// Search is scoped to the command's collections with configured limits.
	assert.Equal(t, domain.CollectionsFor(domain.CommandLookup), store.searchOpts.Collections)
	assert.Equal(t, 5, store.searchOpts.Limit)
	assert.InDelta(t, 0.7, store.searchOpts.Threshold, 1e-9)

	// The assembled prompt carries the retrieved context.
	assert.Contains(t, llm.userPrompt, "Source: creed.txt")
	assert.Contains(t, llm.userPrompt, "the founding creed")
	assert.Contains(t, llm.userPrompt, "Relevance: 91%")
	assert.Contains(t, llm.userPrompt, "what is the creed?")
}

func TestRAGService_EmbedFailureYieldsFallback(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{err: errFakeProvider}
	llm := &fakeLLM{}

	svc := NewRAGService(store, embedder, llm, testSettings())
	answer := svc.Answer(context.Background(), "anything", domain.CommandAnalysis)

	assert.NotEmpty(t, answer.Response)
	assert.Empty(t, answer.Sources)
	assert.Zero(t, answer.TokensUsed)
}

func TestRAGService_CompletionFailureYieldsFallback(t *testing.T) {
	store := &fakeStore{
		searchResults: []domain.SearchResult{searchResult("a.txt", "content", 0.9)},
	}
	embedder := &fakeEmbedder{vector: []float32{1, 0, 0}}
	llm := &fakeLLM{err: errFakeProvider}

	svc := NewRAGService(store, embedder, llm, testSettings())

	for _, command := range []domain.CommandType{
		domain.CommandAnalysis,
		domain.CommandDigest,
		domain.CommandLookup,
		domain.CommandGeneral,
		domain.CommandType("unknown"),
	} {
		answer := svc.Answer(context.Background(), "anything", command)
		assert.NotEmpty(t, answer.Response, "command %s", command)
		assert.Empty(t, answer.Sources, "command %s", command)
		assert.Zero(t, answer.TokensUsed, "command %s", command)
	}
}

func TestRAGService_SearchFailureYieldsFallback(t *testing.T) {
	store := &fakeStore{searchErr: errFakeProvider}
	embedder := &fakeEmbedder{vector: []float32{1, 0, 0}}
	llm := &fakeLLM{completion: driven.Completion{Text: "unused"}}

	svc := NewRAGService(store, embedder, llm, testSettings())
	answer := svc.Answer(context.Background(), "anything", domain.CommandGeneral)

	assert.NotEmpty(t, answer.Response)
	assert.Empty(t, answer.Sources)
	assert.Zero(t, answer.TokensUsed)
}

func TestRAGService_EmptyCompletionYieldsFallback(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{vector: []float32{1, 0, 0}}
	llm := &fakeLLM{completion: driven.Completion{Text: ""}}

	svc := NewRAGService(store, embedder, llm, testSettings())
	answer := svc.Answer(context.Background(), "anything", domain.CommandGeneral)

	assert.NotEmpty(t, answer.Response)
	assert.Empty(t, answer.Sources)
}

func TestRAGService_NoResultsStillAnswers(t *testing.T) {
	store := &fakeStore{}
	embedder := &fakeEmbedder{vector: []float32{1, 0, 0}}
	llm := &fakeLLM{completion: driven.Completion{Text: "answered without context", TokensUsed: 7}}

	svc := NewRAGService(store, embedder, llm, testSettings())
	answer := svc.Answer(context.Background(), "anything", domain.CommandGeneral)

	assert.Equal(t, "answered without context", answer.Response)
	assert.Contains(t, llm.userPrompt, "No relevant archive context")
}

func TestBuildContext(t *testing.T) {
	t.Run("empty results", func(t *testing.T) {
		assert.Empty(t, buildContext(nil, 8000))
	})

	t.Run("entries joined with separator", func(t *testing.T) {
		results := []domain.SearchResult{
			searchResult("a.txt", "first", 0.95),
			searchResult("b.txt", "second", 0.80),
		}
		context := buildContext(results, 8000)

		require.Equal(t, 2, strings.Count(context, "Source:"))
		assert.Contains(t, context, contextSeparator)
		assert.Contains(t, context, "Relevance: 95%")
		assert.Contains(t, context, "Relevance: 80%")

		// Pre-sorted results keep the most relevant entry first.
		assert.Less(t, strings.Index(context, "first"), strings.Index(context, "second"))
	})

	t.Run("hard truncation drops the tail", func(t *testing.T) {
		results := []domain.SearchResult{
			searchResult("a.txt", strings.Repeat("x", 500), 0.95),
			searchResult("b.txt", strings.Repeat("y", 500), 0.80),
		}
		context := buildContext(results, 100)
		assert.Len(t, context, 100)
		assert.NotContains(t, context, "y")
	})
}

func TestSystemPrompt_PerCommand(t *testing.T) {
	assert.Contains(t, systemPrompt(domain.CommandAnalysis), "ANALYSE")
	assert.Contains(t, systemPrompt(domain.CommandDigest), "digest")
	assert.Equal(t, baseSystemPrompt, systemPrompt(domain.CommandGeneral))
	assert.Equal(t, baseSystemPrompt, systemPrompt(domain.CommandType("unknown")))
}
