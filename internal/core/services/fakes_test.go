package services

import (
	"context"
	"errors"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
	"github.com/lectern-ai/lectern/internal/core/ports/driving"
)

var errFakeProvider = errors.New("provider down")

// fakeStore is an in-memory DocumentStore for service tests.
type fakeStore struct {
	chunks        []domain.Chunk
	searchResults []domain.SearchResult
	searchOpts    domain.SearchOptions
	hasBase       bool
	deleted       []string

	addBatchResult *driven.BatchResult
	searchErr      error
	addErr         error
}

var _ driven.DocumentStore = (*fakeStore)(nil)

func (f *fakeStore) Add(_ context.Context, chunk domain.Chunk) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.chunks = append(f.chunks, chunk)
	return nil
}

func (f *fakeStore) AddBatch(ctx context.Context, chunks []domain.Chunk) (driven.BatchResult, error) {
	if f.addBatchResult != nil {
		return *f.addBatchResult, nil
	}
	var result driven.BatchResult
	for i := range chunks {
		if err := f.Add(ctx, chunks[i]); err != nil {
			result.Failed++
			if result.FirstErr == nil {
				result.FirstErr = err
			}
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

func (f *fakeStore) Search(_ context.Context, _ []float32, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	f.searchOpts = opts
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeStore) DeleteBySource(_ context.Context, source string) error {
	f.deleted = append(f.deleted, source)
	return nil
}

func (f *fakeStore) ClearCollection(context.Context, string) error { return nil }

func (f *fakeStore) ClearAll(context.Context) error {
	f.chunks = nil
	return nil
}

func (f *fakeStore) HasBaseDocuments(context.Context, string) (bool, error) {
	return f.hasBase, nil
}

func (f *fakeStore) Collections(context.Context) ([]string, error) { return nil, nil }

func (f *fakeStore) Stats(context.Context) (domain.StoreStats, error) {
	return domain.StoreStats{Documents: len(f.chunks)}, nil
}

func (f *fakeStore) CollectionStats(context.Context, string) (domain.CollectionStats, error) {
	return domain.CollectionStats{}, nil
}

func (f *fakeStore) Vacuum(context.Context) error { return nil }
func (f *fakeStore) Close() error                 { return nil }

// fakeEmbedder returns a fixed vector for every input.
type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

func (f *fakeEmbedder) Dimensions() int            { return len(f.vector) }
func (f *fakeEmbedder) ModelName() string          { return "fake-embedder" }
func (f *fakeEmbedder) Ping(context.Context) error { return f.err }
func (f *fakeEmbedder) Close() error               { return nil }

// fakeLLM returns a canned completion and records its prompts.
type fakeLLM struct {
	completion   driven.Completion
	err          error
	systemPrompt string
	userPrompt   string
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (f *fakeLLM) Complete(_ context.Context, systemPrompt, userPrompt string, _ driven.GenerateOptions) (driven.Completion, error) {
	f.systemPrompt = systemPrompt
	f.userPrompt = userPrompt
	if f.err != nil {
		return driven.Completion{}, f.err
	}
	return f.completion, nil
}

func (f *fakeLLM) ModelName() string          { return "fake-llm" }
func (f *fakeLLM) Ping(context.Context) error { return f.err }
func (f *fakeLLM) Close() error               { return nil }

// fakeResponder returns a fixed answer and counts invocations.
type fakeResponder struct {
	answer domain.Answer
	calls  int
}

var _ driving.Responder = (*fakeResponder)(nil)

func (f *fakeResponder) Answer(context.Context, string, domain.CommandType) domain.Answer {
	f.calls++
	return f.answer
}

// fakeIngestor records what it was asked to ingest.
type fakeIngestor struct {
	requests []driving.IngestRequest
	deleted  []string
	err      error
}

var _ driving.Ingestor = (*fakeIngestor)(nil)

func (f *fakeIngestor) IngestText(_ context.Context, req driving.IngestRequest) (driving.IngestReport, error) {
	if f.err != nil {
		return driving.IngestReport{}, f.err
	}
	f.requests = append(f.requests, req)
	return driving.IngestReport{Source: req.Metadata.Source, Chunks: 1, Stored: 1}, nil
}

func (f *fakeIngestor) DeleteSource(_ context.Context, source string) error {
	f.deleted = append(f.deleted, source)
	return f.err
}

func (f *fakeIngestor) Reindex(context.Context) error { return f.err }
