package cli

import (
	"context"
	"errors"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
	"github.com/lectern-ai/lectern/internal/core/ports/driving"
)

// setupTestServices swaps the package services for mocks and returns a
// cleanup that restores the originals.
func setupTestServices() func() {
	oldSettings := appSettings
	oldStore := documentStore
	oldEmbed := embedService
	oldLLM := llmService
	oldChat := chatService
	oldIngest := ingestService

	appSettings = domain.DefaultAppSettings()
	documentStore = &mockDocumentStore{
		searchResults: []domain.SearchResult{
			{
				Chunk: domain.Chunk{
					ID:         "creed.txt_chunk_0",
					Content:    "We hold these teachings in common.",
					Collection: domain.CollectionDoctrine,
				},
				Similarity: 0.91,
				Source:     "creed.txt",
			},
		},
		collections: []string{domain.CollectionDoctrine, domain.DefaultCollection},
		stats: domain.StoreStats{
			Documents: 3,
			Sources:   []string{"creed.txt", "notes.md"},
			Types:     map[domain.DocumentType]int{domain.DocumentTypeText: 3},
		},
	}
	embedService = &mockEmbedder{}
	llmService = &mockLLM{}
	chatService = &mockChatService{
		outcome: domain.AskOutcome{
			Status: domain.AskAnswered,
			Answer: domain.Answer{
				Response: "The teaching is sound.",
				Sources: []domain.SearchResult{
					{Source: "creed.txt", Similarity: 0.91},
				},
				TokensUsed: 42,
			},
		},
	}
	ingestService = &mockIngestor{
		report: driving.IngestReport{Source: "notes.md", Chunks: 2, Stored: 2},
	}

	return func() {
		appSettings = oldSettings
		documentStore = oldStore
		embedService = oldEmbed
		llmService = oldLLM
		chatService = oldChat
		ingestService = oldIngest
	}
}

// mockDocumentStore is a canned DocumentStore for command tests.
type mockDocumentStore struct {
	searchResults []domain.SearchResult
	searchErr     error
	collections   []string
	stats         domain.StoreStats
	hasBase       bool

	deletedSources []string
	clearedAll     bool
	cleared        []string
	vacuumed       bool
}

var _ driven.DocumentStore = (*mockDocumentStore)(nil)

func (m *mockDocumentStore) Add(context.Context, domain.Chunk) error { return nil }

func (m *mockDocumentStore) AddBatch(_ context.Context, chunks []domain.Chunk) (driven.BatchResult, error) {
	return driven.BatchResult{Succeeded: len(chunks)}, nil
}

func (m *mockDocumentStore) Search(context.Context, []float32, domain.SearchOptions) ([]domain.SearchResult, error) {
	return m.searchResults, m.searchErr
}

func (m *mockDocumentStore) DeleteBySource(_ context.Context, source string) error {
	m.deletedSources = append(m.deletedSources, source)
	return nil
}

func (m *mockDocumentStore) ClearCollection(_ context.Context, collection string) error {
	m.cleared = append(m.cleared, collection)
	return nil
}

func (m *mockDocumentStore) ClearAll(context.Context) error {
	m.clearedAll = true
	return nil
}

func (m *mockDocumentStore) HasBaseDocuments(context.Context, string) (bool, error) {
	return m.hasBase, nil
}

func (m *mockDocumentStore) Collections(context.Context) ([]string, error) {
	return m.collections, nil
}

func (m *mockDocumentStore) Stats(context.Context) (domain.StoreStats, error) {
	return m.stats, nil
}

func (m *mockDocumentStore) CollectionStats(_ context.Context, collection string) (domain.CollectionStats, error) {
	return domain.CollectionStats{Documents: 1, Sources: []string{"creed.txt"}}, nil
}

func (m *mockDocumentStore) Vacuum(context.Context) error {
	m.vacuumed = true
	return nil
}

func (m *mockDocumentStore) Close() error { return nil }

// mockDocumentStoreError fails on every read.
type mockDocumentStoreError struct {
	mockDocumentStore
}

func (m *mockDocumentStoreError) Search(context.Context, []float32, domain.SearchOptions) ([]domain.SearchResult, error) {
	return nil, errors.New("store unavailable")
}

func (m *mockDocumentStoreError) Stats(context.Context) (domain.StoreStats, error) {
	return domain.StoreStats{}, errors.New("store unavailable")
}

// mockEmbedder returns a fixed vector.
type mockEmbedder struct {
	err error
}

var _ driven.EmbeddingService = (*mockEmbedder)(nil)

func (m *mockEmbedder) Embed(context.Context, string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return 3 }

func (m *mockEmbedder) ModelName() string { return "mock-embedder" }

func (m *mockEmbedder) Ping(context.Context) error { return m.err }

func (m *mockEmbedder) Close() error { return nil }

// mockLLM is a canned LLMService for command tests.
type mockLLM struct {
	pingErr error
}

var _ driven.LLMService = (*mockLLM)(nil)

func (m *mockLLM) Complete(context.Context, string, string, driven.GenerateOptions) (driven.Completion, error) {
	return driven.Completion{Text: "mock completion"}, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }

func (m *mockLLM) Ping(context.Context) error { return m.pingErr }

func (m *mockLLM) Close() error { return nil }

// mockChatService returns a canned outcome and records the request.
type mockChatService struct {
	outcome domain.AskOutcome
	lastReq driving.AskRequest
}

var _ driving.ChatService = (*mockChatService)(nil)

func (m *mockChatService) Ask(_ context.Context, req driving.AskRequest) domain.AskOutcome {
	m.lastReq = req
	return m.outcome
}

// mockIngestor returns a canned report and records requests.
type mockIngestor struct {
	report driving.IngestReport
	err    error

	requests []driving.IngestRequest
	deleted  []string
}

var _ driving.Ingestor = (*mockIngestor)(nil)

func (m *mockIngestor) IngestText(_ context.Context, req driving.IngestRequest) (driving.IngestReport, error) {
	m.requests = append(m.requests, req)
	return m.report, m.err
}

func (m *mockIngestor) DeleteSource(_ context.Context, source string) error {
	m.deleted = append(m.deleted, source)
	return nil
}

func (m *mockIngestor) Reindex(context.Context) error { return nil }
