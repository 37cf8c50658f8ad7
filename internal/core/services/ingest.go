package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lectern-ai/lectern/internal/chunker"
	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
	"github.com/lectern-ai/lectern/internal/core/ports/driving"
	"github.com/lectern-ai/lectern/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// IngestService turns raw documents into stored, embedded chunks.
// Unlike the responder, store and provider failures propagate: a lost
// write must be visible to the caller.
type IngestService struct {
	store    driven.DocumentStore
	embedder driven.EmbeddingService
	splitter *chunker.Chunker
}

// NewIngestService creates an ingestor over the given providers.
func NewIngestService(
	store driven.DocumentStore,
	embedder driven.EmbeddingService,
	settings domain.AppSettings,
) *IngestService {
	return &IngestService{
		store:    store,
		embedder: embedder,
		splitter: chunker.New(
			chunker.WithChunkSize(settings.Pipeline.ChunkSize),
			chunker.WithOverlap(settings.Pipeline.ChunkOverlap),
		),
	}
}

// IngestText chunks, embeds, and stores a document. Partial store
// failures do not abort the batch; the report says exactly how many
// chunks were committed.
func (s *IngestService) IngestText(ctx context.Context, req driving.IngestRequest) (driving.IngestReport, error) {
	if strings.TrimSpace(req.Content) == "" {
		return driving.IngestReport{}, fmt.Errorf("empty content: %w", domain.ErrInvalidInput)
	}
	if req.Metadata.Source == "" {
		return driving.IngestReport{}, fmt.Errorf("missing source: %w", domain.ErrInvalidInput)
	}

	collection := req.Collection
	if collection == "" {
		collection = domain.DefaultCollection
	}

	pieces := s.splitter.Split(req.Content)
	logger.Info("ingest: %s split into %d chunks (collection %s)",
		req.Metadata.Source, len(pieces), collection)

	embeddings, err := s.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		return driving.IngestReport{Source: req.Metadata.Source, Chunks: len(pieces)},
			fmt.Errorf("embedding %s: %w", req.Metadata.Source, err)
	}
	if len(embeddings) != len(pieces) {
		return driving.IngestReport{Source: req.Metadata.Source, Chunks: len(pieces)},
			fmt.Errorf("embedding %s: got %d embeddings for %d chunks: %w",
				req.Metadata.Source, len(embeddings), len(pieces), domain.ErrProviderFailure)
	}

	metadata := req.Metadata
	metadata.Processed = true

	chunks := make([]domain.Chunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = domain.Chunk{
			ID:             domain.ChunkID(req.Metadata.Source, i),
			Content:        content,
			Embedding:      embeddings[i],
			Metadata:       metadata,
			ChunkIndex:     i,
			Collection:     collection,
			IsBaseDocument: req.IsBaseDocument,
		}
	}

	result, err := s.store.AddBatch(ctx, chunks)
	if err != nil {
		return driving.IngestReport{Source: req.Metadata.Source, Chunks: len(pieces)},
			fmt.Errorf("storing %s: %w", req.Metadata.Source, err)
	}

	report := driving.IngestReport{
		Source: req.Metadata.Source,
		Chunks: len(pieces),
		Stored: result.Succeeded,
		Failed: result.Failed,
	}

	if result.Failed > 0 {
		logger.Warn("ingest: %s stored %d/%d chunks", report.Source, report.Stored, report.Chunks)
		return report, fmt.Errorf("stored %d of %d chunks for %s: %w",
			report.Stored, report.Chunks, report.Source, result.FirstErr)
	}

	logger.Info("ingest: %s stored %d chunks", report.Source, report.Stored)
	return report, nil
}

// DeleteSource removes every chunk ingested from the given source.
// Used when re-ingesting a corrected document.
func (s *IngestService) DeleteSource(ctx context.Context, source string) error {
	if source == "" {
		return fmt.Errorf("missing source: %w", domain.ErrInvalidInput)
	}
	if err := s.store.DeleteBySource(ctx, source); err != nil {
		return fmt.Errorf("deleting %s: %w", source, err)
	}
	logger.Info("ingest: deleted all chunks from %s", source)
	return nil
}

// Reindex clears the entire store. Documents must be re-added.
func (s *IngestService) Reindex(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	logger.Info("ingest: store cleared, documents must be re-added")
	return nil
}
