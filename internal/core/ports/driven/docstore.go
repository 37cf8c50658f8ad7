package driven

import (
	"context"

	"github.com/lectern-ai/lectern/internal/core/domain"
)

// BatchResult reports how a batch insert fared. A long-running batch is
// never lost entirely to one bad row: remaining items are still
// attempted and the exact split is reported.
type BatchResult struct {
	// Succeeded is the number of chunks committed.
	Succeeded int

	// Failed is the number of chunks that could not be committed.
	Failed int

	// FirstErr is the first per-chunk error encountered, for reporting.
	FirstErr error
}

// DocumentStore persists chunks with their embeddings and performs
// similarity search over them. The store is the single source of truth;
// a chunk's content and its embedding are committed together, never one
// without the other.
//
// Search is a full linear scan over the stored embeddings. That is the
// known scalability ceiling: fine for thousands of chunks, not millions.
type DocumentStore interface {
	// Add upserts a single chunk, keyed by ID.
	Add(ctx context.Context, chunk domain.Chunk) error

	// AddBatch upserts chunks one transaction each, continuing past
	// per-chunk failures. The returned error is non-nil only when the
	// batch could not be attempted at all.
	AddBatch(ctx context.Context, chunks []domain.Chunk) (BatchResult, error)

	// Search scores every stored embedding against the query embedding
	// with cosine similarity, restricted to opts.Collections when set.
	// Results meet opts.Threshold, are sorted descending by similarity
	// with insertion-order tie-break, and are capped at opts.Limit.
	Search(ctx context.Context, queryEmbedding []float32, opts domain.SearchOptions) ([]domain.SearchResult, error)

	// DeleteBySource removes all chunks whose metadata source matches.
	// Used when re-ingesting a corrected document.
	DeleteBySource(ctx context.Context, source string) error

	// ClearCollection removes every chunk in the named collection.
	ClearCollection(ctx context.Context, collection string) error

	// ClearAll removes every chunk unconditionally.
	ClearAll(ctx context.Context) error

	// HasBaseDocuments reports whether any operator-seeded chunk exists,
	// optionally scoped to a collection (empty string means any).
	HasBaseDocuments(ctx context.Context, collection string) (bool, error)

	// Collections lists the distinct collection names present.
	Collections(ctx context.Context) ([]string, error)

	// Stats summarises the whole store.
	Stats(ctx context.Context) (domain.StoreStats, error)

	// CollectionStats summarises a single collection.
	CollectionStats(ctx context.Context, collection string) (domain.CollectionStats, error)

	// Vacuum compacts the underlying storage.
	Vacuum(ctx context.Context) error

	// Close releases resources.
	Close() error
}
