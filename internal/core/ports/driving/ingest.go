package driving

import (
	"context"

	"github.com/lectern-ai/lectern/internal/core/domain"
)

// IngestRequest describes a document to add to the knowledge base.
type IngestRequest struct {
	// Content is the raw document text.
	Content string

	// Metadata describes the document's origin. Metadata.Source is
	// required; chunk IDs derive from it.
	Metadata domain.Metadata

	// Collection is the target partition; empty means the default.
	Collection string

	// IsBaseDocument marks operator-seeded knowledge.
	IsBaseDocument bool
}

// IngestReport says what an ingestion actually committed.
type IngestReport struct {
	// Source is the ingested document's source identifier.
	Source string

	// Chunks is how many chunks the document split into.
	Chunks int

	// Stored is how many chunks were committed to the store.
	Stored int

	// Failed is how many chunks could not be committed.
	Failed int
}

// Ingestor turns raw documents into stored, embedded chunks.
// Store failures propagate: losing a write must be visible to the caller.
type Ingestor interface {
	// IngestText chunks, embeds, and stores a document.
	IngestText(ctx context.Context, req IngestRequest) (IngestReport, error)

	// DeleteSource removes every chunk ingested from the given source.
	DeleteSource(ctx context.Context, source string) error

	// Reindex clears the entire store; documents must be re-added.
	Reindex(ctx context.Context) error
}
