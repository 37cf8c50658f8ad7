package domain

import (
	"fmt"
	"time"
)

// DefaultCollection is the collection chunks land in when none is named.
// User-contributed knowledge accumulates here.
const DefaultCollection = "user"

// DocumentType identifies how a source document was obtained.
// It is a closed set; ingestion rejects anything else.
type DocumentType string

const (
	// DocumentTypePDF is text extracted from a PDF file.
	DocumentTypePDF DocumentType = "pdf"

	// DocumentTypeWeb is text captured from a web page.
	DocumentTypeWeb DocumentType = "web"

	// DocumentTypeText is plain text provided directly.
	DocumentTypeText DocumentType = "text"
)

// ParseDocumentType validates a string against the closed type set.
func ParseDocumentType(s string) (DocumentType, error) {
	switch DocumentType(s) {
	case DocumentTypePDF, DocumentTypeWeb, DocumentTypeText:
		return DocumentType(s), nil
	default:
		return "", fmt.Errorf("%w: document type %q", ErrInvalidInput, s)
	}
}

// Metadata describes where a chunk came from and who contributed it.
type Metadata struct {
	// Source is the originating document identifier (file path, URL, name).
	// Chunk IDs are derived from it, and deletion is keyed by it.
	Source string `json:"source"`

	// AddedBy is the user who contributed the document.
	AddedBy string `json:"addedBy"`

	// AddedAt is when the document was ingested.
	AddedAt time.Time `json:"addedAt"`

	// Type is the document origin type.
	Type DocumentType `json:"type"`

	// Title is an optional human-readable title.
	Title string `json:"title,omitempty"`

	// Processed marks the chunk as fully ingested. It is the only
	// field that may change after creation.
	Processed bool `json:"processed"`
}

// Chunk is the unit of storage and retrieval: a bounded excerpt of a
// source document together with its embedding.
//
// Chunks are immutable after ingestion except for Metadata.Processed.
// Each chunk belongs to exactly one collection.
type Chunk struct {
	// ID is unique within the store, derived as "<source>_chunk_<index>".
	ID string

	// Content is the chunk text.
	Content string

	// Embedding is the fixed-length vector produced by the embedding
	// model. Vectors from different models are not comparable; a length
	// mismatch scores similarity 0.
	Embedding []float32

	// Metadata describes the chunk's origin.
	Metadata Metadata

	// ChunkIndex is the sequence position within the source document.
	ChunkIndex int

	// Collection is the named partition this chunk belongs to.
	Collection string

	// IsBaseDocument marks operator-seeded knowledge, as opposed to
	// user-contributed knowledge.
	IsBaseDocument bool
}

// ChunkID derives the canonical chunk identifier for a source and index.
func ChunkID(source string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", source, index)
}

// StoreStats summarises the whole store.
type StoreStats struct {
	// Documents is the total chunk count.
	Documents int

	// Sources lists the distinct source identifiers.
	Sources []string

	// Types is a histogram of chunk counts per document type.
	Types map[DocumentType]int
}

// CollectionStats summarises a single collection.
type CollectionStats struct {
	// Documents is the chunk count within the collection.
	Documents int

	// Sources lists the distinct source identifiers within the collection.
	Sources []string
}
