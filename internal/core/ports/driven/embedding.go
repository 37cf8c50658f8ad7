package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Note: this only generates vectors; DocumentStore persists and
// searches them. Embeddings from different models have different
// dimensionality and are never comparable.
//
// Implementations cap input length before the call to respect provider
// limits, and surface provider errors as typed failures.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 1536, 3072).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
