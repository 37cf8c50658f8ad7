package domain

// SearchOptions configures a similarity search.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Threshold is the minimum cosine similarity a result must reach.
	Threshold float64

	// Collections restricts the search to the named collections.
	// Empty means all collections.
	Collections []string
}

// SearchResult is a single similarity hit. It is produced by a search
// call and never persisted.
type SearchResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Similarity is the cosine similarity against the query embedding,
	// in [-1, 1].
	Similarity float64

	// Source is the matched chunk's source identifier, duplicated here
	// for convenient display.
	Source string
}
