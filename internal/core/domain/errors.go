package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderFailure indicates an embedding or generation call
	// failed, timed out, or returned malformed output. The orchestrator
	// recovers from it with a fallback answer; ingestion propagates it.
	ErrProviderFailure = errors.New("provider failure")

	// ErrBusy indicates the single system-wide AI slot is held by
	// another task. This is a capacity rejection, not a failure.
	ErrBusy = errors.New("ai task already running")

	// ErrRateLimited indicates the user exhausted their request window.
	// This is a capacity rejection, not a failure.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Ingestion and retrieval are disabled without it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the generation service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
