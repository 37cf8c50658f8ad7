package driving

import (
	"context"

	"github.com/lectern-ai/lectern/internal/core/domain"
)

// AskRequest identifies who is asking what.
type AskRequest struct {
	// UserID identifies the requesting user.
	UserID string

	// Username is the user's display name, used in busy messages.
	Username string

	// ChannelID is where the request originated.
	ChannelID string

	// Query is the question or statement to answer.
	Query string

	// Command selects the instruction template and target collections.
	Command domain.CommandType
}

// Responder answers a query with retrieval-augmented generation.
// It never returns an error: provider failures become fallback answers.
type Responder interface {
	Answer(ctx context.Context, query string, command domain.CommandType) domain.Answer
}

// ChatService runs the fully gated ask flow: per-user and global
// single-flight, then the rate limit, then generation. The gate check
// happens-before the provider call happens-before release.
type ChatService interface {
	Ask(ctx context.Context, req AskRequest) domain.AskOutcome
}
