package domain

// Answer is the result of a retrieval-augmented generation request.
// It is always well-formed: provider failures surface as a fallback
// response with no sources and zero token usage, never as an error.
type Answer struct {
	// Response is the generated (or fallback) text.
	Response string

	// Sources are the search results whose content was offered to the
	// generation provider as context.
	Sources []SearchResult

	// TokensUsed is the provider-reported usage; zero on fallback.
	TokensUsed int
}

// AskStatus classifies the outcome of a gated ask.
type AskStatus string

const (
	// AskAnswered means the request went through and Answer is set.
	AskAnswered AskStatus = "answered"

	// AskBusy means another task holds the single AI slot; BusyWith
	// names its holder.
	AskBusy AskStatus = "busy"

	// AskRateLimited means the user exhausted their request window;
	// RetryAfterSeconds says when the window resets.
	AskRateLimited AskStatus = "rate_limited"
)

// AskOutcome is the structured result of the gated ask flow. Capacity
// rejections are normal outcomes here, distinguished from failures.
type AskOutcome struct {
	// Status classifies the outcome.
	Status AskStatus

	// Answer is set when Status is AskAnswered.
	Answer Answer

	// BusyWith is the username currently holding the AI slot when
	// Status is AskBusy.
	BusyWith string

	// RetryAfterSeconds is the wait until the rate window resets when
	// Status is AskRateLimited.
	RetryAfterSeconds int
}
