package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
	"github.com/lectern-ai/lectern/internal/core/ports/driving"
	"github.com/lectern-ai/lectern/internal/logger"
)

// Ensure RAGService implements the interface.
var _ driving.Responder = (*RAGService)(nil)

// contextSeparator joins context entries in the assembled prompt.
const contextSeparator = "\n\n---\n\n"

// baseSystemPrompt frames every generation request.
const baseSystemPrompt = `You are Lectern, a study assistant grounded in a curated archive.
- Answer from the provided archive context when it is relevant.
- Be direct and concise: at most one short paragraph.
- If the archive offers nothing relevant, say so rather than inventing sources.`

// commandInstructions extends the base prompt per command type.
var commandInstructions = map[domain.CommandType]string{
	domain.CommandAnalysis: `ANALYSE the given statement against the doctrine archive.
Classify it as: SOUND, UNCERTAIN, or CONTRARY, citing the relevant passages. One paragraph.`,
	domain.CommandDigest: `COMPOSE a short daily digest on the given topic from the digest archive.
One engaging paragraph.`,
	domain.CommandLookup: `ANSWER the lore question directly and concisely using the archive context.
One informative paragraph.`,
}

// commandPrompts prefixes the user query per command type.
var commandPrompts = map[domain.CommandType]string{
	domain.CommandAnalysis: "ANALYSE THE FOLLOWING STATEMENT:\n%q",
	domain.CommandDigest:   "COMPOSE A DAILY DIGEST ON: %s",
	domain.CommandLookup:   "ANSWER THE FOLLOWING LORE QUESTION: %s",
	domain.CommandGeneral:  "RESPOND TO: %s",
}

// commandFallbacks are the static answers returned when any provider
// call fails. The responder never propagates provider errors.
var commandFallbacks = map[domain.CommandType]string{
	domain.CommandAnalysis: "The archive is unreachable, so this statement cannot be analysed right now. Treat it as UNCERTAIN and try again shortly.",
	domain.CommandDigest:   "No digest can be composed right now; the archive is unreachable. Yesterday's reading still stands.",
	domain.CommandLookup:   "The archive is not answering at the moment. Try the lookup again in a little while.",
	domain.CommandGeneral:  "The archive is temporarily unavailable. Please try again shortly.",
}

// RAGService answers queries with retrieval-augmented generation. It
// always returns a well-formed answer: provider failures of any kind
// yield a command-specific fallback with no sources and zero cost.
type RAGService struct {
	store     driven.DocumentStore
	embedder  driven.EmbeddingService
	llm       driven.LLMService
	search    domain.SearchSettings
	maxTokens int
	temp      float64
}

// NewRAGService creates a responder over the given providers.
func NewRAGService(
	store driven.DocumentStore,
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	settings domain.AppSettings,
) *RAGService {
	return &RAGService{
		store:     store,
		embedder:  embedder,
		llm:       llm,
		search:    settings.Search,
		maxTokens: settings.LLM.MaxTokens,
		temp:      settings.LLM.Temperature,
	}
}

// Answer retrieves context for the query and generates a response.
func (s *RAGService) Answer(ctx context.Context, query string, command domain.CommandType) domain.Answer {
	logger.Section("retrieval")
	logger.Debug("responder: answering %s query (%d chars)", command, len(query))

	queryEmbedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Error("responder: embed query: %v", err)
		return s.fallback(command)
	}

	collections := domain.CollectionsFor(command)
	results, err := s.store.Search(ctx, queryEmbedding, domain.SearchOptions{
		Limit:       s.search.MaxResults,
		Threshold:   s.search.SimilarityThreshold,
		Collections: collections,
	})
	if err != nil {
		logger.Error("responder: search: %v", err)
		return s.fallback(command)
	}

	logger.Debug("responder: %d results from %v", len(results), collections)

	completion, err := s.llm.Complete(ctx,
		systemPrompt(command),
		userPrompt(query, buildContext(results, s.search.MaxContextLength), command),
		driven.GenerateOptions{
			MaxTokens:   s.maxTokens,
			Temperature: s.temp,
		})
	if err != nil {
		logger.Error("responder: complete: %v", err)
		return s.fallback(command)
	}
	if completion.Text == "" {
		logger.Warn("responder: provider returned empty completion")
		return s.fallback(command)
	}

	logger.Info("responder: answered %s query, %d sources, %d tokens",
		command, len(results), completion.TokensUsed)

	return domain.Answer{
		Response:   completion.Text,
		Sources:    results,
		TokensUsed: completion.TokensUsed,
	}
}

// fallback builds the static answer for a failed command.
func (s *RAGService) fallback(command domain.CommandType) domain.Answer {
	text, ok := commandFallbacks[command]
	if !ok {
		text = commandFallbacks[domain.CommandGeneral]
	}
	return domain.Answer{Response: text}
}

// buildContext concatenates search results into a bounded context
// string. Results arrive sorted by similarity, so the hard truncation
// drops the least relevant tail first.
func buildContext(results []domain.SearchResult, maxLength int) string {
	if len(results) == 0 {
		return ""
	}

	entries := make([]string, len(results))
	for i, r := range results {
		entries[i] = fmt.Sprintf("Source: %s\nContent: %s\nRelevance: %d%%",
			r.Source, r.Chunk.Content, int(math.Round(r.Similarity*100)))
	}

	context := strings.Join(entries, contextSeparator)
	if maxLength > 0 && len(context) > maxLength {
		context = context[:maxLength]
	}
	return context
}

// systemPrompt returns the instruction template for a command type.
func systemPrompt(command domain.CommandType) string {
	if extra, ok := commandInstructions[command]; ok {
		return baseSystemPrompt + "\n\n" + extra
	}
	return baseSystemPrompt
}

// userPrompt assembles the context section and the command-framed query.
func userPrompt(query, context string, command domain.CommandType) string {
	var b strings.Builder

	if context != "" {
		b.WriteString("CONTEXT FROM THE ARCHIVE:\n")
		b.WriteString(context)
		b.WriteString("\n\n")
	} else {
		b.WriteString("No relevant archive context is available.\n\n")
	}

	format, ok := commandPrompts[command]
	if !ok {
		format = commandPrompts[domain.CommandGeneral]
	}
	fmt.Fprintf(&b, format, query)

	return b.String()
}
