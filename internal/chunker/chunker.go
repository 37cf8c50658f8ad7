// Package chunker splits document text into bounded, overlapping
// passages suitable for embedding.
package chunker

import "strings"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// overlapCharsPerWord approximates characters per word when converting
// the character overlap budget into a trailing word count.
const overlapCharsPerWord = 5

// Chunker splits text on sentence boundaries into chunks of at most
// chunkSize characters, seeding each new chunk with the trailing words
// of the previous one.
//
// The split is lossy by design: boundary heuristics do not guarantee
// round-trip reconstruction, only that concatenating chunks preserves
// approximate ordering.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Split breaks text into chunks. Every non-whitespace input produces at
// least one chunk. No chunk exceeds the chunk size; a single sentence
// longer than the chunk size is truncated to exactly that size and
// emitted on its own.
func (c *Chunker) Split(text string) []string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var current string

	for _, sentence := range sentences {
		// A sentence that cannot fit in a chunk even alone is
		// force-truncated and emitted, avoiding an infinite loop.
		if len(sentence)+1 > c.chunkSize {
			if current != "" {
				chunks = append(chunks, strings.TrimSpace(current))
				current = ""
			}
			chunks = append(chunks, sentence[:c.chunkSize])
			continue
		}

		test := current + sentence + "."
		if len(test) <= c.chunkSize {
			current = test
			continue
		}

		chunks = append(chunks, strings.TrimSpace(current))

		// Seed the next chunk with the trailing overlap words, but
		// never past the chunk size bound.
		seed := c.overlapSeed(current)
		if seed != "" && len(seed)+1+len(sentence)+1 <= c.chunkSize {
			current = seed + " " + sentence + "."
		} else {
			current = sentence + "."
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}

// overlapSeed returns the trailing overlap/5 words of a chunk, a rough
// word-count proxy for the configured character overlap.
func (c *Chunker) overlapSeed(chunk string) string {
	wordCount := c.overlap / overlapCharsPerWord
	if wordCount <= 0 {
		return ""
	}

	words := strings.Fields(chunk)
	if len(words) > wordCount {
		words = words[len(words)-wordCount:]
	}
	return strings.Join(words, " ")
}

// splitSentences splits text on sentence terminators, dropping
// whitespace-only fragments.
func splitSentences(text string) []string {
	var sentences []string
	var b strings.Builder

	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			sentences = append(sentences, s)
		}
		b.Reset()
	}

	for _, r := range text {
		switch r {
		case '.', '!', '?':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()

	return sentences
}
