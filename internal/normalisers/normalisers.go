// Package normalisers turns raw document content into clean text ready
// for chunking. Each document type has its own normaliser; the content
// stored and embedded is always the normalised form.
package normalisers

import (
	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/normalisers/html"
	"github.com/lectern-ai/lectern/internal/normalisers/plaintext"
)

// Result is normalised content plus any title recovered from it.
// Title is empty when the content carries none.
type Result struct {
	Title   string
	Content string
}

// Normalise cleans content according to its document type. Web content
// has its markup stripped; everything else is treated as already
// extracted text. PDF content is expected to be pre-extracted.
func Normalise(docType domain.DocumentType, content string) Result {
	switch docType {
	case domain.DocumentTypeWeb:
		title, text := html.Normalise(content)
		return Result{Title: title, Content: text}
	default:
		return Result{Content: plaintext.Normalise(content)}
	}
}
