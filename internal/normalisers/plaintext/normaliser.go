// Package plaintext normalises already-extracted text.
package plaintext

import "strings"

// Normalise standardises line endings and trims surrounding whitespace.
// The text content itself is left untouched.
func Normalise(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.TrimSpace(content)
}
