// Package domain defines the core business entities for Lectern.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A bounded excerpt of a source document, the unit of storage
//   - SearchResult: A chunk scored against a query embedding
//   - Answer: A generated response with its supporting sources
//   - Task: An in-flight AI operation held by a user
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
