// Package sqlite provides the SQLite-backed implementation of the
// DocumentStore port: a durable store of chunks and their embeddings in
// a single local database file, with linear-scan cosine similarity search.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// Two logical tables: documents (content, metadata JSON, chunk index,
// collection, base-document flag) and vectors (embedding serialized as a
// JSON numeric array, one row per document, cascade-deleted). Embeddings
// are plain serialized arrays, not a native vector type.
//
// The schema is managed through versioned migrations stored in the
// migrations/ directory. Databases created before collections existed
// are backfilled on open: the collection and is_base_document columns
// are added with defaults ("user", false) without data loss.
//
// # Data Location
//
// By default, the database is stored at ~/.lectern/data/knowledge.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode. Each search sees a consistent snapshot.
package sqlite
