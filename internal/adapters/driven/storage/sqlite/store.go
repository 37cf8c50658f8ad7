package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lectern-ai/lectern/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentStore = (*Store)(nil)

// Store is the SQLite-backed document and embedding store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.lectern/data/knowledge.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lectern", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "knowledge.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys so vectors cascade with their documents
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations; this also backfills pre-collection databases
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Add upserts a single chunk. The content row and the embedding row are
// committed in one transaction, never one without the other.
func (s *Store) Add(ctx context.Context, chunk domain.Chunk) error {
	if chunk.ID == "" {
		return domain.ErrInvalidInput
	}

	metadataJSON, err := json.Marshal(chunk.Metadata)
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	embeddingJSON, err := json.Marshal(chunk.Embedding)
	if err != nil {
		return fmt.Errorf("marshalling embedding: %w", err)
	}

	collection := chunk.Collection
	if collection == "" {
		collection = domain.DefaultCollection
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (id, content, metadata, chunk_index, collection, is_base_document)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			metadata = excluded.metadata,
			chunk_index = excluded.chunk_index,
			collection = excluded.collection,
			is_base_document = excluded.is_base_document
	`, chunk.ID, chunk.Content, string(metadataJSON), chunk.ChunkIndex,
		collection, boolToInt(chunk.IsBaseDocument))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vectors (document_id, embedding)
		VALUES (?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			embedding = excluded.embedding
	`, chunk.ID, string(embeddingJSON))
	if err != nil {
		return fmt.Errorf("saving embedding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// AddBatch upserts chunks one transaction each. A failing chunk does
// not abort the batch; the result reports exactly how many succeeded.
func (s *Store) AddBatch(ctx context.Context, chunks []domain.Chunk) (driven.BatchResult, error) {
	var result driven.BatchResult
	for i := range chunks {
		if err := s.Add(ctx, chunks[i]); err != nil {
			result.Failed++
			if result.FirstErr == nil {
				result.FirstErr = fmt.Errorf("chunk %s: %w", chunks[i].ID, err)
			}
			continue
		}
		result.Succeeded++
	}
	return result, nil
}

// Search scores every stored embedding against the query with cosine
// similarity. This is a full linear scan; acceptable at thousands of
// chunks, and the known scaling ceiling of this store.
func (s *Store) Search(ctx context.Context, queryEmbedding []float32, opts domain.SearchOptions) ([]domain.SearchResult, error) {
	query := `
		SELECT d.id, d.content, d.metadata, d.chunk_index, d.collection, d.is_base_document, v.embedding
		FROM documents d
		JOIN vectors v ON d.id = v.document_id
	`
	var args []any
	if len(opts.Collections) > 0 {
		placeholders := strings.Repeat("?,", len(opts.Collections))
		query += " WHERE d.collection IN (" + placeholders[:len(placeholders)-1] + ")"
		for _, c := range opts.Collections {
			args = append(args, c)
		}
	}
	// Insertion order makes the similarity tie-break deterministic.
	query += " ORDER BY d.rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var results []domain.SearchResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}

		similarity := domain.CosineSimilarity(queryEmbedding, chunk.Embedding)
		if similarity < opts.Threshold {
			continue
		}

		results = append(results, domain.SearchResult{
			Chunk:      *chunk,
			Similarity: similarity,
			Source:     chunk.Metadata.Source,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	// Stable sort keeps insertion order between equal similarities.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, nil
}

// DeleteBySource removes all chunks whose metadata source matches.
// Embeddings cascade with their documents.
func (s *Store) DeleteBySource(ctx context.Context, source string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE json_extract(metadata, '$.source') = ?
	`, source)
	if err != nil {
		return fmt.Errorf("deleting documents by source: %w", err)
	}
	return nil
}

// ClearCollection removes every chunk in the named collection.
func (s *Store) ClearCollection(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE collection = ?", collection)
	if err != nil {
		return fmt.Errorf("clearing collection: %w", err)
	}
	return nil
}

// ClearAll removes every chunk unconditionally.
func (s *Store) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	return nil
}

// HasBaseDocuments reports whether any operator-seeded chunk exists,
// optionally scoped to a collection. Used to avoid re-seeding operator
// knowledge on every restart.
func (s *Store) HasBaseDocuments(ctx context.Context, collection string) (bool, error) {
	query := "SELECT EXISTS(SELECT 1 FROM documents WHERE is_base_document = 1"
	var args []any
	if collection != "" {
		query += " AND collection = ?"
		args = append(args, collection)
	}
	query += ")"

	var exists int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking base documents: %w", err)
	}
	return exists == 1, nil
}

// Collections lists the distinct collection names present.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT collection FROM documents ORDER BY collection")
	if err != nil {
		return nil, fmt.Errorf("querying collections: %w", err)
	}
	defer rows.Close()

	var collections []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		collections = append(collections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}

	return collections, nil
}

// Stats summarises the whole store.
func (s *Store) Stats(ctx context.Context) (domain.StoreStats, error) {
	stats := domain.StoreStats{Types: make(map[domain.DocumentType]int)}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&stats.Documents); err != nil {
		return stats, fmt.Errorf("counting documents: %w", err)
	}

	sources, err := s.distinctSources(ctx, "")
	if err != nil {
		return stats, err
	}
	stats.Sources = sources

	rows, err := s.db.QueryContext(ctx, `
		SELECT json_extract(metadata, '$.type') AS type, COUNT(*)
		FROM documents
		GROUP BY json_extract(metadata, '$.type')
	`)
	if err != nil {
		return stats, fmt.Errorf("querying type histogram: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var typ sql.NullString
		var count int
		if err := rows.Scan(&typ, &count); err != nil {
			return stats, fmt.Errorf("scanning type histogram: %w", err)
		}
		stats.Types[domain.DocumentType(typ.String)] = count
	}

	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterating type histogram: %w", err)
	}

	return stats, nil
}

// CollectionStats summarises a single collection.
func (s *Store) CollectionStats(ctx context.Context, collection string) (domain.CollectionStats, error) {
	var stats domain.CollectionStats

	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE collection = ?", collection,
	).Scan(&stats.Documents)
	if err != nil {
		return stats, fmt.Errorf("counting collection documents: %w", err)
	}

	sources, err := s.distinctSources(ctx, collection)
	if err != nil {
		return stats, err
	}
	stats.Sources = sources

	return stats, nil
}

// Vacuum compacts the database file.
func (s *Store) Vacuum(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("vacuuming database: %w", err)
	}
	return nil
}

// distinctSources lists distinct metadata sources, optionally scoped to
// a collection (empty string means all).
func (s *Store) distinctSources(ctx context.Context, collection string) ([]string, error) {
	query := "SELECT DISTINCT json_extract(metadata, '$.source') FROM documents"
	var args []any
	if collection != "" {
		query += " WHERE collection = ?"
		args = append(args, collection)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sources: %w", err)
	}
	defer rows.Close()

	var sources []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var source sql.NullString
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("scanning source: %w", err)
		}
		if source.Valid {
			sources = append(sources, source.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sources: %w", err)
	}

	return sources, nil
}

// scanChunk scans a chunk from a joined documents/vectors row.
func scanChunk(rows *sql.Rows) (*domain.Chunk, error) {
	var chunk domain.Chunk
	var metadataJSON, embeddingJSON string
	var isBase int

	if err := rows.Scan(&chunk.ID, &chunk.Content, &metadataJSON,
		&chunk.ChunkIndex, &chunk.Collection, &isBase, &embeddingJSON); err != nil {
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.IsBaseDocument = isBase == 1

	if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshaling metadata: %w", err)
	}

	if err := json.Unmarshal([]byte(embeddingJSON), &chunk.Embedding); err != nil {
		return nil, fmt.Errorf("unmarshaling embedding: %w", err)
	}

	return &chunk, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
