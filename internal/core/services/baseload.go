package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driven"
	"github.com/lectern-ai/lectern/internal/core/ports/driving"
	"github.com/lectern-ai/lectern/internal/logger"
)

// BaseLoader seeds operator knowledge from a local directory of .txt
// and .md files. Seeding is skipped when the target collection already
// has base documents, so a restart does not re-embed the whole corpus.
// With watching enabled, changed files are re-ingested in place.
type BaseLoader struct {
	store    driven.DocumentStore
	ingestor driving.Ingestor
	settings domain.SeedSettings
	addedBy  string

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	wg      sync.WaitGroup
}

// NewBaseLoader creates a loader for the given seed settings.
func NewBaseLoader(store driven.DocumentStore, ingestor driving.Ingestor, settings domain.SeedSettings) *BaseLoader {
	return &BaseLoader{
		store:    store,
		ingestor: ingestor,
		settings: settings,
		addedBy:  "system",
	}
}

// Seed ingests every seed file unless the collection is already seeded.
// Returns the number of documents ingested.
func (b *BaseLoader) Seed(ctx context.Context) (int, error) {
	if b.settings.Dir == "" {
		return 0, nil
	}

	seeded, err := b.store.HasBaseDocuments(ctx, b.settings.Collection)
	if err != nil {
		return 0, fmt.Errorf("checking base documents: %w", err)
	}
	if seeded {
		logger.Info("seed: collection %s already seeded, skipping", b.settings.Collection)
		return 0, nil
	}

	entries, err := os.ReadDir(b.settings.Dir)
	if err != nil {
		return 0, fmt.Errorf("reading seed directory: %w", err)
	}

	ingested := 0
	for _, entry := range entries {
		if entry.IsDir() || !isSeedFile(entry.Name()) {
			continue
		}
		if err := b.ingestFile(ctx, filepath.Join(b.settings.Dir, entry.Name())); err != nil {
			return ingested, err
		}
		ingested++
	}

	logger.Info("seed: ingested %d documents into %s", ingested, b.settings.Collection)
	return ingested, nil
}

// ingestFile re-ingests a single seed file, replacing any chunks from a
// previous version of it.
func (b *BaseLoader) ingestFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading seed file %s: %w", path, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil
	}

	source := filepath.Base(path)
	if err := b.ingestor.DeleteSource(ctx, source); err != nil {
		return err
	}

	_, err = b.ingestor.IngestText(ctx, driving.IngestRequest{
		Content: string(content),
		Metadata: domain.Metadata{
			Source:  source,
			AddedBy: b.addedBy,
			AddedAt: time.Now().UTC(),
			Type:    domain.DocumentTypeText,
			Title:   strings.TrimSuffix(source, filepath.Ext(source)),
		},
		Collection:     b.settings.Collection,
		IsBaseDocument: true,
	})
	return err
}

// Watch re-ingests seed files as they change on disk. Blocks until the
// context is cancelled or Stop is called.
func (b *BaseLoader) Watch(ctx context.Context) error {
	if b.settings.Dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(b.settings.Dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", b.settings.Dir, err)
	}

	b.mu.Lock()
	b.watcher = watcher
	b.mu.Unlock()

	b.wg.Add(1)
	defer b.wg.Done()

	logger.Info("seed: watching %s", b.settings.Dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isSeedFile(event.Name) {
				continue
			}
			logger.Info("seed: re-ingesting changed file %s", event.Name)
			if err := b.ingestFile(ctx, event.Name); err != nil {
				logger.Error("seed: re-ingest %s: %v", event.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("seed: watch error: %v", err)
		}
	}
}

// Stop closes the watcher and waits for the watch loop to exit.
func (b *BaseLoader) Stop() {
	b.mu.Lock()
	watcher := b.watcher
	b.watcher = nil
	b.mu.Unlock()

	if watcher != nil {
		watcher.Close()
	}
	b.wg.Wait()
}

// isSeedFile reports whether a path names an ingestible seed file.
func isSeedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	default:
		return false
	}
}
