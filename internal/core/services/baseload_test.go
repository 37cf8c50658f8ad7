package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern-ai/lectern/internal/core/domain"
)

func writeSeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestBaseLoader_SeedsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, dir, "creed.txt", "The founding creed.")
	writeSeedFile(t, dir, "notes.md", "# Notes\nStudy notes.")
	writeSeedFile(t, dir, "ignore.pdf", "binary")
	writeSeedFile(t, dir, "empty.txt", "   ")

	ingestor := &fakeIngestor{}
	loader := NewBaseLoader(&fakeStore{}, ingestor, domain.SeedSettings{
		Dir:        dir,
		Collection: domain.CollectionDoctrine,
	})

	n, err := loader.Seed(context.Background())
	require.NoError(t, err)

	// The .pdf is skipped; the blank .txt is visited but ingests nothing.
	assert.Equal(t, 3, n)
	require.Len(t, ingestor.requests, 2)

	for _, req := range ingestor.requests {
		assert.Equal(t, domain.CollectionDoctrine, req.Collection)
		assert.True(t, req.IsBaseDocument)
		assert.Equal(t, "system", req.Metadata.AddedBy)
	}

	// Previous chunks from each seed file are dropped before re-ingest.
	assert.ElementsMatch(t, []string{"creed.txt", "notes.md"}, ingestor.deleted)
}

func TestBaseLoader_SkipsWhenAlreadySeeded(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, dir, "creed.txt", "The founding creed.")

	ingestor := &fakeIngestor{}
	loader := NewBaseLoader(&fakeStore{hasBase: true}, ingestor, domain.SeedSettings{
		Dir:        dir,
		Collection: domain.CollectionDoctrine,
	})

	n, err := loader.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, ingestor.requests)
}

func TestBaseLoader_NoDirConfigured(t *testing.T) {
	loader := NewBaseLoader(&fakeStore{}, &fakeIngestor{}, domain.SeedSettings{})

	n, err := loader.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, loader.Watch(context.Background()))
}

func TestIsSeedFile(t *testing.T) {
	assert.True(t, isSeedFile("creed.txt"))
	assert.True(t, isSeedFile("notes.MD"))
	assert.False(t, isSeedFile("scan.pdf"))
	assert.False(t, isSeedFile("creed"))
}
