package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionsFor(t *testing.T) {
	tests := []struct {
		name string
		cmd  CommandType
		want []string
	}{
		{"analysis searches doctrine only", CommandAnalysis, []string{CollectionDoctrine}},
		{"digest searches digests only", CommandDigest, []string{CollectionDigests}},
		{"lookup includes user knowledge", CommandLookup, []string{CollectionLore, DefaultCollection}},
		{"question searches everything", CommandQuestion, []string{CollectionLore, CollectionDoctrine, CollectionDigests, DefaultCollection}},
		{"general defaults to user", CommandGeneral, []string{DefaultCollection}},
		{"unknown falls back to general", CommandType("bogus"), []string{DefaultCollection}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CollectionsFor(tt.cmd))
		})
	}
}

func TestCollectionsFor_ReturnsCopy(t *testing.T) {
	cols := CollectionsFor(CommandLookup)
	cols[0] = "mutated"
	assert.Equal(t, []string{CollectionLore, DefaultCollection}, CollectionsFor(CommandLookup))
}

func TestParseCommandType(t *testing.T) {
	assert.Equal(t, CommandAnalysis, ParseCommandType("analysis"))
	assert.Equal(t, CommandQuestion, ParseCommandType("question"))
	assert.Equal(t, CommandGeneral, ParseCommandType(""))
	assert.Equal(t, CommandGeneral, ParseCommandType("nonsense"))
}

func TestParseDocumentType(t *testing.T) {
	for _, valid := range []string{"pdf", "web", "text"} {
		got, err := ParseDocumentType(valid)
		assert.NoError(t, err)
		assert.Equal(t, DocumentType(valid), got)
	}

	_, err := ParseDocumentType("docx")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChunkID(t *testing.T) {
	assert.Equal(t, "codex_chunk_0", ChunkID("codex", 0))
	assert.Equal(t, "https://example.com/page_chunk_12", ChunkID("https://example.com/page", 12))
}
