package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driving"
	"github.com/lectern-ai/lectern/internal/normalisers"
)

var (
	ingestCollection string
	ingestSource     string
	ingestType       string
	ingestText       string
	ingestBase       bool
	ingestReplace    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Add a document to the knowledge base",
	Long: `Chunks a document, embeds each chunk, and stores the result.
Reads from a file argument, or from --text for ad-hoc snippets.
With --replace, chunks from a previous ingestion of the same source
are removed first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCollection, "collection", "", "target collection (default \"user\")")
	ingestCmd.Flags().StringVar(&ingestSource, "source", "", "source identifier (default: file name)")
	ingestCmd.Flags().StringVar(&ingestType, "type", "text", "document type (pdf|web|text)")
	ingestCmd.Flags().StringVar(&ingestText, "text", "", "ingest this text instead of a file")
	ingestCmd.Flags().BoolVar(&ingestBase, "base", false, "mark as operator-seeded base knowledge")
	ingestCmd.Flags().BoolVar(&ingestReplace, "replace", false, "delete previous chunks from this source first")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest requires OPENAI_API_KEY to be set")
	}

	content, source, err := ingestInput(args)
	if err != nil {
		return err
	}
	if ingestSource != "" {
		source = ingestSource
	}

	docType, err := domain.ParseDocumentType(ingestType)
	if err != nil {
		return fmt.Errorf("invalid --type %q (want pdf, web, or text)", ingestType)
	}

	norm := normalisers.Normalise(docType, content)

	ctx := context.Background()
	if ingestReplace {
		if err := ingestService.DeleteSource(ctx, source); err != nil {
			return err
		}
	}

	report, err := ingestService.IngestText(ctx, driving.IngestRequest{
		Content: norm.Content,
		Metadata: domain.Metadata{
			Source:  source,
			AddedBy: currentUser(),
			AddedAt: time.Now().UTC(),
			Type:    docType,
			Title:   norm.Title,
		},
		Collection:     ingestCollection,
		IsBaseDocument: ingestBase,
	})
	if err != nil {
		if report.Stored > 0 {
			// Partial success: report it alongside the failure.
			cmd.Printf("Stored %d of %d chunks from %s before failing.\n",
				report.Stored, report.Chunks, report.Source)
		}
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(),
		"Ingested %s: %d chunks stored.\n", report.Source, report.Stored)
	return nil
}

// ingestInput resolves content and default source from the file
// argument or the --text flag. Ad-hoc text gets a generated source ID.
func ingestInput(args []string) (content, source string, err error) {
	if ingestText != "" {
		return ingestText, "text-" + uuid.NewString()[:8], nil
	}
	if len(args) == 0 {
		return "", "", errors.New("provide a file argument or --text")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), filepath.Base(args[0]), nil
}
