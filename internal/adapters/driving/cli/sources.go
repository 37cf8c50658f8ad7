package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List ingested sources",
	RunE:  runSourcesList,
}

var sourcesDeleteCmd = &cobra.Command{
	Use:   "delete [source]",
	Short: "Remove every chunk from a source",
	Long:  `Removes all chunks ingested from the named source, typically before re-ingesting a corrected version.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesDelete,
}

func init() {
	sourcesCmd.AddCommand(sourcesDeleteCmd)
	rootCmd.AddCommand(sourcesCmd)
}

func runSourcesList(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	stats, err := documentStore.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("listing sources: %w", err)
	}
	if len(stats.Sources) == 0 {
		cmd.Println("No sources. Ingest a document first.")
		return nil
	}

	for _, source := range stats.Sources {
		cmd.Printf("  %s\n", source)
	}
	cmd.Printf("\nTotal: %d sources\n", len(stats.Sources))
	return nil
}

func runSourcesDelete(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	source := args[0]
	if err := documentStore.DeleteBySource(context.Background(), source); err != nil {
		return fmt.Errorf("deleting %s: %w", source, err)
	}
	cmd.Printf("Deleted all chunks from %s.\n", source)
	return nil
}
