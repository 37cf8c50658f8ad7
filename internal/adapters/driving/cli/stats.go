package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	RunE:  runStats,
}

var statsVacuumCmd = &cobra.Command{
	Use:   "vacuum",
	Short: "Compact the database file",
	RunE:  runVacuum,
}

func init() {
	statsCmd.AddCommand(statsVacuumCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	ctx := context.Background()

	stats, err := documentStore.Stats(ctx)
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	cmd.Printf("Chunks:  %d\n", stats.Documents)
	cmd.Printf("Sources: %d\n", len(stats.Sources))

	if len(stats.Types) > 0 {
		cmd.Println("\nBy type:")
		for docType, count := range stats.Types {
			cmd.Printf("  %-6s %d\n", docType, count)
		}
	}

	collections, err := documentStore.Collections(ctx)
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	if len(collections) > 0 {
		cmd.Println("\nBy collection:")
		for _, collection := range collections {
			cs, err := documentStore.CollectionStats(ctx, collection)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", collection, err)
			}
			cmd.Printf("  %-10s %d chunks, %d sources\n", collection, cs.Documents, len(cs.Sources))
		}
	}

	return nil
}

func runVacuum(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	if err := documentStore.Vacuum(context.Background()); err != nil {
		return fmt.Errorf("vacuum failed: %w", err)
	}
	cmd.Println("Database compacted.")
	return nil
}
