package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "List collections",
	RunE:  runCollectionsList,
}

var collectionsClearCmd = &cobra.Command{
	Use:   "clear [collection]",
	Short: "Remove every chunk in a collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollectionsClear,
}

var collectionsClearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Remove every chunk in the store",
	Long: `Clears the entire knowledge base. Documents must be re-ingested
afterwards; there is no undo.`,
	RunE: runCollectionsClearAll,
}

func init() {
	collectionsCmd.AddCommand(collectionsClearCmd)
	collectionsCmd.AddCommand(collectionsClearAllCmd)
	rootCmd.AddCommand(collectionsCmd)
}

func runCollectionsList(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	ctx := context.Background()

	collections, err := documentStore.Collections(ctx)
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}
	if len(collections) == 0 {
		cmd.Println("No collections. Ingest a document first.")
		return nil
	}

	for _, collection := range collections {
		stats, err := documentStore.CollectionStats(ctx, collection)
		if err != nil {
			return fmt.Errorf("stats for %s: %w", collection, err)
		}
		cmd.Printf("  %-10s %d chunks, %d sources\n", collection, stats.Documents, len(stats.Sources))
	}
	return nil
}

func runCollectionsClear(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	collection := args[0]
	if err := documentStore.ClearCollection(context.Background(), collection); err != nil {
		return fmt.Errorf("clearing %s: %w", collection, err)
	}
	cmd.Printf("Collection %s cleared.\n", collection)
	return nil
}

func runCollectionsClearAll(cmd *cobra.Command, _ []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}

	if err := documentStore.ClearAll(context.Background()); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	cmd.Println("Knowledge base cleared. Documents must be re-ingested.")
	return nil
}
