package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/core/domain"
)

var (
	searchLimit       int
	searchThreshold   float64
	searchCollections []string
	searchJSON        bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the knowledge base by similarity",
	Long: `Embeds the query and scans the stored chunks with cosine similarity.
Shows the raw retrieval results without invoking generation.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", 0.7, "minimum similarity")
	searchCmd.Flags().StringSliceVar(&searchCollections, "collections", nil, "restrict to these collections")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if documentStore == nil {
		return errors.New("document store not configured")
	}
	if embedService == nil {
		return errors.New("search requires OPENAI_API_KEY to be set")
	}

	ctx := context.Background()

	queryEmbedding, err := embedService.Embed(ctx, args[0])
	if err != nil {
		return fmt.Errorf("embedding query: %w", err)
	}

	results, err := documentStore.Search(ctx, queryEmbedding, domain.SearchOptions{
		Limit:       searchLimit,
		Threshold:   searchThreshold,
		Collections: searchCollections,
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s (%.2f, %s)\n", i+1, r.Source, r.Similarity, r.Chunk.Collection)

		content := r.Chunk.Content
		if len(content) > 160 {
			content = content[:160] + "..."
		}
		cmd.Printf("      %s\n", content)
		cmd.Println()
	}

	return nil
}
