package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/services"
)

var (
	seedCollection string
	seedWatch      bool
)

var seedCmd = &cobra.Command{
	Use:   "seed [dir]",
	Short: "Seed operator knowledge from a directory",
	Long: `Ingests every .txt and .md file in the directory as base documents.
Skipped when the target collection already holds base documents, so
re-running after a restart does not re-embed the corpus.
With --watch, keeps running and re-ingests files as they change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedCollection, "collection", domain.CollectionDoctrine, "target collection")
	seedCmd.Flags().BoolVar(&seedWatch, "watch", false, "keep watching the directory for changes")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("seed requires OPENAI_API_KEY to be set")
	}

	settings := appSettings.Seed
	settings.Collection = seedCollection
	if len(args) > 0 {
		settings.Dir = args[0]
	}
	if settings.Dir == "" {
		return errors.New("provide a directory argument or set seed.dir in config")
	}

	loader := services.NewBaseLoader(documentStore, ingestService, settings)
	defer loader.Stop()

	ctx := context.Background()

	n, err := loader.Seed(ctx)
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	cmd.Printf("Seeded %d documents into %s.\n", n, settings.Collection)

	if !seedWatch {
		return nil
	}

	cmd.Printf("Watching %s for changes. Ctrl-C to stop.\n", settings.Dir)
	if err := loader.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
