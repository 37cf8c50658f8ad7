package cli

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/adapters/driven/ai"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check provider connectivity",
	Long: `Pings the configured embedding and generation providers and reports
whether each is reachable with the current keys and settings.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if embedService == nil || llmService == nil {
		return errors.New("providers not configured; set OPENAI_API_KEY (or configure ollama) first")
	}

	ok := true

	cmd.Printf("Embedding (%s): ", embedService.ModelName())
	if err := ai.ValidateEmbeddingService(embedService); err != nil {
		color.New(color.FgRed).Fprintln(cmd.OutOrStdout(), "unreachable")
		cmd.Printf("  %v\n", err)
		ok = false
	} else {
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "ok")
	}

	cmd.Printf("LLM (%s): ", llmService.ModelName())
	if err := ai.ValidateLLMService(llmService); err != nil {
		color.New(color.FgRed).Fprintln(cmd.OutOrStdout(), "unreachable")
		cmd.Printf("  %v\n", err)
		ok = false
	} else {
		color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "ok")
	}

	stats, err := documentStore.Stats(context.Background())
	if err != nil {
		return err
	}
	cmd.Printf("Store: %d chunks, %d sources\n", stats.Documents, len(stats.Sources))

	if !ok {
		return errors.New("one or more providers are unreachable")
	}
	return nil
}
