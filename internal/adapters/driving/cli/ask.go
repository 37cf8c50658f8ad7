package cli

import (
	"context"
	"errors"
	"os/user"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/core/domain"
	"github.com/lectern-ai/lectern/internal/core/ports/driving"
)

var (
	askCommand string
	askUser    string
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask a question against the knowledge base",
	Long: `Answers a question with retrieval-augmented generation. The command
type selects which collections are searched for context:

  analysis   doctrine
  digest     digests
  lookup     lore + user
  question   all collections
  general    user (default)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askCommand, "command", "c", "general", "command type (analysis|digest|lookup|question|general)")
	askCmd.Flags().StringVarP(&askUser, "user", "u", "", "user identity for gating and rate limiting")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("ask requires OPENAI_API_KEY to be set")
	}

	query := strings.Join(args, " ")
	userID := askUser
	if userID == "" {
		userID = currentUser()
	}

	outcome := chatService.Ask(context.Background(), driving.AskRequest{
		UserID:    userID,
		Username:  userID,
		ChannelID: "cli",
		Query:     query,
		Command:   domain.ParseCommandType(askCommand),
	})

	switch outcome.Status {
	case domain.AskBusy:
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(),
			"The system is busy answering %s. Try again shortly.\n", outcome.BusyWith)
	case domain.AskRateLimited:
		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(),
			"Rate limit reached. Try again in %d seconds.\n", outcome.RetryAfterSeconds)
	case domain.AskAnswered:
		printAnswer(cmd, outcome.Answer)
	}

	return nil
}

func printAnswer(cmd *cobra.Command, answer domain.Answer) {
	cmd.Println(answer.Response)

	if len(answer.Sources) > 0 {
		cmd.Println()
		color.New(color.FgCyan).Fprintln(cmd.OutOrStdout(), "Sources:")
		for _, src := range answer.Sources {
			cmd.Printf("  %s (%.0f%%)\n", src.Source, src.Similarity*100)
		}
	}
	if answer.TokensUsed > 0 {
		cmd.Printf("\n%s\n", color.New(color.Faint).Sprintf("%d tokens", answer.TokensUsed))
	}
}

// currentUser falls back to a fixed identity when the OS user is
// unavailable.
func currentUser() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "cli"
	}
	return u.Username
}
