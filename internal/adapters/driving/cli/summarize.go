package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [query]",
	Short: "Summarize the cached paper most relevant to a query",
	Long: `Ranks the local index against the query and produces a structured
summary of the best-matching paper.

If the index is empty, matching papers are fetched from arXiv first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if summarizerService == nil {
		return errors.New("summarizer service not configured")
	}

	summary, err := summarizerService.Summarize(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("summarize failed: %w", err)
	}

	cmd.Println(summary)
	return nil
}
