package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fetch papers on a topic into the local index",
	Long: `Searches arXiv for papers matching the query, downloads each hit
and appends it to the local retrieval index.

Fetched papers become available to 'scholar summarize' and to the
chat assistant immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if librarianService == nil {
		return errors.New("librarian service not configured")
	}

	summaries, err := librarianService.SearchAndCache(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(summaries) == 0 {
		cmd.Println("No papers found.")
		return nil
	}

	cmd.Printf("Fetched %d papers:\n\n", len(summaries))
	for i := range summaries {
		cmd.Printf("  [%d] %s\n", i+1, summaries[i].Title)
		if summaries[i].URL != "" {
			cmd.Printf("      %s\n", summaries[i].URL)
		}
	}

	return nil
}
