package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect the local paper index",
}

var indexListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed papers",
	Long: `Lists every record in the local retrieval index in insertion order.
The index is append-only, so a paper fetched twice appears twice.`,
	Args: cobra.NoArgs,
	RunE: runIndexList,
}

func init() {
	indexCmd.AddCommand(indexListCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexList(cmd *cobra.Command, _ []string) error {
	store, err := ensureIndexStore()
	if err != nil {
		return err
	}

	records, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("Index is empty. Run 'scholar search' to fetch papers.")
		return nil
	}

	for i := range records {
		cmd.Printf("  [%d] %s\n", i+1, records[i].Title)
		cmd.Printf("      %s\n", records[i].LocalPath)
	}
	cmd.Printf("\n%d records indexed.\n", len(records))

	return nil
}
