// Package cli implements the scholar command-line interface.
//
// Commands are thin adapters: they parse flags, wire the service graph
// and delegate to the driving ports. Business rules live in the core
// services, never here.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/scholar-cli/internal/logger"
)

// version is set by Execute from the build entrypoint.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "scholar",
	Short: "Conversational research assistant over arXiv papers",
	Long: `Scholar fetches papers from arXiv, keeps a local retrieval index
and answers questions about the papers it has cached.

Start an interactive session with 'scholar chat', or use the direct
commands 'scholar search' and 'scholar summarize'.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command with the given build version.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}
