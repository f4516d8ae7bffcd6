package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenacre-dev/farmdesk/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "farmdesk",
		Short:   "Farm back office: access control and double-entry books",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("dir", ".", "farmdesk directory")
	rootCmd.PersistentFlags().String("actor", os.Getenv("USER"), "name recorded in the audit log")

	rootCmd.AddCommand(
		newInitCommand(),
		newJournalCommand(),
		newLedgerCommand(),
		newReportCommand(),
		newAccessCommand(),
		newRoleCommand(),
		newKPICommand(),
		newServeCommand(),
	)

	return rootCmd
}
