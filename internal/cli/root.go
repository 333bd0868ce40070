// Package cli implements the todolist command line: a cobra root with
// serve, init, export, import and version subcommands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

const exitFailure = 1

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	configDir string
	dataDir   string
}

// NewRootCmd creates the top-level "todolist" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "todolist",
		Short: "Team and to-do item service",
		Long:  "todolist serves a JSON API for teams and their to-do items\nbacked by SQLite or MySQL.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/todolist)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: ./.todolist-db)")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newImportCmd(flags))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(exitFailure)
	}
}
