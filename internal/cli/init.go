package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/internal/paths"
	"github.com/mesh-intelligence/todolist/internal/sqlite"
	"github.com/mesh-intelligence/todolist/pkg/types"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and storage",
		Long:  "Create the configuration directory with a default config.yaml, then create the database tables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(flags)
			if err != nil {
				return err
			}
			if err := withStore(s, func(*sqlite.Backend) error { return nil }); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\n", paths.ConfigFile(s.ConfigDir))
			if s.Backend == types.BackendSQLite {
				fmt.Fprintf(out, "data:   %s\n", s.DataDir)
			}
			fmt.Fprintln(out, "todolist initialized")
			return nil
		},
	}
}
