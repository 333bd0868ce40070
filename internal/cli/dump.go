package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/todolist/internal/sqlite"
)

// withStore attaches the configured store, runs fn and detaches.
func withStore(s *settings, fn func(*sqlite.Backend) error) error {
	store := sqlite.NewBackend()
	if err := store.Attach(s.storeConfig()); err != nil {
		return fmt.Errorf("attach store: %w", err)
	}
	defer store.Detach()
	return fn(store)
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write all teams and items to JSONL files",
		Long:  "Write " + sqlite.TeamsJSONL + " and " + sqlite.ItemsJSONL + " into dir, replacing existing files.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(flags)
			if err != nil {
				return err
			}
			return withStore(s, func(store *sqlite.Backend) error {
				if err := store.Export(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
				return nil
			})
		},
	}
}

func newImportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Load teams and items from JSONL files",
		Long:  "Load " + sqlite.TeamsJSONL + " and " + sqlite.ItemsJSONL + " from dir in one transaction, keeping record ids.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(flags)
			if err != nil {
				return err
			}
			return withStore(s, func(store *sqlite.Backend) error {
				stats, err := store.Import(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d teams, %d items\n", stats.Teams, stats.Items)
				return nil
			})
		},
	}
}
