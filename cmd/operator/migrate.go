package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type migrator interface {
	Migrate(ctx context.Context) error
}

var migrateDryRun bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the key/value table in the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if migrateDryRun {
			fmt.Fprintln(out, "Dry run mode - no changes will be made")
			fmt.Fprintln(out, "  - Would migrate kv_entries")
			return nil
		}

		store, err := openStore(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		fmt.Fprintln(out, "Migrating kv_entries...")
		if m, ok := store.(migrator); ok {
			if err := m.Migrate(cmd.Context()); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, "  ✓ kv_entries migrated")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Show what would be migrated without executing")
}
