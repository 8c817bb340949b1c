package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/easeaico/project-zizi/internal/storage"
)

var resetConfirmed bool

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect or reset the stored user memory",
}

var memoryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored memory record and onboarding profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		profile, err := storage.LoadProfile(ctx, store)
		if err != nil {
			return err
		}
		mem, ok, err := storage.NewMemoryRepo(store).Load(ctx)
		if err != nil {
			return err
		}

		out := struct {
			Profile any  `json:"profile"`
			Stored  bool `json:"stored"`
			Memory  any  `json:"memory,omitempty"`
		}{Profile: profile, Stored: ok}
		if ok {
			out.Memory = mem
		}
		raw, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode memory: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	},
}

var memoryResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the stored memory record",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetConfirmed {
			return fmt.Errorf("refusing to reset memory without --yes")
		}
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer store.Close()

		if err := storage.NewMemoryRepo(store).Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "  ✓ memory reset")
		return nil
	},
}

func init() {
	memoryResetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "Confirm deletion")
	memoryCmd.AddCommand(memoryShowCmd, memoryResetCmd)
}
