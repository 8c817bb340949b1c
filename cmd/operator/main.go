// Package main provides the operator CLI for deployment and operations tasks.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/easeaico/project-zizi/internal/config"
	"github.com/easeaico/project-zizi/internal/storage"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "operator",
	Short:         "project-zizi operator - deployment and operations CLI",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "project-zizi operator v%s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd, migrateCmd, validateCmd, memoryCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openStore opens the configured store with a bounded connect time.
func openStore(ctx context.Context) (storage.KV, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	databaseURL, storePath := storeTarget()
	return storage.NewStore(ctx, databaseURL, storePath)
}

// storeTarget resolves the store location without requiring model settings.
func storeTarget() (databaseURL, storePath string) {
	if cfg, err := config.Parse(); err == nil {
		return cfg.DatabaseURL, cfg.StorePath
	}
	databaseURL = os.Getenv("DATABASE_URL")
	storePath = os.Getenv("STORE_PATH")
	if storePath == "" {
		workDir := os.Getenv("WORK_DIR")
		if workDir == "" {
			workDir, _ = os.Getwd()
		}
		storePath = workDir + string(os.PathSeparator) + "zizi.db"
	}
	return databaseURL, storePath
}
