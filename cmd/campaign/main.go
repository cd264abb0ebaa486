// Package main provides the entry point for the campaign CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalVerbose bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "campaign",
		Short:   "A session-dated knowledge store for tabletop campaigns",
		Version: version,
	}

	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInitCmd(),
		newArticlesCmd(),
		newGetCmd(),
		newUpdateCmd(),
		newHistoryCmd(),
		newImportCmd(),
		newDigestCmd(),
		newEntitiesCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
