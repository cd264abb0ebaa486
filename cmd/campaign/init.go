package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/campaign-memory/internal/application/handlers"
	"github.com/ersonp/campaign-memory/internal/infrastructure/config"
	"github.com/ersonp/campaign-memory/internal/infrastructure/relationaldb/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new campaign memory store",
		Long:  "Creates a .campaign directory with default configuration and seeds the starter articles.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	// The database lives inside the config directory, which must exist
	// before the connection can open the file.
	if err := os.MkdirAll(config.ConfigDir(cwd), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	db, err := sqlite.NewRepository(config.SQLiteConfig{Path: config.DatabasePath(cwd)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer db.Close()

	result, err := handlers.NewInitHandler(db).Handle(ctx, cwd)
	if err != nil {
		return err
	}

	fmt.Printf("Created %s\n", result.ConfigPath)
	fmt.Printf("Created %s with %d starter articles\n", result.DatabasePath, result.Articles)
	fmt.Println("Campaign initialized successfully!")

	return nil
}
