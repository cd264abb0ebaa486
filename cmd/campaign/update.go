package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var (
		filePath string
		dateStr  string
	)

	cmd := &cobra.Command{
		Use:   "update <slug>",
		Short: "Append a revision to an article",
		Long: `Appends a new revision with the full replacement body read from a file
or stdin. Earlier revisions are kept; reads before the revision's date
still see the old content.

Examples:
  campaign update characters --file characters.md
  campaign update characters --file characters.md --date 2024-03-01
  cat characters.md | campaign update characters`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args[0], filePath, dateStr)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "File with the replacement body (default stdin)")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Session date the revision belongs to (YYYY-MM-DD)")

	return cmd
}

func runUpdate(cmd *cobra.Command, slug, filePath, dateStr string) error {
	ctx := cmd.Context()

	var sessionDate *time.Time
	if dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			return err
		}
		sessionDate = &parsed
	}

	var content []byte
	var err error
	if filePath != "" {
		content, err = os.ReadFile(filePath)
	} else {
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}

	return withDeps(func(d *Deps) error {
		if err := d.ArticleHandler.Update(ctx, slug, string(content), sessionDate); err != nil {
			return err
		}
		fmt.Printf("Updated %s\n", slug)
		return nil
	})
}
