package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/campaign-memory/internal/application/handlers"
)

func newImportCmd() *cobra.Command {
	var (
		update  bool
		dateStr string
	)

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import articles from markdown files",
		Long: `Imports a markdown file (or every markdown file in a directory) as
articles. Frontmatter supplies slug, title and description; missing
fields are derived from the filename and first heading.

Examples:
  campaign import notes/villains.md
  campaign import notes/ --update
  campaign import notes/villains.md --update --date 2024-03-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], update, dateStr)
		},
	}

	cmd.Flags().BoolVarP(&update, "update", "u", false, "Append a revision when the article already exists")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Session date for appended revisions (YYYY-MM-DD)")

	return cmd
}

func runImport(cmd *cobra.Command, path string, update bool, dateStr string) error {
	ctx := cmd.Context()

	opts := handlers.ImportOptions{Update: update}
	if dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			return err
		}
		opts.SessionDate = &parsed
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return withDeps(func(d *Deps) error {
		if info.IsDir() {
			results, err := d.ImportHandler.HandleDir(ctx, path, opts)
			for _, result := range results {
				printImportResult(result)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d articles\n", len(results))
			return nil
		}

		result, err := d.ImportHandler.Handle(ctx, path, opts)
		if err != nil {
			return err
		}
		printImportResult(*result)
		return nil
	})
}

func printImportResult(result handlers.ImportResult) {
	verb := "Updated"
	if result.Created {
		verb = "Created"
	}
	fmt.Printf("%s %s (%s)\n", verb, result.Slug, result.Title)
}
