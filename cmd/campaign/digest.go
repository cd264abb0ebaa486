package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/campaign-memory/internal/application/handlers"
)

func newDigestCmd() *cobra.Command {
	var (
		dateStr string
		slugs   []string
	)

	cmd := &cobra.Command{
		Use:   "digest <file>",
		Short: "Fold a session digest into the campaign memory",
		Long: `Reads a session digest and asks the LLM to fold its facts into each
article. Articles the digest doesn't touch are left unchanged. The
session date is taken from the filename (YYYY-MM-DD.md) unless --date
is given.

Examples:
  campaign digest transcripts/digests/2024-03-01.md
  campaign digest notes.md --date 2024-03-01
  campaign digest notes.md --date 2024-03-01 --articles characters,locations`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, args[0], slugs, dateStr)
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Session date (YYYY-MM-DD, default from filename)")
	cmd.Flags().StringSliceVarP(&slugs, "articles", "a", nil, "Only consider these articles")

	return cmd
}

func runDigest(cmd *cobra.Command, digestPath string, slugs []string, dateStr string) error {
	ctx := cmd.Context()

	var sessionDate time.Time
	if dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			return err
		}
		sessionDate = parsed
	}

	return withDigestHandler(func(handler *handlers.DigestHandler) error {
		result, err := handler.Handle(ctx, digestPath, slugs, sessionDate)
		if result != nil {
			for _, slug := range result.Updated {
				fmt.Printf("Updated %s\n", slug)
			}
			for _, slug := range result.Unchanged {
				fmt.Printf("Unchanged %s\n", slug)
			}
		}
		if err != nil {
			return err
		}

		fmt.Printf("\nDigest applied: %d updated, %d unchanged\n", len(result.Updated), len(result.Unchanged))
		return nil
	})
}
