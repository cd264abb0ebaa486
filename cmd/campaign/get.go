package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var (
		dateStr string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "get [slug...]",
		Short: "Read articles as of a date",
		Long: `Prints each article's content as it existed on or before the given
date. Facts recorded in later sessions are never shown, so preparing an
earlier session cannot spoil later ones.

Examples:
  campaign get characters
  campaign get characters locations --date 2024-03-01
  campaign get --all --date 2024-03-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args, dateStr, all)
		},
	}

	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Cutoff date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&all, "all", false, "Read every article")

	return cmd
}

func runGet(cmd *cobra.Command, args []string, dateStr string, all bool) error {
	ctx := cmd.Context()

	cutoff := today()
	if dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			return err
		}
		cutoff = parsed
	}

	return withDeps(func(d *Deps) error {
		slugs := args
		if all {
			for _, meta := range d.ArticleHandler.List(ctx) {
				slugs = append(slugs, meta.Slug)
			}
		}

		result, err := d.ArticleHandler.Get(ctx, slugs, cutoff)
		if err != nil {
			return err
		}

		for i, slug := range slugs {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("=== %s (as of %s) ===\n", slug, result.AsOf.Format(DateLayout))
			if content := result.Articles[slug]; content != "" {
				fmt.Println(content)
			} else {
				fmt.Println("(no content on or before this date)")
			}
		}
		return nil
	})
}
