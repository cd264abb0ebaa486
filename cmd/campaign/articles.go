package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newArticlesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "articles",
		Short: "List all articles",
		Long:  "Lists every article in the campaign memory with its title and scope.",
		RunE:  runArticles,
	}
}

func runArticles(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		metas := d.ArticleHandler.List(ctx)
		if len(metas) == 0 {
			fmt.Println("No articles found.")
			return nil
		}

		fmt.Printf("Articles (%d total):\n\n", len(metas))
		for _, meta := range metas {
			fmt.Printf("  %-20s %s\n", meta.Slug, meta.Title)
			if meta.Description != "" {
				fmt.Printf("  %-20s %s\n", "", meta.Description)
			}
		}
		return nil
	})
}
