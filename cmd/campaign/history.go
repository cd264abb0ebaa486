package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var showContent bool

	cmd := &cobra.Command{
		Use:   "history <slug>",
		Short: "Show an article's revision history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, args[0], showContent)
		},
	}

	cmd.Flags().BoolVar(&showContent, "content", false, "Print each revision's full body")

	return cmd
}

func runHistory(cmd *cobra.Command, slug string, showContent bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		revisions, err := d.ArticleHandler.History(ctx, slug)
		if err != nil {
			return err
		}

		fmt.Printf("History of %s (%d revisions, newest first):\n\n", slug, len(revisions))
		for _, rev := range revisions {
			fmt.Printf("  %s  effective %s  [%s]  %d lines\n",
				rev.CreatedAt.Format("2006-01-02 15:04"),
				rev.EffectiveDate().Format(DateLayout),
				rev.Source,
				strings.Count(rev.ContentMD, "\n")+1,
			)
			if showContent {
				fmt.Println()
				fmt.Println(rev.ContentMD)
				fmt.Println(strings.Repeat("-", 40))
			}
		}
		return nil
	})
}
