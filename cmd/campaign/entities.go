package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/campaign-memory/internal/application/handlers"
	"github.com/ersonp/campaign-memory/internal/domain/entities"
)

func newEntitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Manage the entity registry",
		Long: `Manage the registry of named entities (characters, places, factions)
used for name normalization and published to the campaign wiki.`,
		RunE: runEntitiesList,
	}

	cmd.AddCommand(
		newEntitiesAddCmd(),
		newEntitiesEditCmd(),
		newEntitiesSyncCmd(),
	)

	return cmd
}

func runEntitiesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withEntityHandler(func(handler *handlers.EntityHandler) error {
		all := handler.List(ctx)
		if len(all) == 0 {
			fmt.Println("No entities found.")
			return nil
		}

		fmt.Printf("Entities (%d total):\n\n", len(all))
		for _, e := range all {
			marker := " "
			if e.Modified {
				marker = "*"
			}
			fmt.Printf("%s %-25s %-12s %s\n", marker, e.Name, e.Type, e.Aliases)
		}
		fmt.Println("\n* = not yet synced to the wiki")
		return nil
	})
}

func newEntitiesAddCmd() *cobra.Command {
	var (
		typeName     string
		aliases      string
		misspellings string
		description  string
		dateStr      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a newly discovered entity",
		Long: fmt.Sprintf(`Registers an entity under its canonical name. Valid types: %s.

Examples:
  campaign entities add "Aragorn" --type PC --aliases "Strider" --first-appearance 2024-03-01
  campaign entities add "The Prancing Pony" --type Location`, typeNames()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			firstAppearance := today()
			if dateStr != "" {
				parsed, err := parseDate(dateStr)
				if err != nil {
					return err
				}
				firstAppearance = parsed
			}

			return withEntityHandler(func(handler *handlers.EntityHandler) error {
				if err := handler.Add(ctx, args[0], typeName, aliases, misspellings, description, firstAppearance); err != nil {
					return err
				}
				if _, err := handler.Sync(ctx); err != nil {
					return err
				}
				fmt.Printf("Added %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Entity type (required)")
	cmd.Flags().StringVar(&aliases, "aliases", "", "Comma-separated alternate names")
	cmd.Flags().StringVar(&misspellings, "misspellings", "", "Comma-separated known misspellings")
	cmd.Flags().StringVar(&description, "description", "", "Short description")
	cmd.Flags().StringVarP(&dateStr, "first-appearance", "d", "", "Session date of first appearance (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newEntitiesEditCmd() *cobra.Command {
	var (
		typeName     string
		aliases      string
		misspellings string
		description  string
		dateStr      string
	)

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Enrich an existing entity",
		Long: `Applies a partial update to an entity. Aliases and misspellings are
merged into the existing lists; nothing is ever removed. The first
appearance date only fills in when missing.

Examples:
  campaign entities edit "Aragorn" --aliases "Elessar"
  campaign entities edit "Aragorn" --description "Ranger, heir of Isildur"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var upd entities.EntityUpdate
			if cmd.Flags().Changed("type") {
				parsed, err := entities.ParseEntityType(typeName)
				if err != nil {
					return err
				}
				upd.Type = &parsed
			}
			if cmd.Flags().Changed("aliases") {
				upd.Aliases = &aliases
			}
			if cmd.Flags().Changed("misspellings") {
				upd.Misspellings = &misspellings
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			if cmd.Flags().Changed("first-appearance") {
				parsed, err := parseDate(dateStr)
				if err != nil {
					return err
				}
				upd.FirstAppearance = &parsed
			}

			return withEntityHandler(func(handler *handlers.EntityHandler) error {
				if err := handler.Edit(ctx, args[0], upd); err != nil {
					return err
				}
				if _, err := handler.Sync(ctx); err != nil {
					return err
				}
				fmt.Printf("Updated %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "", "Entity type")
	cmd.Flags().StringVar(&aliases, "aliases", "", "Comma-separated aliases to merge in")
	cmd.Flags().StringVar(&misspellings, "misspellings", "", "Comma-separated misspellings to merge in")
	cmd.Flags().StringVar(&description, "description", "", "Replacement description")
	cmd.Flags().StringVarP(&dateStr, "first-appearance", "d", "", "First appearance date, only set when missing (YYYY-MM-DD)")

	return cmd
}

func newEntitiesSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push local entity changes to the wiki",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withEntityHandler(func(handler *handlers.EntityHandler) error {
				result, err := handler.Sync(ctx)
				if result != nil {
					fmt.Printf("Synced %d entities", result.Synced)
					if result.Pending > 0 {
						fmt.Printf(", %d still pending", result.Pending)
					}
					fmt.Println()
				}
				return err
			})
		},
	}
}

func typeNames() string {
	names := make([]string, len(entities.EntityTypes))
	for i, t := range entities.EntityTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
