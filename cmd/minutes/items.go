package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"minutes/internal/api"
	"minutes/internal/config"
	"minutes/internal/extraction"
	"minutes/internal/store"
)

func newItemsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage stored action items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newItemsListCommand(ctx))
	cmd.AddCommand(newItemsAddCommand(ctx))
	cmd.AddCommand(newItemsUpdateCommand(ctx))
	cmd.AddCommand(newItemsDoneCommand(ctx))
	cmd.AddCommand(newItemsRemoveCommand(ctx))
	return cmd
}

func newItemsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "List action items, optionally filtered by a search term",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				items, err := st.SearchActionItems(cmd.Context(), query)
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return writeJSON(stdout, api.FromActionItems(items))
				}
				if len(items) == 0 {
					fmt.Fprintln(stdout, "No action items found")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, itemRow(item))
				}
				fmt.Fprintln(stdout, renderTable(itemHeaders, rows, itemAligns))
				return nil
			})
		},
	}
}

func newItemsAddCommand(ctx *commandContext) *cobra.Command {
	var owner string
	var due string
	var priority string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <transcript-id> <description>",
		Short: "Add an action item to an existing transcript",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				transcript, err := resolveTranscript(cmd, st, args[0])
				if err != nil {
					return err
				}

				input := extraction.ActionItemInput{
					Description: args[1],
					Priority:    extraction.PriorityMedium,
					Tags:        tags,
				}
				if strings.TrimSpace(owner) != "" {
					value := owner
					input.Owner = &value
				}
				if due != "" {
					parsed, err := parseDueDate(due)
					if err != nil {
						return err
					}
					input.DueDate = &parsed
				}
				if priority != "" {
					parsed, err := parsePriority(priority)
					if err != nil {
						return err
					}
					input.Priority = parsed
				}

				item, err := st.CreateActionItem(cmd.Context(), transcript.ID, input)
				if err != nil {
					return err
				}
				return printItemResult(cmd, ctx, *item, "Added action item %s\n")
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Person responsible for the item")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (high, medium, low)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag to attach (repeatable)")
	return cmd
}

func newItemsUpdateCommand(ctx *commandContext) *cobra.Command {
	var description string
	var owner string
	var clearOwner bool
	var due string
	var clearDue bool
	var priority string
	var tags []string

	cmd := &cobra.Command{
		Use:     "update <item-id>",
		Aliases: []string{"edit"},
		Short:   "Update fields of an action item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearOwner && cmd.Flags().Changed("owner") {
				return fmt.Errorf("--owner and --clear-owner are mutually exclusive")
			}
			if clearDue && cmd.Flags().Changed("due") {
				return fmt.Errorf("--due and --clear-due are mutually exclusive")
			}

			update := store.ActionItemUpdate{}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("owner") {
				value := owner
				update.Owner = &value
				update.OwnerSet = true
			}
			if clearOwner {
				update.OwnerSet = true
			}
			if cmd.Flags().Changed("due") {
				parsed, err := parseDueDate(due)
				if err != nil {
					return err
				}
				update.DueDate = &parsed
				update.DueDateSet = true
			}
			if clearDue {
				update.DueDateSet = true
			}
			if cmd.Flags().Changed("priority") {
				parsed, err := parsePriority(priority)
				if err != nil {
					return err
				}
				update.Priority = &parsed
			}
			if cmd.Flags().Changed("tag") {
				update.Tags = tags
				update.TagsSet = true
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				item, err := resolveActionItem(cmd, st, args[0])
				if err != nil {
					return err
				}
				updated, err := st.UpdateActionItem(cmd.Context(), item.ID, update)
				if err != nil {
					return err
				}
				return printItemResult(cmd, ctx, *updated, "Updated action item %s\n")
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&owner, "owner", "", "Person responsible for the item")
	cmd.Flags().BoolVar(&clearOwner, "clear-owner", false, "Remove the owner")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (high, medium, low)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replacement tag set (repeatable)")
	return cmd
}

func newItemsDoneCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "done <item-id>",
		Short: "Toggle an action item between done and open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				item, err := resolveActionItem(cmd, st, args[0])
				if err != nil {
					return err
				}
				toggled, err := st.ToggleActionItemDone(cmd.Context(), item.ID)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd.OutOrStdout(), api.FromActionItem(*toggled))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s\n",
					shortID(toggled.ID), strings.ToLower(formatStatus(toggled.IsDone)))
				return nil
			})
		},
	}
}

func newItemsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item-id>",
		Aliases: []string{"remove"},
		Short:   "Delete an action item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				item, err := resolveActionItem(cmd, st, args[0])
				if err != nil {
					return err
				}
				if err := st.DeleteActionItem(cmd.Context(), item.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted action item %s\n", shortID(item.ID))
				return nil
			})
		},
	}
}

func printItemResult(cmd *cobra.Command, ctx *commandContext, item store.ActionItem, format string) error {
	stdout := cmd.OutOrStdout()
	if ctx.jsonOutput() {
		return writeJSON(stdout, api.FromActionItem(item))
	}
	fmt.Fprintf(stdout, format, shortID(item.ID))
	fmt.Fprintln(stdout, renderTable(itemHeaders, [][]string{itemRow(item)}, itemAligns))
	return nil
}

// resolveActionItem accepts a full item id or an unambiguous prefix.
func resolveActionItem(cmd *cobra.Command, st *store.Store, id string) (*store.ActionItem, error) {
	item, err := st.GetActionItem(cmd.Context(), id)
	if err == nil {
		return item, nil
	}

	items, listErr := st.SearchActionItems(cmd.Context(), "")
	if listErr != nil {
		return nil, err
	}
	var match *store.ActionItem
	for i := range items {
		candidate := items[i]
		if len(id) >= 4 && strings.HasPrefix(candidate.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("action item id %q is ambiguous", id)
			}
			match = &items[i]
		}
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}

func parseDueDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: expected YYYY-MM-DD", value)
	}
	return parsed, nil
}

func parsePriority(value string) (extraction.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high":
		return extraction.PriorityHigh, nil
	case "medium":
		return extraction.PriorityMedium, nil
	case "low":
		return extraction.PriorityLow, nil
	default:
		return "", fmt.Errorf("invalid priority %q: expected high, medium, or low", value)
	}
}
