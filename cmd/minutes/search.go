package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"minutes/internal/api"
	"minutes/internal/config"
	"minutes/internal/store"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search action items by description, owner, or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				items, err := st.SearchActionItems(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return writeJSON(stdout, api.FromActionItems(items))
				}
				if len(items) == 0 {
					fmt.Fprintf(stdout, "No action items match %q\n", args[0])
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
