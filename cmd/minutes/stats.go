package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"minutes/internal/api"
	"minutes/internal/config"
	"minutes/internal/extraction"
	"minutes/internal/store"
	"minutes/internal/textutil"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize stored transcripts and action items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				stats, err := st.Stats(cmd.Context())
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return writeJSON(stdout, api.FromStats(stats))
				}

				rows := [][]string{
					{"Transcripts", strconv.Itoa(stats.TotalTranscripts)},
					{"Action items", strconv.Itoa(stats.TotalItems)},
					{"Open", strconv.Itoa(stats.OpenItems)},
					{"Done", strconv.Itoa(stats.DoneItems)},
					{"With owner", strconv.Itoa(stats.ItemsWithOwner)},
					{"With due date", strconv.Itoa(stats.ItemsWithDueDate)},
				}
				for _, priority := range []extraction.Priority{extraction.PriorityHigh, extraction.PriorityMedium, extraction.PriorityLow} {
					rows = append(rows, []string{
						textutil.TitleCase(string(priority)) + " priority",
						strconv.Itoa(stats.ByPriority[priority]),
					})
				}
				for _, tag := range stats.TopTags {
					rows = append(rows, []string{"Tag: " + tag.Tag, strconv.Itoa(tag.Count)})
				}

				fmt.Fprintln(stdout, renderTable(
					[]string{"Metric", "Count"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}
