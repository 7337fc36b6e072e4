package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"minutes/internal/api"
	"minutes/internal/config"
	"minutes/internal/store"
)

func newTranscriptsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transcripts",
		Short: "Inspect stored transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newTranscriptsListCommand(ctx))
	cmd.AddCommand(newTranscriptsShowCommand(ctx))
	return cmd
}

func newTranscriptsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored transcripts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				transcripts, err := st.ListTranscripts(cmd.Context())
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					payloads := make([]api.TranscriptPayload, 0, len(transcripts))
					for _, transcript := range transcripts {
						payloads = append(payloads, api.FromTranscript(transcript))
					}
					return writeJSON(stdout, payloads)
				}

				if len(transcripts) == 0 {
					fmt.Fprintln(stdout, "No transcripts stored")
					return nil
				}

				rows := make([][]string, 0, len(transcripts))
				for _, transcript := range transcripts {
					rows = append(rows, []string{
						shortID(transcript.ID),
						transcript.ProcessedAt.Format("2006-01-02 15:04"),
						strconv.Itoa(transcript.WordCount),
						strconv.Itoa(transcript.ItemCount),
						transcript.ModelUsed,
					})
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"ID", "Processed", "Words", "Items", "Model"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
}

func newTranscriptsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transcript-id>",
		Short: "Show one transcript with its action items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				transcript, err := resolveTranscript(cmd, st, args[0])
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return writeJSON(stdout, api.FromTranscript(transcript))
				}

				fmt.Fprintf(stdout, "Transcript %s\n", transcript.ID)
				fmt.Fprintf(stdout, "Processed: %s\n", transcript.ProcessedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(stdout, "Words: %d  Items: %d  Model: %s\n",
					transcript.WordCount, transcript.ItemCount, transcript.ModelUsed)

				if len(transcript.ActionItems) == 0 {
					fmt.Fprintln(stdout, "No action items")
					return nil
				}
				rows := make([][]string, 0, len(transcript.ActionItems))
				for _, item := range transcript.ActionItems {
					rows = append(rows, itemRow(item))
				}
				fmt.Fprintln(stdout, renderTable(itemHeaders, rows, itemAligns))
				return nil
			})
		},
	}
}

// resolveTranscript accepts a full transcript id or an unambiguous prefix,
// matching the short ids the list views print.
func resolveTranscript(cmd *cobra.Command, st *store.Store, id string) (*store.Transcript, error) {
	transcript, err := st.GetTranscript(cmd.Context(), id)
	if err == nil {
		return transcript, nil
	}

	ids, listErr := st.ListTranscriptIDsByRecency(cmd.Context())
	if listErr != nil {
		return nil, err
	}
	var match string
	for _, candidate := range ids {
		if len(id) >= 4 && len(candidate) >= len(id) && candidate[:len(id)] == id {
			if match != "" {
				return nil, fmt.Errorf("transcript id %q is ambiguous", id)
			}
			match = candidate
		}
	}
	if match == "" {
		return nil, err
	}
	return st.GetTranscript(cmd.Context(), match)
}
