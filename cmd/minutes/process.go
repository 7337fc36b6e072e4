package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"minutes/internal/api"
	"minutes/internal/config"
	"minutes/internal/extraction"
	"minutes/internal/notifications"
	"minutes/internal/processor"
	"minutes/internal/store"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [file]",
		Short: "Extract action items from a transcript and store the result",
		Long: `Reads a meeting transcript from the given file, or from stdin when the
argument is omitted or "-", extracts action items with the configured
LLM, and stores the transcript with its items.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTranscriptInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			client, err := ctx.newLLMClient()
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				extractor := extraction.NewExtractor(client,
					extraction.WithMaxAttempts(cfg.Extraction.MaxAttempts),
					extraction.WithRetryDelay(cfg.Extraction.RetryDelay()),
				)
				proc := processor.New(extractor, st, client.Model(),
					processor.WithNotifier(notifications.NewService(cfg)),
					processor.WithRetentionCap(cfg.Retention.MaxTranscripts),
				)

				result := proc.Process(cmd.Context(), text)
				if !result.Success {
					return errors.New(result.Error)
				}

				stdout := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return writeJSON(stdout, api.FromTranscript(result.Transcript))
				}

				transcript := result.Transcript
				fmt.Fprintf(stdout, "Processed transcript %s (%d words, model %s)\n",
					shortID(transcript.ID), transcript.WordCount, transcript.ModelUsed)
				if len(transcript.ActionItems) == 0 {
					fmt.Fprintln(stdout, "No action items found")
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
	return cmd
}

func readTranscriptInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read transcript file: %w", err)
	}
	return string(data), nil
}
