package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"minutes/internal/config"
	"minutes/internal/export"
	"minutes/internal/store"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var transcriptID string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export action items as CSV",
		Long: `Writes action items as CSV to stdout or a file. By default every stored
transcript is included; use --transcript to export a single one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				var transcripts []*store.Transcript
				if transcriptID != "" {
					transcript, err := resolveTranscript(cmd, st, transcriptID)
					if err != nil {
						return err
					}
					transcripts = []*store.Transcript{transcript}
				} else {
					var err error
					transcripts, err = st.ListTranscripts(cmd.Context())
					if err != nil {
						return err
					}
				}

				if outputPath == "" {
					return export.WriteCSV(cmd.OutOrStdout(), transcripts)
				}
				if outputPath == "auto" {
					outputPath = export.Filename(time.Now().Format("2006-01-02"))
				}

				file, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				if err := export.WriteCSV(file, transcripts); err != nil {
					file.Close()
					return err
				}
				if err := file.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outputPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&transcriptID, "transcript", "", "Export a single transcript by id")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to a file instead of stdout (\"auto\" picks a dated name)")
	return cmd
}
