package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"minutes/internal/config"
	"minutes/internal/store"
)

const statusCheckTimeout = 5 * time.Second

type statusReport struct {
	DatabasePath string `json:"databasePath"`
	DBConnected  bool   `json:"dbConnected"`
	LLMConnected bool   `json:"llmConnected"`
	Model        string `json:"model"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check database and LLM connectivity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				checkCtx, cancel := context.WithTimeout(cmd.Context(), statusCheckTimeout)
				defer cancel()

				report := statusReport{
					DatabasePath: st.Path(),
					Model:        cfg.GetLLM().Model,
				}
				report.DBConnected = st.CheckHealth(checkCtx) == nil

				if client, err := ctx.newLLMClient(); err == nil {
					report.LLMConnected = client.HealthCheck(checkCtx) == nil
				}

				stdout := cmd.OutOrStdout()
				if ctx.jsonOutput() {
					return writeJSON(stdout, report)
				}

				rows := [][]string{
					{"Database", report.DatabasePath},
					{"Database connected", yesNo(report.DBConnected)},
					{"LLM connected", yesNo(report.LLMConnected)},
					{"Model", report.Model},
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"Field", "Value"},
					rows,
					[]columnAlignment{alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
}
