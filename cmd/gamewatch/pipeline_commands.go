package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the next batch of games from the catalog API",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, st, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer st.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			synced, err := runner.Sync(runCtx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d games\n", synced)
			return nil
		},
	}
}

func newEnrichCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Find best prices for games with missing or stale prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, st, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer st.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			summary, err := runner.Enrich(runCtx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Processed %d games: %d matched, %d skipped, %d failed in %s\n",
				summary.Processed, summary.Matched, summary.Skipped, summary.Failed, summary.Duration.Round(time.Second))
			return nil
		},
	}
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: sync, enrich, maintain",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, st, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer st.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := runner.Run(runCtx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Pipeline run complete")
			return nil
		},
	}
}

func newMaintainCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "maintain",
		Short: "Prune old logs and compact the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, st, err := ctx.newRunner()
			if err != nil {
				return err
			}
			defer st.Close()

			runner.Maintain(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Maintenance complete")
			return nil
		},
	}
}
