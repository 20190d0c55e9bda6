package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"gamewatch/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show catalog and price freshness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.CheckHealth(cmd.Context()); err != nil {
				return fmt.Errorf("database health check: %w", err)
			}

			cutoff := time.Now().AddDate(0, 0, -cfg.Pipeline.PriceRefreshDays)
			summary, err := st.Summarize(cmd.Context(), cutoff)
			if err != nil {
				return err
			}

			rows := [][]string{
				{"Games", strconv.Itoa(summary.Games)},
				{"Priced", strconv.Itoa(summary.Priced)},
				{"Stale prices", strconv.Itoa(summary.StalePrices)},
				{"Database size", formatBytes(summary.DatabaseSize)},
			}
			if !summary.OldestCheck.IsZero() {
				rows = append(rows, []string{"Oldest price check", summary.OldestCheck.Local().Format("2006-01-02 15:04")})
			}
			if value, ok, _ := st.GetSetting(cmd.Context(), store.SettingCatalogLastSync); ok {
				rows = append(rows, []string{"Last sync", value})
			}
			if value, ok, _ := st.GetSetting(cmd.Context(), store.SettingLastEnrichment); ok {
				rows = append(rows, []string{"Last enrichment", value})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Metric", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
