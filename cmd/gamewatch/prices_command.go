package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPricesCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "prices",
		Short: "List the best prices found so far",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			prices, err := st.ListBestPrices(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(prices) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No prices stored yet; run 'gamewatch enrich' first")
				return nil
			}

			rows := make([][]string, 0, len(prices))
			for _, price := range prices {
				game, err := st.GameByID(cmd.Context(), price.GameID)
				name := price.MatchedTitle
				if err == nil {
					name = game.Name
				}
				rows = append(rows, []string{
					name,
					fmt.Sprintf("%.2f %s", price.Price, price.Currency),
					price.Shop,
					fmt.Sprintf("%.0f%%", price.SimilarityScore*100),
					price.CheckedAt.Local().Format("2006-01-02"),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Game", "Price", "Shop", "Match", "Checked"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "Maximum number of prices to list (0 for all)")
	return cmd
}
