package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kisanportal/kisan/internal/app"
	"github.com/kisanportal/kisan/internal/market"
	"github.com/kisanportal/kisan/internal/ui"
)

const fetchTimeout = 20 * time.Second

func newPricesCmd(flags *globalFlags) *cobra.Command {
	var (
		query market.PriceQuery
		limit int
	)

	cmd := &cobra.Command{
		Use:   "prices [commodity]",
		Short: "Print recent prices for a commodity",
		Long: `Fetches the price series once and prints a summary and a table.
Without an argument the configured default_commodity is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(flags.options())
			if err != nil {
				return err
			}
			client, err := market.NewClient(cfg.MarketAPI, cfg.APIToken)
			if err != nil {
				return err
			}

			query.Commodity = cfg.DefaultCommodity
			if len(args) == 1 {
				query.Commodity = args[0]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
			defer cancel()
			series, err := client.FetchPrices(ctx, query)
			if err != nil {
				return fmt.Errorf("fetch prices: %w", err)
			}

			store := app.OpenPrefs(cfg, nil, nil)
			store.Initialize()
			defer store.Close()
			st := store.State()

			out := cmd.OutOrStdout()
			if len(series.Records) == 0 {
				fmt.Fprintf(out, "%s: %s\n", series.Commodity, ui.T(st.Language, "prices.empty"))
				return nil
			}

			sum := market.Summarize(series, market.DefaultWindow)
			fmt.Fprintf(out, "%s (%d %s)\n", series.Commodity, sum.Points, series.Unit)
			fmt.Fprintf(out, "%s %.0f  %s %.0f  %s %.0f\n",
				ui.T(st.Language, "prices.latest"), sum.Latest,
				ui.T(st.Language, "prices.average"), sum.Average,
				ui.T(st.Language, "prices.projected"), sum.Projected,
			)
			if sum.HasChange {
				fmt.Fprintf(out, "%s %+.1f%% (%s)\n",
					ui.T(st.Language, "prices.change"), sum.ChangePct, ui.T(st.Language, "trend."+sum.Trend.String()))
			}
			fmt.Fprintln(out, ui.RenderPriceTable(series, ui.ThemeFor(st.Effective), st.Language, 0, limit))
			return nil
		},
	}

	cmd.Flags().StringVar(&query.State, "state", "", "filter by state")
	cmd.Flags().StringVar(&query.Market, "market", "", "filter by market")
	cmd.Flags().IntVar(&query.Days, "days", 0, "history length in days (server default when 0)")
	cmd.Flags().IntVarP(&limit, "limit", "n", ui.PriceRowLimit, "rows to print")
	return cmd
}

func newCommoditiesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "commodities",
		Short: "List the commodities the market API knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(flags.options())
			if err != nil {
				return err
			}
			client, err := market.NewClient(cfg.MarketAPI, cfg.APIToken)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), fetchTimeout)
			defer cancel()
			items, err := client.FetchCommodities(ctx)
			if err != nil {
				return fmt.Errorf("fetch commodities: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, c := range items {
				if c.Category != "" {
					fmt.Fprintf(out, "%s\t%s\n", c.Name, c.Category)
				} else {
					fmt.Fprintln(out, c.Name)
				}
			}
			return nil
		},
	}
}
