package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"comparador/client/internal/browser"
	"comparador/client/internal/domain"
	"comparador/client/internal/render"

	"github.com/spf13/cobra"
)

func newFiltersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the supermarkets and categories offers can be filtered by.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := a.container.Browser.LoadFilters(cmd.Context())
			return render.Filters(cmd.OutOrStdout(), filters)
		},
	}
}

func newOffersCommand(a *app) *cobra.Command {
	var filter domain.OfferFilter
	var format string

	cmd := &cobra.Command{
		Use:   "offers",
		Short: "Show the offers matching the given filters.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if filter.Date == "" {
				filter.Date = time.Now().Format("2006-01-02")
			} else if _, err := time.Parse("2006-01-02", filter.Date); err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}

			table, err := a.container.Browser.Query(cmd.Context(), filter)
			if errors.Is(err, browser.ErrStale) {
				return nil
			}
			// Failures were logged and are shown as the table's message row.
			if format == "html" {
				return render.OfferTableHTML(cmd.OutOrStdout(), table)
			}
			return render.OfferTable(cmd.OutOrStdout(), table)
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "Product name contains")
	cmd.Flags().StringVarP(&filter.Date, "date", "d", "", "Offer date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&filter.SupermarketID, "supermarket", "", "Supermarket id (see filters)")
	cmd.Flags().StringVar(&filter.CategoryID, "category", "", "Category id (see filters)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or html")
	return cmd
}

func newHistoryCommand(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "history <product-id>",
		Short: "Chart the price history of a product.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			if name == "" {
				name = fmt.Sprintf("product %d", productID)
			}

			chart, err := a.container.Browser.ShowHistory(cmd.Context(), productID, name)
			if err != nil {
				// Already logged; nothing is drawn.
				return nil
			}
			return render.HistoryChart(cmd.OutOrStdout(), chart)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name for the chart title")
	return cmd
}
