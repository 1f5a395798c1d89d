package cli

import (
	"fmt"
	"strconv"
	"strings"

	"comparador/client/internal/domain"
	"comparador/client/internal/render"
	"comparador/client/internal/shoplist"

	"github.com/spf13/cobra"
)

func newSuggestCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <text>",
		Short: "Suggest products on offer today whose name matches the text.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.container.ShopList
			state, err := svc.Load(cmd.Context())
			if err != nil {
				return err
			}
			state = svc.Type(state, strings.Join(args, " "))
			return render.Suggestions(cmd.OutOrStdout(), state.Panel)
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "Manage the shopping list and compare supermarkets.",
	}
	list.AddCommand(newListAddCommand(a))
	list.AddCommand(newListShowCommand(a))
	list.AddCommand(newListClearCommand(a))
	list.AddCommand(newListRefreshCommand(a))
	return list
}

func newListAddCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id | text>",
		Short: "Add a product on offer today to the shopping list.",
		Long: "Add a product on offer today to the shopping list. A numeric argument is a product id;\n" +
			"anything else picks the first autocomplete suggestion for the text.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.container.ShopList
			state, err := svc.Load(cmd.Context())
			if err != nil {
				return err
			}

			input := strings.Join(args, " ")
			product, ok := pickProduct(svc, state, input)
			if !ok {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), render.NoMatchMessage)
				return err
			}

			state, err = svc.Select(cmd.Context(), state, product)
			if err != nil {
				return err
			}
			return render.Comparison(cmd.OutOrStdout(), state.List)
		},
	}
}

// pickProduct resolves the add argument against the catalog.
func pickProduct(svc *shoplist.Service, state shoplist.State, input string) (domain.CatalogProduct, bool) {
	if id, err := strconv.Atoi(input); err == nil {
		return shoplist.FindProduct(state.Catalog, id)
	}
	state = svc.Type(state, input)
	if len(state.Panel.Suggestions) == 0 {
		return domain.CatalogProduct{}, false
	}
	return state.Panel.Suggestions[0], true
}

func newListShowCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Compare the shopping list across supermarkets.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			list, err := a.container.Store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load shopping list: %w", err)
			}
			if format == "html" {
				return render.ComparisonHTML(cmd.OutOrStdout(), list)
			}
			return render.Comparison(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or html")
	return cmd
}

func newListClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every product from the shopping list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.container.ShopList
			state, err := svc.Clear(cmd.Context(), shoplist.State{})
			if err != nil {
				return err
			}
			return render.Comparison(cmd.OutOrStdout(), state.List)
		},
	}
}

func newListRefreshCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Re-fetch today's offers for every product in the list.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.container.ShopList
			list, err := a.container.Store.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load shopping list: %w", err)
			}
			state, err := svc.Refresh(cmd.Context(), shoplist.State{List: list})
			if err != nil {
				return err
			}
			return render.Comparison(cmd.OutOrStdout(), state.List)
		},
	}
}
