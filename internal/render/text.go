package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"comparador/client/internal/autocomplete"
	"comparador/client/internal/browser"
	"comparador/client/internal/compare"
	"comparador/client/internal/domain"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// OfferTable writes the offer table, or its single message row.
func OfferTable(w io.Writer, table *browser.Table) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "PRODUCT\tPRICE\tSUPERMARKET\tCATEGORY\tID")
	if table.Message != "" {
		fmt.Fprintln(tw, table.Message)
		return tw.Flush()
	}
	for _, offer := range table.Offers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			offer.DisplayName(),
			OfferPrice(offer.Price, offer.Unit),
			offer.Supermarket,
			offer.Category,
			offer.ProductID,
		)
	}
	return tw.Flush()
}

func Filters(w io.Writer, filters domain.Filters) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "SUPERMARKETS")
	for _, option := range filters.Supermarkets {
		fmt.Fprintf(tw, "  %d\t%s\n", option.ID, option.Name)
	}
	fmt.Fprintln(tw, "CATEGORIES")
	for _, option := range filters.Categories {
		fmt.Fprintf(tw, "  %d\t%s\n", option.ID, option.Name)
	}
	return tw.Flush()
}

// Suggestions writes the autocomplete panel. A hidden panel writes nothing.
func Suggestions(w io.Writer, result autocomplete.Result) error {
	if !result.Visible {
		return nil
	}
	if result.NoMatch() {
		_, err := fmt.Fprintln(w, NoMatchMessage)
		return err
	}

	tw := newTabWriter(w)
	for _, product := range result.Suggestions {
		if product.Price.Valid {
			fmt.Fprintf(tw, "%d\t%s\tfrom %s at %s\n", product.ID, product.Name, Price(product.Price.Decimal), product.Supermarket)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t\n", product.ID, product.Name)
		}
	}
	return tw.Flush()
}

// Comparison writes one card per supermarket, recomputed from list. A list
// with no offers at all yields no cards and shows the empty-list message.
func Comparison(w io.Writer, list domain.ShoppingList) error {
	cards := compare.Cards(list)
	if len(cards) == 0 {
		_, err := fmt.Fprintln(w, EmptyListMessage)
		return err
	}

	for i, card := range cards {
		if i > 0 {
			fmt.Fprintln(w)
		}
		status := "partial"
		if card.Complete {
			status = "complete"
		}
		fmt.Fprintf(w, "%s [%s]  Total: %s %s\n", card.Supermarket, status, Price(card.Total), itemCount(card.Matched, card.ListSize))

		tw := newTabWriter(w)
		for _, item := range card.Items {
			if item.Available {
				fmt.Fprintf(tw, "  %s\t%s\n", item.ProductName, Price(item.Price))
			} else {
				fmt.Fprintf(tw, "  %s\t%s\n", item.ProductName, UnavailableLabel)
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
