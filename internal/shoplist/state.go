// Package shoplist holds the shopping list aggregator: pure state transitions
// plus a Service that performs the fetches and the persistence around them.
package shoplist

import (
	"comparador/client/internal/autocomplete"
	"comparador/client/internal/domain"
)

// State is everything the shopping list page shows.
type State struct {
	Catalog []domain.CatalogProduct
	Input   string
	Panel   autocomplete.Result
	List    domain.ShoppingList
}

// Type records new autocomplete input and recomputes the suggestion panel.
func Type(matcher *autocomplete.Matcher, state State, input string) State {
	state.Input = input
	state.Panel = matcher.Match(state.Catalog, input)
	return state
}

// Dismiss clears the input and hides the suggestion panel.
func Dismiss(state State) State {
	state.Input = ""
	state.Panel = autocomplete.Result{}
	return state
}

// WithEntry returns a copy of list with entry appended. Entries whose product
// is already listed, or that carry no offers, leave the list unchanged.
func WithEntry(list domain.ShoppingList, entry domain.ListEntry) (domain.ShoppingList, bool) {
	if list.Contains(entry.ProductID) || len(entry.Offers) == 0 {
		return list, false
	}
	next := make(domain.ShoppingList, len(list), len(list)+1)
	copy(next, list)
	return append(next, entry), true
}

func Cleared() domain.ShoppingList {
	return domain.ShoppingList{}
}

// FindProduct looks a product up in the catalog by id.
func FindProduct(catalog []domain.CatalogProduct, productID int) (domain.CatalogProduct, bool) {
	for _, product := range catalog {
		if product.ID == productID {
			return product, true
		}
	}
	return domain.CatalogProduct{}, false
}
