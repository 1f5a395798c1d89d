// Package compare builds the per-supermarket comparison cards for a shopping list.
package compare

import (
	"sort"

	"comparador/client/internal/domain"

	"github.com/shopspring/decimal"
)

// LineItem is one shopping-list entry as seen from a single supermarket.
type LineItem struct {
	ProductID   int
	ProductName string
	Price       decimal.Decimal
	Available   bool
}

// Card summarises how much of the list a supermarket can fulfil and at what total.
type Card struct {
	Supermarket string
	Total       decimal.Decimal
	Matched     int
	ListSize    int
	Complete    bool
	Items       []LineItem
}

// Cards computes one card per distinct supermarket found in the list's offers.
// Complete cards come first; within each group cards are ordered by ascending
// total, ties keeping the supermarkets' first-seen order.
func Cards(list domain.ShoppingList) []Card {
	supermarkets := list.Supermarkets()
	cards := make([]Card, 0, len(supermarkets))

	for _, supermarket := range supermarkets {
		card := Card{
			Supermarket: supermarket,
			Total:       decimal.Zero,
			ListSize:    len(list),
			Items:       make([]LineItem, 0, len(list)),
		}

		for _, entry := range list {
			item := LineItem{ProductID: entry.ProductID, ProductName: entry.ProductName}
			if offer, ok := entry.OfferAt(supermarket); ok {
				item.Price = offer.Price
				item.Available = true
				card.Total = card.Total.Add(offer.Price)
				card.Matched++
			}
			card.Items = append(card.Items, item)
		}

		card.Complete = card.Matched == len(list)
		cards = append(cards, card)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Complete != cards[j].Complete {
			return cards[i].Complete
		}
		return cards[i].Total.LessThan(cards[j].Total)
	})

	return cards
}
