package domain

// ListEntry is a product the user wants to buy, bundled with all of the
// offers for it on the day it was added (or last refreshed).
type ListEntry struct {
	ProductID   int     `json:"id"`
	ProductName string  `json:"nome"`
	Offers      []Offer `json:"ofertas"`
}

// OfferAt returns the first offer from the given supermarket.
func (e ListEntry) OfferAt(supermarket string) (Offer, bool) {
	for _, offer := range e.Offers {
		if offer.Supermarket == supermarket {
			return offer, true
		}
	}
	return Offer{}, false
}

// ShoppingList is ordered by insertion. A product id appears at most once.
type ShoppingList []ListEntry

func (l ShoppingList) Contains(productID int) bool {
	for _, entry := range l {
		if entry.ProductID == productID {
			return true
		}
	}
	return false
}

// Supermarkets returns the distinct supermarket names across all entries'
// offers, in first-seen order.
func (l ShoppingList) Supermarkets() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, entry := range l {
		for _, offer := range entry.Offers {
			if _, ok := seen[offer.Supermarket]; ok {
				continue
			}
			seen[offer.Supermarket] = struct{}{}
			names = append(names, offer.Supermarket)
		}
	}
	return names
}
