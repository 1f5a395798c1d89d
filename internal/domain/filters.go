package domain

import "github.com/shopspring/decimal"

type FilterOption struct {
	ID   int    `json:"id"`
	Name string `json:"nome"`
}

type Filters struct {
	Supermarkets []FilterOption `json:"supermercados"`
	Categories   []FilterOption `json:"categorias"`
}

// OfferFilter holds the offer table filters. Empty fields are not sent.
type OfferFilter struct {
	Search        string // substring of the product name
	Date          string // YYYY-MM-DD
	SupermarketID string
	CategoryID    string
}

// Params returns the non-empty filters keyed by their query parameter names.
func (f OfferFilter) Params() map[string]string {
	params := make(map[string]string, 4)
	if f.Date != "" {
		params["data"] = f.Date
	}
	if f.Search != "" {
		params["busca"] = f.Search
	}
	if f.SupermarketID != "" {
		params["supermercado"] = f.SupermarketID
	}
	if f.CategoryID != "" {
		params["categoria"] = f.CategoryID
	}
	return params
}

// CatalogProduct is a product with at least one offer valid today, as listed
// for autocomplete. Price and Supermarket describe the cheapest of those offers.
type CatalogProduct struct {
	ID          int                 `json:"id"`
	Name        string              `json:"nome"`
	Price       decimal.NullDecimal `json:"valor"`
	Supermarket string              `json:"supermercado_nome,omitempty"`
}
