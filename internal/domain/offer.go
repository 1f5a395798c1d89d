package domain

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Process-wide: every package that marshals an Offer or ListEntry imports
// domain, so prices encode as JSON numbers everywhere, tests included.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Offer struct {
	ProductID   int             `json:"id_produto,omitempty"`
	ProductName string          `json:"produto_nome,omitempty"`
	Notes       string          `json:"observacoes,omitempty"`
	Price       decimal.Decimal `json:"valor"`
	Unit        string          `json:"unidade,omitempty"`
	Supermarket string          `json:"supermercado_nome"`
	Category    string          `json:"categoria_nome,omitempty"`
	RecordDate  string          `json:"data_registro,omitempty"`
}

// DisplayName is the product name followed by the offer notes, if any.
func (o Offer) DisplayName() string {
	if strings.TrimSpace(o.Notes) == "" {
		return o.ProductName
	}
	return fmt.Sprintf("%s (%s)", o.ProductName, o.Notes)
}

// HistoryPoint is one recorded price of a product at a supermarket.
type HistoryPoint struct {
	RecordDate  string          `json:"data_registro"`
	Price       decimal.Decimal `json:"valor"`
	Supermarket string          `json:"supermercado_nome"`
}

var recordDateLayouts = []string{
	"2006-01-02",
	http.TimeFormat,
	time.RFC1123,
	time.RFC3339,
}

// Date parses the record date. The API has served plain ISO dates as well as
// HTTP-style dates depending on the database behind it.
func (p HistoryPoint) Date() (time.Time, error) {
	raw := strings.TrimSpace(p.RecordDate)
	for _, layout := range recordDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized record date %q", p.RecordDate)
}
