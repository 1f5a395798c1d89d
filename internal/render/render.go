// Package render draws the pages' state. Renderers hold no state: every call
// redraws from its arguments.
package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	EmptyListMessage = "Your shopping list is empty. Add products to start comparing."
	NoMatchMessage   = "No product on offer matches that name."
	UnavailableLabel = "Unavailable"
)

// Price formats an amount as Brazilian reais, e.g. "R$ 1.234,50".
func Price(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, grouped.String(), cents)
}

// OfferPrice is the price followed by the unit, when there is one.
func OfferPrice(d decimal.Decimal, unit string) string {
	if strings.TrimSpace(unit) == "" {
		return Price(d)
	}
	return Price(d) + " " + unit
}

func itemCount(matched, size int) string {
	return fmt.Sprintf("(%d of %d items)", matched, size)
}
