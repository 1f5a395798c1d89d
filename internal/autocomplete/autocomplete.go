// Package autocomplete matches typed text against the catalog of products
// currently on offer.
package autocomplete

import (
	"fmt"
	"strings"
	"unicode"

	"comparador/client/internal/domain"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Policy selects how typed text is compared with product names.
type Policy string

const (
	// PolicyPrefix matches names starting with the input, ignoring case and accents.
	PolicyPrefix Policy = "prefix"
	// PolicySubstring matches names containing the input, ignoring case only.
	PolicySubstring Policy = "substring"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyPrefix, PolicySubstring:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown autocomplete policy %q", s)
	}
}

// Result is the suggestion panel state for one input value.
type Result struct {
	Visible     bool
	Suggestions []domain.CatalogProduct
}

// NoMatch reports whether the panel shows only the "no match" placeholder.
func (r Result) NoMatch() bool {
	return r.Visible && len(r.Suggestions) == 0
}

type Matcher struct {
	policy Policy
}

func NewMatcher(policy Policy) *Matcher {
	return &Matcher{policy: policy}
}

func (m *Matcher) Policy() Policy {
	return m.policy
}

// Match filters the catalog for input, keeping catalog order.
func (m *Matcher) Match(catalog []domain.CatalogProduct, input string) Result {
	if input == "" {
		return Result{}
	}

	matched := make([]domain.CatalogProduct, 0)
	for _, product := range catalog {
		if m.matches(product.Name, input) {
			matched = append(matched, product)
		}
	}
	return Result{Visible: true, Suggestions: matched}
}

func (m *Matcher) matches(name, input string) bool {
	switch m.policy {
	case PolicySubstring:
		return strings.Contains(strings.ToLower(name), strings.ToLower(input))
	default:
		return strings.HasPrefix(Fold(name), Fold(input))
	}
}

// Fold lower-cases s and strips accents by decomposing it and dropping
// combining marks.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
