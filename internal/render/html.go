package render

import (
	"html/template"
	"io"

	"comparador/client/internal/browser"
	"comparador/client/internal/compare"
	"comparador/client/internal/domain"
)

var funcs = template.FuncMap{
	"price":      Price,
	"offerPrice": OfferPrice,
	"itemCount":  itemCount,
}

var offerTableTemplate = template.Must(template.New("offers").Funcs(funcs).Parse(`<table class="offers">
<thead><tr><th>Product</th><th>Price</th><th>Supermarket</th><th>Category</th><th></th></tr></thead>
<tbody>
{{- if .Message}}
<tr><td colspan="5" class="message">{{.Message}}</td></tr>
{{- else}}
{{- range .Offers}}
<tr><td>{{.DisplayName}}</td><td>{{offerPrice .Price .Unit}}</td><td>{{.Supermarket}}</td><td>{{.Category}}</td><td><button class="btn-history" data-product-id="{{.ProductID}}" data-product-name="{{.ProductName}}">History</button></td></tr>
{{- end}}
{{- end}}
</tbody>
</table>
`))

var comparisonTemplate = template.Must(template.New("comparison").Funcs(funcs).Parse(`<div class="results">
{{- if not .Cards}}
<p class="empty-list">{{.Empty}}</p>
{{- else}}
{{- range .Cards}}
<div class="supermarket-card{{if .Complete}} complete{{end}}">
<div class="card-header"><h2>{{.Supermarket}}</h2><div class="card-total {{if .Complete}}complete{{else}}partial{{end}}"><span>Total: {{price .Total}}</span> <small>{{itemCount .Matched .ListSize}}</small></div></div>
<div class="card-body"><ul>
{{- range .Items}}
{{- if .Available}}
<li>{{.ProductName}} <span>{{price .Price}}</span></li>
{{- else}}
<li class="item-missing">{{.ProductName}} <span>{{$.Unavailable}}</span></li>
{{- end}}
{{- end}}
</ul></div>
</div>
{{- end}}
{{- end}}
</div>
`))

// OfferTableHTML writes the offer table as an HTML table.
func OfferTableHTML(w io.Writer, table *browser.Table) error {
	return offerTableTemplate.Execute(w, table)
}

// ComparisonHTML writes the comparison cards as HTML, recomputed from list.
func ComparisonHTML(w io.Writer, list domain.ShoppingList) error {
	return comparisonTemplate.Execute(w, struct {
		Cards       []compare.Card
		Empty       string
		Unavailable string
	}{
		Cards:       compare.Cards(list),
		Empty:       EmptyListMessage,
		Unavailable: UnavailableLabel,
	})
}
