package render

import (
	"fmt"
	"io"

	"comparador/client/internal/browser"

	"github.com/guptarohit/asciigraph"
)

// HistoryChart plots the chart's prices and lists every point with its date
// and supermarket.
func HistoryChart(w io.Writer, chart *browser.Chart) error {
	if len(chart.Points) == 0 {
		_, err := fmt.Fprintf(w, "%s\nNo price history recorded.\n", chart.Title())
		return err
	}

	values := chart.Values()
	if len(values) == 1 {
		values = append(values, values[0])
	}
	graph := asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Precision(2),
		asciigraph.Caption(chart.Title()),
	)
	if _, err := fmt.Fprintln(w, graph); err != nil {
		return err
	}

	tw := newTabWriter(w)
	labels := chart.Labels()
	for i, point := range chart.Points {
		fmt.Fprintf(tw, "%s\t%s\tSupermarket: %s\n", labels[i], Price(point.Price), point.Supermarket)
	}
	return tw.Flush()
}
