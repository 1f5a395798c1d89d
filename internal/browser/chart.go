package browser

import (
	"context"
	"fmt"

	"comparador/client/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Chart is a drawn price-history line chart. Points are in API order; dates
// are not merged.
type Chart struct {
	ProductID   int
	ProductName string
	Points      []domain.HistoryPoint

	destroyed bool
}

func (c *Chart) Title() string {
	return fmt.Sprintf("Price history - %s", c.ProductName)
}

// Values returns the prices as floats for plotting.
func (c *Chart) Values() []float64 {
	values := make([]float64, len(c.Points))
	for i, p := range c.Points {
		values[i] = p.Price.InexactFloat64()
	}
	return values
}

// Labels returns the point dates as DD/MM/YYYY in UTC. Unparseable dates are
// shown as sent.
func (c *Chart) Labels() []string {
	labels := make([]string, len(c.Points))
	for i, p := range c.Points {
		if t, err := p.Date(); err == nil {
			labels[i] = t.Format("02/01/2006")
		} else {
			labels[i] = p.RecordDate
		}
	}
	return labels
}

// Destroy releases the chart. A destroyed chart is never shown again.
func (c *Chart) Destroy() {
	c.destroyed = true
	c.Points = nil
}

func (c *Chart) Destroyed() bool {
	return c.destroyed
}

// ShowHistory fetches the product's history, on every call, and replaces the current chart
// with a new one. On failure the error is logged and returned and the current
// chart is left untouched.
func (b *Browser) ShowHistory(ctx context.Context, productID int, productName string) (*Chart, error) {
	points, err := b.client.GetHistory(ctx, productID)
	if err != nil {
		log.Errorf("❌ Failed to load price history for product %d: %v", productID, err)
		return nil, err
	}

	chart := &Chart{
		ProductID:   productID,
		ProductName: productName,
		Points:      points,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.chart != nil {
		b.chart.Destroy()
	}
	b.chart = chart

	return chart, nil
}

// Chart returns the chart currently shown, nil if none.
func (b *Browser) Chart() *Chart {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.chart
}
