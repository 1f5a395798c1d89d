// Package browser drives the offer browser: filter options, the filtered offer
// table and the price-history chart of a single product.
package browser

import (
	"context"
	"errors"
	"sync"

	"comparador/client/internal/client"
	"comparador/client/internal/domain"

	log "github.com/sirupsen/logrus"
)

// ErrStale is returned for a query that was superseded by a newer one before
// its response arrived. The response is discarded.
var ErrStale = errors.New("superseded by a newer query")

const (
	MessageNoOffers  = "No offers found for the selected filters."
	MessageLoadError = "Failed to load data from the server."
)

// Table is the offer table contents. When Message is set the table shows that
// single row instead of offers.
type Table struct {
	Filter  domain.OfferFilter
	Offers  []domain.Offer
	Message string
}

type Browser struct {
	client client.PriceClient

	mu          sync.Mutex
	generation  uint64
	cancelQuery context.CancelFunc
	table       *Table
	chart       *Chart
}

func New(client client.PriceClient) *Browser {
	return &Browser{client: client}
}

// LoadFilters fetches the supermarket and category options. Failures are
// logged and leave the options empty.
func (b *Browser) LoadFilters(ctx context.Context) domain.Filters {
	filters, err := b.client.GetFilters(ctx)
	if err != nil {
		log.Errorf("❌ Failed to load filters: %v", err)
		return domain.Filters{}
	}
	return *filters
}

// Query fetches the offers matching filter and makes them the current table.
// Starting a query cancels the one in flight, and a response that arrives
// after a newer query started is dropped with ErrStale. Empty results and
// failures both produce a single-message table; failures also return the error.
func (b *Browser) Query(ctx context.Context, filter domain.OfferFilter) (*Table, error) {
	b.mu.Lock()
	if b.cancelQuery != nil {
		b.cancelQuery()
	}
	ctx, cancel := context.WithCancel(ctx)
	b.cancelQuery = cancel
	b.generation++
	generation := b.generation
	b.mu.Unlock()
	defer cancel()

	offers, err := b.client.GetOffers(ctx, filter)

	b.mu.Lock()
	defer b.mu.Unlock()
	if generation != b.generation {
		log.Debugf("Dropping offers for %+v: superseded", filter)
		return nil, ErrStale
	}
	b.cancelQuery = nil

	table := &Table{Filter: filter, Offers: offers}
	switch {
	case err != nil:
		log.Errorf("❌ Failed to load offers: %v", err)
		table.Offers = nil
		table.Message = MessageLoadError
	case len(offers) == 0:
		table.Message = MessageNoOffers
	}
	b.table = table

	return table, err
}

// Table returns the current offer table, nil before the first query completes.
func (b *Browser) Table() *Table {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.table
}
