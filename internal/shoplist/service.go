package shoplist

import (
	"context"
	"fmt"

	"comparador/client/internal/autocomplete"
	"comparador/client/internal/client"
	"comparador/client/internal/domain"
	"comparador/client/internal/storage"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	client     client.PriceClient
	store      storage.ListStore
	matcher    *autocomplete.Matcher
	maxWorkers int
}

func NewService(client client.PriceClient, store storage.ListStore, matcher *autocomplete.Matcher, maxWorkers int) *Service {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Service{
		client:     client,
		store:      store,
		matcher:    matcher,
		maxWorkers: maxWorkers,
	}
}

// Load restores the persisted list and fetches the catalog of products on
// offer. A catalog failure is only logged: the page still works, with no
// suggestions.
func (s *Service) Load(ctx context.Context) (State, error) {
	list, err := s.store.Load(ctx)
	if err != nil {
		return State{}, fmt.Errorf("failed to load shopping list: %w", err)
	}

	catalog, err := s.client.GetCatalog(ctx)
	if err != nil {
		log.Errorf("❌ Failed to load products on offer: %v", err)
		catalog = nil
	}
	log.Debugf("Loaded %d list entries and %d products on offer", len(list), len(catalog))

	return State{Catalog: catalog, List: list}, nil
}

func (s *Service) Type(state State, input string) State {
	return Type(s.matcher, state, input)
}

// Select reacts to a suggestion being picked: the input is cleared, the panel
// hidden and the product added to the list.
func (s *Service) Select(ctx context.Context, state State, product domain.CatalogProduct) (State, error) {
	state = Dismiss(state)
	return s.Add(ctx, state, product.ID, product.Name)
}

// Add appends the product with all of today's offers for it. Products already
// listed are skipped without a request; fetch failures and products without
// offers today leave the list as it was.
func (s *Service) Add(ctx context.Context, state State, productID int, productName string) (State, error) {
	if state.List.Contains(productID) {
		log.Debugf("Product %d is already in the list", productID)
		return state, nil
	}

	offers, err := s.client.GetTodayOffers(ctx, productID)
	if err != nil {
		log.Errorf("❌ Failed to fetch offers for product %d: %v", productID, err)
		return state, nil
	}

	list, added := WithEntry(state.List, domain.ListEntry{
		ProductID:   productID,
		ProductName: productName,
		Offers:      offers,
	})
	if !added {
		log.Debugf("Product %d has no offers today, list unchanged", productID)
		return state, nil
	}

	state.List = list
	log.Infof("🛒 Added %s with %d offers", productName, len(offers))
	return state, s.save(ctx, state.List)
}

func (s *Service) Clear(ctx context.Context, state State) (State, error) {
	state.List = Cleared()
	log.Info("🗑️ Shopping list cleared")
	return state, s.save(ctx, state.List)
}

// Refresh re-fetches today's offers for every entry. Entries stay in the list
// even when no supermarket offers them anymore; entries whose fetch fails keep
// their old offers.
func (s *Service) Refresh(ctx context.Context, state State) (State, error) {
	if len(state.List) == 0 {
		return state, nil
	}

	fresh := make([][]domain.Offer, len(state.List))
	failed := make([]bool, len(state.List))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)
	for i, entry := range state.List {
		g.Go(func() error {
			offers, err := s.client.GetTodayOffers(gctx, entry.ProductID)
			if err != nil {
				log.Warnf("⚠️ Failed to refresh offers for %s: %v", entry.ProductName, err)
				failed[i] = true
				return nil
			}
			fresh[i] = offers
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return state, err
	}

	list := make(domain.ShoppingList, 0, len(state.List))
	for i, entry := range state.List {
		if !failed[i] {
			if len(fresh[i]) == 0 {
				log.Warnf("⚠️ %s has no offers today", entry.ProductName)
			}
			entry.Offers = append([]domain.Offer{}, fresh[i]...)
		}
		list = append(list, entry)
	}

	state.List = list
	return state, s.save(ctx, state.List)
}

func (s *Service) save(ctx context.Context, list domain.ShoppingList) error {
	if err := s.store.Save(ctx, list); err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	return nil
}
