package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"comparador/client/internal/config"
	"comparador/client/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	endpointFilters       = "filtros"
	endpointOffers        = "ofertas"
	endpointHistory       = "historico"
	endpointCatalog       = "produtos-em-oferta"
	endpointTodayOffers   = "todas-ofertas-hoje"
	defaultRequestTimeout = 30 * time.Second
)

// PriceClient talks to the remote price API.
type PriceClient interface {
	GetFilters(ctx context.Context) (*domain.Filters, error)
	GetOffers(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, error)
	GetHistory(ctx context.Context, productID int) ([]domain.HistoryPoint, error)
	GetCatalog(ctx context.Context) ([]domain.CatalogProduct, error)
	GetTodayOffers(ctx context.Context, productID int) ([]domain.Offer, error)
	Metrics() *Metrics
}

// Option customises the client.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient makes the client issue requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

type priceClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	timeout    time.Duration
	httpClient *resty.Client
	metrics    *Metrics
}

func NewPriceClient(cfg config.APIConfig, opts ...Option) PriceClient {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var client *resty.Client
	if o.httpClient != nil {
		client = resty.NewWithClient(o.httpClient)
	} else {
		client = resty.New()
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	client.
		SetTimeout(timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &priceClient{
		rl:         rl,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    timeout,
		httpClient: client,
		metrics:    NewMetrics(),
	}
}

func (c *priceClient) Metrics() *Metrics {
	return c.metrics
}

func (c *priceClient) GetFilters(ctx context.Context) (*domain.Filters, error) {
	var filters domain.Filters
	if err := c.fetchJSON(ctx, endpointFilters, "/filtros", nil, &filters); err != nil {
		return nil, fmt.Errorf("failed to fetch filters: %w", err)
	}
	return &filters, nil
}

func (c *priceClient) GetOffers(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, error) {
	var offers []domain.Offer
	if err := c.fetchJSON(ctx, endpointOffers, "/ofertas", filter.Params(), &offers); err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}
	log.Debugf("Fetched %d offers for %+v", len(offers), filter)
	return offers, nil
}

func (c *priceClient) GetHistory(ctx context.Context, productID int) ([]domain.HistoryPoint, error) {
	var history []domain.HistoryPoint
	path := fmt.Sprintf("/produto/%d/historico", productID)
	if err := c.fetchJSON(ctx, endpointHistory, path, nil, &history); err != nil {
		return nil, fmt.Errorf("failed to fetch history for product %d: %w", productID, err)
	}
	return history, nil
}

func (c *priceClient) GetCatalog(ctx context.Context) ([]domain.CatalogProduct, error) {
	var products []domain.CatalogProduct
	if err := c.fetchJSON(ctx, endpointCatalog, "/produtos-em-oferta", nil, &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products on offer: %w", err)
	}
	return products, nil
}

func (c *priceClient) GetTodayOffers(ctx context.Context, productID int) ([]domain.Offer, error) {
	var offers []domain.Offer
	params := map[string]string{"id": strconv.Itoa(productID)}
	if err := c.fetchJSON(ctx, endpointTodayOffers, "/produto/todas-ofertas-hoje", params, &offers); err != nil {
		return nil, fmt.Errorf("failed to fetch today's offers for product %d: %w", productID, err)
	}
	return offers, nil
}

func (c *priceClient) fetchJSON(ctx context.Context, endpoint, path string, params map[string]string, out any) error {
	c.rl.Take()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := c.baseURL + path
	start := time.Now()
	c.metrics.IncRequest(endpoint)

	req := c.httpClient.R().SetContext(reqCtx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(url)
	c.metrics.ObserveDuration(endpoint, time.Since(start))

	if err != nil {
		if ctx.Err() != nil {
			err = fmt.Errorf("request cancelled: %w", ctx.Err())
		} else {
			err = classifyError(err, 0)
		}
		c.metrics.IncError(endpoint, ErrorType(err))
		return err
	}

	if resp.IsError() {
		err = classifyError(nil, resp.StatusCode())
		c.metrics.IncError(endpoint, ErrorType(err))
		return fmt.Errorf("HTTP error from %s: %w", url, err)
	}

	if err := json.Unmarshal([]byte(resp.String()), out); err != nil {
		err = ErrDecode{Err: err}
		c.metrics.IncError(endpoint, ErrorType(err))
		return err
	}

	return nil
}
