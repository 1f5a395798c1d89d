package container

import (
	"context"
	"fmt"
	"net/http"

	"comparador/client/internal/autocomplete"
	"comparador/client/internal/browser"
	"comparador/client/internal/client"
	"comparador/client/internal/config"
	"comparador/client/internal/shoplist"
	"comparador/client/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config *config.Config
	Client client.PriceClient
	Store  storage.ListStore

	Browser  *browser.Browser
	ShopList *shoplist.Service
}

// Option customises the container
type Option func(*options)

type options struct {
	httpClient *http.Client
	store      storage.ListStore
}

// WithHTTPClient routes all API requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithStore uses store instead of the configured backend.
func WithStore(store storage.ListStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	container := &Container{
		Config: cfg,
	}

	var clientOpts []client.Option
	if o.httpClient != nil {
		clientOpts = append(clientOpts, client.WithHTTPClient(o.httpClient))
	}
	priceClient := client.NewPriceClient(cfg.API, clientOpts...)
	container.Client = priceClient

	store := o.store
	if store == nil {
		var err error
		store, err = newStore(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
	}
	container.Store = store

	policy, err := autocomplete.ParsePolicy(cfg.Autocomplete.Policy)
	if err != nil {
		return nil, err
	}

	container.Browser = browser.New(priceClient)

	container.ShopList = shoplist.NewService(
		priceClient,
		store,
		autocomplete.NewMatcher(policy),
		cfg.API.MaxWorkers,
	)

	return container, nil
}

func newStore(ctx context.Context, cfg config.StorageConfig) (storage.ListStore, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Debug("✅ Connected to Redis successfully")
		return storage.NewRedisStore(rdb, cfg.Key), nil

	case config.BackendPostgres:
		db, err := pgxpool.New(ctx,
			fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Name,
			))
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres pool: %w", err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		log.Debug("✅ Connected to postgres successfully")
		store, err := storage.NewPostgresStore(ctx, db, cfg.Key)
		if err != nil {
			db.Close()
			return nil, err
		}
		return store, nil

	default:
		return storage.NewFileStore(cfg.Dir, cfg.Key)
	}
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	requests, errors := c.Client.Metrics().Summary()
	log.Debugf("API requests: %.0f, errors: %.0f", requests, errors)

	if err := c.Store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
