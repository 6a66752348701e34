package di

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-projectinfo/cache"
	"github.com/goliatone/go-projectinfo/config"
	"github.com/goliatone/go-projectinfo/idgen"
	"github.com/goliatone/go-projectinfo/internal/logging"
	"github.com/goliatone/go-projectinfo/internal/storeinfra"
	"github.com/goliatone/go-projectinfo/projectinfo"
)

// Container wires the configuration into the collaborators of the project
// info service and owns their lifecycle.
type Container struct {
	config   *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry

	db            *bun.DB
	ownsDB        bool
	cache         cache.Cache
	closeCache    func() error
	keySerializer cache.KeySerializer
	ids           idgen.Generator
	store         projectinfo.Store
	service       *projectinfo.Service
}

// Option customizes a Container before its collaborators are built.
type Option func(*Container)

// WithDB injects an already opened database. The container does not close it.
func WithDB(db *bun.DB) Option {
	return func(c *Container) {
		c.db = db
	}
}

// WithCache injects a cache instead of building the configured backend.
func WithCache(cc cache.Cache) Option {
	return func(c *Container) {
		c.cache = cc
	}
}

// WithRedisClient backs the cache with an existing Redis client instead of
// the configured backend. The caller owns the client.
func WithRedisClient(client redis.UniversalClient) Option {
	return func(c *Container) {
		c.cache = cache.NewRedisCache(client)
	}
}

// WithLogger sets the logger used by the store and the caller facing layers.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithRegistry sets the Prometheus registry cache metrics are registered on.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// NewContainer builds every collaborator described by cfg. Collaborators
// injected through options are used as given.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	}
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}

	if c.db == nil {
		db, err := storeinfra.OpenDB(ctx, cfg.Database, c.logger)
		if err != nil {
			return nil, err
		}
		c.db = db
		c.ownsDB = true
	}

	c.closeCache = func() error { return nil }
	if c.cache == nil {
		cc, closeFn, err := cache.NewCache(cfg.Cache)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.cache = cc
		c.closeCache = closeFn
	}
	if cfg.Metrics.Enabled {
		cache.RegisterEntries(c.registry, c.cache)
		c.cache = cache.Instrument(c.cache, cache.NewMetrics(c.registry))
	}

	ids, err := idgen.New(cfg.IDGen)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.ids = ids

	c.keySerializer = cache.NewNamespacedKeySerializer(cfg.Cache.Namespace)
	c.store = storeinfra.NewBunStore(c.db)
	c.service = projectinfo.NewService(c.store, c.cache, c.ids, projectinfo.WithKeySerializer(c.keySerializer))

	return c, nil
}

// NewContainerWithDefaults creates a container using the default configuration:
// in-memory SQLite, in-process cache, snowflake ids.
func NewContainerWithDefaults(ctx context.Context, opts ...Option) (*Container, error) {
	return NewContainer(ctx, config.Default(), opts...)
}

// Migrate creates the schema the store needs.
func (c *Container) Migrate(ctx context.Context) error {
	return storeinfra.CreateSchema(ctx, c.db)
}

// Service returns the project info service.
func (c *Container) Service() *projectinfo.Service {
	return c.service
}

// Cache returns the cache service instance, instrumented when metrics are on.
func (c *Container) Cache() cache.Cache {
	return c.cache
}

// KeySerializer returns the key serializer used for the service cache keys.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// DB returns the database handle.
func (c *Container) DB() *bun.DB {
	return c.db
}

// Logger returns the container logger.
func (c *Container) Logger() *slog.Logger {
	return c.logger
}

// Registry returns the Prometheus registry holding the cache metrics.
func (c *Container) Registry() *prometheus.Registry {
	return c.registry
}

// Config returns the configuration used by this container.
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases the cache backend and, when the container opened it, the database.
func (c *Container) Close() error {
	var errs []error
	if c.closeCache != nil {
		errs = append(errs, c.closeCache())
	}
	if c.ownsDB && c.db != nil {
		errs = append(errs, c.db.Close())
	}
	return errors.Join(errs...)
}
