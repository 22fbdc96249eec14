package container

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"commerce/storefront/internal/auth/blacklist"
	"commerce/storefront/internal/auth/password"
	"commerce/storefront/internal/auth/token"
	"commerce/storefront/internal/cache"
	"commerce/storefront/internal/catalog"
	"commerce/storefront/internal/client"
	"commerce/storefront/internal/config"
	"commerce/storefront/internal/queue"
	"commerce/storefront/internal/repository"
	"commerce/storefront/internal/service"
	"commerce/storefront/internal/transport/web"
	"commerce/storefront/internal/transport/web/mw"
	"commerce/storefront/internal/transport/web/v1/account"
	"commerce/storefront/internal/transport/web/v1/health"
	"commerce/storefront/internal/transport/web/v1/shop"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Client   client.CommerceClient
	Queue    queue.Queue
	Cache    cache.Provider
	Items    repository.ItemRepository
	Resolver *catalog.Resolver

	Accounts *service.AccountManager
	Orders   *service.OrderManager
	Notifier *service.Notifier
	Server   *web.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	if cfg.Database.Migrate {
		if err := repository.Migrate(cfg.Database.DSN()); err != nil {
			return nil, err
		}
		log.Info("✅ Database migrations applied")
	}

	// Initialize repositories
	db, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}
	container.db = db

	items := repository.NewItemRepository(db)
	users := repository.NewUserRepository(db)
	parties := repository.NewPartyRepository(db)
	container.Items = items

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})
	container.redis = rdb

	// Test connection
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("✅ Connected to Redis successfully")

	redisQueue, err := queue.NewRedisQueue(ctx, rdb, cfg.Redis)
	if err != nil {
		container.closeConnections()
		return nil, err
	}
	container.Queue = redisQueue

	cacheProvider, err := cache.New(cfg.Cache, rdb)
	if err != nil {
		container.closeConnections()
		return nil, err
	}
	container.Cache = cacheProvider

	// Auth
	tokens := token.New(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TTL())
	revoked := blacklist.NewStore(blacklist.NewRedisKV(rdb), cfg.Cache.Prefix)
	hasher := password.NewDefault()

	commerceClient := client.NewCommerceClient(cfg.Commerce)
	container.Client = commerceClient

	// Managers
	container.Accounts = service.NewAccountManager(
		users,
		parties,
		hasher,
		tokens,
		revoked,
		redisQueue,
		cfg.Storefront.UsersDomain,
		cfg.Storefront.MaxNumberOfAddresses,
	)
	container.Orders = service.NewOrderManager(
		commerceClient,
		users,
		cfg.Storefront.RecentOrdersDays,
		cfg.Storefront.RecentOrdersLimit,
	)
	container.Resolver = catalog.NewResolver(
		cacheProvider,
		cfg.Cache.Prefix,
		service.NewCatalogManager(items, cfg.Storefront.DefaultCatalog),
		catalog.NewURLService(),
		catalog.NewRouteClassifier(),
		cfg.Storefront.HomePath,
	)
	container.Notifier = service.NewNotifier(
		redisQueue,
		commerceClient,
		cfg.Redis.ConsumerGroup,
		cfg.Redis.MinIdleTime,
	)

	container.Server = web.New(cfg.Server, web.Handlers{
		Account: &account.Handler{Accounts: container.Accounts, Orders: container.Orders},
		Shop:    &shop.Handler{Resolver: container.Resolver, Items: items},
		Health: &health.Handler{Checks: map[string]health.Check{
			"postgres": db.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}},
		Auth: mw.AuthDeps{Tokens: tokens, Blacklist: revoked},
	})

	return container, nil
}

// Run serves HTTP and drains the notification streams until ctx is cancelled
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.Run(ctx)
	})

	g.Go(func() error {
		return c.Notifier.RunWorkers(ctx, c.Config.Commerce.NotificationWorkers)
	})

	return g.Wait()
}

func (c *Container) closeConnections() {
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("Failed to close redis client: %v", err)
		}
	}
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.Client != nil {
		if err := c.Client.Close(); err != nil {
			log.Warnf("Failed to close commerce client: %v", err)
		}
	}
	c.closeConnections()

	log.Info("Container shut down successfully")
	return nil
}
