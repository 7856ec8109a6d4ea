package container

import (
	"context"
	"fmt"
	"time"

	"jewelry-backend/internal/config"
	infraCache "jewelry-backend/internal/infrastructure/cache"
	"jewelry-backend/internal/infrastructure/database"
	"jewelry-backend/internal/infrastructure/storage"
	"jewelry-backend/pkg/cache"
	"jewelry-backend/pkg/jwt"
	"jewelry-backend/pkg/logger"

	"jewelry-backend/internal/domains/auth"
	authHandler "jewelry-backend/internal/domains/auth/handler"
	authService "jewelry-backend/internal/domains/auth/service"
	"jewelry-backend/internal/domains/category"
	categoryHandler "jewelry-backend/internal/domains/category/handler"
	categoryRepo "jewelry-backend/internal/domains/category/repository"
	categoryService "jewelry-backend/internal/domains/category/service"
	"jewelry-backend/internal/domains/message"
	messageHandler "jewelry-backend/internal/domains/message/handler"
	messageRepo "jewelry-backend/internal/domains/message/repository"
	messageService "jewelry-backend/internal/domains/message/service"
	"jewelry-backend/internal/domains/product"
	productHandler "jewelry-backend/internal/domains/product/handler"
	productRepo "jewelry-backend/internal/domains/product/repository"
	productService "jewelry-backend/internal/domains/product/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; a failed build aborts the process.
type Container struct {
	// Infrastructure, shared across domains.
	Config     *config.Config
	DB         *database.PostgresDB // nil when the jsonfile driver is active
	Cache      cache.Cache          // nil when Redis is disabled
	JWTManager *jwt.Manager
	Publisher  storage.AssetPublisher

	// Repositories.
	CategoryRepo category.CategoryRepository
	ProductRepo  product.ProductRepository
	MessageRepo  message.MessageRepository

	// Services.
	CategoryService category.CategoryService
	ProductService  product.ProductService
	MessageService  message.MessageService
	AuthService     auth.AuthService

	// HTTP handlers.
	CategoryHandler *categoryHandler.Handler
	ProductHandler  *productHandler.Handler
	MessageHandler  *messageHandler.Handler
	AuthHandler     *authHandler.Handler
}

// NewContainer builds the whole dependency graph in order: config,
// infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
		"assets":      cfg.Assets.Driver,
	})

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	if err := c.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}
	if err := c.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}
	c.initHandlers()

	logger.Info("container initialized", nil)
	return c, nil
}

// ========================================
// INFRASTRUCTURE
// ========================================

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// Document store. The jsonfile driver needs no connection; the
	// repositories open their collection files directly.
	if cfg.Storage.Driver == "postgres" {
		db := database.NewPostgresDB(&cfg.Database)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db
	}

	// Cache is optional. A Redis that is down at startup is a warning,
	// not a fatal error: repositories treat a nil cache as "no caching".
	if cfg.Redis.Enabled {
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Ping(context.Background()); err != nil {
			logger.Warn("redis unavailable, continuing without cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			c.Cache = redisCache
			logger.Info("redis connected", nil)
		}
	}

	c.JWTManager = jwt.NewManager(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)

	processor := storage.NewImageProcessor()
	switch cfg.Assets.Driver {
	case "object":
		publisher, err := storage.NewObjectStorePublisher(cfg.Assets, processor)
		if err != nil {
			return fmt.Errorf("failed to init object store publisher: %w", err)
		}
		c.Publisher = publisher
	default:
		publisher, err := storage.NewLocalPublisher(cfg.Assets.LocalDir, cfg.Assets.PublicBaseURL)
		if err != nil {
			return fmt.Errorf("failed to init local publisher: %w", err)
		}
		c.Publisher = publisher
	}

	return nil
}

// ========================================
// REPOSITORIES
// ========================================

func (c *Container) initRepositories() error {
	cfg := c.Config

	if cfg.Storage.Driver == "postgres" {
		pool := c.DB.Pool
		c.CategoryRepo = categoryRepo.NewPostgresRepository(pool, c.Cache)
		c.ProductRepo = productRepo.NewPostgresRepository(pool, c.Cache)
		c.MessageRepo = messageRepo.NewPostgresRepository(pool)
		return nil
	}

	dataDir := cfg.Storage.DataDir

	var err error
	if c.CategoryRepo, err = categoryRepo.NewJSONFileRepository(dataDir); err != nil {
		return err
	}
	if c.ProductRepo, err = productRepo.NewJSONFileRepository(dataDir); err != nil {
		return err
	}
	if c.MessageRepo, err = messageRepo.NewJSONFileRepository(dataDir); err != nil {
		return err
	}
	return nil
}

// ========================================
// SERVICES
// ========================================

func (c *Container) initServices() error {
	cfg := c.Config

	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.ProductService = productService.NewProductService(
		c.ProductRepo,
		c.CategoryRepo,
		storage.NewImageProcessor(),
		c.Publisher,
		cfg.Upload.MaxFileCount,
	)
	c.MessageService = messageService.NewMessageService(c.MessageRepo)

	svc, err := authService.NewAuthService(&cfg.Admin, c.JWTManager)
	if err != nil {
		return err
	}
	c.AuthService = svc
	return nil
}

// ========================================
// HANDLERS
// ========================================

func (c *Container) initHandlers() {
	cfg := c.Config

	c.CategoryHandler = categoryHandler.NewHandler(c.CategoryService)
	c.ProductHandler = productHandler.NewHandler(
		c.ProductService,
		cfg.Upload.MaxFileSize,
		cfg.Upload.MaxFileCount,
	)
	c.MessageHandler = messageHandler.NewHandler(c.MessageService)
	c.AuthHandler = authHandler.NewHandler(c.AuthService, c.JWTManager, cfg.App.Environment)
}

// HealthCheck reports the health of the active storage backend.
func (c *Container) HealthCheck(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.HealthCheck(ctx)
	}
	return nil
}

// Cleanup releases infrastructure connections, in reverse init order.
func (c *Container) Cleanup() {
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Warn("failed to close redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}
