package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"techmart/internal/catalog"
	"techmart/internal/config"
	"techmart/internal/handlers"
	"techmart/internal/models"
	"techmart/internal/repositories"
	"techmart/internal/services"
	"techmart/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	config.LoadDotEnv()
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// --- Logging ---
	zapLogger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(zapLogger)

	// --- Storage ---
	deps, err := openDependencies(cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer deps.Close()

	// --- Catalog events (optional) ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			zap.L().Warn("RabbitMQ unavailable, catalog events disabled", zap.Error(err))
		} else {
			defer mqClient.Close()
			events = mqClient
			if err := mqClient.ConsumeCatalogEvents(rabbitmq.LogCatalogEvent); err != nil {
				zap.L().Warn("Failed to start RabbitMQ consumer", zap.Error(err))
			}
		}
	}

	// --- Services ---
	store := catalog.NewStore(catalog.NewGenerator(cfg.CatalogSize, cfg.CatalogSeed))
	store.Initialize()
	latency := services.LatencyFrom(cfg.APILatency)
	productService := services.NewProductService(store, deps.storage, events, latency)
	reviewService := services.NewReviewService(deps.reviews, store, events, latency)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := reviewService.SeedReviews(seedCtx, cfg.ReviewCount, cfg.CatalogSeed); err != nil {
		zap.L().Warn("Failed to seed reviews", zap.Error(err))
	}
	cancelSeed()

	app := newApp(productService, reviewService, healthCheck(deps, mqClient))

	// --- Start HTTP Server ---
	zap.L().Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
		zap.Int("products", len(store.All())),
		zap.Bool("events", events != nil),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Port); err != nil {
			zap.L().Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	zap.L().Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zap.L().Error("Error during Fiber shutdown", zap.Error(err))
	}
	zap.L().Info("Server gracefully stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newApp builds the Fiber app with every route registered under /api/v1.
func newApp(productService *services.ProductService, reviewService *services.ReviewService, health fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "techmart-catalog",
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(apiV1)
	handlers.NewShopperHandler(productService).RegisterRoutes(apiV1)
	handlers.NewMetaHandler().RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", health)
	return app
}

// dependencies are the storage backends selected by STORAGE_DRIVER.
type dependencies struct {
	storage repositories.StorageRepository
	reviews repositories.ReviewRepository
	db      *gorm.DB
	redis   *redis.Client
}

func openDependencies(cfg *config.Config) (*dependencies, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite, config.DriverPostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			return nil, err
		}
		return &dependencies{
			storage: repositories.NewGORMStorageRepository(db),
			reviews: repositories.NewGORMReviewRepository(db),
			db:      db,
		}, nil
	case config.DriverRedis:
		client, err := repositories.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			// Shopper lists degrade to empty while Redis is down.
			zap.L().Warn("Redis ping failed", zap.String("url", cfg.RedisURL), zap.Error(err))
		}
		return &dependencies{
			storage: repositories.NewRedisStorageRepository(client),
			reviews: repositories.NewMockReviewRepository(),
			redis:   client,
		}, nil
	default:
		return &dependencies{
			storage: repositories.NewMockStorageRepository(),
			reviews: repositories.NewMockReviewRepository(),
		}, nil
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.StorageDriver == config.DriverPostgres {
		dialector = postgres.Open(cfg.DatabaseDSN)
	} else {
		dialector = sqlite.Open(cfg.DatabaseDSN)
	}

	logLevel := gormlogger.Warn
	if cfg.Development() {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.StoredItem{}, &models.Review{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return db, nil
}

// Close releases database and Redis connections.
func (d *dependencies) Close() {
	if d.db != nil {
		if sqlDB, err := d.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				zap.L().Warn("Error closing database", zap.Error(err))
			}
		}
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			zap.L().Warn("Error closing Redis client", zap.Error(err))
		}
	}
}

// Ping checks the storage backend.
func (d *dependencies) Ping(ctx context.Context) error {
	switch {
	case d.db != nil:
		sqlDB, err := d.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	case d.redis != nil:
		return d.redis.Ping(ctx).Err()
	}
	return nil
}

func healthCheck(deps *dependencies, mqClient *rabbitmq.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		storageStatus := "up"
		status := fiber.StatusOK
		if err := deps.Ping(ctx); err != nil {
			storageStatus = "down"
			status = fiber.StatusServiceUnavailable
			if !errors.Is(err, context.DeadlineExceeded) {
				zap.L().Warn("Storage health check failed", zap.Error(err))
			}
		}

		eventsStatus := "disabled"
		if mqClient != nil {
			eventsStatus = "connected"
		}

		return c.Status(status).JSON(fiber.Map{
			"status":  map[bool]string{true: "healthy", false: "degraded"}[status == fiber.StatusOK],
			"time":    time.Now().Format(time.RFC3339),
			"storage": storageStatus,
			"events":  eventsStatus,
		})
	}
}
