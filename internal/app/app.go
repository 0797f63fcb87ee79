package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mtsdb/dropship-oasis-storefront/internal/config"
	"github.com/mtsdb/dropship-oasis-storefront/internal/event"
	handler "github.com/mtsdb/dropship-oasis-storefront/internal/handler/http"
	"github.com/mtsdb/dropship-oasis-storefront/internal/notify"
	"github.com/mtsdb/dropship-oasis-storefront/internal/repository/memory"
	redisrepo "github.com/mtsdb/dropship-oasis-storefront/internal/repository/redis"
	"github.com/mtsdb/dropship-oasis-storefront/internal/service"
	"github.com/mtsdb/dropship-oasis-storefront/pkg/health"
	pkgkafka "github.com/mtsdb/dropship-oasis-storefront/pkg/kafka"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize Redis client.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Build the dependency graph.
	sessionTTL := time.Duration(cfg.SessionTTL) * time.Hour
	cartTTL := time.Duration(cfg.CartTTL) * time.Hour

	sessionRepo := redisrepo.NewSessionRepository(rdb, sessionTTL)
	cartRepo := redisrepo.NewCartRepository(rdb, cartTTL)
	catalogRepo := memory.NewCatalogRepository(memory.SeedProducts())
	orderRepo := memory.NewOrderRepository(memory.SeedOrders())

	eventProducer := event.NewProducer(producer, logger)
	notifier := notify.NewLogNotifier(logger)

	sessionService := service.NewSessionService(sessionRepo, notifier, eventProducer, logger, sessionTTL, cfg.AuthDelay)
	catalogService := service.NewCatalogService(catalogRepo, notifier, logger, cfg.CatalogDelay)
	cartService := service.NewCartService(cartRepo, catalogRepo, notifier, eventProducer, logger, cartTTL)
	orderService := service.NewOrderService(orderRepo, cartRepo, notifier, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	// HTTP router.
	router := handler.NewRouter(handler.RouterConfig{
		Sessions:       sessionService,
		Catalog:        catalogService,
		Cart:           cartService,
		Orders:         orderService,
		HealthHandler:  healthHandler,
		Logger:         logger,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
