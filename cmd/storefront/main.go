package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	_ "github.com/tair/storefront/docs"
	"github.com/tair/storefront/internal/cart"
	cartDelivery "github.com/tair/storefront/internal/cart/delivery/http"
	"github.com/tair/storefront/internal/catalog"
	grpcDelivery "github.com/tair/storefront/internal/catalog/delivery/grpc"
	httpDelivery "github.com/tair/storefront/internal/catalog/delivery/http"
	"github.com/tair/storefront/internal/catalog/domain"
	"github.com/tair/storefront/internal/catalog/repository"
	"github.com/tair/storefront/internal/catalog/usecase/query"
	"github.com/tair/storefront/internal/config"
	"github.com/tair/storefront/internal/session"
	"github.com/tair/storefront/kafka"
	"github.com/tair/storefront/pkg/database"
	"github.com/tair/storefront/pkg/httpx"
	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/tracing"
)

// catalogBackend is the product source together with what health checks need
type catalogBackend struct {
	source  domain.ProductSource
	breaker *repository.CircuitBreaker
	db      *sql.DB
	cache   *repository.CachedSource
	redis   *redis.Client
	closers []func() error
}

func (b *catalogBackend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to release catalog resource")
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("storefront-service", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("catalog_backend", cfg.CatalogBackend).
		Msg("Starting storefront service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.Tracing())
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	backend, err := newCatalogBackend(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog")
	}
	defer backend.Close()

	// Kafka is optional; without brokers searches are not published and the
	// cache only expires by TTL
	var publisher query.SearchPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p, consumer := startKafka(ctx, cfg, backend.cache)
		if p != nil {
			publisher = p
			defer p.Close()
		}
		if consumer != nil {
			defer consumer.Close()
		}
	}

	sessions := session.NewManager(session.Config{
		FilterPath:   cfg.FilterPath,
		DebounceWait: cfg.DebounceWait,
		IdleTTL:      cfg.SessionTTL,
	})
	go sessions.Run(ctx, cfg.SweepInterval)

	// Initialize handlers with Wire DI
	catalogHandler, err := catalog.InitializeHTTPHandler(backend.source, publisher, sessions)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}
	cartHandler, err := cart.InitializeHTTPHandler(sessions)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize cart handler")
	}

	httpServer := newHTTPServer(cfg, catalogHandler, cartHandler, backend)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	grpcServer, health := newGRPCServer(backend)
	go health.Watch(ctx, 5*time.Second)
	go func() {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to listen for gRPC")
		}

		logger.Logger.Info().
			Str("port", cfg.GRPCPort).
			Msg("gRPC server started")

		if err := grpcServer.Serve(lis); err != nil {
			logger.Logger.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server forced to shutdown")
	}
	grpcServer.GracefulStop()

	logger.Logger.Info().Msg("Server exited")
}

func newCatalogBackend(ctx context.Context, cfg *config.Config) (*catalogBackend, error) {
	backend := &catalogBackend{}

	remote, err := repository.NewRemoteSource(repository.RemoteConfig{
		BaseURL:        cfg.CatalogURL,
		Timeout:        cfg.CatalogTimeout,
		MaxFailures:    cfg.CatalogMaxFailures,
		BreakerTimeout: cfg.CatalogBreakerTimeout,
	})
	if err != nil {
		return nil, err
	}

	var source domain.ProductSource = remote
	backend.breaker = remote.Breaker()

	if cfg.CatalogBackend == config.CatalogPostgres {
		db, err := database.NewGormConnection(cfg.Database())
		if err != nil {
			return nil, err
		}
		gormDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		backend.closers = append(backend.closers, gormDB.Close)

		store := repository.NewGormSource(db)
		if err := store.AutoMigrate(); err != nil {
			return nil, err
		}

		if cfg.CatalogSeed {
			n, err := store.SeedFrom(ctx, remote)
			if err != nil {
				logger.Logger.Warn().Err(err).Msg("Failed to seed catalog, continuing with existing rows")
			} else if n > 0 {
				logger.Logger.Info().Int("products", n).Msg("Catalog seeded from remote source")
			}
		}

		// Separate database/sql pool for health checks
		sqlDB, err := database.NewPostgresConnection(cfg.Database())
		if err != nil {
			return nil, err
		}
		backend.closers = append(backend.closers, sqlDB.Close)
		backend.db = sqlDB

		source = store
		backend.breaker = nil
	}

	source = repository.NewTracingSource(source, cfg.CatalogBackend)

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		backend.closers = append(backend.closers, client.Close)
		backend.redis = client

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, catalog reads will bypass the cache until it recovers")
		}

		backend.cache = repository.NewCachedSource(source, repository.NewRedisCache(client), cfg.CacheTTL)
		source = backend.cache

		logger.Logger.Info().
			Str("addr", cfg.RedisAddr).
			Dur("ttl", cfg.CacheTTL).
			Msg("Catalog cache enabled")
	}

	backend.source = source
	return backend, nil
}

func startKafka(ctx context.Context, cfg *config.Config, cache *repository.CachedSource) (*kafka.Publisher, *kafka.Consumer) {
	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to create Kafka publisher, search events disabled")
		publisher = nil
	}

	if cache == nil {
		return publisher, nil
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, []string{kafka.TopicCatalogChanged})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to create Kafka consumer, cache invalidation disabled")
		return publisher, nil
	}

	consumer.RegisterHandler(kafka.EventTypeCatalogChanged, kafka.CatalogChangedHandler(
		func(ctx context.Context, event kafka.CatalogChangedEvent) error {
			logger.Info(ctx).
				Str("event_id", event.EventID).
				Str("reason", event.Reason).
				Int("products", len(event.ProductIDs)).
				Msg("Catalog changed")
			return cache.Invalidate(ctx)
		},
	))

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to start Kafka consumer")
	}
	return publisher, consumer
}

func newHTTPServer(cfg *config.Config, catalogHandler *httpDelivery.CatalogHandler, cartHandler *cartDelivery.CartHandler, backend *catalogBackend) *http.Server {
	router := mux.NewRouter()
	httpx.RegisterMiddlewares(router, httpx.DefaultMiddlewareConfig())

	// Anonymous GET /api/session calls each start a session, so traffic is
	// limited per client address when Redis is available
	if backend.redis != nil && cfg.RateLimitRequests > 0 {
		limiter := httpx.NewRateLimiter(httpx.NewRedisWindow(backend.redis), cfg.RateLimitRequests, cfg.RateLimitWindow)
		router.Use(limiter.Middleware)
	}

	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)

	catalogHandler.RegisterHealthCheck(router, backend.db, backend.breaker)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{session.HeaderName, "X-Session-Created"},
		AllowCredentials: true,
	})

	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func newGRPCServer(backend *catalogBackend) (*grpc.Server, *grpcDelivery.HealthServer) {
	server := grpc.NewServer(grpcDelivery.ServerOptions()...)

	var breaker grpcDelivery.BreakerState
	if backend.breaker != nil {
		breaker = backend.breaker
	}
	health := grpcDelivery.NewHealthServer(breaker)
	health.Register(server)

	// Register reflection service (for grpcurl and grpc tools)
	reflection.Register(server)

	return server, health
}
