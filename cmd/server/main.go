package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/murkotick/catalog-service/internal/app/catalog/cacheaside"
	"github.com/murkotick/catalog-service/internal/app/catalog/contracts"
	"github.com/murkotick/catalog-service/internal/app/catalog/queries/get_entity"
	"github.com/murkotick/catalog-service/internal/app/catalog/queries/list_entities"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/add_translation"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/create_entity"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/delete_entity"
	"github.com/murkotick/catalog-service/internal/app/catalog/usecases/shared"
	"github.com/murkotick/catalog-service/internal/cache"
	"github.com/murkotick/catalog-service/internal/config"
	"github.com/murkotick/catalog-service/internal/events"
	"github.com/murkotick/catalog-service/internal/logging"
	"github.com/murkotick/catalog-service/internal/pkg/clock"
	"github.com/murkotick/catalog-service/internal/pkg/langs"
	"github.com/murkotick/catalog-service/internal/store/spannerstore"
	"github.com/murkotick/catalog-service/internal/store/sqlitestore"
	"github.com/murkotick/catalog-service/internal/transport/httpapi"
)

const (
	shutdownTimeout     = 30 * time.Second
	healthCheckInterval = 10 * time.Second
)

// catalogStore is what both store backends provide.
type catalogStore interface {
	contracts.EntityStore
	contracts.ReadModel
	contracts.OutboxWriter
	Ping(ctx context.Context) error
	Close() error
}

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.Format(), os.Stdout)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing store", "error", err)
		}
	}()

	c, redisClient, err := openCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("closing cache", "error", err)
		}
	}()

	sink, err := newPublisher(ctx, cfg, store, redisClient, logger)
	if err != nil {
		return err
	}
	publisher := events.NewAsync(sink, cfg.EventPublishTimeout, logger)

	negotiator, err := langs.NewNegotiator(cfg.Languages, cfg.DefaultLanguage)
	if err != nil {
		return fmt.Errorf("languages: %w", err)
	}

	layer := cacheaside.New(c, cacheaside.Options{
		TTL:         cfg.CacheTTL,
		OpTimeout:   cfg.CacheOpTimeout,
		LoadTimeout: cfg.CacheLoadTimeout,
	}, logger)
	fx := shared.Effects{Invalidator: layer, Publisher: publisher, Logger: logger}
	clk := clock.System{}

	deps := httpapi.Deps{
		List:      list_entities.NewHandler(store, layer),
		Get:       get_entity.NewHandler(store, layer),
		Create:    create_entity.NewInteractor(store, store, fx, clk),
		Translate: add_translation.NewInteractor(store, store, fx, clk),
		Delete:    delete_entity.NewInteractor(store, store, fx, clk),
		Store:     store,
	}
	if cfg.CacheDriver != config.CacheNone {
		deps.Cache = c
	}

	router := httpapi.NewRouter(deps, httpapi.Options{
		Logger:         logger,
		Development:    cfg.IsDevelopment(),
		RequestTimeout: cfg.RequestTimeout,
		Languages:      negotiator,
		JWTSecret:      []byte(cfg.JWTSecret),
		AdminRoles:     cfg.AdminRoles,
		WriteRateLimit: cfg.WriteRateLimit,
		WriteRateBurst: cfg.WriteRateBurst,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	grpcSrv, healthSrv := newHealthServer()
	lis, err := net.Listen("tcp", cfg.GRPCHealthAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCHealthAddr, err)
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("starting http server", "addr", cfg.HTTPAddr, "env", cfg.Env, "store", cfg.StoreDriver, "cache", cfg.CacheDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		logger.Info("starting grpc health server", "addr", cfg.GRPCHealthAddr)
		if err := grpcSrv.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc health server: %w", err)
		}
	}()
	go watchHealth(ctx, healthSrv, store, logger)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errCh:
		logger.Error("server failed, shutting down", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	healthSrv.Shutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
	stopGRPC(shutdownCtx, grpcSrv)
	if err := publisher.Close(shutdownCtx); err != nil {
		logger.Warn("event publisher did not drain", "error", err)
	}

	logger.Info("server stopped")
	return runErr
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (catalogStore, error) {
	switch cfg.StoreDriver {
	case config.StoreSpanner:
		logger.Info("connecting to spanner", "database", cfg.SpannerDatabase)
		return spannerstore.Open(ctx, cfg.SpannerDatabase)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		logger.Info("opening sqlite database", "path", cfg.SQLitePath)
		s, err := sqlitestore.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	}
}

// openCache also returns the redis client when one was opened so the
// event publisher can share its pool.
func openCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, *redis.Client, error) {
	switch cfg.CacheDriver {
	case config.CacheRedis:
		opts := cache.DefaultRedisOptions()
		opts.URL = cfg.RedisURL
		opts.Prefix = cfg.CachePrefix
		opts.DefaultTTL = cfg.CacheTTL
		rc, err := cache.NewRedisCache(ctx, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		logger.Info("cache initialized", "backend", "redis")
		return rc, rc.Client(), nil
	case config.CacheNone:
		logger.Info("cache disabled")
		return cache.Noop{}, nil, nil
	default:
		opts := cache.DefaultMemoryOptions()
		opts.Capacity = cfg.CacheCapacity
		opts.TTL = cfg.CacheTTL
		mc, err := cache.NewMemoryCache(opts)
		if err != nil {
			return nil, nil, fmt.Errorf("memory cache: %w", err)
		}
		logger.Info("cache initialized", "backend", "memory", "capacity", cfg.CacheCapacity)
		return mc, nil, nil
	}
}

func newPublisher(ctx context.Context, cfg *config.Config, store catalogStore, cacheClient *redis.Client, logger *slog.Logger) (contracts.EventPublisher, error) {
	switch cfg.EventsDriver {
	case config.EventsNone:
		return events.Nop{}, nil
	case config.EventsOutbox:
		return events.NewOutboxPublisher(store), nil
	case config.EventsRedis:
		client := cacheClient
		if client == nil {
			opts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return nil, fmt.Errorf("events redis url: %w", err)
			}
			client = redis.NewClient(opts)
			if err := client.Ping(ctx).Err(); err != nil {
				_ = client.Close()
				return nil, fmt.Errorf("events redis: %w", err)
			}
		}
		return events.NewRedisPublisher(client, cfg.EventsChannel), nil
	default:
		return events.NewLogPublisher(logger), nil
	}
}

func newHealthServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return srv, hs
}

// watchHealth flips the gRPC serving status with store reachability.
func watchHealth(ctx context.Context, hs *health.Server, store catalogStore, logger *slog.Logger) {
	ticker := time.NewTicker(healthCheckInterval)
	defer ticker.Stop()

	serving := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := store.Ping(pingCtx)
		cancel()

		switch {
		case err != nil && serving:
			logger.Error("store unreachable, reporting NOT_SERVING", "error", err)
			hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
			serving = false
		case err == nil && !serving:
			logger.Info("store reachable again, reporting SERVING")
			hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
			serving = true
		}
	}
}

func stopGRPC(ctx context.Context, srv *grpc.Server) {
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		srv.Stop()
	}
}
