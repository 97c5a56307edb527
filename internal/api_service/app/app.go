package app

import (
	"context"
	"github.com/langowen/fxtrend/deploy/config"
	"github.com/langowen/fxtrend/internal/api_service/adapter/api_client/frankfurter"
	"github.com/langowen/fxtrend/internal/api_service/adapter/storage/redis"
	"github.com/langowen/fxtrend/internal/api_service/cache"
	"github.com/langowen/fxtrend/internal/api_service/monitoring"
	"github.com/langowen/fxtrend/internal/api_service/ports/http/public"
	"github.com/langowen/fxtrend/internal/api_service/service"
	"github.com/langowen/fxtrend/internal/entities"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisPack "github.com/redis/go-redis/v9"
	"log"
	"log/slog"
	"os"
	"strings"
)

type ApiApp struct {
	cfg *config.Config
}

func NewApiApp(cfg *config.Config) *ApiApp {
	return &ApiApp{cfg: cfg}
}

// Start wires the service and returns a channel closed once the HTTP server
// has shut down after ctx is cancelled.
func (a *ApiApp) Start(ctx context.Context) <-chan struct{} {
	a.initLogger()
	slog.Info("Logger initialized")

	slog.Info("starting server",
		"http_port", a.cfg.HTTPServer.Port,
		"provider_timeout", a.cfg.Provider.Timeout,
		"redis", a.cfg.Redis.Addr != "",
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := monitoring.New(registry)

	httpClient := a.initHTTPClient(metrics)
	slog.Info("HTTP client initialized", "provider", a.cfg.Provider.URL)

	rdStorage := a.initRedis(ctx)

	rateCache := a.initCache(ctx, httpClient, rdStorage, metrics)
	slog.Info("Cache initialized", "ttl", a.cfg.Cache.TTL)

	apiService := a.initService(rateCache)
	slog.Info("Service initialized")

	serverDone := public.StartServer(ctx, apiService, registry, a.cfg.HTTPServer)
	slog.Info("server started", "port", a.cfg.HTTPServer.Port)

	if rdStorage == nil {
		return serverDone
	}

	done := make(chan struct{})
	go func() {
		<-serverDone
		if err := rdStorage.Close(); err != nil {
			slog.Error("Failed to close Redis client", "error", err)
		}
		close(done)
	}()

	return done
}

func (a *ApiApp) initLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     parseLevel(a.cfg.Log.Level),
		AddSource: false,
	}))
	slog.SetDefault(logger)
}

func (a *ApiApp) initHTTPClient(metrics *monitoring.Metrics) *frankfurter.HTTPClient {
	return frankfurter.NewHTTPClient(a.cfg.Provider.URL, a.cfg.Provider.Timeout, frankfurter.WithObserver(metrics))
}

// initRedis returns nil when no address is configured.
func (a *ApiApp) initRedis(ctx context.Context) *redis.Storage {
	if a.cfg.Redis.Addr == "" {
		slog.Info("Redis disabled, cache is process-local")
		return nil
	}

	options := &redisPack.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	}

	rdStorage, err := redis.InitStorage(ctx, options, a.cfg.Redis.Prefix)
	if err != nil {
		log.Fatalln("Failed to initialize Redis storage", "error", err)
	}

	slog.Info("Redis client initialized", "addr", a.cfg.Redis.Addr)

	return rdStorage
}

func (a *ApiApp) initCache(ctx context.Context, client *frankfurter.HTTPClient, rdStorage *redis.Storage, metrics *monitoring.Metrics) *cache.Cache {
	opts := []cache.Option{
		cache.WithTTL(a.cfg.Cache.TTL),
		cache.WithObserver(metrics),
	}
	if rdStorage != nil {
		opts = append(opts, cache.WithSharedStore(rdStorage))
	}

	rateCache := cache.New(service.Loader(client), opts...)

	if a.cfg.Cache.JanitorInterval > 0 {
		go rateCache.Run(ctx, a.cfg.Cache.JanitorInterval)
	}

	return rateCache
}

func (a *ApiApp) initService(rateCache *cache.Cache) *service.Service {
	apiService, err := service.NewService(rateCache, entities.Catalog{
		Currencies:       config.Split(a.cfg.Catalog.Currencies),
		DefaultBase:      a.cfg.Catalog.DefaultBase,
		DefaultTargets:   config.Split(a.cfg.Catalog.DefaultTargets),
		DefaultStartYear: a.cfg.Catalog.DefaultStartYear,
	})
	if err != nil {
		log.Fatalln("Failed to initialize service", "error", err)
	}

	return apiService
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
