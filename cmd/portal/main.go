package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/barangay-portal/internal/api/http"
	"github.com/spec-kit/barangay-portal/internal/api/http/handlers"
	"github.com/spec-kit/barangay-portal/internal/auth"
	"github.com/spec-kit/barangay-portal/internal/config"
	"github.com/spec-kit/barangay-portal/internal/events"
	"github.com/spec-kit/barangay-portal/internal/media"
	"github.com/spec-kit/barangay-portal/internal/observability"
	"github.com/spec-kit/barangay-portal/internal/persistence"
	"github.com/spec-kit/barangay-portal/internal/portalapi"
	"github.com/spec-kit/barangay-portal/internal/service"
	"github.com/spec-kit/barangay-portal/internal/slot"
	"github.com/spec-kit/barangay-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Name)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	ready := map[string]handlers.Pinger{}
	cookieOpts := slot.CookieOptions{
		Secure: cfg.Storage.CookieSecure,
		Domain: cfg.Storage.CookieDomain,
		TTL:    cfg.Storage.SlotTTL(),
	}

	var backend slot.Backend
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		redis, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer redis.Close()
		ready["redis"] = redis
		backend = slot.NewServerBackend(slot.NewRedisRepository(redis.Client), cfg.Storage.VisitorCookie, cookieOpts)
	case config.StoragePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.DB, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		ready["postgres"] = pg
		backend = slot.NewServerBackend(slot.NewPostgresRepository(pg.DB), cfg.Storage.VisitorCookie, cookieOpts)
	case config.StorageMemory:
		logger.Warn("memory slot storage does not survive restarts or span instances")
		backend = slot.NewServerBackend(slot.NewMemoryRepository(), cfg.Storage.VisitorCookie, cookieOpts)
	default:
		backend = slot.NewCookieBackend(cookieOpts)
	}
	logger.Info("credential slot storage selected", zap.String("backend", cfg.Storage.Backend))

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger, metrics))

	api, err := portalapi.New(cfg.API.BaseURL, portalapi.Options{
		Timeout: cfg.API.Timeout(),
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		logger.Fatal("failed to build community api client", zap.Error(err))
	}
	ready["api"] = api

	uploader := media.NewCloudinary(cfg.Media, &http.Client{Timeout: cfg.API.Timeout()}, logger, metrics)
	if !cfg.Media.Enabled() {
		logger.Warn("CLOUDINARY_CLOUD_NAME or CLOUDINARY_UPLOAD_PRESET not set; image uploads disabled")
	}

	app := httptransport.NewApp(httptransport.AppDeps{
		Name:        cfg.App.Name,
		Version:     cfg.App.Version,
		Logger:      logger,
		Metrics:     metrics,
		MetricsPath: cfg.Metrics.Path,
		Middleware: httptransport.MiddlewareConfig{
			Timeout:   cfg.App.RequestTimeout(),
			CookieKey: cfg.Storage.CookieEncryptKey,
		},
		Credentials: auth.NewCredentials(backend, dispatcher, logger),
		API:         api,
		Uploader:    uploader,
		Ready:       ready,
	})

	go func() {
		logger.Info("portal listening", zap.String("addr", cfg.App.Addr()), zap.String("api", cfg.API.BaseURL))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
