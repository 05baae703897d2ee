package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"barberpanel/internal/api"
	"barberpanel/internal/cache"
	"barberpanel/internal/config"
	"barberpanel/internal/events"
	"barberpanel/internal/metrics"
	"barberpanel/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	configPath := os.Getenv("AGENDA_CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewEventBus(logger)
	database, err := store.NewDB(cfg.Database.Path, bus, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer database.Close()

	var windowsCache *cache.WindowsCache
	if cfg.Redis.Address != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Address, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		windowsCache = cache.NewWindowsCache(rdb, cfg.CacheTTL(), logger)
		windowsCache.Subscribe(bus)
	}

	service := api.NewAgendaService(database, cacheOrNil(windowsCache), cfg.AgendaOptions(), logger)

	if err := config.Watch(ctx, configPath, 30*time.Second, logger, func(updated *config.Config) {
		service.SetOptions(updated.AgendaOptions())
	}); err != nil {
		logger.Error().Err(err).Msg("config watch failed")
	}

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled && cfg.Monitoring.PrometheusPort > 0 {
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, logger)
	}

	backups := store.NewBackupService(database, store.BackupConfig{
		Enabled:   cfg.Backup.Enabled,
		Interval:  cfg.BackupInterval(),
		Path:      cfg.Backup.Path,
		Retention: cfg.BackupRetention(),
	}, logger)
	go backups.Start(ctx)

	rps, burst := cfg.RateLimit()
	httpServer := api.NewHTTPServer(service, database, cacheOrNil(windowsCache), rps, burst, logger)
	srv := httpServer.Server(fmt.Sprintf(":%d", cfg.HTTPPort()))

	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error().Err(err).Msg("http shutdown")
		}
	}()

	logger.Info().Int("port", cfg.HTTPPort()).Msg("agenda api started")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("http server error")
	}
	logger.Info().Msg("agenda api stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil || cfg.Logging.Level == "" {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Logging.Pretty {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		logger = zerolog.New(output)
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// cacheOrNil keeps a nil *WindowsCache from becoming a non-nil interface.
func cacheOrNil(c *cache.WindowsCache) api.WindowsCache {
	if c == nil {
		return nil
	}
	return c
}

func startMetricsServer(ctx context.Context, port int, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
