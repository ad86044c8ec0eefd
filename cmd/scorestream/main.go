package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmarkin/scorestream/internal/pkg/api"
	"github.com/dmarkin/scorestream/internal/pkg/bus"
	"github.com/dmarkin/scorestream/internal/pkg/cache"
	pkgconfig "github.com/dmarkin/scorestream/internal/pkg/config"
	"github.com/dmarkin/scorestream/internal/pkg/firstparty"
	"github.com/dmarkin/scorestream/internal/pkg/interfaces"
	"github.com/dmarkin/scorestream/internal/pkg/logging"
	"github.com/dmarkin/scorestream/internal/pkg/notify"
	"github.com/dmarkin/scorestream/internal/pkg/providerutil"
	"github.com/dmarkin/scorestream/internal/pkg/registry"
	"github.com/dmarkin/scorestream/internal/pkg/scheduler"
	"github.com/dmarkin/scorestream/internal/pkg/search"
	"github.com/dmarkin/scorestream/internal/providers/apifootball"
	"github.com/dmarkin/scorestream/internal/providers/balldontlie"
	"github.com/dmarkin/scorestream/internal/providers/cricapi"
	"github.com/dmarkin/scorestream/internal/providers/sportsdb"
)

const defaultConfigPath = "configs/production.yaml"

type flags struct {
	configPath string
	runFor     time.Duration
}

func main() {
	if err := run(); err != nil {
		slog.Error("Score service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	slog.Info("Starting score service...")

	f := parseFlags()

	slog.Info("Loading config", "path", f.configPath)
	cfg, err := pkgconfig.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.SetupLogger(&cfg.Logging, "scorestream")
	slog.Info("Logging initialized", "service", "scorestream", "level", cfg.Logging.Level)

	if cfg.Providers.UserAgent != "" {
		providerutil.UserAgent = cfg.Providers.UserAgent
	}

	ctx, cancel := createContext(f.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	var second *cache.RedisCache
	if cfg.Redis.Addr != "" {
		second, err = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Providers.CricAPI.CacheTTL)
		if err != nil {
			slog.Warn("Redis cache unavailable, continuing without second level", "error", err)
		} else {
			defer second.Close()
		}
	}

	providers, enrichers := buildProviders(cfg, second)
	if len(providers) == 0 {
		return fmt.Errorf("no provider enabled in config")
	}

	store, closeStore, err := buildStore(cfg)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	events := bus.New()
	reg := registry.New(events)
	searchSvc := search.NewService(store, reg, enrichers, cfg.Search.FallbackThreshold)

	// A cycle can make more than one HTTP call (sportsdb polls two sports).
	sched := scheduler.New(reg, providers, 3*cfg.Providers.FetchTimeout)
	notifier := notify.NewTelegramNotifier(&cfg.Notify)
	sched.OnFailure = notifier.ProviderFailed
	sched.OnRecovery = notifier.ProviderRecovered

	sched.Start(ctx)
	defer sched.Stop()

	server := api.NewServer(&cfg.API, reg, store, searchSvc, events)
	return server.Run(ctx)
}

func buildProviders(cfg *pkgconfig.Config, second *cache.RedisCache) ([]interfaces.Provider, []interfaces.Enricher) {
	var providers []interfaces.Provider
	var enrichers []interfaces.Enricher

	if cfg.Providers.CricAPI.Enabled {
		p := cricapi.NewProvider(cfg).WithSecondLevel(second)
		providers = append(providers, p)
		enrichers = append(enrichers, p)
	}
	if cfg.Providers.SportsDB.Enabled {
		p := sportsdb.NewProvider(cfg)
		providers = append(providers, p)
		enrichers = append(enrichers, p)
	}
	if cfg.Providers.APIFootball.Enabled {
		p := apifootball.NewProvider(cfg)
		providers = append(providers, p)
		enrichers = append(enrichers, p)
	}
	if cfg.Providers.BallDontLie.Enabled {
		providers = append(providers, balldontlie.NewProvider(cfg))
	}

	for _, p := range providers {
		slog.Info("Provider enabled", "provider", p.Name(), "interval", p.Interval())
	}
	return providers, enrichers
}

func buildStore(cfg *pkgconfig.Config) (interfaces.FirstPartyStore, func() error, error) {
	if cfg.Postgres.DSN == "" {
		slog.Warn("No postgres DSN configured, using in-memory first-party store")
		return firstparty.NewMemoryStore(), nil, nil
	}
	store, err := firstparty.NewPostgresStore(&cfg.Postgres)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	slog.Info("First-party store connected")
	return store, store.Close, nil
}

func parseFlags() flags {
	var f flags
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}
	flag.StringVar(&f.configPath, "config", defaultConfig, "Path to config file")
	flag.DurationVar(&f.runFor, "run-for", 0, "Auto-stop after duration. 0 = run until SIGINT/SIGTERM")
	flag.Parse()
	return f
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}
