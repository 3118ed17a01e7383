// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"airline-api/cmd"
	"airline-api/internal/data/repository"
	"airline-api/internal/wire"
	"airline-api/pkg/clock"
	"airline-api/pkg/database"
	"airline-api/pkg/ratelimit"
	"airline-api/pkg/utils"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %v", err)
	}
}

func run() error {
	var envFile string
	var migrateOnly bool

	flagSet := pflag.NewFlagSet("airline-api", pflag.ContinueOnError)
	flagSet.StringVar(&envFile, "env-file", ".env", "path to the .env configuration file")
	flagSet.BoolVar(&migrateOnly, "migrate-only", false, "apply the database schema and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		fmt.Fprintf(os.Stderr, "Usage: airline-api [flags]\n\n%s", flagSet.FlagUsages())
		return nil
	}

	// Load config
	config, err := utils.LoadConfig(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	logger.Info("Database connected successfully",
		zap.Int32("min_conns", config.Database.MinConns),
		zap.Int32("max_conns", config.Database.MaxConns),
	)

	if config.Database.Migrate || migrateOnly {
		migrateCtx, cancel := context.WithTimeout(ctx, time.Minute)
		err := database.Migrate(migrateCtx, db)
		cancel()
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("Database schema applied")
	}
	if migrateOnly {
		return nil
	}

	clk := clock.Real()

	limiter, err := newRateLimiter(ctx, config.RateLimit, clk, logger)
	if err != nil {
		return err
	}
	if limiter != nil {
		defer limiter.Close()
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(wire.Deps{
		Repo:    repos,
		DB:      db,
		Config:  config,
		Clock:   clk,
		Limiter: limiter,
		Logger:  logger,
	})

	// Start server
	return cmd.APIServer(ctx, app.Router, config.App.Port, logger)
}

func newRateLimiter(ctx context.Context, config utils.RateLimitConfig, clk clock.Clock, logger *zap.Logger) (ratelimit.Store, error) {
	if !config.Enabled {
		logger.Info("Rate limiting disabled")
		return nil, nil
	}

	limits, err := ratelimit.ParseLimits(config.Default)
	if err != nil {
		return nil, fmt.Errorf("parse RATELIMIT_DEFAULT: %w", err)
	}

	store, err := ratelimit.NewStore(config.StorageURI, limits, clk)
	if err != nil {
		return nil, err
	}

	// Probe once so a misconfigured Redis shows up at startup; requests
	// still pass through while it is unreachable.
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := store.Allow(probeCtx, "startup-probe"); err != nil {
		logger.Warn("Rate limit storage unreachable", zap.String("uri", utils.RedactURI(config.StorageURI)), zap.Error(err))
	}

	logger.Info("Rate limiting enabled",
		zap.String("storage", utils.RedactURI(config.StorageURI)),
		zap.String("limits", config.Default),
	)
	return store, nil
}
