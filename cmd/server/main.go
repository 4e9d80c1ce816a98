package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirematch/internal/app"
	"hirematch/internal/config"
	"hirematch/internal/logger"

	"go.uber.org/zap"
)

type options struct {
	migrate bool
	seed    bool
}

type bootstrapFunc func(ctx context.Context, cfg config.Config, log *zap.Logger) (*app.App, func() error, error)

func main() {
	var opts options
	flag.BoolVar(&opts.migrate, "migrate", true, "apply pending migrations before serving")
	flag.BoolVar(&opts.seed, "seed", false, "insert demo postings and profiles")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("failed to read .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	lg = logger.WithFields(lg, logger.StringFields(
		logger.StringField{Key: "app", Value: cfg.App.AppName},
		logger.StringField{Key: "env", Value: cfg.App.Environment},
	)...)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	err = run(cfg, lg, opts, app.Bootstrap, sigCh)
	if err != nil {
		lg.Error("server stopped", zap.Error(err))
	}
	_ = lg.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run serves until the listener fails or a signal arrives. The container is
// released on every return path.
func run(cfg config.Config, lg *zap.Logger, opts options, boot bootstrapFunc, sigCh <-chan os.Signal) error {
	bootstrap, cleanup, err := boot(context.Background(), cfg, lg)
	if err != nil {
		return fmt.Errorf("bootstrap app: %w", err)
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			lg.Warn("cleanup error", zap.Error(cerr))
		}
	}()

	if opts.migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		err := bootstrap.Container.Migrate(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	if opts.seed {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := bootstrap.Container.Seed(ctx)
		cancel()
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		return fmt.Errorf("invalid HTTP port: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("http server listening", zap.String("addr", addr))
		errCh <- bootstrap.Fiber.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		lg.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			lg.Warn("shutdown error", zap.Error(err))
		}
		return nil
	}
}
