package app

import (
	"context"
	"errors"
	"time"

	"hirematch/internal/config"
	"hirematch/internal/database"
	"hirematch/internal/database/migration"
	dbpostgres "hirematch/internal/database/postgres"
	"hirematch/internal/database/seeder"
	"hirematch/internal/infrastructure/cache"
	"hirematch/internal/logger"
	"hirematch/internal/ws"
	"hirematch/migrations"

	"go.uber.org/zap"
)

// Container owns the process-wide resources: pool, cache client and websocket hub.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, cfg.App.AppName)
	if err != nil {
		return nil, err
	}
	log.Info("database connected", zap.String("host", cfg.Database.DBHost), zap.String("name", cfg.Database.DBName))

	return &Container{
		Config: cfg,
		Logger: log,
		DB:     db,
		Cache:  cache.NewRedis(ctx, cfg.Redis, log),
		Hub:    ws.NewHub(log),
	}, nil
}

func (c *Container) Migrate(ctx context.Context) error {
	return migration.Runner{FS: migrations.FS, Logger: c.Logger.Named("migration")}.Run(ctx, c.DB.SQLDB())
}

func (c *Container) Seed(ctx context.Context) error {
	return seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger}.Run(ctx, c.DB)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
