package seeder

import (
	"context"
	"fmt"

	"hirematch/internal/database"
	"hirematch/internal/logger"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	log := logger.OrNop(r.Logger).Named("seeder")
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Info("seeded", zap.String("seeder", s.Name()))
	}
	return nil
}
