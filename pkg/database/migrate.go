package database

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	goosedb "github.com/pressly/goose/v3/database"
	"go.uber.org/zap"

	"equipment-status/migrations"
	"equipment-status/pkg/config"
	apperrors "equipment-status/pkg/errors"
)

// Migrate применяет встроенные SQL-миграции для текущего диалекта.
func (s *Storage) Migrate(ctx context.Context, logger *zap.Logger) error {
	var (
		dialect goosedb.Dialect
		dir     string
	)
	switch s.Driver {
	case config.DriverPostgres:
		dialect, dir = goosedb.DialectPostgres, "postgres"
	case config.DriverSQLite:
		dialect, dir = goosedb.DialectSQLite3, "sqlite"
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnsupportedDriver, s.Driver)
	}

	fsys, err := fs.Sub(migrations.FS, dir)
	if err != nil {
		return fmt.Errorf("миграции: %w", err)
	}

	provider, err := goose.NewProvider(dialect, s.DB, fsys)
	if err != nil {
		return fmt.Errorf("миграции: создание провайдера: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("миграции: применение: %w", err)
	}
	for _, r := range results {
		logger.Info("Миграция применена",
			zap.Int64("version", r.Source.Version),
			zap.String("file", r.Source.Path),
			zap.Duration("duration", r.Duration),
		)
	}
	return nil
}
