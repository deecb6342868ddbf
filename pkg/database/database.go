package database

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"equipment-status/pkg/config"
	"equipment-status/pkg/database/postgresql"
	"equipment-status/pkg/database/sqlite"
	apperrors "equipment-status/pkg/errors"
)

// Storage - единственный общий дескриптор хранилища. Открывается при старте сервиса,
// передаётся в репозитории явно и закрывается при остановке.
type Storage struct {
	DB     *sql.DB
	Driver string
}

func Open(cfg config.DatabaseConfig) (*Storage, error) {
	var (
		db  *sql.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = postgresql.ConnectDB(cfg.DSN, cfg.MaxOpenConns)
	case config.DriverSQLite:
		db, err = sqlite.ConnectDB(cfg.Path, cfg.BusyTimeoutMS)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedDriver, cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	return &Storage{DB: db, Driver: cfg.Driver}, nil
}

// Builder возвращает squirrel-билдер с плейсхолдерами под диалект и привязкой к пулу.
func (s *Storage) Builder() sq.StatementBuilderType {
	b := sq.StatementBuilder.RunWith(s.DB)
	if s.Driver == config.DriverPostgres {
		return b.PlaceholderFormat(sq.Dollar)
	}
	return b.PlaceholderFormat(sq.Question)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
