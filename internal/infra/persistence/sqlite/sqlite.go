// Package sqlite opens the embedded SQLite backend used for local runs and tests.
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"bulletin/config"
	"bulletin/internal/domain/lifecycle"
	"bulletin/internal/errors"
	"bulletin/internal/infra/persistence/migrations"
	"bulletin/internal/infra/persistence/sqlstore"

	"github.com/glebarez/sqlite"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	memoryPath       = ":memory:"
	foreignKeysParam = "?_pragma=foreign_keys(1)"
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured database. The schema is applied on application start.
func New(params Params) (*gorm.DB, error) {
	path := memoryPath
	if params.Config.SQLite != nil && params.Config.SQLite.Path != "" {
		path = params.Config.SQLite.Path
	}

	db, err := Open(path, sqlstore.NewGormLogger(params.Logger, params.Config.Env.Debug))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return Migrate(ctx, sqlDB, params.Logger)
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects to path with foreign keys enforced.
func Open(path string, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+foreignKeysParam), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormLogger,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open SQLite database %s", path)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	// Every connection to :memory: is a separate database.
	// File databases also serialise writers, so one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate applies the embedded SQLite schema.
func Migrate(ctx context.Context, sqlDB *sql.DB, logger *slog.Logger) error {
	if err := migrations.Up(ctx, goose.DialectSQLite3, sqlDB, logger); err != nil {
		return errors.Wrap(err, "failed to migrate SQLite")
	}

	return nil
}
