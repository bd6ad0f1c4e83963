// Package migrations embeds the relational schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log/slog"

	"bulletin/internal/errors"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

var dialectDirs = map[goose.Dialect]string{
	goose.DialectPostgres: "postgres",
	goose.DialectSQLite3:  "sqlite",
}

// Up applies every pending migration for dialect.
func Up(ctx context.Context, dialect goose.Dialect, db *sql.DB, logger *slog.Logger) error {
	dir, ok := dialectDirs[dialect]
	if !ok {
		return errors.Errorf("no migrations for dialect %s", dialect)
	}

	fsys, err := fs.Sub(files, dir)
	if err != nil {
		return errors.Wrap(err, "open embedded migrations")
	}

	provider, err := goose.NewProvider(dialect, db, fsys, goose.WithDisableGlobalRegistry(true))
	if err != nil {
		return errors.Wrap(err, "goose.NewProvider")
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	for _, result := range results {
		logger.LogAttrs(ctx, slog.LevelInfo, "Migration applied",
			slog.String("dialect", string(dialect)),
			slog.Int64("version", result.Source.Version),
			slog.Duration("duration", result.Duration),
		)
	}

	return nil
}
