// Package persistence selects the storage backend and exposes its repositories to the container.
package persistence

import (
	"log/slog"

	"bulletin/config"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"
	"bulletin/internal/infra/persistence/graph"
	"bulletin/internal/infra/persistence/postgres"
	"bulletin/internal/infra/persistence/sqlite"
	"bulletin/internal/infra/persistence/sqlstore"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the set of stores produced for the configured backend.
type Repositories struct {
	fx.Out

	UserRepo       repository.UserRepository
	CredentialRepo repository.CredentialRepository
	EventRepo      repository.EventRepository
	JobRepo        repository.JobRepository
	TxManager      repository.TransactionManager
}

func New(params Params) (Repositories, error) {
	driver := params.Config.Storage.Driver
	params.Logger.Info("Opening storage", slog.String("driver", driver))

	switch driver {
	case config.StorageDriverNeo4j:
		client, err := graph.New(graph.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return Repositories{}, errors.Wrap(err, "failed to create neo4j client")
		}

		return Repositories{
			UserRepo:       graph.NewUserRepository(client),
			CredentialRepo: graph.NewCredentialRepository(client),
			EventRepo:      graph.NewEventRepository(client),
			JobRepo:        graph.NewJobRepository(client),
			TxManager:      graph.NewTransactionManager(client),
		}, nil
	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return Repositories{}, errors.Wrap(err, "failed to open postgres")
		}

		return sqlRepositories(db), nil
	case config.StorageDriverSQLite:
		db, err := sqlite.New(sqlite.Params{Lifecycle: params.Lifecycle, Config: params.Config, Logger: params.Logger})
		if err != nil {
			return Repositories{}, errors.Wrap(err, "failed to open sqlite")
		}

		return sqlRepositories(db), nil
	}

	return Repositories{}, errors.Errorf("unknown storage driver: %s", driver)
}

func sqlRepositories(db *gorm.DB) Repositories {
	return Repositories{
		UserRepo:       sqlstore.NewUserRepository(db),
		CredentialRepo: sqlstore.NewCredentialRepository(db),
		EventRepo:      sqlstore.NewEventRepository(db),
		JobRepo:        sqlstore.NewJobRepository(db),
		TxManager:      sqlstore.NewTransactionManager(db),
	}
}
