// Package graph stores users, events and jobs as nodes in Neo4j.
// Authorship is kept both as a creator_id property and as a (:User)-[:CREATED]->() relationship.
package graph

import (
	"context"
	"log/slog"

	"bulletin/config"
	"bulletin/internal/domain/lifecycle"
	"bulletin/internal/errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/fx"
)

var schemaStatements = []string{
	"CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE",
	"CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
	"CREATE CONSTRAINT event_id_unique IF NOT EXISTS FOR (e:Event) REQUIRE e.id IS UNIQUE",
	"CREATE CONSTRAINT job_id_unique IF NOT EXISTS FOR (j:Job) REQUIRE j.id IS UNIQUE",
	"CREATE INDEX event_created_at IF NOT EXISTS FOR (e:Event) ON (e.created_at)",
	"CREATE INDEX job_created_at IF NOT EXISTS FOR (j:Job) ON (j.created_at)",
}

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// Client owns the driver and the target database name.
type Client struct {
	driver   neo4j.DriverWithContext
	database string
}

// New creates the driver. Connectivity is verified and the schema ensured on application start.
func New(params Params) (*Client, error) {
	cfg := params.Config.Neo4j
	if cfg == nil || cfg.URI == "" {
		return nil, errors.New("neo4j uri is required")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Neo4j driver")
	}

	client := &Client{driver: driver, database: cfg.Database}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := driver.VerifyConnectivity(ctx); err != nil {
				return errors.Wrap(err, "failed to connect to Neo4j")
			}

			if err := client.ensureSchema(ctx); err != nil {
				return err
			}

			params.Logger.Info("Neo4j ready", slog.String("uri", cfg.URI), slog.String("database", cfg.Database))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			return driver.Close(ctx)
		},
	})

	return client, nil
}

func (c *Client) ensureSchema(ctx context.Context) error {
	for _, statement := range schemaStatements {
		_, err := neo4j.ExecuteQuery(ctx, c.driver, statement, nil,
			neo4j.EagerResultTransformer,
			neo4j.ExecuteQueryWithDatabase(c.database),
		)
		if err != nil {
			return errors.Wrapf(err, "failed to apply schema statement %q", statement)
		}
	}

	return nil
}

func (c *Client) executor() executor {
	return &sessionExecutor{driver: c.driver, database: c.database}
}
