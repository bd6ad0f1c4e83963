package graph

import (
	"context"

	"bulletin/internal/errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const constraintViolationCode = "Neo.ClientError.Schema.ConstraintValidationFailed"

// executor runs a unit of work either in its own managed transaction or inside an enclosing one.
type executor interface {
	execute(ctx context.Context, mode neo4j.AccessMode, work neo4j.ManagedTransactionWork) (any, error)
}

type sessionExecutor struct {
	driver   neo4j.DriverWithContext
	database string
}

func (e *sessionExecutor) execute(ctx context.Context, mode neo4j.AccessMode, work neo4j.ManagedTransactionWork) (any, error) {
	session := e.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: e.database,
		AccessMode:   mode,
	})
	defer session.Close(ctx)

	if mode == neo4j.AccessModeRead {
		return session.ExecuteRead(ctx, work)
	}

	return session.ExecuteWrite(ctx, work)
}

// txExecutor joins the transaction opened by the transaction manager.
type txExecutor struct {
	tx neo4j.ManagedTransaction
}

func (e *txExecutor) execute(_ context.Context, _ neo4j.AccessMode, work neo4j.ManagedTransactionWork) (any, error) {
	return work(e.tx)
}

func run(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	return result.Collect(ctx)
}

// query runs a single statement and returns every record.
func query(ctx context.Context, exec executor, mode neo4j.AccessMode, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	out, err := exec.execute(ctx, mode, func(tx neo4j.ManagedTransaction) (any, error) {
		return run(ctx, tx, cypher, params)
	})
	if err != nil {
		return nil, err
	}

	records, _ := out.([]*neo4j.Record)

	return records, nil
}

func isConstraintViolation(err error) bool {
	var neoErr *neo4j.Neo4jError

	return errors.As(err, &neoErr) && neoErr.Code == constraintViolationCode
}

// deletedCount reads the count(*) column returned by DETACH DELETE statements.
func deletedCount(records []*neo4j.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	count, _, err := neo4j.GetRecordValue[int64](records[0], "deleted")
	if err != nil {
		return 0, errors.Wrap(err, "read deleted count")
	}

	return count, nil
}
