package graph

import (
	"context"

	"bulletin/internal/domain/repository"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type transactionManager struct {
	client *Client
}

type repositoryFactory struct {
	exec executor
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{exec: f.exec}
}

func (f *repositoryFactory) CredentialRepo() repository.CredentialRepository {
	return &credentialRepository{exec: f.exec}
}

func NewTransactionManager(client *Client) repository.TransactionManager {
	return &transactionManager{client: client}
}

// Execute runs fn in one write transaction. The driver may replay fn on transient cluster errors.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	_, err := tm.client.executor().execute(ctx, neo4j.AccessModeWrite, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(&repositoryFactory{exec: &txExecutor{tx: tx}})
	})

	return err
}
