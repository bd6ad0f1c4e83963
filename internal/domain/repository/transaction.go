package repository

import "context"

// TransactionManager runs several repository calls atomically.
type TransactionManager interface {
	// Execute runs fn within a single transaction. A returned error rolls everything back.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the running transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	CredentialRepo() CredentialRepository
}
