package graph

import (
	"context"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// The password hash lives on the User node.
const (
	setPasswordCypher = `
MATCH (u:User {id: $id})
SET u.hashed_password = $hashed_password, u.password_updated_at = $password_updated_at
RETURN u`
	findCredentialCypher = `
MATCH (u:User {email: $email})
WHERE u.hashed_password IS NOT NULL
RETURN u`
)

type credentialRepository struct {
	exec executor
}

func NewCredentialRepository(client *Client) repository.CredentialRepository {
	return &credentialRepository{exec: client.executor()}
}

func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	err := repo.setPassword(ctx, credential)
	if errors.Is(err, repository.ErrCredentialNotFound) {
		return repository.ErrUserNotFound
	}

	return err
}

func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.Credential, error) {
	records, err := query(ctx, repo.exec, neo4j.AccessModeRead, findCredentialCypher, map[string]any{propEmail: email})
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find credential")
	}
	if len(records) == 0 {
		return nil, repository.ErrCredentialNotFound
	}

	node, err := recordNode(records[0], "u")
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode credential")
	}

	credential, err := nodeToCredential(node)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode credential")
	}

	return credential, nil
}

func (repo *credentialRepository) Replace(ctx context.Context, credential *entity.Credential) error {
	return repo.setPassword(ctx, credential)
}

func (repo *credentialRepository) setPassword(ctx context.Context, credential *entity.Credential) error {
	records, err := query(ctx, repo.exec, neo4j.AccessModeWrite, setPasswordCypher, map[string]any{
		propID:              credential.UserID.String(),
		propHashedPassword:  credential.PasswordHash,
		propPasswordUpdated: credential.UpdatedAt.UTC(),
	})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to store credential")
	}
	if len(records) == 0 {
		return repository.ErrCredentialNotFound
	}

	return nil
}
