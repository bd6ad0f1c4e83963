package graph

import (
	"context"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	createUserCypher = `
CREATE (u:User {id: $id, name: $name, email: $email, created_at: $created_at, updated_at: $updated_at})
RETURN u`
	findUserByIDCypher    = `MATCH (u:User {id: $id}) RETURN u`
	findUserByEmailCypher = `MATCH (u:User {email: $email}) RETURN u`
	listUsersCypher       = `MATCH (u:User) RETURN u ORDER BY u.created_at DESC`
	updateUserCypher      = `
MATCH (u:User {id: $id})
SET u.name = $name, u.email = $email, u.updated_at = $updated_at
RETURN u`
	deleteUserCypher = `
MATCH (u:User {id: $id})
DETACH DELETE u
RETURN count(*) AS deleted`
)

type userRepository struct {
	exec executor
}

func NewUserRepository(client *Client) repository.UserRepository {
	return &userRepository{exec: client.executor()}
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := query(ctx, repo.exec, neo4j.AccessModeWrite, createUserCypher, map[string]any{
		propID:        user.ID.String(),
		propName:      user.Name,
		propEmail:     user.Email,
		propCreatedAt: user.CreatedAt.UTC(),
		propUpdatedAt: user.UpdatedAt.UTC(),
	})
	if err != nil {
		if isConstraintViolation(err) {
			return errors.Wrap(repository.ErrEmailTaken, user.Email)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	return nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, findUserByIDCypher, map[string]any{propID: id.String()})
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return repo.findOne(ctx, findUserByEmailCypher, map[string]any{propEmail: email})
}

func (repo *userRepository) findOne(ctx context.Context, cypher string, params map[string]any) (*entity.User, error) {
	records, err := query(ctx, repo.exec, neo4j.AccessModeRead, cypher, params)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}
	if len(records) == 0 {
		return nil, repository.ErrUserNotFound
	}

	return recordToUser(records[0])
}

func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	records, err := query(ctx, repo.exec, neo4j.AccessModeRead, listUsersCypher, nil)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(records))
	for _, record := range records {
		user, err := recordToUser(record)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	records, err := query(ctx, repo.exec, neo4j.AccessModeWrite, updateUserCypher, map[string]any{
		propID:        user.ID.String(),
		propName:      user.Name,
		propEmail:     user.Email,
		propUpdatedAt: user.UpdatedAt.UTC(),
	})
	if err != nil {
		if isConstraintViolation(err) {
			return errors.Wrap(repository.ErrEmailTaken, user.Email)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}
	if len(records) == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes the user node. Its password goes with it; authored events and jobs stay.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	records, err := query(ctx, repo.exec, neo4j.AccessModeWrite, deleteUserCypher, map[string]any{propID: id.String()})
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}

	deleted, err := deletedCount(records)
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete user")
	}
	if deleted == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func recordToUser(record *neo4j.Record) (*entity.User, error) {
	node, err := recordNode(record, "u")
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode user")
	}

	user, err := nodeToUser(node)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to decode user")
	}

	return user, nil
}
