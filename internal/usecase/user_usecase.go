package usecase

import (
	"context"

	"bulletin/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries a partial update. Nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserUsecase defines the user account operations.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterUserInput) (*entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	// UpdateUser and DeleteUser only act on the caller's own account.
	UpdateUser(ctx context.Context, actor *entity.User, id uuid.UUID, input UpdateUserInput) (*entity.User, error)
	DeleteUser(ctx context.Context, actor *entity.User, id uuid.UUID) error
}
