// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bulletin/internal/domain/entity"
	"bulletin/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when a write would give two users the same email.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// Create persists a new user. A duplicate email yields ErrEmailTaken.
	Create(ctx context.Context, user *entity.User) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List returns every user, newest first.
	List(ctx context.Context) ([]*entity.User, error)

	// Update persists name, email and updated_at of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user together with its credential.
	Delete(ctx context.Context, id uuid.UUID) error
}
