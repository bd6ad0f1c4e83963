package repository

import (
	"context"

	"bulletin/internal/domain/entity"
	"bulletin/internal/errors"
)

// ErrCredentialNotFound is returned when no credential is stored for an email.
var ErrCredentialNotFound = errors.New("credential not found")

// CredentialRepository stores password verifiers. Plaintext passwords never reach it.
type CredentialRepository interface {
	// Create stores the credential of a freshly created user.
	Create(ctx context.Context, credential *entity.Credential) error

	// FindByEmail returns the credential whose subject is email.
	FindByEmail(ctx context.Context, email string) (*entity.Credential, error)

	// Replace overwrites the password hash of an existing credential.
	Replace(ctx context.Context, credential *entity.Credential) error
}
