// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"

	"github.com/google/uuid"
)

// ownershipRule maps a repository miss and an owner mismatch to client-facing errors.
type ownershipRule struct {
	resource  string
	missing   error
	notFound  error
	forbidden error
}

var (
	userOwnership = ownershipRule{
		resource:  "user",
		missing:   repository.ErrUserNotFound,
		notFound:  domainerrors.ErrUserNotFound,
		forbidden: domainerrors.ErrUserOwnershipViolation,
	}
	eventOwnership = ownershipRule{
		resource:  "event",
		missing:   repository.ErrEventNotFound,
		notFound:  domainerrors.ErrEventNotFound,
		forbidden: domainerrors.ErrEventOwnershipViolation,
	}
	jobOwnership = ownershipRule{
		resource:  "job",
		missing:   repository.ErrJobNotFound,
		notFound:  domainerrors.ErrJobNotFound,
		forbidden: domainerrors.ErrJobOwnershipViolation,
	}
)

// authorizeOwner loads the resource and checks that actor created it.
// Existence is checked before ownership, so a missing id is NotFound even for strangers.
func authorizeOwner[T entity.Owned](
	ctx context.Context,
	actor *entity.User,
	id uuid.UUID,
	find func(context.Context, uuid.UUID) (T, error),
	rule ownershipRule,
) (T, error) {
	var zero T
	if actor == nil {
		return zero, domainerrors.ErrUnauthenticated
	}

	resource, err := find(ctx, id)
	if err != nil {
		if errors.Is(err, rule.missing) {
			return zero, rule.notFound
		}

		return zero, errors.Wrapf(err, "failed to load %s %s", rule.resource, id)
	}

	if resource.OwnerID() != actor.ID {
		return zero, rule.forbidden
	}

	return resource, nil
}
