package repository

import (
	"context"

	"bulletin/internal/domain/entity"
	"bulletin/internal/errors"

	"github.com/google/uuid"
)

// ErrEventNotFound is returned when no event matches the lookup.
var ErrEventNotFound = errors.New("event not found")

// EventRepository persists events and their CREATED relation to the creator.
type EventRepository interface {
	// Create stores the event and links it to event.CreatorID.
	Create(ctx context.Context, event *entity.Event) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)

	// List returns every event ordered by created_at descending.
	List(ctx context.Context) ([]*entity.Event, error)

	// Update persists every mutable field. CreatorID and CreatedAt are never written.
	Update(ctx context.Context, event *entity.Event) error

	Delete(ctx context.Context, id uuid.UUID) error
}
