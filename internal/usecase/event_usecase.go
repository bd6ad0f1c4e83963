package usecase

import (
	"context"

	"bulletin/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateEventInput defines a new event. Status starts as upcoming and attendance at zero.
type CreateEventInput struct {
	Title        string
	Description  string
	ContactEmail string
	ContactPhone *string
	EventDate    string
	EventTime    string
	Venue        string
	Organizer    string
	MaxAttendees *int
}

// UpdateEventInput carries a partial update. Nil fields are left untouched.
type UpdateEventInput struct {
	Title        *string
	Description  *string
	ContactEmail *string
	ContactPhone *string
	EventDate    *string
	EventTime    *string
	Venue        *string
	Organizer    *string
	MaxAttendees *int
	Status       *entity.EventStatus
}

// EventUsecase defines event operations. Mutations are restricted to the creator.
type EventUsecase interface {
	CreateEvent(ctx context.Context, actor *entity.User, input CreateEventInput) (*entity.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	ListEvents(ctx context.Context) ([]*entity.Event, error)
	UpdateEvent(ctx context.Context, actor *entity.User, id uuid.UUID, input UpdateEventInput) (*entity.Event, error)
	DeleteEvent(ctx context.Context, actor *entity.User, id uuid.UUID) error
}
