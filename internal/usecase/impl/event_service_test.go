package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	mockRepo "bulletin/internal/mocks/repository"
	"bulletin/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEventService(t *testing.T) (*eventService, *mockRepo.MockEventRepository) {
	t.Helper()

	eventRepo := mockRepo.NewMockEventRepository(t)
	srv := NewEventService(EventServiceParams{
		EventRepo: eventRepo,
		Logger:    slog.New(slog.DiscardHandler),
	}).(*eventService)
	srv.now = func() time.Time { return fixedNow }

	return srv, eventRepo
}

func newStoredEvent(creatorID uuid.UUID) *entity.Event {
	created := fixedNow.Add(-24 * time.Hour)

	return &entity.Event{
		ID:           uuid.New(),
		CreatorID:    creatorID,
		Title:        "Meetup",
		Description:  "Monthly meetup",
		ContactEmail: "a@x.io",
		EventDate:    "2024-05-01",
		EventTime:    "18:30",
		Venue:        "Hall",
		Organizer:    "Alice",
		Status:       entity.EventStatusUpcoming,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	actor := &entity.User{ID: uuid.New()}
	maxAttendees := 40

	srv, eventRepo := newTestEventService(t)
	eventRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Event")).Return(nil)

	event, err := srv.CreateEvent(ctx, actor, usecase.CreateEventInput{
		Title:        "Meetup",
		Description:  "Monthly meetup",
		ContactEmail: "a@x.io",
		EventDate:    "2024-05-01",
		EventTime:    "18:30",
		Venue:        "Hall",
		Organizer:    "Alice",
		MaxAttendees: &maxAttendees,
	})
	require.NoError(t, err)
	assert.Equal(t, actor.ID, event.CreatorID)
	assert.Equal(t, entity.EventStatusUpcoming, event.Status)
	assert.Equal(t, 0, event.CurrentAttendees)
	assert.Equal(t, 40, *event.MaxAttendees)
	assert.Equal(t, fixedNow, event.CreatedAt)
	assert.Equal(t, fixedNow, event.UpdatedAt)
}

func TestEventService_CreateEvent_Anonymous(t *testing.T) {
	srv, _ := newTestEventService(t)

	_, err := srv.CreateEvent(context.Background(), nil, usecase.CreateEventInput{Title: "Meetup"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestEventService_ListEvents_Empty(t *testing.T) {
	ctx := context.Background()
	srv, eventRepo := newTestEventService(t)
	eventRepo.EXPECT().List(ctx).Return(nil, nil)

	_, err := srv.ListEvents(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrNoEventsFound)
}

func TestEventService_GetEvent_NotFound(t *testing.T) {
	ctx := context.Background()
	srv, eventRepo := newTestEventService(t)
	id := uuid.New()
	eventRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrEventNotFound)

	_, err := srv.GetEvent(ctx, id)
	assert.ErrorIs(t, err, domainerrors.ErrEventNotFound)
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	owner := &entity.User{ID: uuid.New()}
	stranger := &entity.User{ID: uuid.New()}
	title := "Updated meetup"

	t.Run("creator updates title", func(t *testing.T) {
		srv, eventRepo := newTestEventService(t)
		event := newStoredEvent(owner.ID)
		created := event.CreatedAt
		eventRepo.EXPECT().FindByID(ctx, event.ID).Return(event, nil)
		eventRepo.EXPECT().Update(ctx, event).Return(nil)

		got, err := srv.UpdateEvent(ctx, owner, event.ID, usecase.UpdateEventInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "Updated meetup", got.Title)
		assert.Equal(t, "Monthly meetup", got.Description)
		assert.Equal(t, owner.ID, got.CreatorID)
		assert.Equal(t, created, got.CreatedAt)
		assert.Equal(t, fixedNow, got.UpdatedAt)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		srv, eventRepo := newTestEventService(t)
		event := newStoredEvent(owner.ID)
		eventRepo.EXPECT().FindByID(ctx, event.ID).Return(event, nil)

		_, err := srv.UpdateEvent(ctx, stranger, event.ID, usecase.UpdateEventInput{Title: &title})
		assert.ErrorIs(t, err, domainerrors.ErrEventOwnershipViolation)
	})

	t.Run("missing event is not found before ownership", func(t *testing.T) {
		srv, eventRepo := newTestEventService(t)
		id := uuid.New()
		eventRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrEventNotFound)

		_, err := srv.UpdateEvent(ctx, stranger, id, usecase.UpdateEventInput{Title: &title})
		assert.ErrorIs(t, err, domainerrors.ErrEventNotFound)
	})

	t.Run("empty patch leaves updated_at", func(t *testing.T) {
		srv, eventRepo := newTestEventService(t)
		event := newStoredEvent(owner.ID)
		before := event.UpdatedAt
		eventRepo.EXPECT().FindByID(ctx, event.ID).Return(event, nil)

		got, err := srv.UpdateEvent(ctx, owner, event.ID, usecase.UpdateEventInput{})
		require.NoError(t, err)
		assert.Equal(t, before, got.UpdatedAt)
	})

	t.Run("status change", func(t *testing.T) {
		srv, eventRepo := newTestEventService(t)
		event := newStoredEvent(owner.ID)
		status := entity.EventStatusCancelled
		eventRepo.EXPECT().FindByID(ctx, event.ID).Return(event, nil)
		eventRepo.EXPECT().Update(ctx, event).Return(nil)

		got, err := srv.UpdateEvent(ctx, owner, event.ID, usecase.UpdateEventInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, entity.EventStatusCancelled, got.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		srv, eventRepo := newTestEventService(t)
		event := newStoredEvent(owner.ID)
		status := entity.EventStatus("postponed")
		eventRepo.EXPECT().FindByID(ctx, event.ID).Return(event, nil)

		_, err := srv.UpdateEvent(ctx, owner, event.ID, usecase.UpdateEventInput{Status: &status})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	owner := &entity.User{ID: uuid.New()}

	t.Run("creator deletes", func(t *testing.T) {
		srv, eventRepo := newTestEventService(t)
		event := newStoredEvent(owner.ID)
		eventRepo.EXPECT().FindByID(ctx, event.ID).Return(event, nil)
		eventRepo.EXPECT().Delete(ctx, event.ID).Return(nil)

		require.NoError(t, srv.DeleteEvent(ctx, owner, event.ID))
	})

	t.Run("stranger cannot delete", func(t *testing.T) {
		srv, eventRepo := newTestEventService(t)
		event := newStoredEvent(owner.ID)
		eventRepo.EXPECT().FindByID(ctx, event.ID).Return(event, nil)

		err := srv.DeleteEvent(ctx, &entity.User{ID: uuid.New()}, event.ID)
		assert.ErrorIs(t, err, domainerrors.ErrEventOwnershipViolation)
	})

	t.Run("removed concurrently", func(t *testing.T) {
		srv, eventRepo := newTestEventService(t)
		event := newStoredEvent(owner.ID)
		eventRepo.EXPECT().FindByID(ctx, event.ID).Return(event, nil)
		eventRepo.EXPECT().Delete(ctx, event.ID).Return(repository.ErrEventNotFound)

		err := srv.DeleteEvent(ctx, owner, event.ID)
		assert.ErrorIs(t, err, domainerrors.ErrEventNotFound)
	})
}
