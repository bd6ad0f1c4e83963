package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "bulletin/internal/delivery/context"
	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"
	"bulletin/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type eventService struct {
	eventRepo repository.EventRepository
	logger    *slog.Logger
	now       func() time.Time
}

// EventServiceParams holds dependencies for EventService, injected by Fx.
type EventServiceParams struct {
	fx.In

	EventRepo repository.EventRepository
	Logger    *slog.Logger
}

func NewEventService(params EventServiceParams) usecase.EventUsecase {
	return &eventService{
		eventRepo: params.EventRepo,
		logger:    params.Logger,
		now:       utcNow,
	}
}

func (srv *eventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *eventService) CreateEvent(ctx context.Context, actor *entity.User, input usecase.CreateEventInput) (*entity.Event, error) {
	if actor == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	now := srv.now()
	event := &entity.Event{
		ID:               uuid.New(),
		CreatorID:        actor.ID,
		Title:            input.Title,
		Description:      input.Description,
		ContactEmail:     input.ContactEmail,
		ContactPhone:     input.ContactPhone,
		EventDate:        input.EventDate,
		EventTime:        input.EventTime,
		Venue:            input.Venue,
		Organizer:        input.Organizer,
		MaxAttendees:     input.MaxAttendees,
		CurrentAttendees: 0,
		Status:           entity.EventStatusUpcoming,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := srv.eventRepo.Create(ctx, event); err != nil {
		return nil, errors.Wrap(err, "failed to create event")
	}

	srv.log(ctx).Info("Event created", slog.Any("eventID", event.ID), slog.Any("creatorID", actor.ID))

	return event, nil
}

func (srv *eventService) GetEvent(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := srv.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, domainerrors.ErrEventNotFound
		}

		return nil, errors.Wrap(err, "failed to find event")
	}

	return event, nil
}

// ListEvents returns events newest first. An empty board is reported as not found.
func (srv *eventService) ListEvents(ctx context.Context) ([]*entity.Event, error) {
	events, err := srv.eventRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}
	if len(events) == 0 {
		return nil, domainerrors.ErrNoEventsFound
	}

	return events, nil
}

func (srv *eventService) UpdateEvent(ctx context.Context, actor *entity.User, id uuid.UUID, input usecase.UpdateEventInput) (*entity.Event, error) {
	event, err := authorizeOwner(ctx, actor, id, srv.eventRepo.FindByID, eventOwnership)
	if err != nil {
		return nil, err
	}

	if input.Status != nil && !input.Status.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown event status")
	}

	if !applyEventUpdate(event, input) {
		return event, nil
	}
	event.UpdatedAt = srv.now()

	if err := srv.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, domainerrors.ErrEventNotFound
		}

		return nil, errors.Wrap(err, "failed to update event")
	}

	return event, nil
}

// applyEventUpdate copies the populated fields and reports whether any were set.
func applyEventUpdate(event *entity.Event, input usecase.UpdateEventInput) bool {
	changed := false
	set := func(dst, src *string) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}

	set(&event.Title, input.Title)
	set(&event.Description, input.Description)
	set(&event.ContactEmail, input.ContactEmail)
	set(&event.EventDate, input.EventDate)
	set(&event.EventTime, input.EventTime)
	set(&event.Venue, input.Venue)
	set(&event.Organizer, input.Organizer)

	if input.ContactPhone != nil {
		event.ContactPhone = input.ContactPhone
		changed = true
	}
	if input.MaxAttendees != nil {
		event.MaxAttendees = input.MaxAttendees
		changed = true
	}
	if input.Status != nil {
		event.Status = *input.Status
		changed = true
	}

	return changed
}

func (srv *eventService) DeleteEvent(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	if _, err := authorizeOwner(ctx, actor, id, srv.eventRepo.FindByID, eventOwnership); err != nil {
		return err
	}

	if err := srv.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domainerrors.ErrEventNotFound
		}

		return errors.Wrap(err, "failed to delete event")
	}

	srv.log(ctx).Info("Event deleted", slog.Any("eventID", id), slog.Any("actorID", actor.ID))

	return nil
}
