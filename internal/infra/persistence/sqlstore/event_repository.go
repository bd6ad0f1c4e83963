package sqlstore

import (
	"context"

	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/domain/repository"
	"bulletin/internal/errors"
	"bulletin/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	if err := repo.db.WithContext(ctx).Create(fromEventDomain(event)).Error; err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("event status is invalid")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create event")
	}

	return nil
}

func (repo *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var row model.EventModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEventNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find event")
	}

	return toEventDomain(&row), nil
}

func (repo *eventRepository) List(ctx context.Context) ([]*entity.Event, error) {
	var rows []model.EventModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list events")
	}

	events := make([]*entity.Event, 0, len(rows))
	for i := range rows {
		events = append(events, toEventDomain(&rows[i]))
	}

	return events, nil
}

func (repo *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	result := repo.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Where("id = ?", event.ID).
		Updates(map[string]any{
			"title":             event.Title,
			"description":       event.Description,
			"contact_email":     event.ContactEmail,
			"contact_phone":     event.ContactPhone,
			"event_date":        event.EventDate,
			"event_time":        event.EventTime,
			"venue":             event.Venue,
			"organizer":         event.Organizer,
			"max_attendees":     event.MaxAttendees,
			"current_attendees": event.CurrentAttendees,
			"status":            string(event.Status),
			"updated_at":        event.UpdatedAt,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WithDetails("event status is invalid")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update event")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

func (repo *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.EventModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete event")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

func toEventDomain(data *model.EventModel) *entity.Event {
	return &entity.Event{
		ID:               data.ID,
		CreatorID:        data.CreatorID,
		Title:            data.Title,
		Description:      data.Description,
		ContactEmail:     data.ContactEmail,
		ContactPhone:     data.ContactPhone,
		EventDate:        data.EventDate,
		EventTime:        data.EventTime,
		Venue:            data.Venue,
		Organizer:        data.Organizer,
		MaxAttendees:     data.MaxAttendees,
		CurrentAttendees: data.CurrentAttendees,
		Status:           entity.EventStatus(data.Status),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func fromEventDomain(data *entity.Event) *model.EventModel {
	return &model.EventModel{
		ID:               data.ID,
		CreatorID:        data.CreatorID,
		Title:            data.Title,
		Description:      data.Description,
		ContactEmail:     data.ContactEmail,
		ContactPhone:     data.ContactPhone,
		EventDate:        data.EventDate,
		EventTime:        data.EventTime,
		Venue:            data.Venue,
		Organizer:        data.Organizer,
		MaxAttendees:     data.MaxAttendees,
		CurrentAttendees: data.CurrentAttendees,
		Status:           string(data.Status),
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
