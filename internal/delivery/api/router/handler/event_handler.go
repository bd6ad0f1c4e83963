package handler

import (
	"log/slog"
	"net/http"

	"bulletin/internal/delivery/api/middleware"
	"bulletin/internal/delivery/api/response"
	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type EventHandlerParams struct {
	fx.In

	EventUC usecase.EventUsecase
	Logger  *slog.Logger
}

type EventHandler struct {
	eventUC usecase.EventUsecase
	logger  *slog.Logger
}

func NewEventHandler(params EventHandlerParams) *EventHandler {
	return &EventHandler{
		eventUC: params.EventUC,
		logger:  params.Logger,
	}
}

type CreateEventRequest struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Description  string  `json:"description" validate:"required"`
	ContactEmail string  `json:"contactEmail" validate:"required,email"`
	ContactPhone *string `json:"contactPhone" validate:"omitempty,max=32"`
	EventDate    string  `json:"eventDate" validate:"required,datetime=2006-01-02"`
	EventTime    string  `json:"eventTime" validate:"required,datetime=15:04"`
	Venue        string  `json:"venue" validate:"required"`
	Organizer    string  `json:"organizer" validate:"required"`
	MaxAttendees *int    `json:"maxAttendees" validate:"omitempty,min=1"`
}

type UpdateEventRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string `json:"description" validate:"omitempty,min=1"`
	ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone *string `json:"contactPhone" validate:"omitempty,max=32"`
	EventDate    *string `json:"eventDate" validate:"omitempty,datetime=2006-01-02"`
	EventTime    *string `json:"eventTime" validate:"omitempty,datetime=15:04"`
	Venue        *string `json:"venue" validate:"omitempty,min=1"`
	Organizer    *string `json:"organizer" validate:"omitempty,min=1"`
	MaxAttendees *int    `json:"maxAttendees" validate:"omitempty,min=1"`
	Status       *string `json:"status"`
}

func (h *EventHandler) Create(c echo.Context) error {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	var req CreateEventRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	event, err := h.eventUC.CreateEvent(c.Request().Context(), actor, usecase.CreateEventInput{
		Title:        req.Title,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		EventDate:    req.EventDate,
		EventTime:    req.EventTime,
		Venue:        req.Venue,
		Organizer:    req.Organizer,
		MaxAttendees: req.MaxAttendees,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, event)
}

func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventUC.ListEvents(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events)
}

func (h *EventHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrEventNotFound)
	}

	event, err := h.eventUC.GetEvent(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, event)
}

func (h *EventHandler) Update(c echo.Context) error {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	id, ok := pathID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrEventNotFound)
	}

	var req UpdateEventRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	input := usecase.UpdateEventInput{
		Title:        req.Title,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		EventDate:    req.EventDate,
		EventTime:    req.EventTime,
		Venue:        req.Venue,
		Organizer:    req.Organizer,
		MaxAttendees: req.MaxAttendees,
	}
	if req.Status != nil {
		status := entity.EventStatus(*req.Status)
		input.Status = &status
	}

	event, err := h.eventUC.UpdateEvent(c.Request().Context(), actor, id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, event)
}

func (h *EventHandler) Delete(c echo.Context) error {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	id, ok := pathID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrEventNotFound)
	}

	if err := h.eventUC.DeleteEvent(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
