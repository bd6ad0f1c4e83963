package handler

import (
	"log/slog"
	"net/http"

	"bulletin/internal/delivery/api/middleware"
	"bulletin/internal/delivery/api/response"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest fields are optional; omitted fields keep their value.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=1"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterUserRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	user, err := h.userUC.Register(c.Request().Context(), usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, user)
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userUC.ListUsers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, users)
}

// Me returns the account behind the bearer token.
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUserNotFound)
	}

	user, err := h.userUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	id, ok := pathID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUserNotFound)
	}

	var req UpdateUserRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	user, err := h.userUC.UpdateUser(c.Request().Context(), actor, id, usecase.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	actor, ok := middleware.GetCurrentUser(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
	}

	id, ok := pathID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUserNotFound)
	}

	if err := h.userUC.DeleteUser(c.Request().Context(), actor, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.NoContent(c)
}
