package handler

import (
	"log/slog"
	"net/http"

	"bulletin/internal/delivery/api/response"
	"bulletin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

type AuthHandler struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		logger: params.Logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenRequest is the OAuth2 password grant form.
type TokenRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// TokenResponse is returned bare, without the envelope, by both login endpoints.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges a JSON email and password for an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	session, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, newTokenResponse(session))
}

// Token is the form-encoded login used by OAuth2 password-flow clients. The username is the email.
func (h *AuthHandler) Token(c echo.Context) error {
	var req TokenRequest
	if ok, err := bind(c, &req); !ok {
		return err
	}

	session, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Username,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, newTokenResponse(session))
}

func newTokenResponse(session *usecase.SessionOutput) TokenResponse {
	return TokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   session.TokenType,
	}
}
