// Package middleware contains the API specific echo middleware.
package middleware

import (
	"strings"

	"bulletin/internal/delivery/api/response"
	"bulletin/internal/domain/entity"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	bearerPrefix   = "bearer "
	currentUserKey = "currentUser"
)

type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
}

// AuthMiddleware resolves the bearer token of a request to the calling user.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{authUC: params.AuthUC}
}

// Authenticate rejects requests without a valid bearer token with 401 and WWW-Authenticate: Bearer.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return response.HandleAppError(c, domainerrors.ErrUnauthenticated)
		}

		user, err := m.authUC.AuthenticateRequest(c.Request().Context(), token)
		if err != nil {
			return response.HandleAppError(c, err)
		}

		c.Set(currentUserKey, user)

		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}

// GetCurrentUser returns the user stored by Authenticate.
func GetCurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(currentUserKey).(*entity.User)

	return user, ok && user != nil
}
