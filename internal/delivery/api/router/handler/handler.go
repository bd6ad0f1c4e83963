// Package handler implements the HTTP handlers of the API.
package handler

import (
	"net/http"

	"bulletin/internal/delivery/api/response"
	"bulletin/internal/delivery/api/validator"
	domainerrors "bulletin/internal/domain/errors"
	"bulletin/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bind decodes and validates req, writing the 400 response itself on failure.
// The returned bool is false when the handler must stop.
func bind(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, response.BindingError(c, "Invalid request body")
	}

	if err := c.Validate(req); err != nil {
		if validationErr, ok := errors.AsType[*validator.ValidationError](err); ok {
			return false, response.BadRequestWithDetails(c,
				domainerrors.ErrValidationFailed.ErrorCode(),
				domainerrors.ErrValidationFailed.Message(),
				validationErr.Fields,
			)
		}

		return false, errors.WithStack(err)
	}

	return true, nil
}

// pathID parses the :id segment. Ids that are not UUIDs can never be stored, so callers
// answer them with the resource's not-found error.
func pathID(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))

	return id, err == nil
}

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
