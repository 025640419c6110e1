package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/leaderboard-backend/internal/service"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// respondError maps service error kinds onto status codes. fallback is the
// client-facing message for storage and internal failures.
func respondError(c echo.Context, err error, fallback string) error {
	var storageErr *service.StorageError
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "user not found"))
	case errors.As(err, &storageErr):
		c.Logger().Errorf("%s: %v", fallback, err)
		if storageErr.Retryable() {
			c.Response().Header().Set("Retry-After", "1")
		}
		return c.JSON(http.StatusServiceUnavailable, NewErrorResponse("storage_unavailable", fallback))
	default:
		c.Logger().Errorf("%s: %v", fallback, err)
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", fallback))
	}
}
