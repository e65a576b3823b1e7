package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps a use case error onto the HTTP status that describes it
// and writes the uniform error payload.
func respondError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrNotPermitted):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrStateConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrTransient):
		code = http.StatusServiceUnavailable
	case errors.Is(err, commands.ErrCartIsEmpty),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: err.Error(),
	})
}

// respondBadRequest writes a 400 with the given message.
func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
