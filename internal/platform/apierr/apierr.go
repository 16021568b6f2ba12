// Package apierr turns service errors into HTTP responses.
package apierr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndpatients/patients/internal/platform/db"
	"github.com/ndpatients/patients/internal/validation"
)

// ConflictError reports a request that contradicts current state, such as a
// duplicate row or a missing selection.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(msg string) error {
	return &ConflictError{Message: msg}
}

// InvalidError is a request-level rule failure that is not tied to one
// patient field.
type InvalidError struct {
	Message string
}

func (e *InvalidError) Error() string { return e.Message }

func Invalid(msg string) error {
	return &InvalidError{Message: msg}
}

// ValidationBody is the 422 response body.
type ValidationBody struct {
	Message string                 `json:"message"`
	Errors  validation.FieldErrors `json:"errors"`
}

// Map converts err to an *echo.HTTPError. notFound is the message used when
// err is db.ErrNotFound.
func Map(err error, notFound string) error {
	if err == nil {
		return nil
	}

	var fe validation.FieldErrors
	var ce *ConflictError
	var ie *InvalidError
	switch {
	case errors.As(err, &fe):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, ValidationBody{
			Message: "validation failed",
			Errors:  fe,
		})
	case errors.As(err, &ce):
		return echo.NewHTTPError(http.StatusConflict, ce.Message)
	case errors.As(err, &ie):
		return echo.NewHTTPError(http.StatusBadRequest, ie.Message)
	case errors.Is(err, db.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, notFound)
	case db.IsUniqueViolation(err):
		return echo.NewHTTPError(http.StatusConflict, "record already exists")
	case db.IsForeignKeyViolation(err):
		return echo.NewHTTPError(http.StatusConflict, "record is referenced by or references missing data")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}
