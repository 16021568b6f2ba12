package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/ndpatients/patients/internal/platform/db"
	"github.com/ndpatients/patients/internal/validation"
)

func TestMap(t *testing.T) {
	fe := validation.FieldErrors{{Field: "Gender", Message: "Gender cannot be empty or just blanks"}}

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"field errors", fe, http.StatusUnprocessableEntity},
		{"wrapped field errors", fmt.Errorf("create patient: %w", fe), http.StatusUnprocessableEntity},
		{"conflict", Conflict("Please select a patient!"), http.StatusConflict},
		{"invalid", Invalid("name is required"), http.StatusBadRequest},
		{"not found", fmt.Errorf("get: %w", db.ErrNotFound), http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, http.StatusConflict},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he, ok := Map(tt.err, "thing not found").(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected *echo.HTTPError")
			}
			if he.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, he.Code)
			}
		})
	}
}

func TestMap_ValidationBody(t *testing.T) {
	fe := validation.FieldErrors{
		{Field: "FirstName", Message: "First Name cannot be empty or just blanks"},
		{Field: "Ohip", Message: "OHIP, if provided, must match pattern: 1234-123-123-XX"},
	}
	he := Map(fe, "").(*echo.HTTPError)

	body, ok := he.Message.(ValidationBody)
	if !ok {
		t.Fatalf("expected ValidationBody, got %T", he.Message)
	}
	if len(body.Errors) != 2 || body.Errors[1].Field != "Ohip" {
		t.Errorf("unexpected errors: %+v", body.Errors)
	}
}

func TestMap_NotFoundMessage(t *testing.T) {
	he := Map(db.ErrNotFound, "patient not found").(*echo.HTTPError)
	if he.Message != "patient not found" {
		t.Errorf("unexpected message %v", he.Message)
	}
}

func TestMap_Nil(t *testing.T) {
	if Map(nil, "x") != nil {
		t.Error("expected nil")
	}
}
