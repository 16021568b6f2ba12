package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestID(), Recovery(zerolog.New(&buf)))
	e.GET("/api/v1/patients/:id", func(c echo.Context) error {
		var m map[string]string
		m["boom"] = c.Param("id")
		return nil
	})
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients/42", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON log line, got %q", buf.String())
	}
	if entry["route"] != "/api/v1/patients/:id" {
		t.Errorf("route = %v", entry["route"])
	}
	if entry["request_id"] == "" || entry["request_id"] == nil {
		t.Error("expected request_id in panic log")
	}
	if entry["stack"] == nil {
		t.Error("expected stack in panic log")
	}

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || buf.Len() != 0 {
		t.Errorf("healthy route: status %d, log %q", rec.Code, buf.String())
	}
}

func TestRecovery_AbortHandlerRepanics(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	defer func() {
		if r := recover(); r != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", r)
		}
	}()
	Recovery(zerolog.Nop())(func(echo.Context) error {
		panic(http.ErrAbortHandler)
	})(c)
}
