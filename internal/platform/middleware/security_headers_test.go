package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	e.Use(SecurityHeaders())
	e.GET("/api/v1/patients/:id", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
	})
	e.POST("/api/v1/patients", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid")
	})

	for _, r := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/patients/123", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/patients", nil),
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, r)

		for _, kv := range apiHeaders {
			if got := rec.Header().Get(kv[0]); got != kv[1] {
				t.Errorf("%s %s: %s = %q, want %q", r.Method, r.URL.Path, kv[0], got, kv[1])
			}
		}
	}
}

func TestSecurityHeaders_NoStoreOnPatientRead(t *testing.T) {
	e := echo.New()
	e.Use(SecurityHeaders())
	e.GET("/api/v1/patients/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients/abc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Error("patient reads must not be cacheable")
	}
}
