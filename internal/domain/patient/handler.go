package patient

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ndpatients/patients/internal/platform/apierr"
	"github.com/ndpatients/patients/internal/validation"
	"github.com/ndpatients/patients/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients", h.ListPatients)
	api.GET("/patients/:id", h.GetPatient)
	api.POST("/patients", h.CreatePatient)
	api.POST("/patients/validate", h.ValidatePatient)
	api.PUT("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return apierr.Map(err, "patient not found")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return apierr.Map(err, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

// ListPatients pages through patients ordered by "Last, First". Optional
// filters: name, province_code, ohip.
func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := map[string]string{}
	for _, k := range []string{"name", "province_code", "ohip"} {
		if v := strings.TrimSpace(c.QueryParam(k)); v != "" {
			params[k] = v
		}
	}
	if v, ok := params["province_code"]; ok {
		params["province_code"] = strings.ToUpper(v)
	}

	items, total, err := h.svc.SearchPatients(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset).WithLinks(c.Request().URL))
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.UpdatePatient(c.Request().Context(), &p); err != nil {
		return apierr.Map(err, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return apierr.Map(err, "patient not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// ValidatePatient runs validation without storing anything. It always answers
// 200 with the normalized record and the (possibly empty) error list.
func (h *Handler) ValidatePatient(c echo.Context) error {
	var rec validation.PatientRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.svc.Validate(c.Request().Context(), rec)
	if err != nil {
		return apierr.Map(err, "")
	}
	if res.Errors == nil {
		res.Errors = validation.FieldErrors{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid":  res.Valid(),
		"record": res.Record,
		"errors": res.Errors,
	})
}
