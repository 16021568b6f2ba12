package geography

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ndpatients/patients/internal/platform/apierr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/countries", h.ListCountries)
	api.GET("/countries/:code", h.GetCountry)
	api.POST("/countries", h.CreateCountry)
	api.PUT("/countries/:code", h.UpdateCountry)
	api.DELETE("/countries/:code", h.DeleteCountry)

	api.GET("/provinces", h.ListProvinces)
	api.GET("/provinces/:code", h.GetProvince)
	api.POST("/provinces", h.CreateProvince)
	api.PUT("/provinces/:code", h.UpdateProvince)
	api.DELETE("/provinces/:code", h.DeleteProvince)
}

// -- Countries --

func (h *Handler) ListCountries(c echo.Context) error {
	items, err := h.svc.ListCountries(c.Request().Context())
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetCountry(c echo.Context) error {
	country, err := h.svc.GetCountry(c.Request().Context(), c.Param("code"))
	if err != nil {
		return apierr.Map(err, "country not found")
	}
	return c.JSON(http.StatusOK, country)
}

func (h *Handler) CreateCountry(c echo.Context) error {
	var country Country
	if err := c.Bind(&country); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCountry(c.Request().Context(), &country); err != nil {
		return apierr.Map(err, "country not found")
	}
	return c.JSON(http.StatusCreated, country)
}

func (h *Handler) UpdateCountry(c echo.Context) error {
	var country Country
	if err := c.Bind(&country); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	country.CountryCode = c.Param("code")
	if err := h.svc.UpdateCountry(c.Request().Context(), &country); err != nil {
		return apierr.Map(err, "country not found")
	}
	return c.JSON(http.StatusOK, country)
}

func (h *Handler) DeleteCountry(c echo.Context) error {
	if err := h.svc.DeleteCountry(c.Request().Context(), c.Param("code")); err != nil {
		return apierr.Map(err, "country not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Provinces --

func (h *Handler) ListProvinces(c echo.Context) error {
	items, err := h.svc.ListProvinces(c.Request().Context(), c.QueryParam("country"))
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetProvince(c echo.Context) error {
	p, err := h.svc.GetProvince(c.Request().Context(), c.Param("code"))
	if err != nil {
		return apierr.Map(err, "province not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) CreateProvince(c echo.Context) error {
	var p Province
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateProvince(c.Request().Context(), &p); err != nil {
		return apierr.Map(err, "country not found")
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProvince(c echo.Context) error {
	var p Province
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ProvinceCode = c.Param("code")
	if err := h.svc.UpdateProvince(c.Request().Context(), &p); err != nil {
		return apierr.Map(err, "province not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProvince(c echo.Context) error {
	if err := h.svc.DeleteProvince(c.Request().Context(), c.Param("code")); err != nil {
		return apierr.Map(err, "province not found")
	}
	return c.NoContent(http.StatusNoContent)
}
