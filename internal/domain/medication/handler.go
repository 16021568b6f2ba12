package medication

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ndpatients/patients/internal/platform/apierr"
	"github.com/ndpatients/patients/internal/platform/session"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medication-types", h.ListTypes)
	api.GET("/medication-types/:id", h.GetType)
	api.POST("/medication-types", h.CreateType)
	api.PUT("/medication-types/:id", h.UpdateType)
	api.DELETE("/medication-types/:id", h.DeleteType)

	api.GET("/concentration-units", h.ListConcentrationUnits)
	api.POST("/concentration-units", h.CreateConcentrationUnit)
	api.DELETE("/concentration-units/:code", h.DeleteConcentrationUnit)

	api.GET("/dispensing-units", h.ListDispensingUnits)
	api.POST("/dispensing-units", h.CreateDispensingUnit)
	api.DELETE("/dispensing-units/:code", h.DeleteDispensingUnit)

	api.GET("/medications", h.ListMedications)
	api.GET("/medications/:din", h.GetMedication)
	api.POST("/medications", h.CreateMedication)
	api.PUT("/medications/:din", h.UpdateMedication)
	api.DELETE("/medications/:din", h.DeleteMedication)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// -- Medication Types --

func (h *Handler) ListTypes(c echo.Context) error {
	items, err := h.svc.ListTypes(c.Request().Context())
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.GetType(c.Request().Context(), id)
	if err != nil {
		return apierr.Map(err, "medication type not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) CreateType(c echo.Context) error {
	var t MedicationType
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateType(c.Request().Context(), &t); err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var t MedicationType
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = id
	if err := h.svc.UpdateType(c.Request().Context(), &t); err != nil {
		return apierr.Map(err, "medication type not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteType(c.Request().Context(), id); err != nil {
		return apierr.Map(err, "medication type not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Units --

func (h *Handler) ListConcentrationUnits(c echo.Context) error {
	items, err := h.svc.ListConcentrationUnits(c.Request().Context())
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateConcentrationUnit(c echo.Context) error {
	var u ConcentrationUnit
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateConcentrationUnit(c.Request().Context(), &u); err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) DeleteConcentrationUnit(c echo.Context) error {
	if err := h.svc.DeleteConcentrationUnit(c.Request().Context(), c.Param("code")); err != nil {
		return apierr.Map(err, "concentration unit not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListDispensingUnits(c echo.Context) error {
	items, err := h.svc.ListDispensingUnits(c.Request().Context())
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) CreateDispensingUnit(c echo.Context) error {
	var u DispensingUnit
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDispensingUnit(c.Request().Context(), &u); err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) DeleteDispensingUnit(c echo.Context) error {
	if err := h.svc.DeleteDispensingUnit(c.Request().Context(), c.Param("code")); err != nil {
		return apierr.Map(err, "dispensing unit not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Medications --

type medicationsPage struct {
	MedicationTypeID   string        `json:"medication_type_id"`
	MedicationTypeName string        `json:"medication_type_name"`
	Data               []*Medication `json:"data"`
}

// selectedType resolves the medication type for this request. The
// medicationTypeId query parameter wins and becomes the session's selection.
func (h *Handler) selectedType(c echo.Context) (uuid.UUID, error) {
	sess := session.FromContext(c)

	if raw := c.QueryParam("medicationTypeId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid medicationTypeId")
		}
		t, err := h.svc.GetType(c.Request().Context(), id)
		if err != nil {
			return uuid.Nil, apierr.Map(err, "medication type not found")
		}
		sess.Update(func(st *session.State) { st.SelectMedicationType(t.ID.String(), t.Name) })
		return t.ID, nil
	}

	if id, err := uuid.Parse(sess.State.MedicationTypeID); err == nil {
		return id, nil
	}
	return uuid.Nil, echo.NewHTTPError(http.StatusConflict, MsgSelectMedicationType)
}

func (h *Handler) ListMedications(c echo.Context) error {
	typeID, err := h.selectedType(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListMedications(c.Request().Context(), typeID)
	if err != nil {
		return apierr.Map(err, "")
	}
	if items == nil {
		items = []*Medication{}
	}
	st := session.FromContext(c).State
	return c.JSON(http.StatusOK, medicationsPage{
		MedicationTypeID:   st.MedicationTypeID,
		MedicationTypeName: st.MedicationTypeName,
		Data:               items,
	})
}

func (h *Handler) GetMedication(c echo.Context) error {
	m, err := h.svc.GetMedication(c.Request().Context(), c.Param("din"))
	if err != nil {
		return apierr.Map(err, "medication not found")
	}
	return c.JSON(http.StatusOK, m)
}

// CreateMedication adds a medication to the body's medication type, or to the
// session's selected type when the body has none.
func (h *Handler) CreateMedication(c echo.Context) error {
	var m Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if m.MedicationTypeID == uuid.Nil {
		typeID, err := h.selectedType(c)
		if err != nil {
			return err
		}
		m.MedicationTypeID = typeID
	}
	if err := h.svc.CreateMedication(c.Request().Context(), &m); err != nil {
		return apierr.Map(err, "medication type not found")
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) UpdateMedication(c echo.Context) error {
	var m Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m.Din = c.Param("din")
	if err := h.svc.UpdateMedication(c.Request().Context(), &m); err != nil {
		return apierr.Map(err, "medication not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteMedication(c echo.Context) error {
	if err := h.svc.DeleteMedication(c.Request().Context(), c.Param("din")); err != nil {
		return apierr.Map(err, "medication not found")
	}
	return c.NoContent(http.StatusNoContent)
}
