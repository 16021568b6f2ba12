package diagnosis

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ndpatients/patients/internal/platform/apierr"
	"github.com/ndpatients/patients/internal/platform/session"
	"github.com/ndpatients/patients/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/diagnosis-categories", h.ListCategories)
	api.GET("/diagnosis-categories/:id", h.GetCategory)
	api.POST("/diagnosis-categories", h.CreateCategory)
	api.PUT("/diagnosis-categories/:id", h.UpdateCategory)
	api.DELETE("/diagnosis-categories/:id", h.DeleteCategory)

	api.GET("/diagnoses", h.ListDiagnoses)
	api.GET("/diagnoses/:id", h.GetDiagnosis)
	api.POST("/diagnoses", h.CreateDiagnosis)
	api.PUT("/diagnoses/:id", h.UpdateDiagnosis)
	api.DELETE("/diagnoses/:id", h.DeleteDiagnosis)

	api.GET("/patient-diagnoses", h.ListPatientDiagnoses)
	api.GET("/patient-diagnoses/:id", h.GetPatientDiagnosis)
	api.POST("/patient-diagnoses", h.CreatePatientDiagnosis)
	api.PUT("/patient-diagnoses/:id", h.UpdatePatientDiagnosis)
	api.DELETE("/patient-diagnoses/:id", h.DeletePatientDiagnosis)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// -- Diagnosis Categories --

func (h *Handler) ListCategories(c echo.Context) error {
	items, err := h.svc.ListCategories(c.Request().Context())
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	cat, err := h.svc.GetCategory(c.Request().Context(), id)
	if err != nil {
		return apierr.Map(err, "diagnosis category not found")
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *Handler) CreateCategory(c echo.Context) error {
	var cat DiagnosisCategory
	if err := c.Bind(&cat); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCategory(c.Request().Context(), &cat); err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var cat DiagnosisCategory
	if err := c.Bind(&cat); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cat.ID = id
	if err := h.svc.UpdateCategory(c.Request().Context(), &cat); err != nil {
		return apierr.Map(err, "diagnosis category not found")
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return apierr.Map(err, "diagnosis category not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Diagnoses --

func (h *Handler) ListDiagnoses(c echo.Context) error {
	var categoryID *uuid.UUID
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid categoryId")
		}
		categoryID = &id
	}
	items, err := h.svc.ListDiagnoses(c.Request().Context(), categoryID)
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetDiagnosis(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDiagnosis(c.Request().Context(), id)
	if err != nil {
		return apierr.Map(err, "diagnosis not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDiagnosis(c echo.Context) error {
	var d Diagnosis
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDiagnosis(c.Request().Context(), &d); err != nil {
		return apierr.Map(err, "diagnosis category not found")
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDiagnosis(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var d Diagnosis
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = id
	if err := h.svc.UpdateDiagnosis(c.Request().Context(), &d); err != nil {
		return apierr.Map(err, "diagnosis not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDiagnosis(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDiagnosis(c.Request().Context(), id); err != nil {
		return apierr.Map(err, "diagnosis not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Patient Diagnoses --

type patientDiagnosesPage struct {
	PatientID       uuid.UUID `json:"patient_id"`
	PatientFullName string    `json:"patient_full_name"`
	*pagination.Response
}

// selectedPatient resolves the patient for this request: the patientId query
// parameter wins and becomes the session's selection; otherwise the session's
// selection is used.
func (h *Handler) selectedPatient(c echo.Context) (uuid.UUID, string, error) {
	sess := session.FromContext(c)

	if raw := c.QueryParam("patientId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
		}
		p, err := h.svc.GetPatient(c.Request().Context(), id)
		if err != nil {
			return uuid.Nil, "", apierr.Map(err, "patient not found")
		}
		sess.Update(func(st *session.State) { st.SelectPatient(p.ID.String(), p.FullName()) })
		return p.ID, p.FullName(), nil
	}

	if id, err := uuid.Parse(sess.State.PatientID); err == nil {
		return id, sess.State.PatientFullName, nil
	}
	return uuid.Nil, "", echo.NewHTTPError(http.StatusConflict, MsgSelectPatient)
}

func (h *Handler) ListPatientDiagnoses(c echo.Context) error {
	patientID, fullName, err := h.selectedPatient(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatientDiagnoses(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, patientDiagnosesPage{
		PatientID:       patientID,
		PatientFullName: fullName,
		Response:        pagination.NewResponse(items, total, pg.Limit, pg.Offset).WithLinks(c.Request().URL),
	})
}

func (h *Handler) GetPatientDiagnosis(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	pd, err := h.svc.GetPatientDiagnosis(c.Request().Context(), id)
	if err != nil {
		return apierr.Map(err, "patient diagnosis not found")
	}
	return c.JSON(http.StatusOK, pd)
}

// CreatePatientDiagnosis records a diagnosis for the patient in the body, or
// for the session's selected patient when the body has none.
func (h *Handler) CreatePatientDiagnosis(c echo.Context) error {
	var pd PatientDiagnosis
	if err := c.Bind(&pd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if pd.PatientID == uuid.Nil {
		if id, err := uuid.Parse(session.FromContext(c).State.PatientID); err == nil {
			pd.PatientID = id
		}
	}
	if err := h.svc.CreatePatientDiagnosis(c.Request().Context(), &pd); err != nil {
		return apierr.Map(err, "patient or diagnosis not found")
	}
	return c.JSON(http.StatusCreated, pd)
}

func (h *Handler) UpdatePatientDiagnosis(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var pd PatientDiagnosis
	if err := c.Bind(&pd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pd.ID = id
	if err := h.svc.UpdatePatientDiagnosis(c.Request().Context(), &pd); err != nil {
		return apierr.Map(err, "patient diagnosis not found")
	}
	return c.JSON(http.StatusOK, pd)
}

func (h *Handler) DeletePatientDiagnosis(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatientDiagnosis(c.Request().Context(), id); err != nil {
		return apierr.Map(err, "patient diagnosis not found")
	}
	return c.NoContent(http.StatusNoContent)
}
