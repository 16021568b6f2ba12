package treatment

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
	api.GET("/treatments", h.ListTreatments)
	api.GET("/treatments/:id", h.GetTreatment)
	api.POST("/treatments", h.CreateTreatment)
	api.PUT("/treatments/:id", h.UpdateTreatment)
	api.DELETE("/treatments/:id", h.DeleteTreatment)

	api.GET("/patient-treatments", h.ListPatientTreatments)
	api.GET("/patient-treatments/options", h.ListTreatmentOptions)
	api.GET("/patient-treatments/:id", h.GetPatientTreatment)
	api.POST("/patient-treatments", h.CreatePatientTreatment)
	api.PUT("/patient-treatments/:id", h.UpdatePatientTreatment)
	api.DELETE("/patient-treatments/:id", h.DeletePatientTreatment)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// -- Treatments --

func (h *Handler) ListTreatments(c echo.Context) error {
	var diagnosisID *uuid.UUID
	if raw := c.QueryParam("diagnosisId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid diagnosisId")
		}
		diagnosisID = &id
	}
	items, err := h.svc.ListTreatments(c.Request().Context(), diagnosisID)
	if err != nil {
		return apierr.Map(err, "")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.GetTreatment(c.Request().Context(), id)
	if err != nil {
		return apierr.Map(err, "treatment not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) CreateTreatment(c echo.Context) error {
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateTreatment(c.Request().Context(), &t); err != nil {
		return apierr.Map(err, "diagnosis not found")
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) UpdateTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var t Treatment
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t.ID = id
	if err := h.svc.UpdateTreatment(c.Request().Context(), &t); err != nil {
		return apierr.Map(err, "treatment not found")
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTreatment(c.Request().Context(), id); err != nil {
		return apierr.Map(err, "treatment not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Patient Treatments --

type patientTreatmentsPage struct {
	PatientFullName      string `json:"patient_full_name"`
	PatientDiagnosisName string `json:"patient_diagnosis_name"`
	*pagination.Response
}

// selectedPatientDiagnosis resolves the patient diagnosis for this request.
// The patientDiagnosisId query parameter wins and becomes the session's
// selection, along with its patient.
func (h *Handler) selectedPatientDiagnosis(c echo.Context) (uuid.UUID, error) {
	sess := session.FromContext(c)

	if raw := c.QueryParam("patientDiagnosisId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patientDiagnosisId")
		}
		pd, err := h.svc.GetPatientDiagnosis(c.Request().Context(), id)
		if err != nil {
			return uuid.Nil, apierr.Map(err, "patient diagnosis not found")
		}
		sess.Update(func(st *session.State) {
			st.SelectPatient(pd.PatientID.String(), pd.PatientFullName)
			st.SelectPatientDiagnosis(pd.ID.String(), pd.DiagnosisName)
		})
		return pd.ID, nil
	}

	if id, err := uuid.Parse(sess.State.PatientDiagnosisID); err == nil {
		return id, nil
	}
	return uuid.Nil, echo.NewHTTPError(http.StatusConflict, MsgSelectPatientDiagnosis)
}

func (h *Handler) ListPatientTreatments(c echo.Context) error {
	pdID, err := h.selectedPatientDiagnosis(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListPatientTreatments(c.Request().Context(), pdID, pg.Limit, pg.Offset)
	if err != nil {
		return apierr.Map(err, "")
	}
	st := session.FromContext(c).State
	return c.JSON(http.StatusOK, patientTreatmentsPage{
		PatientFullName:      st.PatientFullName,
		PatientDiagnosisName: st.PatientDiagnosisName,
		Response:             pagination.NewResponse(items, total, pg.Limit, pg.Offset).WithLinks(c.Request().URL),
	})
}

func (h *Handler) ListTreatmentOptions(c echo.Context) error {
	pdID, err := h.selectedPatientDiagnosis(c)
	if err != nil {
		return err
	}
	items, err := h.svc.TreatmentOptions(c.Request().Context(), pdID)
	if err != nil {
		return apierr.Map(err, "patient diagnosis not found")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetPatientTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	pt, err := h.svc.GetPatientTreatment(c.Request().Context(), id)
	if err != nil {
		return apierr.Map(err, "patient treatment not found")
	}
	return c.JSON(http.StatusOK, pt)
}

// CreatePatientTreatment prescribes a treatment for the session's selected
// patient diagnosis.
func (h *Handler) CreatePatientTreatment(c echo.Context) error {
	var pt PatientTreatment
	if err := c.Bind(&pt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pdID, err := h.selectedPatientDiagnosis(c)
	if err != nil {
		return err
	}
	pt.PatientDiagnosisID = pdID
	if err := h.svc.CreatePatientTreatment(c.Request().Context(), &pt); err != nil {
		return apierr.Map(err, "treatment not found")
	}
	return c.JSON(http.StatusCreated, pt)
}

func (h *Handler) UpdatePatientTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var pt PatientTreatment
	if err := c.Bind(&pt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	pdID, err := h.selectedPatientDiagnosis(c)
	if err != nil {
		return err
	}
	pt.ID = id
	pt.PatientDiagnosisID = pdID
	if err := h.svc.UpdatePatientTreatment(c.Request().Context(), &pt); err != nil {
		return apierr.Map(err, "patient treatment not found")
	}
	return c.JSON(http.StatusOK, pt)
}

func (h *Handler) DeletePatientTreatment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatientTreatment(c.Request().Context(), id); err != nil {
		return apierr.Map(err, "patient treatment not found")
	}
	return c.NoContent(http.StatusNoContent)
}
