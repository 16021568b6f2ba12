package diagnosis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ndpatients/patients/internal/platform/session"
)

func newTestServer(t *testing.T) (*fixture, *echo.Echo) {
	f := newFixture(t)
	e := echo.New()
	e.Use(session.Middleware(session.NewMemoryStore(time.Minute), session.Options{}, zerolog.Nop()))
	NewHandler(f.svc).RegisterRoutes(e.Group("/api/v1"))
	return f, e
}

func TestHandler_ListPatientDiagnoses_RequiresSelection(t *testing.T) {
	_, e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patient-diagnoses", nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), MsgSelectPatient) {
		t.Errorf("expected select-patient message, got %s", rec.Body.String())
	}
}

func TestHandler_ListPatientDiagnoses_RemembersPatient(t *testing.T) {
	f, e := newTestServer(t)
	f.svc.CreatePatientDiagnosis(context.Background(), &PatientDiagnosis{PatientID: f.patient.ID, DiagnosisID: f.asthma.ID})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patient-diagnoses?patientId="+f.patient.ID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	sid := rec.Header().Get(session.HeaderName)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patient-diagnoses", nil)
	req.Header.Set(session.HeaderName, sid)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from session selection, got %d", rec.Code)
	}
	var page struct {
		PatientFullName string             `json:"patient_full_name"`
		Total           int                `json:"total"`
		Data            []PatientDiagnosis `json:"data"`
	}
	json.Unmarshal(rec.Body.Bytes(), &page)
	if page.PatientFullName != "Smith, John" || page.Total != 1 {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestHandler_ListPatientDiagnoses_UnknownPatient(t *testing.T) {
	_, e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patient-diagnoses?patientId=7d1f7c8e-9a3b-4c55-8a6e-0f6f3f0f1a2b", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandler_CreatePatientDiagnosis_UsesSession(t *testing.T) {
	f, e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patient-diagnoses?patientId="+f.patient.ID.String(), nil))
	sid := rec.Header().Get(session.HeaderName)

	body := `{"diagnosis_id":"` + f.asthma.ID.String() + `","comments":"mild"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patient-diagnoses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(session.HeaderName, sid)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var pd PatientDiagnosis
	json.Unmarshal(rec.Body.Bytes(), &pd)
	if pd.PatientID != f.patient.ID {
		t.Errorf("expected session patient, got %s", pd.PatientID)
	}
}

func TestHandler_CreatePatientDiagnosis_NoSelection(t *testing.T) {
	f, e := newTestServer(t)

	body := `{"diagnosis_id":"` + f.asthma.ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patient-diagnoses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandler_ListDiagnoses_ByCategory(t *testing.T) {
	f, e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/diagnoses?categoryId="+f.category.ID.String(), nil))

	var items []Diagnosis
	json.Unmarshal(rec.Body.Bytes(), &items)
	if len(items) != 2 || items[0].Name != "Asthma" {
		t.Errorf("unexpected diagnoses %+v", items)
	}
}

func TestHandler_GetCategory_BadID(t *testing.T) {
	_, e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/diagnosis-categories/nope", nil))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
