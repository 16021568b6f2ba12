package treatment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ndpatients/patients/internal/domain/diagnosis"
	"github.com/ndpatients/patients/internal/platform/apierr"
)

// MsgSelectPatientDiagnosis is returned when no patient diagnosis is selected.
const MsgSelectPatientDiagnosis = "Please select a patient diagnosis!"

// PatientDiagnosisLookup resolves the patient diagnosis a treatment belongs to.
type PatientDiagnosisLookup interface {
	GetPatientDiagnosis(ctx context.Context, id uuid.UUID) (*diagnosis.PatientDiagnosis, error)
}

// DiagnosisLookup checks that a treatment's diagnosis exists.
type DiagnosisLookup interface {
	GetDiagnosis(ctx context.Context, id uuid.UUID) (*diagnosis.Diagnosis, error)
}

type Service struct {
	treatments        TreatmentRepository
	patientTreatments PatientTreatmentRepository
	diagnoses         DiagnosisLookup
	patientDiagnoses  PatientDiagnosisLookup
	now               func() time.Time
}

func NewService(treatments TreatmentRepository, patientTreatments PatientTreatmentRepository, diagnoses DiagnosisLookup, patientDiagnoses PatientDiagnosisLookup) *Service {
	return &Service{
		treatments:        treatments,
		patientTreatments: patientTreatments,
		diagnoses:         diagnoses,
		patientDiagnoses:  patientDiagnoses,
		now:               time.Now,
	}
}

func (s *Service) SetClock(now func() time.Time) { s.now = now }

// -- Treatment --

func (s *Service) checkTreatment(ctx context.Context, t *Treatment) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return apierr.Invalid("Treatment Name cannot be empty or just blanks")
	}
	if t.DiagnosisID == uuid.Nil {
		return apierr.Invalid("Diagnosis is required")
	}
	if _, err := s.diagnoses.GetDiagnosis(ctx, t.DiagnosisID); err != nil {
		return fmt.Errorf("diagnosis: %w", err)
	}
	return nil
}

func (s *Service) CreateTreatment(ctx context.Context, t *Treatment) error {
	if err := s.checkTreatment(ctx, t); err != nil {
		return err
	}
	return s.treatments.Create(ctx, t)
}

func (s *Service) GetTreatment(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return s.treatments.GetByID(ctx, id)
}

func (s *Service) UpdateTreatment(ctx context.Context, t *Treatment) error {
	if err := s.checkTreatment(ctx, t); err != nil {
		return err
	}
	return s.treatments.Update(ctx, t)
}

func (s *Service) DeleteTreatment(ctx context.Context, id uuid.UUID) error {
	return s.treatments.Delete(ctx, id)
}

func (s *Service) ListTreatments(ctx context.Context, diagnosisID *uuid.UUID) ([]*Treatment, error) {
	return s.treatments.List(ctx, diagnosisID)
}

// -- Patient Treatment --

func (s *Service) GetPatientDiagnosis(ctx context.Context, id uuid.UUID) (*diagnosis.PatientDiagnosis, error) {
	return s.patientDiagnoses.GetPatientDiagnosis(ctx, id)
}

// TreatmentOptions lists the treatments that can be prescribed for a patient
// diagnosis: those of the same diagnosis.
func (s *Service) TreatmentOptions(ctx context.Context, patientDiagnosisID uuid.UUID) ([]*Treatment, error) {
	pd, err := s.patientDiagnoses.GetPatientDiagnosis(ctx, patientDiagnosisID)
	if err != nil {
		return nil, fmt.Errorf("patient diagnosis: %w", err)
	}
	return s.treatments.List(ctx, &pd.DiagnosisID)
}

// prepare checks pt against its patient diagnosis and stamps DatePrescribed.
func (s *Service) prepare(ctx context.Context, pt *PatientTreatment) error {
	if pt.PatientDiagnosisID == uuid.Nil {
		return apierr.Conflict(MsgSelectPatientDiagnosis)
	}
	pd, err := s.patientDiagnoses.GetPatientDiagnosis(ctx, pt.PatientDiagnosisID)
	if err != nil {
		return fmt.Errorf("patient diagnosis: %w", err)
	}
	if pt.TreatmentID == uuid.Nil {
		return apierr.Invalid("Treatment is required")
	}
	t, err := s.treatments.GetByID(ctx, pt.TreatmentID)
	if err != nil {
		return fmt.Errorf("treatment: %w", err)
	}
	if t.DiagnosisID != pd.DiagnosisID {
		return apierr.Invalid("Treatment " + t.Name + " is not offered for " + pd.DiagnosisName)
	}
	pt.TreatmentName = t.Name
	pt.DatePrescribed = s.now().UTC()
	return nil
}

func (s *Service) CreatePatientTreatment(ctx context.Context, pt *PatientTreatment) error {
	if err := s.prepare(ctx, pt); err != nil {
		return err
	}
	if err := s.patientTreatments.Create(ctx, pt); err != nil {
		return fmt.Errorf("create patient treatment: %w", err)
	}
	return nil
}

func (s *Service) GetPatientTreatment(ctx context.Context, id uuid.UUID) (*PatientTreatment, error) {
	return s.patientTreatments.GetByID(ctx, id)
}

func (s *Service) UpdatePatientTreatment(ctx context.Context, pt *PatientTreatment) error {
	if err := s.prepare(ctx, pt); err != nil {
		return err
	}
	return s.patientTreatments.Update(ctx, pt)
}

func (s *Service) DeletePatientTreatment(ctx context.Context, id uuid.UUID) error {
	return s.patientTreatments.Delete(ctx, id)
}

func (s *Service) ListPatientTreatments(ctx context.Context, patientDiagnosisID uuid.UUID, limit, offset int) ([]*PatientTreatment, int, error) {
	return s.patientTreatments.ListByPatientDiagnosis(ctx, patientDiagnosisID, limit, offset)
}
