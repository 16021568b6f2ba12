package diagnosis

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ndpatients/patients/internal/domain/patient"
	"github.com/ndpatients/patients/internal/platform/apierr"
)

// MsgSelectPatient is returned when no patient is given and none is selected.
const MsgSelectPatient = "Please select a patient!"

// PatientLookup resolves patients for selection and ownership checks.
type PatientLookup interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type Service struct {
	categories       CategoryRepository
	diagnoses        DiagnosisRepository
	patientDiagnoses PatientDiagnosisRepository
	patients         PatientLookup
}

func NewService(categories CategoryRepository, diagnoses DiagnosisRepository, patientDiagnoses PatientDiagnosisRepository, patients PatientLookup) *Service {
	return &Service{
		categories:       categories,
		diagnoses:        diagnoses,
		patientDiagnoses: patientDiagnoses,
		patients:         patients,
	}
}

func requireName(name *string, what string) error {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return apierr.Invalid(what + " cannot be empty or just blanks")
	}
	return nil
}

// -- Diagnosis Category --

func (s *Service) CreateCategory(ctx context.Context, c *DiagnosisCategory) error {
	if err := requireName(&c.Name, "Category Name"); err != nil {
		return err
	}
	return s.categories.Create(ctx, c)
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*DiagnosisCategory, error) {
	return s.categories.GetByID(ctx, id)
}

func (s *Service) UpdateCategory(ctx context.Context, c *DiagnosisCategory) error {
	if err := requireName(&c.Name, "Category Name"); err != nil {
		return err
	}
	return s.categories.Update(ctx, c)
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*DiagnosisCategory, error) {
	return s.categories.List(ctx)
}

// -- Diagnosis --

func (s *Service) checkDiagnosis(ctx context.Context, d *Diagnosis) error {
	if err := requireName(&d.Name, "Diagnosis Name"); err != nil {
		return err
	}
	if d.DiagnosisCategoryID == uuid.Nil {
		return apierr.Invalid("Diagnosis Category is required")
	}
	if _, err := s.categories.GetByID(ctx, d.DiagnosisCategoryID); err != nil {
		return fmt.Errorf("diagnosis category: %w", err)
	}
	return nil
}

func (s *Service) CreateDiagnosis(ctx context.Context, d *Diagnosis) error {
	if err := s.checkDiagnosis(ctx, d); err != nil {
		return err
	}
	return s.diagnoses.Create(ctx, d)
}

func (s *Service) GetDiagnosis(ctx context.Context, id uuid.UUID) (*Diagnosis, error) {
	return s.diagnoses.GetByID(ctx, id)
}

func (s *Service) UpdateDiagnosis(ctx context.Context, d *Diagnosis) error {
	if err := s.checkDiagnosis(ctx, d); err != nil {
		return err
	}
	return s.diagnoses.Update(ctx, d)
}

func (s *Service) DeleteDiagnosis(ctx context.Context, id uuid.UUID) error {
	return s.diagnoses.Delete(ctx, id)
}

func (s *Service) ListDiagnoses(ctx context.Context, categoryID *uuid.UUID) ([]*Diagnosis, error) {
	return s.diagnoses.List(ctx, categoryID)
}

// -- Patient Diagnosis --

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.patients.GetPatient(ctx, id)
}

func (s *Service) CreatePatientDiagnosis(ctx context.Context, pd *PatientDiagnosis) error {
	if pd.PatientID == uuid.Nil {
		return apierr.Conflict(MsgSelectPatient)
	}
	p, err := s.patients.GetPatient(ctx, pd.PatientID)
	if err != nil {
		return fmt.Errorf("patient: %w", err)
	}
	if pd.DiagnosisID == uuid.Nil {
		return apierr.Invalid("Diagnosis is required")
	}
	d, err := s.diagnoses.GetByID(ctx, pd.DiagnosisID)
	if err != nil {
		return fmt.Errorf("diagnosis: %w", err)
	}
	if err := s.patientDiagnoses.Create(ctx, pd); err != nil {
		return fmt.Errorf("create patient diagnosis: %w", err)
	}
	pd.DiagnosisName = d.Name
	pd.PatientFullName = p.FullName()
	return nil
}

func (s *Service) GetPatientDiagnosis(ctx context.Context, id uuid.UUID) (*PatientDiagnosis, error) {
	return s.patientDiagnoses.GetByID(ctx, id)
}

// UpdatePatientDiagnosis changes the diagnosis and comments. The owning
// patient never changes.
func (s *Service) UpdatePatientDiagnosis(ctx context.Context, pd *PatientDiagnosis) error {
	if pd.DiagnosisID == uuid.Nil {
		return apierr.Invalid("Diagnosis is required")
	}
	d, err := s.diagnoses.GetByID(ctx, pd.DiagnosisID)
	if err != nil {
		return fmt.Errorf("diagnosis: %w", err)
	}
	if err := s.patientDiagnoses.Update(ctx, pd); err != nil {
		return err
	}
	pd.DiagnosisName = d.Name
	return nil
}

func (s *Service) DeletePatientDiagnosis(ctx context.Context, id uuid.UUID) error {
	return s.patientDiagnoses.Delete(ctx, id)
}

func (s *Service) ListPatientDiagnoses(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PatientDiagnosis, int, error) {
	return s.patientDiagnoses.ListByPatient(ctx, patientID, limit, offset)
}
