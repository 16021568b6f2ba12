package medication

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ndpatients/patients/internal/platform/apierr"
	"github.com/ndpatients/patients/internal/platform/db"
	"github.com/ndpatients/patients/internal/validation"
)

const (
	MsgSelectMedicationType = "Please select a Medication Type to view its Medications!"
	MsgDuplicateMedication  = "Medication exists (same Name, Concentration and ConcentrationCode)!"
)

// dinLength is the length of a Health Canada Drug Identification Number.
const dinLength = 8

type Service struct {
	types          TypeRepository
	concentrations UnitRepository
	dispensing     UnitRepository
	medications    MedicationRepository
}

func NewService(types TypeRepository, concentrations, dispensing UnitRepository, medications MedicationRepository) *Service {
	return &Service{
		types:          types,
		concentrations: concentrations,
		dispensing:     dispensing,
		medications:    medications,
	}
}

// -- Medication Type --

func (s *Service) normalizeType(t *MedicationType) error {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return apierr.Invalid("Medication Type Name cannot be empty or just blanks")
	}
	return nil
}

func (s *Service) CreateType(ctx context.Context, t *MedicationType) error {
	if err := s.normalizeType(t); err != nil {
		return err
	}
	return s.types.Create(ctx, t)
}

func (s *Service) GetType(ctx context.Context, id uuid.UUID) (*MedicationType, error) {
	return s.types.GetByID(ctx, id)
}

func (s *Service) UpdateType(ctx context.Context, t *MedicationType) error {
	if err := s.normalizeType(t); err != nil {
		return err
	}
	return s.types.Update(ctx, t)
}

func (s *Service) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.types.Delete(ctx, id)
}

func (s *Service) ListTypes(ctx context.Context) ([]*MedicationType, error) {
	return s.types.List(ctx)
}

// -- Units --

func unitCode(code, what string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", apierr.Invalid(what + " cannot be empty or just blanks")
	}
	return code, nil
}

func (s *Service) CreateConcentrationUnit(ctx context.Context, u *ConcentrationUnit) error {
	code, err := unitCode(u.ConcentrationCode, "Concentration Code")
	if err != nil {
		return err
	}
	u.ConcentrationCode = code
	return s.concentrations.Create(ctx, code)
}

func (s *Service) DeleteConcentrationUnit(ctx context.Context, code string) error {
	return s.concentrations.Delete(ctx, strings.TrimSpace(code))
}

func (s *Service) ListConcentrationUnits(ctx context.Context) ([]ConcentrationUnit, error) {
	codes, err := s.concentrations.List(ctx)
	if err != nil {
		return nil, err
	}
	units := make([]ConcentrationUnit, len(codes))
	for i, c := range codes {
		units[i] = ConcentrationUnit{ConcentrationCode: c}
	}
	return units, nil
}

func (s *Service) CreateDispensingUnit(ctx context.Context, u *DispensingUnit) error {
	code, err := unitCode(u.DispensingCode, "Dispensing Code")
	if err != nil {
		return err
	}
	u.DispensingCode = code
	return s.dispensing.Create(ctx, code)
}

func (s *Service) DeleteDispensingUnit(ctx context.Context, code string) error {
	return s.dispensing.Delete(ctx, strings.TrimSpace(code))
}

func (s *Service) ListDispensingUnits(ctx context.Context) ([]DispensingUnit, error) {
	codes, err := s.dispensing.List(ctx)
	if err != nil {
		return nil, err
	}
	units := make([]DispensingUnit, len(codes))
	for i, c := range codes {
		units[i] = DispensingUnit{DispensingCode: c}
	}
	return units, nil
}

// -- Medication --

func (s *Service) checkMedication(ctx context.Context, m *Medication) error {
	m.Din = strings.TrimSpace(m.Din)
	if len(m.Din) != dinLength || validation.ExtractDigits(m.Din) != m.Din {
		return apierr.Invalid("DIN must be 8 digits")
	}
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return apierr.Invalid("Medication Name cannot be empty or just blanks")
	}
	if m.Concentration <= 0 {
		return apierr.Invalid("Concentration must be greater than zero")
	}
	m.ConcentrationCode = strings.TrimSpace(m.ConcentrationCode)
	m.DispensingCode = strings.TrimSpace(m.DispensingCode)

	ok, err := s.concentrations.Exists(ctx, m.ConcentrationCode)
	if err != nil {
		return fmt.Errorf("concentration unit: %w", err)
	}
	if !ok {
		return apierr.Invalid("Concentration Code is not on file")
	}
	if ok, err = s.dispensing.Exists(ctx, m.DispensingCode); err != nil {
		return fmt.Errorf("dispensing unit: %w", err)
	}
	if !ok {
		return apierr.Invalid("Dispensing Code is not on file")
	}

	t, err := s.types.GetByID(ctx, m.MedicationTypeID)
	if err != nil {
		return fmt.Errorf("medication type: %w", err)
	}
	m.MedicationTypeName = t.Name

	// Another DIN with the same product strength is a duplicate.
	dup, err := s.medications.FindProduct(ctx, m.Name, m.Concentration, m.ConcentrationCode)
	switch {
	case errors.Is(err, db.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find medication: %w", err)
	case dup.Din != m.Din:
		return apierr.Conflict(MsgDuplicateMedication)
	}
	return nil
}

func (s *Service) CreateMedication(ctx context.Context, m *Medication) error {
	if err := s.checkMedication(ctx, m); err != nil {
		return err
	}
	if err := s.medications.Create(ctx, m); err != nil {
		return fmt.Errorf("create medication: %w", err)
	}
	return nil
}

func (s *Service) GetMedication(ctx context.Context, din string) (*Medication, error) {
	return s.medications.GetByDin(ctx, strings.TrimSpace(din))
}

func (s *Service) UpdateMedication(ctx context.Context, m *Medication) error {
	if err := s.checkMedication(ctx, m); err != nil {
		return err
	}
	return s.medications.Update(ctx, m)
}

func (s *Service) DeleteMedication(ctx context.Context, din string) error {
	return s.medications.Delete(ctx, strings.TrimSpace(din))
}

func (s *Service) ListMedications(ctx context.Context, typeID uuid.UUID) ([]*Medication, error) {
	return s.medications.ListByType(ctx, typeID)
}
