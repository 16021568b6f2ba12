package medication

import (
	"context"

	"github.com/google/uuid"
)

type TypeRepository interface {
	Create(ctx context.Context, t *MedicationType) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicationType, error)
	Update(ctx context.Context, t *MedicationType) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*MedicationType, error)
}

// UnitRepository stores a code-only lookup table. Concentration and
// dispensing units share it.
type UnitRepository interface {
	Create(ctx context.Context, code string) error
	Delete(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) (bool, error)
	// List returns codes in ascending order.
	List(ctx context.Context) ([]string, error)
}

type MedicationRepository interface {
	Create(ctx context.Context, m *Medication) error
	GetByDin(ctx context.Context, din string) (*Medication, error)
	Update(ctx context.Context, m *Medication) error
	Delete(ctx context.Context, din string) error
	// ListByType returns a type's medications ordered by name, then concentration.
	ListByType(ctx context.Context, typeID uuid.UUID) ([]*Medication, error)
	// FindProduct returns the medication with the same name, concentration
	// and concentration code, or db.ErrNotFound.
	FindProduct(ctx context.Context, name string, concentration float64, concentrationCode string) (*Medication, error)
}
