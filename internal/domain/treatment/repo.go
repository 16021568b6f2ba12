package treatment

import (
	"context"

	"github.com/google/uuid"
)

type TreatmentRepository interface {
	Create(ctx context.Context, t *Treatment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error)
	Update(ctx context.Context, t *Treatment) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns treatments ordered by name. A nil diagnosisID lists all.
	List(ctx context.Context, diagnosisID *uuid.UUID) ([]*Treatment, error)
}

type PatientTreatmentRepository interface {
	Create(ctx context.Context, pt *PatientTreatment) error
	GetByID(ctx context.Context, id uuid.UUID) (*PatientTreatment, error)
	Update(ctx context.Context, pt *PatientTreatment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatientDiagnosis(ctx context.Context, patientDiagnosisID uuid.UUID, limit, offset int) ([]*PatientTreatment, int, error)
}
