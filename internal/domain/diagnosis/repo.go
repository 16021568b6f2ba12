package diagnosis

import (
	"context"

	"github.com/google/uuid"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *DiagnosisCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*DiagnosisCategory, error)
	Update(ctx context.Context, c *DiagnosisCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*DiagnosisCategory, error)
}

type DiagnosisRepository interface {
	Create(ctx context.Context, d *Diagnosis) error
	GetByID(ctx context.Context, id uuid.UUID) (*Diagnosis, error)
	Update(ctx context.Context, d *Diagnosis) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns diagnoses ordered by name. A nil categoryID lists all.
	List(ctx context.Context, categoryID *uuid.UUID) ([]*Diagnosis, error)
}

type PatientDiagnosisRepository interface {
	Create(ctx context.Context, pd *PatientDiagnosis) error
	GetByID(ctx context.Context, id uuid.UUID) (*PatientDiagnosis, error)
	Update(ctx context.Context, pd *PatientDiagnosis) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PatientDiagnosis, int, error)
}
