package treatment

import (
	"time"

	"github.com/google/uuid"
)

// Treatment maps to the treatment table. A treatment applies to one diagnosis.
type Treatment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	DiagnosisID uuid.UUID `db:"diagnosis_id" json:"diagnosis_id"`
}

// PatientTreatment maps to the patient_treatment table. DatePrescribed is
// always set by the server.
type PatientTreatment struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	TreatmentID        uuid.UUID `db:"treatment_id" json:"treatment_id"`
	PatientDiagnosisID uuid.UUID `db:"patient_diagnosis_id" json:"patient_diagnosis_id"`
	DatePrescribed     time.Time `db:"date_prescribed" json:"date_prescribed"`
	Comments           *string   `db:"comments" json:"comments,omitempty"`
	TreatmentName      string    `db:"-" json:"treatment_name,omitempty"`
}
