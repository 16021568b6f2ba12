package diagnosis

import (
	"time"

	"github.com/google/uuid"
)

// DiagnosisCategory maps to the diagnosis_category table.
type DiagnosisCategory struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// Diagnosis maps to the diagnosis table.
type Diagnosis struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	Name                string    `db:"name" json:"name"`
	DiagnosisCategoryID uuid.UUID `db:"diagnosis_category_id" json:"diagnosis_category_id"`
}

// PatientDiagnosis maps to the patient_diagnosis table. DiagnosisName and
// PatientFullName are filled on reads.
type PatientDiagnosis struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	DiagnosisID     uuid.UUID `db:"diagnosis_id" json:"diagnosis_id"`
	Comments        *string   `db:"comments" json:"comments,omitempty"`
	DiagnosisName   string    `db:"-" json:"diagnosis_name,omitempty"`
	PatientFullName string    `db:"-" json:"patient_full_name,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
