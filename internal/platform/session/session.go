// Package session keeps the per-client selection context (selected patient,
// patient diagnosis and medication type) between requests.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.Get when the id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// State is what a client has currently selected. Zero values mean nothing is
// selected.
type State struct {
	PatientID            string `json:"patient_id,omitempty"`
	PatientFullName      string `json:"patient_full_name,omitempty"`
	PatientDiagnosisID   string `json:"patient_diagnosis_id,omitempty"`
	PatientDiagnosisName string `json:"patient_diagnosis_name,omitempty"`
	MedicationTypeID     string `json:"medication_type_id,omitempty"`
	MedicationTypeName   string `json:"medication_type_name,omitempty"`
}

// SelectPatient selects a patient. A different patient clears the selected
// patient diagnosis, which belongs to the previous patient.
func (s *State) SelectPatient(id, fullName string) {
	if s.PatientID != id {
		s.PatientDiagnosisID = ""
		s.PatientDiagnosisName = ""
	}
	s.PatientID = id
	s.PatientFullName = fullName
}

func (s *State) SelectPatientDiagnosis(id, name string) {
	s.PatientDiagnosisID = id
	s.PatientDiagnosisName = name
}

func (s *State) SelectMedicationType(id, name string) {
	s.MedicationTypeID = id
	s.MedicationTypeName = name
}

// Store persists session state by id. Save refreshes the expiry.
type Store interface {
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, id string, st *State) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Options controls the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

func (o Options) withDefaults() Options {
	if o.CookieName == "" {
		o.CookieName = "nd_session"
	}
	if o.TTL <= 0 {
		o.TTL = 30 * time.Minute
	}
	return o
}
