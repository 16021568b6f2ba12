package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/ndpatients/patients/internal/validation"
)

// Patient maps to the patient table. Stored values are always the
// normalized output of validation.ValidatePatientRecord.
type Patient struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Address      *string    `db:"address" json:"address,omitempty"`
	City         *string    `db:"city" json:"city,omitempty"`
	ProvinceCode *string    `db:"province_code" json:"province_code,omitempty"`
	PostalCode   *string    `db:"postal_code" json:"postal_code,omitempty"`
	Ohip         *string    `db:"ohip" json:"ohip,omitempty"`
	DateOfBirth  *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Deceased     bool       `db:"deceased" json:"deceased"`
	DateOfDeath  *time.Time `db:"date_of_death" json:"date_of_death,omitempty"`
	HomePhone    *string    `db:"home_phone" json:"home_phone,omitempty"`
	Gender       string     `db:"gender" json:"gender"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName is "Last, First", the form used in lists and the session.
func (p *Patient) FullName() string {
	return p.LastName + ", " + p.FirstName
}

// Record returns the demographic fields in validation form.
func (p *Patient) Record() validation.PatientRecord {
	first, last, gender := p.FirstName, p.LastName, p.Gender
	return validation.PatientRecord{
		FirstName:    &first,
		LastName:     &last,
		Gender:       &gender,
		Address:      p.Address,
		City:         p.City,
		ProvinceCode: p.ProvinceCode,
		PostalCode:   p.PostalCode,
		Ohip:         p.Ohip,
		HomePhone:    p.HomePhone,
		DateOfBirth:  p.DateOfBirth,
		Deceased:     p.Deceased,
		DateOfDeath:  p.DateOfDeath,
	}
}

// Apply copies a normalized record onto p. Blank optional strings are stored
// as NULL.
func (p *Patient) Apply(rec validation.PatientRecord) {
	p.FirstName = deref(rec.FirstName)
	p.LastName = deref(rec.LastName)
	p.Gender = deref(rec.Gender)
	p.Address = nullable(rec.Address)
	p.City = nullable(rec.City)
	p.ProvinceCode = nullable(rec.ProvinceCode)
	p.PostalCode = nullable(rec.PostalCode)
	p.Ohip = nullable(rec.Ohip)
	p.HomePhone = nullable(rec.HomePhone)
	p.DateOfBirth = rec.DateOfBirth
	p.Deceased = rec.Deceased
	p.DateOfDeath = rec.DateOfDeath
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
