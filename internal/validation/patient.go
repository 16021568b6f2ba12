package validation

import (
	"strings"
	"time"
)

// Field names used in FieldError.Field.
const (
	FieldFirstName    = "FirstName"
	FieldLastName     = "LastName"
	FieldGender       = "Gender"
	FieldProvinceCode = "ProvinceCode"
	FieldPostalCode   = "PostalCode"
	FieldOhip         = "Ohip"
	FieldHomePhone    = "HomePhone"
	FieldDateOfBirth  = "DateOfBirth"
	FieldDeceased     = "Deceased"
	FieldDateOfDeath  = "DateOfDeath"
)

const (
	MsgFirstNameRequired      = "First Name cannot be empty or just blanks"
	MsgLastNameRequired       = "Last Name cannot be empty or just blanks"
	MsgGenderRequired         = "Gender cannot be empty or just blanks"
	MsgGenderInvalid          = "Gender must be either 'M', 'F' or 'X'"
	MsgProvinceNotOnFile      = "Province Code is not on file"
	MsgProvinceRequired       = "Province Code is required to validate Postal Code"
	MsgPostalPattern          = "Postal Code must match pattern: A3A 3A3"
	MsgPostalProvinceMismatch = "First letter of Postal Code not valid for given Province"
	MsgPostalInvalid          = "Postal Code is invalid"
	MsgOhipPattern            = "OHIP, if provided, must match pattern: 1234-123-123-XX"
	MsgHomePhonePattern       = "Home Phone, if provided, must be 10 digits: 123-123-1234"
	MsgBirthInFuture          = "Date Of Birth cannot be in the future"
	MsgDeceasedRequired       = "Deceased must be true if Date of Death is provided"
	MsgDeathDateRequired      = "If Deceased is true, a Date Of Death is required"
	MsgDeathInFuture          = "Date Of Death cannot be in the future"
	MsgDeathBeforeBirth       = "Date Of Death cannot be before Date Of Birth"
)

// PatientRecord carries the demographic fields of a patient through
// validation. A nil string or date means the field was not provided.
type PatientRecord struct {
	FirstName    *string    `json:"first_name,omitempty"`
	LastName     *string    `json:"last_name,omitempty"`
	Gender       *string    `json:"gender,omitempty"`
	Address      *string    `json:"address,omitempty"`
	City         *string    `json:"city,omitempty"`
	ProvinceCode *string    `json:"province_code,omitempty"`
	PostalCode   *string    `json:"postal_code,omitempty"`
	Ohip         *string    `json:"ohip,omitempty"`
	HomePhone    *string    `json:"home_phone,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Deceased     bool       `json:"deceased"`
	DateOfDeath  *time.Time `json:"date_of_death,omitempty"`
}

// ProvinceExistsFunc reports whether a province code is on file.
type ProvinceExistsFunc func(code string) bool

// Result is the normalized record together with every failure found.
type Result struct {
	Record PatientRecord `json:"record"`
	Errors FieldErrors   `json:"errors"`
}

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the field errors as an error, or nil when the record is valid.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// Validator runs the patient rules against a fixed clock.
type Validator struct {
	now func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the time source used for "in the future" checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

func New(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var defaultValidator = New()

// ValidatePatientRecord validates rec with the wall clock. See
// Validator.ValidatePatientRecord.
func ValidatePatientRecord(rec PatientRecord, provinceExists ProvinceExistsFunc) Result {
	return defaultValidator.ValidatePatientRecord(rec, provinceExists)
}

// ValidatePatientRecord checks every field of rec in a fixed order and
// returns a normalized copy plus all failures. rec itself is not modified.
// A field that passes is normalized even when other fields fail.
// provinceExists is called at most once, and only when a province code is
// provided; a nil func treats every province as unknown.
func (v *Validator) ValidatePatientRecord(rec PatientRecord, provinceExists ProvinceExistsFunc) Result {
	out := rec
	var errs FieldErrors

	out.FirstName = requiredName(rec.FirstName, FieldFirstName, MsgFirstNameRequired, &errs)
	out.LastName = requiredName(rec.LastName, FieldLastName, MsgLastNameRequired, &errs)

	if isBlank(rec.Gender) {
		errs.add(FieldGender, MsgGenderRequired)
	} else {
		g := Capitalize(*rec.Gender)
		out.Gender = &g
		if g != "M" && g != "F" && g != "X" {
			errs.add(FieldGender, MsgGenderInvalid)
		}
	}

	out.Address = capitalizePtr(rec.Address)
	out.City = capitalizePtr(rec.City)

	province := ""
	if !isBlank(rec.ProvinceCode) {
		province = strings.ToUpper(strings.TrimSpace(*rec.ProvinceCode))
		out.ProvinceCode = &province
		if provinceExists == nil || !provinceExists(province) {
			errs.add(FieldProvinceCode, MsgProvinceNotOnFile)
		}
	}

	if !isBlank(rec.PostalCode) {
		if province == "" {
			errs.add(FieldProvinceCode, MsgProvinceRequired)
		} else {
			postal := normalizePostal(strings.TrimSpace(*rec.PostalCode), province, &errs)
			out.PostalCode = &postal
		}
	}

	if !isBlank(rec.Ohip) {
		if ValidateOhip(*rec.Ohip) {
			ohip := FormatOhip(*rec.Ohip)
			out.Ohip = &ohip
		} else {
			errs.add(FieldOhip, MsgOhipPattern)
		}
	}

	if rec.HomePhone != nil {
		if ok, phone := ValidateAndFormatPhone(*rec.HomePhone); ok {
			out.HomePhone = &phone
		} else {
			errs.add(FieldHomePhone, MsgHomePhonePattern)
		}
	}

	now := v.now()
	if rec.DateOfBirth != nil && rec.DateOfBirth.After(now) {
		errs.add(FieldDateOfBirth, MsgBirthInFuture)
	}

	switch {
	case !rec.Deceased:
		if rec.DateOfDeath != nil {
			errs.add(FieldDeceased, MsgDeceasedRequired)
		}
	case rec.DateOfDeath == nil:
		errs.add(FieldDateOfDeath, MsgDeathDateRequired)
	case rec.DateOfDeath.After(now):
		errs.add(FieldDateOfDeath, MsgDeathInFuture)
	case rec.DateOfBirth != nil && rec.DateOfDeath.Before(*rec.DateOfBirth):
		errs.add(FieldDateOfDeath, MsgDeathBeforeBirth)
	}

	return Result{Record: out, Errors: errs}
}

// normalizePostal formats raw as a Canadian code for province. When the leading
// letter does not belong to the province, raw is retried as a US ZIP code.
// Errors already recorded are kept even if the ZIP fallback succeeds, and a
// pattern failure leaves the stored value empty unless the fallback replaces
// it.
func normalizePostal(raw, province string, errs *FieldErrors) string {
	postal := FormatPostalCodeCanada(raw)
	if postal == "" {
		errs.add(FieldPostalCode, MsgPostalPattern)
	}
	if IsPostalCodeValidForProvince(province, postal) {
		return postal
	}

	errs.add(FieldPostalCode, MsgPostalProvinceMismatch)
	ok, zip := ValidateAndFormatZip(raw)
	if !ok {
		errs.add(FieldPostalCode, MsgPostalInvalid)
		return postal
	}
	return zip
}

func requiredName(s *string, field, msg string, errs *FieldErrors) *string {
	if isBlank(s) {
		errs.add(field, msg)
		return s
	}
	c := Capitalize(*s)
	return &c
}

func capitalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	c := Capitalize(*s)
	return &c
}
