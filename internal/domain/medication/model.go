package medication

import "github.com/google/uuid"

// MedicationType maps to the medication_type table.
type MedicationType struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// ConcentrationUnit maps to the concentration_unit table, e.g. "mg/mL".
type ConcentrationUnit struct {
	ConcentrationCode string `db:"concentration_code" json:"concentration_code"`
}

// DispensingUnit maps to the dispensing_unit table, e.g. "tablet".
type DispensingUnit struct {
	DispensingCode string `db:"dispensing_code" json:"dispensing_code"`
}

// Medication maps to the medication table and is keyed by its Drug
// Identification Number.
type Medication struct {
	Din                string    `db:"din" json:"din"`
	Name               string    `db:"name" json:"name"`
	Image              *string   `db:"image" json:"image,omitempty"`
	MedicationTypeID   uuid.UUID `db:"medication_type_id" json:"medication_type_id"`
	DispensingCode     string    `db:"dispensing_code" json:"dispensing_code"`
	Concentration      float64   `db:"concentration" json:"concentration"`
	ConcentrationCode  string    `db:"concentration_code" json:"concentration_code"`
	MedicationTypeName string    `db:"-" json:"medication_type_name,omitempty"`
}

// SameProduct reports whether m and o describe the same product strength.
func (m *Medication) SameProduct(o *Medication) bool {
	return m.Name == o.Name && m.Concentration == o.Concentration && m.ConcentrationCode == o.ConcentrationCode
}
