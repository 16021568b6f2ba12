package treatment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndpatients/patients/internal/platform/db"
)

// -- Treatment --

type treatmentRepoPG struct{ pool *pgxpool.Pool }

func NewTreatmentRepoPG(pool *pgxpool.Pool) TreatmentRepository {
	return &treatmentRepoPG{pool: pool}
}

func (r *treatmentRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const treatmentCols = `id, name, description, diagnosis_id`

func scanTreatment(row pgx.Row) (*Treatment, error) {
	var t Treatment
	if err := row.Scan(&t.ID, &t.Name, &t.Description, &t.DiagnosisID); err != nil {
		return nil, db.NotFound(err)
	}
	return &t, nil
}

func (r *treatmentRepoPG) Create(ctx context.Context, t *Treatment) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `INSERT INTO treatment (`+treatmentCols+`) VALUES ($1,$2,$3,$4)`,
		t.ID, t.Name, t.Description, t.DiagnosisID)
	return err
}

func (r *treatmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Treatment, error) {
	return scanTreatment(r.conn(ctx).QueryRow(ctx, `SELECT `+treatmentCols+` FROM treatment WHERE id = $1`, id))
}

func (r *treatmentRepoPG) Update(ctx context.Context, t *Treatment) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE treatment SET name=$2, description=$3, diagnosis_id=$4 WHERE id = $1`,
		t.ID, t.Name, t.Description, t.DiagnosisID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *treatmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM treatment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *treatmentRepoPG) List(ctx context.Context, diagnosisID *uuid.UUID) ([]*Treatment, error) {
	query := `SELECT ` + treatmentCols + ` FROM treatment`
	var args []interface{}
	if diagnosisID != nil {
		query += ` WHERE diagnosis_id = $1`
		args = append(args, *diagnosisID)
	}
	query += ` ORDER BY name`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Treatment
	for rows.Next() {
		t, err := scanTreatment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// -- Patient Treatment --

type patientTreatmentRepoPG struct{ pool *pgxpool.Pool }

func NewPatientTreatmentRepoPG(pool *pgxpool.Pool) PatientTreatmentRepository {
	return &patientTreatmentRepoPG{pool: pool}
}

func (r *patientTreatmentRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const ptSelect = `SELECT pt.id, pt.treatment_id, pt.patient_diagnosis_id, pt.date_prescribed,
	pt.comments, t.name
	FROM patient_treatment pt
	JOIN treatment t ON t.id = pt.treatment_id`

func scanPatientTreatment(row pgx.Row) (*PatientTreatment, error) {
	var pt PatientTreatment
	err := row.Scan(&pt.ID, &pt.TreatmentID, &pt.PatientDiagnosisID, &pt.DatePrescribed,
		&pt.Comments, &pt.TreatmentName)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &pt, nil
}

func (r *patientTreatmentRepoPG) Create(ctx context.Context, pt *PatientTreatment) error {
	pt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO patient_treatment (id, treatment_id, patient_diagnosis_id, date_prescribed, comments)
		VALUES ($1,$2,$3,$4,$5)`,
		pt.ID, pt.TreatmentID, pt.PatientDiagnosisID, pt.DatePrescribed, pt.Comments)
	return err
}

func (r *patientTreatmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PatientTreatment, error) {
	return scanPatientTreatment(r.conn(ctx).QueryRow(ctx, ptSelect+` WHERE pt.id = $1`, id))
}

func (r *patientTreatmentRepoPG) Update(ctx context.Context, pt *PatientTreatment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient_treatment SET treatment_id=$2, patient_diagnosis_id=$3, date_prescribed=$4, comments=$5
		WHERE id = $1`,
		pt.ID, pt.TreatmentID, pt.PatientDiagnosisID, pt.DatePrescribed, pt.Comments)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *patientTreatmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient_treatment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ListByPatientDiagnosis returns treatments most recently prescribed first.
func (r *patientTreatmentRepoPG) ListByPatientDiagnosis(ctx context.Context, patientDiagnosisID uuid.UUID, limit, offset int) ([]*PatientTreatment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient_treatment WHERE patient_diagnosis_id = $1`,
		patientDiagnosisID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, ptSelect+`
		WHERE pt.patient_diagnosis_id = $1
		ORDER BY pt.date_prescribed DESC, pt.id
		LIMIT $2 OFFSET $3`, patientDiagnosisID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*PatientTreatment
	for rows.Next() {
		pt, err := scanPatientTreatment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, pt)
	}
	return items, total, rows.Err()
}
