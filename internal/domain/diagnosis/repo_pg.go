package diagnosis

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndpatients/patients/internal/platform/db"
)

func execOne(ctx context.Context, q db.Querier, sql string, args ...interface{}) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// -- Diagnosis Category --

type categoryRepoPG struct{ pool *pgxpool.Pool }

func NewCategoryRepoPG(pool *pgxpool.Pool) CategoryRepository {
	return &categoryRepoPG{pool: pool}
}

func (r *categoryRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

func scanCategory(row pgx.Row) (*DiagnosisCategory, error) {
	var c DiagnosisCategory
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		return nil, db.NotFound(err)
	}
	return &c, nil
}

func (r *categoryRepoPG) Create(ctx context.Context, c *DiagnosisCategory) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `INSERT INTO diagnosis_category (id, name) VALUES ($1,$2)`, c.ID, c.Name)
	return err
}

func (r *categoryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DiagnosisCategory, error) {
	return scanCategory(r.conn(ctx).QueryRow(ctx, `SELECT id, name FROM diagnosis_category WHERE id = $1`, id))
}

func (r *categoryRepoPG) Update(ctx context.Context, c *DiagnosisCategory) error {
	return execOne(ctx, r.conn(ctx), `UPDATE diagnosis_category SET name=$2 WHERE id = $1`, c.ID, c.Name)
}

func (r *categoryRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.conn(ctx), `DELETE FROM diagnosis_category WHERE id = $1`, id)
}

func (r *categoryRepoPG) List(ctx context.Context) ([]*DiagnosisCategory, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, name FROM diagnosis_category ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*DiagnosisCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// -- Diagnosis --

type diagnosisRepoPG struct{ pool *pgxpool.Pool }

func NewDiagnosisRepoPG(pool *pgxpool.Pool) DiagnosisRepository {
	return &diagnosisRepoPG{pool: pool}
}

func (r *diagnosisRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const diagnosisCols = `id, name, diagnosis_category_id`

func scanDiagnosis(row pgx.Row) (*Diagnosis, error) {
	var d Diagnosis
	if err := row.Scan(&d.ID, &d.Name, &d.DiagnosisCategoryID); err != nil {
		return nil, db.NotFound(err)
	}
	return &d, nil
}

func (r *diagnosisRepoPG) Create(ctx context.Context, d *Diagnosis) error {
	d.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `INSERT INTO diagnosis (`+diagnosisCols+`) VALUES ($1,$2,$3)`,
		d.ID, d.Name, d.DiagnosisCategoryID)
	return err
}

func (r *diagnosisRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Diagnosis, error) {
	return scanDiagnosis(r.conn(ctx).QueryRow(ctx, `SELECT `+diagnosisCols+` FROM diagnosis WHERE id = $1`, id))
}

func (r *diagnosisRepoPG) Update(ctx context.Context, d *Diagnosis) error {
	return execOne(ctx, r.conn(ctx), `UPDATE diagnosis SET name=$2, diagnosis_category_id=$3 WHERE id = $1`,
		d.ID, d.Name, d.DiagnosisCategoryID)
}

func (r *diagnosisRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.conn(ctx), `DELETE FROM diagnosis WHERE id = $1`, id)
}

func (r *diagnosisRepoPG) List(ctx context.Context, categoryID *uuid.UUID) ([]*Diagnosis, error) {
	query := `SELECT ` + diagnosisCols + ` FROM diagnosis`
	var args []interface{}
	if categoryID != nil {
		query += ` WHERE diagnosis_category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY name`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Diagnosis
	for rows.Next() {
		d, err := scanDiagnosis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

// -- Patient Diagnosis --

type patientDiagnosisRepoPG struct{ pool *pgxpool.Pool }

func NewPatientDiagnosisRepoPG(pool *pgxpool.Pool) PatientDiagnosisRepository {
	return &patientDiagnosisRepoPG{pool: pool}
}

func (r *patientDiagnosisRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const pdSelect = `SELECT pd.id, pd.patient_id, pd.diagnosis_id, pd.comments,
	d.name, p.last_name || ', ' || p.first_name, pd.created_at, pd.updated_at
	FROM patient_diagnosis pd
	JOIN diagnosis d ON d.id = pd.diagnosis_id
	JOIN patient p ON p.id = pd.patient_id`

func scanPatientDiagnosis(row pgx.Row) (*PatientDiagnosis, error) {
	var pd PatientDiagnosis
	err := row.Scan(&pd.ID, &pd.PatientID, &pd.DiagnosisID, &pd.Comments,
		&pd.DiagnosisName, &pd.PatientFullName, &pd.CreatedAt, &pd.UpdatedAt)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &pd, nil
}

func (r *patientDiagnosisRepoPG) Create(ctx context.Context, pd *PatientDiagnosis) error {
	pd.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_diagnosis (id, patient_id, diagnosis_id, comments)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at, updated_at`,
		pd.ID, pd.PatientID, pd.DiagnosisID, pd.Comments,
	).Scan(&pd.CreatedAt, &pd.UpdatedAt)
}

func (r *patientDiagnosisRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*PatientDiagnosis, error) {
	return scanPatientDiagnosis(r.conn(ctx).QueryRow(ctx, pdSelect+` WHERE pd.id = $1`, id))
}

func (r *patientDiagnosisRepoPG) Update(ctx context.Context, pd *PatientDiagnosis) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE patient_diagnosis SET diagnosis_id=$2, comments=$3, updated_at=NOW()
		WHERE id = $1
		RETURNING patient_id, created_at, updated_at`,
		pd.ID, pd.DiagnosisID, pd.Comments,
	).Scan(&pd.PatientID, &pd.CreatedAt, &pd.UpdatedAt)
	return db.NotFound(err)
}

func (r *patientDiagnosisRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.conn(ctx), `DELETE FROM patient_diagnosis WHERE id = $1`, id)
}

// ListByPatient returns the patient's diagnoses, newest first.
func (r *patientDiagnosisRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*PatientDiagnosis, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient_diagnosis WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, pdSelect+`
		WHERE pd.patient_id = $1
		ORDER BY pd.created_at DESC, pd.id DESC
		LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*PatientDiagnosis
	for rows.Next() {
		pd, err := scanPatientDiagnosis(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, pd)
	}
	return items, total, rows.Err()
}
