package medication

import (
	"context"
	"fmt"

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

// -- Medication Type --

type typeRepoPG struct{ pool *pgxpool.Pool }

func NewTypeRepoPG(pool *pgxpool.Pool) TypeRepository {
	return &typeRepoPG{pool: pool}
}

func (r *typeRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

func scanType(row pgx.Row) (*MedicationType, error) {
	var t MedicationType
	if err := row.Scan(&t.ID, &t.Name); err != nil {
		return nil, db.NotFound(err)
	}
	return &t, nil
}

func (r *typeRepoPG) Create(ctx context.Context, t *MedicationType) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `INSERT INTO medication_type (id, name) VALUES ($1,$2)`, t.ID, t.Name)
	return err
}

func (r *typeRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicationType, error) {
	return scanType(r.conn(ctx).QueryRow(ctx, `SELECT id, name FROM medication_type WHERE id = $1`, id))
}

func (r *typeRepoPG) Update(ctx context.Context, t *MedicationType) error {
	return execOne(ctx, r.conn(ctx), `UPDATE medication_type SET name=$2 WHERE id = $1`, t.ID, t.Name)
}

func (r *typeRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.conn(ctx), `DELETE FROM medication_type WHERE id = $1`, id)
}

func (r *typeRepoPG) List(ctx context.Context) ([]*MedicationType, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, name FROM medication_type ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MedicationType
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

// -- Units --

type unitRepoPG struct {
	pool   *pgxpool.Pool
	table  string
	column string
}

func NewConcentrationUnitRepoPG(pool *pgxpool.Pool) UnitRepository {
	return &unitRepoPG{pool: pool, table: "concentration_unit", column: "concentration_code"}
}

func NewDispensingUnitRepoPG(pool *pgxpool.Pool) UnitRepository {
	return &unitRepoPG{pool: pool, table: "dispensing_unit", column: "dispensing_code"}
}

func (r *unitRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

func (r *unitRepoPG) Create(ctx context.Context, code string) error {
	_, err := r.conn(ctx).Exec(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1)`, r.table, r.column), code)
	return err
}

func (r *unitRepoPG) Delete(ctx context.Context, code string) error {
	return execOne(ctx, r.conn(ctx), fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, r.table, r.column), code)
}

func (r *unitRepoPG) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, r.table, r.column), code,
	).Scan(&exists)
	return exists, err
}

func (r *unitRepoPG) List(ctx context.Context) ([]string, error) {
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, r.column, r.table, r.column))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// -- Medication --

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewMedicationRepoPG(pool *pgxpool.Pool) MedicationRepository {
	return &medicationRepoPG{pool: pool}
}

func (r *medicationRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const medicationSelect = `SELECT m.din, m.name, m.image, m.medication_type_id, m.dispensing_code,
	m.concentration, m.concentration_code, mt.name
	FROM medication m JOIN medication_type mt ON mt.id = m.medication_type_id`

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.Din, &m.Name, &m.Image, &m.MedicationTypeID, &m.DispensingCode,
		&m.Concentration, &m.ConcentrationCode, &m.MedicationTypeName)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &m, nil
}

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	_, err := r.conn(ctx).Exec(ctx, `INSERT INTO medication (din, name, image, medication_type_id,
		dispensing_code, concentration, concentration_code) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.Din, m.Name, m.Image, m.MedicationTypeID, m.DispensingCode, m.Concentration, m.ConcentrationCode)
	return err
}

func (r *medicationRepoPG) GetByDin(ctx context.Context, din string) (*Medication, error) {
	return scanMedication(r.conn(ctx).QueryRow(ctx, medicationSelect+` WHERE m.din = $1`, din))
}

func (r *medicationRepoPG) Update(ctx context.Context, m *Medication) error {
	return execOne(ctx, r.conn(ctx), `UPDATE medication SET name=$2, image=$3, medication_type_id=$4,
		dispensing_code=$5, concentration=$6, concentration_code=$7 WHERE din = $1`,
		m.Din, m.Name, m.Image, m.MedicationTypeID, m.DispensingCode, m.Concentration, m.ConcentrationCode)
}

func (r *medicationRepoPG) Delete(ctx context.Context, din string) error {
	return execOne(ctx, r.conn(ctx), `DELETE FROM medication WHERE din = $1`, din)
}

func (r *medicationRepoPG) ListByType(ctx context.Context, typeID uuid.UUID) ([]*Medication, error) {
	rows, err := r.conn(ctx).Query(ctx,
		medicationSelect+` WHERE m.medication_type_id = $1 ORDER BY m.name, m.concentration`, typeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *medicationRepoPG) FindProduct(ctx context.Context, name string, concentration float64, concentrationCode string) (*Medication, error) {
	return scanMedication(r.conn(ctx).QueryRow(ctx,
		medicationSelect+` WHERE m.name = $1 AND m.concentration = $2 AND m.concentration_code = $3 LIMIT 1`,
		name, concentration, concentrationCode))
}
