package patient

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndpatients/patients/internal/platform/db"
)

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

func (r *patientRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const patientCols = `id, first_name, last_name, address, city, province_code, postal_code,
	ohip, date_of_birth, deceased, date_of_death, home_phone, gender,
	created_at, updated_at`

func (r *patientRepoPG) scanRow(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Address, &p.City, &p.ProvinceCode, &p.PostalCode,
		&p.Ohip, &p.DateOfBirth, &p.Deceased, &p.DateOfDeath, &p.HomePhone, &p.Gender,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, db.NotFound(err)
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (id, first_name, last_name, address, city, province_code, postal_code,
			ohip, date_of_birth, deceased, date_of_death, home_phone, gender)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING created_at, updated_at`,
		p.ID, p.FirstName, p.LastName, p.Address, p.City, p.ProvinceCode, p.PostalCode,
		p.Ohip, p.DateOfBirth, p.Deceased, p.DateOfDeath, p.HomePhone, p.Gender,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanRow(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE patient SET first_name=$2, last_name=$3, address=$4, city=$5, province_code=$6,
			postal_code=$7, ohip=$8, date_of_birth=$9, deceased=$10, date_of_death=$11,
			home_phone=$12, gender=$13, updated_at=NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		p.ID, p.FirstName, p.LastName, p.Address, p.City, p.ProvinceCode,
		p.PostalCode, p.Ohip, p.DateOfBirth, p.Deceased, p.DateOfDeath,
		p.HomePhone, p.Gender,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return db.NotFound(err)
}

func (r *patientRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

// Search filters by name (prefix of first or last name, case-insensitive),
// province and ohip. Results are ordered by last name, then first name.
func (r *patientRepoPG) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if p, ok := params["name"]; ok && p != "" {
		where += fmt.Sprintf(` AND (first_name ILIKE $%d OR last_name ILIKE $%d)`, idx, idx)
		args = append(args, p+"%")
		idx++
	}
	if p, ok := params["province_code"]; ok && p != "" {
		where += fmt.Sprintf(` AND province_code = $%d`, idx)
		args = append(args, p)
		idx++
	}
	if p, ok := params["ohip"]; ok && p != "" {
		where += fmt.Sprintf(` AND ohip = $%d`, idx)
		args = append(args, p)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + patientCols + ` FROM patient` + where +
		fmt.Sprintf(` ORDER BY last_name, first_name, id LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
