package geography

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndpatients/patients/internal/platform/db"
)

// -- Country --

type countryRepoPG struct{ pool *pgxpool.Pool }

func NewCountryRepoPG(pool *pgxpool.Pool) CountryRepository {
	return &countryRepoPG{pool: pool}
}

func (r *countryRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const countryCols = `country_code, name, postal_pattern, phone_pattern, federal_sales_tax`

func scanCountry(row pgx.Row) (*Country, error) {
	var c Country
	if err := row.Scan(&c.CountryCode, &c.Name, &c.PostalPattern, &c.PhonePattern, &c.FederalSalesTax); err != nil {
		return nil, db.NotFound(err)
	}
	return &c, nil
}

func (r *countryRepoPG) Create(ctx context.Context, c *Country) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO country (`+countryCols+`)
		VALUES ($1,$2,$3,$4,$5)`,
		c.CountryCode, c.Name, c.PostalPattern, c.PhonePattern, c.FederalSalesTax)
	return err
}

func (r *countryRepoPG) GetByCode(ctx context.Context, code string) (*Country, error) {
	return scanCountry(r.conn(ctx).QueryRow(ctx, `SELECT `+countryCols+` FROM country WHERE country_code = $1`, code))
}

func (r *countryRepoPG) Update(ctx context.Context, c *Country) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE country SET name=$2, postal_pattern=$3, phone_pattern=$4, federal_sales_tax=$5
		WHERE country_code = $1`,
		c.CountryCode, c.Name, c.PostalPattern, c.PhonePattern, c.FederalSalesTax)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *countryRepoPG) Delete(ctx context.Context, code string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM country WHERE country_code = $1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *countryRepoPG) List(ctx context.Context) ([]*Country, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+countryCols+` FROM country ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// -- Province --

type provinceRepoPG struct{ pool *pgxpool.Pool }

func NewProvinceRepoPG(pool *pgxpool.Pool) ProvinceRepository {
	return &provinceRepoPG{pool: pool}
}

func (r *provinceRepoPG) conn(ctx context.Context) db.Querier {
	return db.QuerierFrom(ctx, r.pool)
}

const provinceCols = `province_code, name, country_code, sales_tax_code, sales_tax, includes_federal_tax`

func scanProvince(row pgx.Row) (*Province, error) {
	var p Province
	if err := row.Scan(&p.ProvinceCode, &p.Name, &p.CountryCode, &p.SalesTaxCode, &p.SalesTax, &p.IncludesFederalTax); err != nil {
		return nil, db.NotFound(err)
	}
	return &p, nil
}

func (r *provinceRepoPG) Create(ctx context.Context, p *Province) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO province (`+provinceCols+`)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ProvinceCode, p.Name, p.CountryCode, p.SalesTaxCode, p.SalesTax, p.IncludesFederalTax)
	return err
}

func (r *provinceRepoPG) GetByCode(ctx context.Context, code string) (*Province, error) {
	return scanProvince(r.conn(ctx).QueryRow(ctx, `SELECT `+provinceCols+` FROM province WHERE province_code = $1`, code))
}

func (r *provinceRepoPG) Update(ctx context.Context, p *Province) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE province SET name=$2, country_code=$3, sales_tax_code=$4, sales_tax=$5, includes_federal_tax=$6
		WHERE province_code = $1`,
		p.ProvinceCode, p.Name, p.CountryCode, p.SalesTaxCode, p.SalesTax, p.IncludesFederalTax)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

func (r *provinceRepoPG) Delete(ctx context.Context, code string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM province WHERE province_code = $1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// List returns provinces ordered by name, optionally restricted to one country.
func (r *provinceRepoPG) List(ctx context.Context, countryCode string) ([]*Province, error) {
	query := `SELECT ` + provinceCols + ` FROM province`
	var args []interface{}
	if countryCode != "" {
		query += ` WHERE country_code = $1`
		args = append(args, countryCode)
	}
	query += ` ORDER BY name`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Province
	for rows.Next() {
		p, err := scanProvince(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *provinceRepoPG) Exists(ctx context.Context, code string) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM province WHERE province_code = $1)`, code).Scan(&ok)
	return ok, err
}
