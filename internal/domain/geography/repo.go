package geography

import "context"

type CountryRepository interface {
	Create(ctx context.Context, c *Country) error
	GetByCode(ctx context.Context, code string) (*Country, error)
	Update(ctx context.Context, c *Country) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]*Country, error)
}

type ProvinceRepository interface {
	Create(ctx context.Context, p *Province) error
	GetByCode(ctx context.Context, code string) (*Province, error)
	Update(ctx context.Context, p *Province) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context, countryCode string) ([]*Province, error)
	Exists(ctx context.Context, code string) (bool, error)
}
