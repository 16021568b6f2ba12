package geography

import (
	"context"
	"fmt"
	"strings"

	"github.com/ndpatients/patients/internal/platform/apierr"
	"github.com/ndpatients/patients/internal/validation"
)

type Service struct {
	countries CountryRepository
	provinces ProvinceRepository
}

func NewService(countries CountryRepository, provinces ProvinceRepository) *Service {
	return &Service{countries: countries, provinces: provinces}
}

func normalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (s *Service) normalizeCountry(c *Country) error {
	c.CountryCode = normalizeCode(c.CountryCode)
	if len(c.CountryCode) != 2 {
		return apierr.Invalid("Country Code must be 2 letters")
	}
	c.Name = validation.Capitalize(c.Name)
	if c.Name == "" {
		return apierr.Invalid("Country Name cannot be empty or just blanks")
	}
	if c.FederalSalesTax < 0 {
		return apierr.Invalid("Federal Sales Tax cannot be negative")
	}
	return nil
}

func (s *Service) CreateCountry(ctx context.Context, c *Country) error {
	if err := s.normalizeCountry(c); err != nil {
		return err
	}
	if err := s.countries.Create(ctx, c); err != nil {
		return fmt.Errorf("create country: %w", err)
	}
	return nil
}

func (s *Service) GetCountry(ctx context.Context, code string) (*Country, error) {
	return s.countries.GetByCode(ctx, normalizeCode(code))
}

func (s *Service) UpdateCountry(ctx context.Context, c *Country) error {
	if err := s.normalizeCountry(c); err != nil {
		return err
	}
	return s.countries.Update(ctx, c)
}

func (s *Service) DeleteCountry(ctx context.Context, code string) error {
	return s.countries.Delete(ctx, normalizeCode(code))
}

func (s *Service) ListCountries(ctx context.Context) ([]*Country, error) {
	return s.countries.List(ctx)
}

func (s *Service) normalizeProvince(p *Province) error {
	p.ProvinceCode = normalizeCode(p.ProvinceCode)
	p.CountryCode = normalizeCode(p.CountryCode)
	if len(p.ProvinceCode) != 2 {
		return apierr.Invalid("Province Code must be 2 letters")
	}
	if p.CountryCode == "" {
		return apierr.Invalid("Country Code is required")
	}
	p.Name = validation.Capitalize(p.Name)
	if p.Name == "" {
		return apierr.Invalid("Province Name cannot be empty or just blanks")
	}
	if p.SalesTax < 0 {
		return apierr.Invalid("Sales Tax cannot be negative")
	}
	return nil
}

func (s *Service) CreateProvince(ctx context.Context, p *Province) error {
	if err := s.normalizeProvince(p); err != nil {
		return err
	}
	if _, err := s.countries.GetByCode(ctx, p.CountryCode); err != nil {
		return fmt.Errorf("country %s: %w", p.CountryCode, err)
	}
	if err := s.provinces.Create(ctx, p); err != nil {
		return fmt.Errorf("create province: %w", err)
	}
	return nil
}

func (s *Service) GetProvince(ctx context.Context, code string) (*Province, error) {
	return s.provinces.GetByCode(ctx, normalizeCode(code))
}

func (s *Service) UpdateProvince(ctx context.Context, p *Province) error {
	if err := s.normalizeProvince(p); err != nil {
		return err
	}
	return s.provinces.Update(ctx, p)
}

func (s *Service) DeleteProvince(ctx context.Context, code string) error {
	return s.provinces.Delete(ctx, normalizeCode(code))
}

// ListProvinces returns provinces ordered by name. An empty countryCode lists
// every country's provinces.
func (s *Service) ListProvinces(ctx context.Context, countryCode string) ([]*Province, error) {
	return s.provinces.List(ctx, normalizeCode(countryCode))
}

// ProvinceExists reports whether code is on file. Case and surrounding
// whitespace are ignored.
func (s *Service) ProvinceExists(ctx context.Context, code string) (bool, error) {
	code = normalizeCode(code)
	if code == "" {
		return false, nil
	}
	return s.provinces.Exists(ctx, code)
}
