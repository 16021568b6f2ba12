package geography

// Country maps to the country table.
type Country struct {
	CountryCode     string  `db:"country_code" json:"country_code"`
	Name            string  `db:"name" json:"name"`
	PostalPattern   *string `db:"postal_pattern" json:"postal_pattern,omitempty"`
	PhonePattern    *string `db:"phone_pattern" json:"phone_pattern,omitempty"`
	FederalSalesTax float64 `db:"federal_sales_tax" json:"federal_sales_tax"`
}

// Province maps to the province table. Provinces belong to a country.
type Province struct {
	ProvinceCode       string  `db:"province_code" json:"province_code"`
	Name               string  `db:"name" json:"name"`
	CountryCode        string  `db:"country_code" json:"country_code"`
	SalesTaxCode       *string `db:"sales_tax_code" json:"sales_tax_code,omitempty"`
	SalesTax           float64 `db:"sales_tax" json:"sales_tax"`
	IncludesFederalTax bool    `db:"includes_federal_tax" json:"includes_federal_tax"`
}
