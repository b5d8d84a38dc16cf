package catalog

// IBANRow is a generated IBAN.
type IBANRow struct {
	Raw       string `json:"raw"`
	Formatted string `json:"formatted"`
	Valid     bool   `json:"valid"`
}

func (r IBANRow) PrimaryValue() string { return r.Raw }
func (r IBANRow) IsValid() bool        { return r.Valid }

// DisplayValue is the space-grouped form.
func (r IBANRow) DisplayValue() string { return r.Formatted }

// PersonalIDRow is a generated national personal identifier.
type PersonalIDRow struct {
	Code   string `json:"code"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"`
	Valid  bool   `json:"valid"`
}

func (r PersonalIDRow) PrimaryValue() string { return r.Code }
func (r PersonalIDRow) IsValid() bool        { return r.Valid }

// BankAccountRow is a generated domestic account.
type BankAccountRow struct {
	Account string `json:"account"`
	Routing string `json:"routing"`
	Valid   bool   `json:"valid"`
}

func (r BankAccountRow) PrimaryValue() string { return r.Account }
func (r BankAccountRow) IsValid() bool        { return r.Valid }

// CreditCardRow is a generated card number.
type CreditCardRow struct {
	Number string `json:"number"`
	Brand  string `json:"brand"`
	Valid  bool   `json:"valid"`
}

func (r CreditCardRow) PrimaryValue() string { return r.Number }
func (r CreditCardRow) IsValid() bool        { return r.Valid }

// SWIFTRow is a generated BIC.
type SWIFTRow struct {
	Code     string `json:"code"`
	Bank     string `json:"bank"`
	Country  string `json:"country"`
	Location string `json:"location"`
	Valid    bool   `json:"valid"`
}

func (r SWIFTRow) PrimaryValue() string { return r.Code }
func (r SWIFTRow) IsValid() bool        { return r.Valid }

// CompanyIDRow is a generated registration number.
type CompanyIDRow struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Valid bool   `json:"valid"`
}

func (r CompanyIDRow) PrimaryValue() string { return r.Code }
func (r CompanyIDRow) IsValid() bool        { return r.Valid }

// DriverLicenseRow is a generated licence number.
type DriverLicenseRow struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   *string `json:"state"`
	Valid   bool    `json:"valid"`
}

func (r DriverLicenseRow) PrimaryValue() string { return r.Code }
func (r DriverLicenseRow) IsValid() bool        { return r.Valid }

// PassportRow is a generated passport number.
type PassportRow struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Valid   bool   `json:"valid"`
}

func (r PassportRow) PrimaryValue() string { return r.Code }
func (r PassportRow) IsValid() bool        { return r.Valid }

// TaxIDRow is a generated taxpayer number.
type TaxIDRow struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	HolderType *string `json:"holder_type"`
	Valid      bool    `json:"valid"`
}

func (r TaxIDRow) PrimaryValue() string { return r.Code }
func (r TaxIDRow) IsValid() bool        { return r.Valid }

// VATRow is a generated VAT number.
type VATRow struct {
	Code        string `json:"code"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	Valid       bool   `json:"valid"`
}

func (r VATRow) PrimaryValue() string { return r.Code }
func (r VATRow) IsValid() bool        { return r.Valid }

// LEIRow is a generated Legal Entity Identifier.
type LEIRow struct {
	Code        string `json:"code"`
	LOU         string `json:"lou"`
	CountryCode string `json:"country_code"`
	Valid       bool   `json:"valid"`
}

func (r LEIRow) PrimaryValue() string { return r.Code }
func (r LEIRow) IsValid() bool        { return r.Valid }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
