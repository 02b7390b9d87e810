// pkg/invoice/records.go

package invoice

import "strconv"

// CompanyInfo is the issuing company shown in the invoice header.
type CompanyInfo struct {
	Name             string `yaml:"name"`
	Street           string `yaml:"street"`
	CityStateCountry string `yaml:"city_state_country"`
	Zipcode          string `yaml:"zipcode"`
	Email            string `yaml:"email"`
}

// ClientInfo is the billed party shown in the bill-to block.
type ClientInfo struct {
	InvoiceNumber    string
	Date             string
	CustomerID       string
	Name             string
	Street           string
	CityStateCountry string
	Phone            string
}

// PaymentTerms feed the footer.
type PaymentTerms struct {
	PaymentDays         int    `yaml:"payment_days"`
	SpecialInstructions string `yaml:"special_instructions"`
}

// DueDays renders PaymentDays, or "" when unset.
func (t PaymentTerms) DueDays() string {
	if t.PaymentDays == 0 {
		return ""
	}
	return strconv.Itoa(t.PaymentDays)
}

// DefaultCompany is used when no company has been persisted.
var DefaultCompany = CompanyInfo{
	Name:             "Your Company",
	Street:           "123 Main Street",
	CityStateCountry: "City, State, Country",
	Zipcode:          "12345",
	Email:            "info@yourcompany.com",
}

// DefaultTerms are the payment terms applied when no profile overrides them.
var DefaultTerms = PaymentTerms{
	PaymentDays:         30,
	SpecialInstructions: "Please make the payment by the due date.",
}
