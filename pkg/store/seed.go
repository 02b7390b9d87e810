// pkg/store/seed.go

package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/invoice-builder/pkg/invoice"
)

// SampleCompany is the company row inserted by Seed.
var SampleCompany = invoice.CompanyInfo{
	Name:             "Huynh Hoc",
	Street:           "123 Main Street",
	CityStateCountry: "City, State, Country",
	Zipcode:          "12345",
	Email:            "huynhhoc@gmail.com",
}

// SampleClient is the client row inserted by Seed.
var SampleClient = invoice.ClientInfo{
	InvoiceNumber:    "2023001",
	Date:             "2023-11-28",
	CustomerID:       "12345",
	Name:             "Client XYZ",
	Street:           "456 Client Street",
	CityStateCountry: "Client City, State, Country",
	Phone:            "9876543210",
}

type sampleProduct struct {
	description string
	rate        decimal.Decimal
	quantity    int64 // billed on the sample invoice; 0 means not billed
}

var sampleProducts = []sampleProduct{
	{"Construction Work", decimal.NewFromInt(1000), 5},
	{"Material Supply", decimal.NewFromInt(500), 3},
	{"Consulting Services", decimal.NewFromInt(1200), 0},
}

// Seed inserts the sample invoice 2023001. The client row goes first, so
// a repeated run stops at its uniqueness violation before duplicating
// anything; that violation is logged and Seed returns nil.
func (s *Store) Seed(ctx context.Context) error {
	err := s.seed(ctx)
	if s.IsUniqueViolation(err) {
		s.logger.Warn("sample data already present", "invoice", SampleClient.InvoiceNumber, "error", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: seed: %w", err)
	}
	s.logger.Info("sample data loaded", "invoice", SampleClient.InvoiceNumber)
	return nil
}

func (s *Store) seed(ctx context.Context) error {
	c := SampleClient
	if err := s.exec(ctx,
		`INSERT INTO client_info (invoice_number, date, customer_id, name, street, city_state_country, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.InvoiceNumber, c.Date, c.CustomerID, c.Name, c.Street, c.CityStateCountry, c.Phone,
	); err != nil {
		return err
	}

	co := SampleCompany
	if err := s.exec(ctx,
		`INSERT INTO company_info (company_name, street, city_state_country, zipcode, email)
		VALUES ($1, $2, $3, $4, $5)`,
		co.Name, co.Street, co.CityStateCountry, co.Zipcode, co.Email,
	); err != nil {
		return err
	}

	for _, p := range sampleProducts {
		var id int64
		if err := s.queryRow(ctx,
			`INSERT INTO products (description, rate) VALUES ($1, $2) RETURNING id`,
			p.description, p.rate,
		).Scan(&id); err != nil {
			return err
		}
		if p.quantity == 0 {
			continue
		}
		if err := s.exec(ctx,
			`INSERT INTO invoice_details (invoice_number, product_id, quantity) VALUES ($1, $2, $3)`,
			c.InvoiceNumber, id, p.quantity,
		); err != nil {
			return err
		}
	}
	return nil
}
