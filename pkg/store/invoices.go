// pkg/store/invoices.go

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/invoice-builder/pkg/invoice"
)

// LoadCompanyInfo returns the first persisted company, or
// invoice.DefaultCompany when the table is empty.
func (s *Store) LoadCompanyInfo(ctx context.Context) (invoice.CompanyInfo, error) {
	var c invoice.CompanyInfo
	err := s.queryRow(ctx, `SELECT COALESCE(company_name, ''), COALESCE(street, ''),
			COALESCE(city_state_country, ''), COALESCE(zipcode, ''), COALESCE(email, '')
		FROM company_info ORDER BY id LIMIT 1`,
	).Scan(&c.Name, &c.Street, &c.CityStateCountry, &c.Zipcode, &c.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return invoice.DefaultCompany, nil
	}
	if err != nil {
		return invoice.CompanyInfo{}, fmt.Errorf("store: load company: %w", err)
	}
	return c, nil
}

// LoadClientInfo returns the client row for an invoice number.
func (s *Store) LoadClientInfo(ctx context.Context, number string) (invoice.ClientInfo, error) {
	var c invoice.ClientInfo
	err := s.queryRow(ctx, `SELECT invoice_number, COALESCE(CAST(date AS TEXT), ''), COALESCE(customer_id, ''),
			COALESCE(name, ''), COALESCE(street, ''), COALESCE(city_state_country, ''), COALESCE(phone, '')
		FROM client_info WHERE invoice_number = $1`, number,
	).Scan(&c.InvoiceNumber, &c.Date, &c.CustomerID, &c.Name, &c.Street, &c.CityStateCountry, &c.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return invoice.ClientInfo{}, ErrNotFound
	}
	if err != nil {
		return invoice.ClientInfo{}, fmt.Errorf("store: load client %s: %w", number, err)
	}
	return c, nil
}

// LoadInvoice reconstructs an invoice from client_info and its products.
// Company and terms are left for the caller to set.
func (s *Store) LoadInvoice(ctx context.Context, number string) (*invoice.Invoice, error) {
	client, err := s.LoadClientInfo(ctx, number)
	if err != nil {
		return nil, err
	}

	rows, err := s.query(ctx, `SELECT COALESCE(p.description, ''), COALESCE(p.rate, 0), COALESCE(d.quantity, 0)
		FROM products p
		JOIN invoice_details d ON p.id = d.product_id
		WHERE d.invoice_number = $1
		ORDER BY d.id`, number)
	if err != nil {
		return nil, fmt.Errorf("store: load items %s: %w", number, err)
	}
	defer rows.Close()

	inv := invoice.New(client.InvoiceNumber, client.Date, client.Name)
	inv.SetClient(client)
	for rows.Next() {
		var (
			desc string
			rate decimal.Decimal
			qty  int64
		)
		if err := rows.Scan(&desc, &rate, &qty); err != nil {
			return nil, fmt.Errorf("store: scan item: %w", err)
		}
		inv.AddService(desc, qty, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load items %s: %w", number, err)
	}
	return inv, nil
}

// InvoiceNumbers lists every invoice number in client_info.
func (s *Store) InvoiceNumbers(ctx context.Context) ([]string, error) {
	rows, err := s.query(ctx, `SELECT invoice_number FROM client_info
		WHERE invoice_number IS NOT NULL ORDER BY invoice_number`)
	if err != nil {
		return nil, fmt.Errorf("store: list invoices: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
