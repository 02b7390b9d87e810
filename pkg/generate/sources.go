// pkg/generate/sources.go

package generate

import (
	"context"
	"errors"

	"github.com/invoice-builder/pkg/csvfile"
	"github.com/invoice-builder/pkg/invoice"
	"github.com/invoice-builder/pkg/store"
)

// InvoiceStore is the part of store.Store a StoreSource needs.
type InvoiceStore interface {
	LoadCompanyInfo(ctx context.Context) (invoice.CompanyInfo, error)
	LoadInvoice(ctx context.Context, number string) (*invoice.Invoice, error)
	InvoiceNumbers(ctx context.Context) ([]string, error)
}

// StoreSource loads invoices from the relational store. With no Numbers it
// loads every invoice in the store.
type StoreSource struct {
	Store   InvoiceStore
	Numbers []string
	Terms   invoice.PaymentTerms
}

func (s StoreSource) Invoices(ctx context.Context) ([]*invoice.Invoice, []string, error) {
	company, err := s.Store.LoadCompanyInfo(ctx)
	if err != nil {
		return nil, nil, err
	}

	numbers := s.Numbers
	if len(numbers) == 0 {
		if numbers, err = s.Store.InvoiceNumbers(ctx); err != nil {
			return nil, nil, err
		}
	}

	var (
		invs    []*invoice.Invoice
		missing []string
	)
	for _, n := range numbers {
		inv, err := s.Store.LoadInvoice(ctx, n)
		if errors.Is(err, store.ErrNotFound) {
			missing = append(missing, n)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		inv.SetCompany(company)
		inv.SetTerms(s.Terms)
		invs = append(invs, inv)
	}
	return invs, missing, nil
}

// FileSource loads invoices from a delimited file.
type FileSource struct {
	Path    string
	Company invoice.CompanyInfo
	Terms   invoice.PaymentTerms
}

func (s FileSource) Invoices(ctx context.Context) ([]*invoice.Invoice, []string, error) {
	rows, err := csvfile.Open(s.Path)
	if err != nil {
		return nil, nil, err
	}
	return csvfile.Group(rows, s.Company, s.Terms), nil, nil
}
