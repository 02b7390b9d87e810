// pkg/csvfile/csvfile.go

// Package csvfile loads invoice rows from delimited text.
package csvfile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/invoice-builder/pkg/invoice"
)

// Required header columns.
const (
	ColInvoiceNumber = "InvoiceNumber"
	ColDate          = "Date"
	ColClientName    = "ClientName"
	ColDescription   = "Description"
	ColQuantity      = "Quantity"
	ColRate          = "Rate"
)

// Optional client columns.
const (
	ColCustomerID       = "CustomerID"
	ColStreet           = "Street"
	ColCityStateCountry = "CityStateCountry"
	ColPhone            = "Phone"
)

var required = []string{ColInvoiceNumber, ColDate, ColClientName, ColDescription, ColQuantity, ColRate}

// Row is one line item with the invoice it belongs to.
type Row struct {
	Line          int
	InvoiceNumber string
	Date          string
	ClientName    string
	Description   string
	Quantity      int64
	Rate          decimal.Decimal

	CustomerID       string
	Street           string
	CityStateCountry string
	Phone            string
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("csvfile: missing column")

// ParseError reports a field that could not be parsed as a number.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csvfile: line %d: %s %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Open reads all rows from the file at path.
func Open(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: %w", err)
	}
	defer f.Close()
	return LoadRows(f)
}

var bom = []byte("\ufeff")

// LoadRows parses a header line followed by one row per line item. Column
// order is free; unknown columns are ignored. A leading byte order mark is
// skipped.
func LoadRows(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(bom)); bytes.Equal(head, bom) {
		br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("csvfile: header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}

	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvfile: %w", err)
		}
		line, _ := cr.FieldPos(0)

		qty, err := strconv.ParseInt(get(rec, ColQuantity), 10, 64)
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColQuantity, Value: get(rec, ColQuantity), Err: err}
		}
		rate, err := decimal.NewFromString(get(rec, ColRate))
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColRate, Value: get(rec, ColRate), Err: err}
		}

		rows = append(rows, Row{
			Line:             line,
			InvoiceNumber:    get(rec, ColInvoiceNumber),
			Date:             get(rec, ColDate),
			ClientName:       get(rec, ColClientName),
			Description:      get(rec, ColDescription),
			Quantity:         qty,
			Rate:             rate,
			CustomerID:       get(rec, ColCustomerID),
			Street:           get(rec, ColStreet),
			CityStateCountry: get(rec, ColCityStateCountry),
			Phone:            get(rec, ColPhone),
		})
	}
	return rows, nil
}

// Group builds one invoice per invoice number, in order of first
// appearance. Identity and client fields come from the first row of each
// invoice.
func Group(rows []Row, company invoice.CompanyInfo, terms invoice.PaymentTerms) []*invoice.Invoice {
	var out []*invoice.Invoice
	byNumber := make(map[string]*invoice.Invoice)

	for _, row := range rows {
		inv, ok := byNumber[row.InvoiceNumber]
		if !ok {
			inv = invoice.New(row.InvoiceNumber, row.Date, row.ClientName)
			inv.SetCompany(company)
			inv.SetTerms(terms)
			inv.SetClient(invoice.ClientInfo{
				InvoiceNumber:    row.InvoiceNumber,
				Date:             row.Date,
				CustomerID:       row.CustomerID,
				Name:             row.ClientName,
				Street:           row.Street,
				CityStateCountry: row.CityStateCountry,
				Phone:            row.Phone,
			})
			byNumber[row.InvoiceNumber] = inv
			out = append(out, inv)
		}
		inv.AddService(row.Description, row.Quantity, row.Rate)
	}
	return out
}
