// pkg/invoice/invoice.go

package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Invoice represents the invoice data model.
//
// An Invoice is built once by a single owner: construct it with New, add
// services and billing records, then hand it to the renderer.
type Invoice struct {
	Number     string
	Date       string
	ClientName string

	Company CompanyInfo
	Client  ClientInfo
	Terms   PaymentTerms

	items []LineItem
	total decimal.Decimal
}

// LineItem represents a billable service on the invoice.
type LineItem struct {
	Description string
	Quantity    int64
	Rate        decimal.Decimal
}

// Amount is quantity times rate.
func (li LineItem) Amount() decimal.Decimal {
	return li.Rate.Mul(decimal.NewFromInt(li.Quantity))
}

// New creates an invoice with no line items and a zero total.
func New(number, date, clientName string) *Invoice {
	return &Invoice{
		Number:     number,
		Date:       date,
		ClientName: clientName,
		total:      decimal.Zero,
	}
}

// AddService appends a line item and adds its amount to the running total.
// Negative quantities and rates are accepted as-is.
func (inv *Invoice) AddService(description string, quantity int64, rate decimal.Decimal) {
	li := LineItem{Description: description, Quantity: quantity, Rate: rate}
	inv.items = append(inv.items, li)
	inv.total = inv.total.Add(li.Amount())
}

// SetCompany replaces the company record.
func (inv *Invoice) SetCompany(c CompanyInfo) { inv.Company = c }

// SetClient replaces the client record.
func (inv *Invoice) SetClient(c ClientInfo) { inv.Client = c }

// SetTerms replaces the payment terms.
func (inv *Invoice) SetTerms(t PaymentTerms) { inv.Terms = t }

// SetTotal overwrites the stored total. Later AddService calls keep
// accumulating on top of the overwritten value.
func (inv *Invoice) SetTotal(total decimal.Decimal) { inv.total = total }

// Total returns the stored total, which is what gets rendered.
func (inv *Invoice) Total() decimal.Decimal { return inv.total }

// ItemsTotal sums the amounts of all line items.
func (inv *Invoice) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range inv.items {
		sum = sum.Add(li.Amount())
	}
	return sum
}

// Reconciled reports whether the stored total matches the line items.
// It is false only after SetTotal was called with a diverging value.
func (inv *Invoice) Reconciled() bool {
	return inv.total.Equal(inv.ItemsTotal())
}

// Items returns a copy of the line items in insertion order.
func (inv *Invoice) Items() []LineItem {
	out := make([]LineItem, len(inv.items))
	copy(out, inv.items)
	return out
}

// Filename is the artifact name for an invoice number.
func Filename(number string) string {
	return fmt.Sprintf("invoice_%s.pdf", number)
}

// FormatMoney prefixes the amount with a dollar sign.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
