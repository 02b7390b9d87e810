// pkg/layout/layout.go

// Package layout places invoice text on fixed page coordinates.
//
// Coordinates are in points with the origin at the top-left corner of the
// page; Y is the text baseline. Compose is deterministic: the same invoice
// always yields the same Document.
package layout

import (
	"fmt"
	"strconv"

	"github.com/invoice-builder/pkg/invoice"
)

// Letter page geometry.
const (
	PageWidth  = 612.0
	PageHeight = 792.0
	Margin     = 36.0

	contentWidth = PageWidth - 2*Margin
	bottomLimit  = PageHeight - Margin
)

const (
	titleSize   = 20.0
	headingSize = 16.0
	bodySize    = 12.0

	lineAdvance  = 14.0
	titleAdvance = 24.0

	billToColumn = 250.0
	billToHeight = 72.0

	// LineSpacing is the height of one table row.
	LineSpacing = 25.0
)

// Table column x-offsets relative to the left margin.
const (
	colIndex    = 10.0
	colService  = 50.0
	colQuantity = 300.0
	colAmount   = 400.0
	amountWidth = contentWidth - colAmount
)

// Align is the horizontal alignment of a draw inside its width.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "C"
	case AlignRight:
		return "R"
	default:
		return "L"
	}
}

// Draw is one positioned text placement. Width is only meaningful for
// centered and right-aligned text.
type Draw struct {
	Page  int
	X, Y  float64
	Width float64
	Align Align
	Size  float64
	Bold  bool
	Text  string
}

// Document is the full set of draws for an invoice.
type Document struct {
	Pages int
	Draws []Draw
}

type composer struct {
	doc    Document
	page   int
	cursor float64
}

func (c *composer) text(x, y, size float64, bold bool, s string) {
	c.doc.Draws = append(c.doc.Draws, Draw{Page: c.page, X: Margin + x, Y: y, Size: size, Bold: bold, Text: s})
}

func (c *composer) aligned(x, width, y, size float64, bold bool, align Align, s string) {
	c.doc.Draws = append(c.doc.Draws, Draw{Page: c.page, X: Margin + x, Y: y, Width: width, Align: align, Size: size, Bold: bold, Text: s})
}

func (c *composer) newPage() {
	c.page++
	c.doc.Pages = c.page
	c.cursor = Margin
}

// fits reports whether a baseline at y stays above the bottom margin.
func fits(y float64) bool { return y <= bottomLimit }

// Compose lays out inv. Content that would cross the bottom margin continues
// on a new page; table pages repeat the column headers.
func Compose(inv *invoice.Invoice) Document {
	c := &composer{}
	c.newPage()

	c.header(inv.Company)
	c.billTo(inv.Client)
	c.table(inv)
	c.footer(inv.Terms)

	return c.doc
}

func (c *composer) header(co invoice.CompanyInfo) {
	c.aligned(0, contentWidth, c.cursor+titleSize, titleSize, true, AlignCenter, "INVOICE BUILDING")
	c.cursor += titleAdvance
	c.aligned(0, contentWidth, c.cursor+bodySize, bodySize, false, AlignCenter, co.Name+" Logo of Company")
	c.cursor += lineAdvance
	c.cursor += 10

	for _, line := range []string{
		"Street: " + co.Street,
		"City, State, Country: " + co.CityStateCountry,
		"Zipcode: " + co.Zipcode,
		"Email: " + co.Email,
	} {
		c.text(0, c.cursor+bodySize, bodySize, false, line)
		c.cursor += lineAdvance
	}
	c.cursor += 20
}

func (c *composer) billTo(cl invoice.ClientInfo) {
	base := c.cursor + headingSize
	c.text(colIndex, base, headingSize, true, "BILL TO")

	left := []string{
		"Invoice Number: " + cl.InvoiceNumber,
		"Date: " + cl.Date,
		"Customer ID: " + cl.CustomerID,
	}
	for i, line := range left {
		c.text(colIndex, base+float64(i+1)*lineAdvance, bodySize, false, line)
	}

	right := []string{
		"Name: " + cl.Name,
		"Street: " + cl.Street,
		"City, State, Country: " + cl.CityStateCountry,
		"Phone: " + cl.Phone,
	}
	for i, line := range right {
		c.text(billToColumn, base+float64(i)*lineAdvance, bodySize, false, line)
	}
	c.cursor += billToHeight
}

// columnHeaders draws the table header row and returns its baseline.
func (c *composer) columnHeaders() float64 {
	y := c.cursor + bodySize
	c.text(colIndex, y, bodySize, true, "No.")
	c.text(colService, y, bodySize, true, "Service/Products")
	c.text(colQuantity, y, bodySize, true, "Quantity")
	c.aligned(colAmount, amountWidth, y, bodySize, true, AlignRight, "Amount")
	return y
}

func (c *composer) table(inv *invoice.Invoice) {
	c.text(0, c.cursor+headingSize, headingSize, true, "Details")
	c.cursor += 20 + 10

	row := c.columnHeaders()
	for i, li := range inv.Items() {
		row += LineSpacing
		if !fits(row) {
			c.newPage()
			row = c.columnHeaders() + LineSpacing
		}
		c.text(colIndex, row, bodySize, false, strconv.Itoa(i+1))
		c.text(colService, row, bodySize, false, li.Description)
		c.text(colQuantity, row, bodySize, false, strconv.FormatInt(li.Quantity, 10))
		c.aligned(colAmount, amountWidth, row, bodySize, false, AlignRight, invoice.FormatMoney(li.Amount()))
	}

	row += LineSpacing
	if !fits(row) {
		c.newPage()
		row = c.cursor + bodySize
	}
	c.text(colQuantity, row, bodySize, true, "Total")
	c.aligned(colAmount, amountWidth, row, bodySize, true, AlignRight, invoice.FormatMoney(inv.Total()))
	c.cursor = row
}

func (c *composer) footer(t invoice.PaymentTerms) {
	heading := c.cursor + 20 + headingSize
	last := heading + 18 + lineAdvance
	if !fits(last) {
		c.newPage()
		heading = c.cursor + headingSize
		last = heading + 18 + lineAdvance
	}
	c.text(0, heading, headingSize, true, "Other Information")
	c.text(0, heading+18, bodySize, false, fmt.Sprintf("Payment is due within %s days", t.DueDays()))
	c.text(0, last, bodySize, false, "Comments or Special instructions: "+t.SpecialInstructions)
	c.cursor = last
}
