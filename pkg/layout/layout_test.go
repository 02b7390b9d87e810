package layout

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-builder/pkg/invoice"
)

func fixtureInvoice() *invoice.Invoice {
	inv := invoice.New("2023001", "2023-11-28", "Client XYZ")
	inv.AddService("Construction Work", 5, decimal.NewFromInt(1000))
	inv.AddService("Material Supply", 3, decimal.NewFromInt(500))
	inv.SetCompany(invoice.CompanyInfo{
		Name:             "Huynh Hoc",
		Street:           "123 Main Street",
		CityStateCountry: "City, State, Country",
		Zipcode:          "12345",
		Email:            "huynhhoc@gmail.com",
	})
	inv.SetClient(invoice.ClientInfo{
		InvoiceNumber:    "2023001",
		Date:             "2023-11-28",
		CustomerID:       "12345",
		Name:             "Client XYZ",
		Street:           "456 Client Street",
		CityStateCountry: "Client City, State, Country",
		Phone:            "9876543210",
	})
	inv.SetTerms(invoice.DefaultTerms)
	return inv
}

func dump(doc Document) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "pages %d\n", doc.Pages)
	for _, d := range doc.Draws {
		fmt.Fprintf(&buf, "%d %s %g %g %g %g %t %q\n", d.Page, d.Align, d.X, d.Y, d.Width, d.Size, d.Bold, d.Text)
	}
	return buf.Bytes()
}

func find(t *testing.T, doc Document, text string) Draw {
	t.Helper()
	for _, d := range doc.Draws {
		if d.Text == text {
			return d
		}
	}
	t.Fatalf("no draw with text %q", text)
	return Draw{}
}

func TestCompose_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "invoice_2023001", dump(Compose(fixtureInvoice())))
}

func TestCompose_Deterministic(t *testing.T) {
	inv := fixtureInvoice()
	assert.Equal(t, Compose(inv), Compose(inv))
}

func TestCompose_TableRows(t *testing.T) {
	doc := Compose(fixtureInvoice())

	first := find(t, doc, "$5000.00")
	second := find(t, doc, "$1500.00")
	total := find(t, doc, "$6500.00")

	assert.Equal(t, AlignRight, first.Align)
	assert.Equal(t, LineSpacing, second.Y-first.Y)
	assert.Equal(t, LineSpacing, total.Y-second.Y)
	assert.True(t, total.Bold)
	assert.Equal(t, first.Y, find(t, doc, "1").Y)
	assert.Equal(t, second.Y, find(t, doc, "2").Y)
}

func TestCompose_BillToColumns(t *testing.T) {
	doc := Compose(fixtureInvoice())

	heading := find(t, doc, "BILL TO")
	number := find(t, doc, "Invoice Number: 2023001")
	name := find(t, doc, "Name: Client XYZ")
	street := find(t, doc, "Street: 456 Client Street")

	assert.Equal(t, heading.X, number.X)
	assert.Equal(t, heading.Y, name.Y)
	assert.Equal(t, number.Y, street.Y)
	assert.Equal(t, billToColumn-colIndex, name.X-heading.X)
}

func TestCompose_NoItems(t *testing.T) {
	inv := invoice.New("1", "2024-01-01", "Nobody")
	doc := Compose(inv)

	assert.Equal(t, 1, doc.Pages)
	find(t, doc, "INVOICE BUILDING")
	find(t, doc, "BILL TO")
	header := find(t, doc, "Amount")
	total := find(t, doc, "$0.00")
	assert.Equal(t, header.Y+LineSpacing, total.Y)
}

func TestCompose_MissingFieldsRenderEmpty(t *testing.T) {
	doc := Compose(invoice.New("1", "", ""))

	find(t, doc, "Street: ")
	find(t, doc, "Email: ")
	find(t, doc, "Customer ID: ")
	find(t, doc, "Phone: ")
	find(t, doc, " Logo of Company")
	find(t, doc, "Payment is due within  days")
	find(t, doc, "Comments or Special instructions: ")
}

func TestCompose_RendersStoredTotal(t *testing.T) {
	inv := fixtureInvoice()
	inv.SetTotal(decimal.NewFromInt(42))

	doc := Compose(inv)
	find(t, doc, "$42.00")
	for _, d := range doc.Draws {
		assert.NotEqual(t, "$6500.00", d.Text)
	}
}

func TestCompose_PageBreak(t *testing.T) {
	inv := invoice.New("big", "2024-01-01", "Bulk Buyer")
	for i := 0; i < 40; i++ {
		inv.AddService(fmt.Sprintf("Item %d", i+1), 1, decimal.NewFromInt(10))
	}

	doc := Compose(inv)
	require.Equal(t, 2, doc.Pages)

	var headers []Draw
	for _, d := range doc.Draws {
		assert.LessOrEqual(t, d.Y, PageHeight-Margin, "draw %q below bottom margin", d.Text)
		if d.Text == "Service/Products" {
			headers = append(headers, d)
		}
	}
	require.Len(t, headers, 2)
	assert.Equal(t, 1, headers[0].Page)
	assert.Equal(t, 2, headers[1].Page)
	assert.Equal(t, Margin+bodySize, headers[1].Y)

	last := find(t, doc, "Item 19")
	next := find(t, doc, "Item 20")
	assert.Equal(t, 1, last.Page)
	assert.Equal(t, 2, next.Page)
	assert.Equal(t, headers[1].Y+LineSpacing, next.Y)

	total := find(t, doc, "$400.00")
	assert.Equal(t, 2, total.Page)
	assert.Equal(t, 2, find(t, doc, "Other Information").Page)
}

func TestCompose_FooterMovesToNewPage(t *testing.T) {
	inv := invoice.New("edge", "", "")
	// Rows 1-19 fill page one and rows 20-47 fill page two, which pushes
	// the totals row onto a third page.
	for i := 0; i < 47; i++ {
		inv.AddService("x", 1, decimal.NewFromInt(1))
	}
	doc := Compose(inv)

	total := find(t, doc, "Total")
	footer := find(t, doc, "Other Information")
	assert.Equal(t, 3, doc.Pages)
	assert.Equal(t, 3, total.Page)
	assert.Equal(t, Margin+bodySize, total.Y)
	assert.Equal(t, 3, footer.Page)
}

func TestAlign_String(t *testing.T) {
	assert.Equal(t, "L", AlignLeft.String())
	assert.Equal(t, "C", AlignCenter.String())
	assert.Equal(t, "R", AlignRight.String())
	assert.Equal(t, "L", Align(7).String())
}
