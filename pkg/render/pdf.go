// pkg/render/pdf.go

package render

import (
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/invoice-builder/pkg/layout"
)

// Canvas executes layout draws and serialises the result.
type Canvas interface {
	AddPage()
	Draw(d layout.Draw)
	Output(w io.Writer) error
}

// epoch is stamped as the creation date so identical invoices produce
// identical bytes.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDFCanvas draws onto a gofpdf document.
type PDFCanvas struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	replaced []string
}

// NewPDFCanvas returns a letter-sized, point-unit PDF canvas.
func NewPDFCanvas(title string, compress bool) *PDFCanvas {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(compress)
	pdf.SetCreationDate(epoch)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(title, true)
	pdf.SetCreator("invoicegen", true)

	return &PDFCanvas{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (c *PDFCanvas) AddPage() { c.pdf.AddPage() }

func (c *PDFCanvas) Draw(d layout.Draw) {
	style := ""
	if d.Bold {
		style = "B"
	}
	c.pdf.SetFont("Helvetica", style, d.Size)

	s := c.tr(d.Text)
	if lossy(d.Text, s) {
		c.replaced = append(c.replaced, d.Text)
	}
	x := d.X
	switch d.Align {
	case layout.AlignCenter:
		x += (d.Width - c.pdf.GetStringWidth(s)) / 2
	case layout.AlignRight:
		x += d.Width - c.pdf.GetStringWidth(s)
	}
	c.pdf.Text(x, d.Y, s)
}

// Replaced lists the drawn texts that had characters the cp1252 core fonts
// cannot show. Each such character was drawn as '.'.
func (c *PDFCanvas) Replaced() []string { return c.replaced }

// lossy reports whether out, the single-byte translation of in, had to
// substitute '.' for a rune.
func lossy(in, out string) bool {
	i := 0
	for _, r := range in {
		if i >= len(out) {
			return true
		}
		if out[i] == '.' && r != '.' {
			return true
		}
		i++
	}
	return false
}

// Output writes the document. gofpdf accumulates errors internally; the
// first one is returned here.
func (c *PDFCanvas) Output(w io.Writer) error {
	return c.pdf.Output(w)
}
