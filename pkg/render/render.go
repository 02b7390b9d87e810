// pkg/render/render.go

// Package render turns an invoice into a PDF artifact on disk.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/invoice-builder/pkg/invoice"
	"github.com/invoice-builder/pkg/layout"
)

// DefaultOutputDir is relative to the working directory.
const DefaultOutputDir = "Invoices"

// ErrInvalidNumber is returned for invoice numbers that cannot name a file
// directly inside OutputDir.
var ErrInvalidNumber = errors.New("render: invalid invoice number")

// Renderer writes one PDF per invoice into OutputDir.
type Renderer struct {
	OutputDir string
	// Compress toggles PDF stream compression. Tests turn it off to inspect
	// the text operators.
	Compress bool
	Logger   *slog.Logger
}

// New returns a Renderer writing compressed PDFs to dir.
func New(dir string, logger *slog.Logger) *Renderer {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{OutputDir: dir, Compress: true, Logger: logger}
}

// Path is where the artifact for inv is written.
func (r *Renderer) Path(inv *invoice.Invoice) string {
	return filepath.Join(r.OutputDir, invoice.Filename(inv.Number))
}

// Write renders inv as a PDF into w.
func (r *Renderer) Write(w io.Writer, inv *invoice.Invoice) error {
	canvas := NewPDFCanvas("Invoice "+inv.Number, r.Compress)
	if err := paint(canvas, layout.Compose(inv), w); err != nil {
		return err
	}
	if r.Logger != nil {
		for _, text := range canvas.Replaced() {
			r.Logger.Warn("characters outside cp1252 replaced", "invoice", inv.Number, "text", text)
		}
	}
	return nil
}

// paint replays draws onto canvas. Draws arrive in page order and a canvas
// only draws on its current page.
func paint(canvas Canvas, doc layout.Document, w io.Writer) error {
	page := 0
	for _, d := range doc.Draws {
		for page < d.Page {
			canvas.AddPage()
			page++
		}
		canvas.Draw(d)
	}
	for page < doc.Pages {
		canvas.AddPage()
		page++
	}
	return canvas.Output(w)
}

// Render writes inv to OutputDir and returns the artifact path. The file
// appears atomically: either the complete PDF is in place or nothing is.
func (r *Renderer) Render(inv *invoice.Invoice) (string, error) {
	if err := checkNumber(inv.Number); err != nil {
		return "", err
	}
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("render: create output dir: %w", err)
	}

	var buf bytes.Buffer
	if err := r.Write(&buf, inv); err != nil {
		return "", fmt.Errorf("render: invoice %s: %w", inv.Number, err)
	}

	path := r.Path(inv)
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("render: write %s: %w", path, err)
	}
	r.Logger.Debug("invoice rendered", "invoice", inv.Number, "path", path, "bytes", buf.Len())
	return path, nil
}

// checkNumber rejects numbers that would place the artifact outside
// OutputDir or in a subdirectory of it.
func checkNumber(number string) error {
	name := invoice.Filename(number)
	if strings.ContainsAny(number, "/\\\x00") || strings.Contains(number, "..") || filepath.Base(name) != name {
		return fmt.Errorf("%w %q", ErrInvalidNumber, number)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer os.Remove(name)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		return err
	}
	return os.Rename(name, path)
}
