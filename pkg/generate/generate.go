// pkg/generate/generate.go

// Package generate drives a batch: load invoices from a source and render
// each one in turn.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/invoice-builder/pkg/invoice"
	"github.com/invoice-builder/pkg/render"
)

// Source yields invoices ready to render. Invoices a source was asked for
// but could not find are returned in missing rather than as an error.
type Source interface {
	Invoices(ctx context.Context) (invoices []*invoice.Invoice, missing []string, err error)
}

// Report summarises a batch.
type Report struct {
	Rendered []string
	Missing  []string
	// Skipped holds numbers that cannot be used as a file name.
	Skipped []string
}

// ErrNothingRendered is returned when a batch found no invoices at all.
var ErrNothingRendered = errors.New("generate: no invoices rendered")

// Run renders every invoice from src. Rendering stops at the first I/O
// error; missing invoices and invalid numbers are logged and skipped.
func Run(ctx context.Context, src Source, r *render.Renderer, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var rep Report
	invs, missing, err := src.Invoices(ctx)
	if err != nil {
		return rep, err
	}
	for _, n := range missing {
		logger.Warn("invoice not found", "invoice", n)
	}
	rep.Missing = missing

	for _, inv := range invs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if !inv.Reconciled() {
			logger.Warn("stored total differs from line items",
				"invoice", inv.Number,
				"total", inv.Total().String(),
				"items_total", inv.ItemsTotal().String())
		}
		path, err := r.Render(inv)
		if errors.Is(err, render.ErrInvalidNumber) {
			logger.Warn("invoice skipped", "invoice", inv.Number, "error", err)
			rep.Skipped = append(rep.Skipped, inv.Number)
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("generate: %w", err)
		}
		logger.Info("invoice generated", "invoice", inv.Number, "items", len(inv.Items()), "path", path)
		rep.Rendered = append(rep.Rendered, path)
	}

	if len(rep.Rendered) == 0 && len(rep.Missing) == 0 && len(rep.Skipped) == 0 {
		return rep, ErrNothingRendered
	}
	return rep, nil
}
