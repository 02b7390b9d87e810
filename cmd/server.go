// cmd/server.go

package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/urfave/cli/v2"

	"github.com/invoice-builder/pkg/generate"
	"github.com/invoice-builder/pkg/invoice"
	"github.com/invoice-builder/pkg/render"
)

type invoiceServer struct {
	store    generate.InvoiceStore
	renderer *render.Renderer
	terms    invoice.PaymentTerms
	logger   *slog.Logger
}

func newRouter(s *invoiceServer) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", healthHandler).Methods("GET")
	r.HandleFunc("/invoices/{number}.pdf", s.invoiceHandler).Methods("GET")
	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *invoiceServer) invoiceHandler(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	src := generate.StoreSource{Store: s.store, Numbers: []string{number}, Terms: s.terms}
	invs, missing, err := src.Invoices(r.Context())
	if err != nil {
		s.logger.Error("load invoice", "invoice", number, "error", err)
		http.Error(w, "Error loading invoice", http.StatusInternalServerError)
		return
	}
	if len(missing) > 0 || len(invs) == 0 {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	var pdfBuffer bytes.Buffer
	if err := s.renderer.Write(&pdfBuffer, invs[0]); err != nil {
		s.logger.Error("render invoice", "invoice", number, "error", err)
		http.Error(w, "Error generating PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename="+invoice.Filename(number))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	w.Write(pdfBuffer.Bytes())
}

func serveCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve invoice PDFs over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: e.cfg.HTTPAddr, Usage: "listen address"},
		},
		Action: func(c *cli.Context) error {
			st, err := e.openStore(c.Context)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr: c.String("addr"),
				Handler: newRouter(&invoiceServer{
					store:    st,
					renderer: e.renderer(),
					terms:    e.profile.Terms,
					logger:   e.logger,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-c.Context.Done()
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				srv.Shutdown(ctx)
			}()

			e.logger.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
