// cmd/main.go

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/invoice-builder/pkg/config"
	"github.com/invoice-builder/pkg/generate"
	"github.com/invoice-builder/pkg/logging"
	"github.com/invoice-builder/pkg/render"
	"github.com/invoice-builder/pkg/store"
)

// defaultInvoiceNumber is rendered when no --number is given.
const defaultInvoiceNumber = "2023001"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp(cfg).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "invoicegen:", err)
		os.Exit(1)
	}
}

// env is what every command gets once global flags are applied.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	profile config.Profile
}

func (e *env) openStore(ctx context.Context) (*store.Store, error) {
	return store.Open(ctx, e.cfg.DBDriver, e.cfg.DatabaseURL, e.logger)
}

func (e *env) renderer() *render.Renderer {
	return render.New(e.cfg.OutputDir, e.logger)
}

func newApp(cfg *config.Config) *cli.App {
	e := &env{cfg: cfg}

	return &cli.App{
		Name:  "invoicegen",
		Usage: "render PDF invoices from a billing database or CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "driver", Value: cfg.DBDriver, Usage: "database driver (postgres|sqlite)"},
			&cli.StringFlag{Name: "dsn", Value: cfg.DatabaseURL, Usage: "database connection string"},
			&cli.StringFlag{Name: "output-dir", Value: cfg.OutputDir, Usage: "directory receiving the PDFs"},
			&cli.StringFlag{Name: "profile", Value: cfg.Profile, Usage: "YAML file with company and payment terms"},
			&cli.StringFlag{Name: "log-format", Value: cfg.LogFormat, Usage: "pretty|text|json"},
			&cli.StringFlag{Name: "log-level", Value: cfg.LogLevel, Usage: "debug|info|warn|error"},
		},
		Before: func(c *cli.Context) error {
			cfg.DBDriver = c.String("driver")
			cfg.DatabaseURL = c.String("dsn")
			cfg.OutputDir = c.String("output-dir")
			cfg.Profile = c.String("profile")
			cfg.LogFormat = c.String("log-format")
			cfg.LogLevel = c.String("log-level")
			if err := cfg.Validate(); err != nil {
				return err
			}

			e.logger = logging.New(c.App.ErrWriter, cfg.LogFormat, cfg.LogLevel)
			p, err := config.LoadProfile(cfg.Profile)
			if err != nil {
				return err
			}
			e.profile = p
			return nil
		},
		Commands: []*cli.Command{
			schemaCommand(e),
			renderCommand(e),
			renderCSVCommand(e),
			serveCommand(e),
		},
	}
}

func schemaCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "create the billing tables",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "seed", Usage: "also insert the sample invoice"},
		},
		Action: func(c *cli.Context) error {
			s, err := e.openStore(c.Context)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.EnsureSchema(c.Context); err != nil {
				return err
			}
			if c.Bool("seed") {
				return s.Seed(c.Context)
			}
			return nil
		},
	}
}

func renderCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render invoices stored in the database",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "number", Aliases: []string{"n"}, Usage: "invoice number, repeatable (default " + defaultInvoiceNumber + ")"},
			&cli.BoolFlag{Name: "all", Usage: "render every stored invoice"},
		},
		Action: func(c *cli.Context) error {
			s, err := e.openStore(c.Context)
			if err != nil {
				return err
			}
			defer s.Close()

			src := generate.StoreSource{Store: s, Terms: e.profile.Terms}
			if !c.Bool("all") {
				src.Numbers = c.StringSlice("number")
				if len(src.Numbers) == 0 {
					src.Numbers = []string{defaultInvoiceNumber}
				}
			}
			return report(c, e, src)
		},
	}
}

func renderCSVCommand(e *env) *cli.Command {
	return &cli.Command{
		Name:  "render-csv",
		Usage: "render invoices from a CSV file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: "Data/invoicedata.csv", Usage: "CSV input"},
		},
		Action: func(c *cli.Context) error {
			src := generate.FileSource{
				Path:    c.String("file"),
				Company: e.profile.Company,
				Terms:   e.profile.Terms,
			}
			return report(c, e, src)
		},
	}
}

func report(c *cli.Context, e *env, src generate.Source) error {
	rep, err := generate.Run(c.Context, src, e.renderer(), e.logger)
	if err != nil {
		return err
	}
	if len(rep.Rendered) > 0 {
		fmt.Fprintf(c.App.Writer, "%d PDF invoice(s) generated successfully.\n", len(rep.Rendered))
	}
	for _, n := range rep.Missing {
		fmt.Fprintf(c.App.Writer, "Invoice data not found for invoice number %s.\n", n)
	}
	for _, n := range rep.Skipped {
		fmt.Fprintf(c.App.Writer, "Invoice number %q is not a valid file name, skipped.\n", n)
	}
	return nil
}
