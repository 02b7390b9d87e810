package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-builder/pkg/invoice"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "billing.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "", nil)
	assert.Error(t, err)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.EnsureSchema(context.Background()))
	require.NoError(t, s.EnsureSchema(context.Background()))
}

func TestLoadInvoice_SeededFixture(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Seed(ctx))

	inv, err := s.LoadInvoice(ctx, "2023001")
	require.NoError(t, err)

	assert.Equal(t, "2023001", inv.Number)
	assert.Equal(t, "2023-11-28", inv.Date)
	assert.Equal(t, "Client XYZ", inv.ClientName)
	assert.Equal(t, SampleClient, inv.Client)
	assert.Equal(t, "6500", inv.Total().String())

	items := inv.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Construction Work", items[0].Description)
	assert.Equal(t, int64(5), items[0].Quantity)
	assert.Equal(t, "5000", items[0].Amount().String())
	assert.Equal(t, "Material Supply", items[1].Description)
	assert.Equal(t, "1500", items[1].Amount().String())
}

func TestLoadInvoice_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadInvoice(context.Background(), "9999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSeed_RepeatIsLoggedNotFatal(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	require.NoError(t, s.Seed(ctx))
	require.NoError(t, s.Seed(ctx))

	var products, companies int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&products))
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM company_info`).Scan(&companies))
	assert.Equal(t, 3, products)
	assert.Equal(t, 1, companies)

	inv, err := s.LoadInvoice(ctx, "2023001")
	require.NoError(t, err)
	assert.Len(t, inv.Items(), 2)
}

func TestLoadCompanyInfo(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	c, err := s.LoadCompanyInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, invoice.DefaultCompany, c)

	require.NoError(t, s.Seed(ctx))
	c, err = s.LoadCompanyInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, SampleCompany, c)
}

func TestInvoiceNumbers(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	nums, err := s.InvoiceNumbers(ctx)
	require.NoError(t, err)
	assert.Empty(t, nums)

	require.NoError(t, s.Seed(ctx))
	require.NoError(t, s.exec(ctx, `INSERT INTO client_info (invoice_number, name) VALUES ($1, $2)`, "2023000", "Early Bird"))

	nums, err = s.InvoiceNumbers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2023000", "2023001"}, nums)

	inv, err := s.LoadInvoice(ctx, "2023000")
	require.NoError(t, err)
	assert.Empty(t, inv.Items())
	assert.Equal(t, "", inv.Client.Phone)
	assert.True(t, inv.Total().IsZero())
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	insert := `INSERT INTO client_info (invoice_number) VALUES ($1)`

	require.NoError(t, s.exec(ctx, insert, "1"))
	err := s.exec(ctx, insert, "1")
	require.Error(t, err)
	assert.True(t, s.IsUniqueViolation(err))
	assert.True(t, s.IsUniqueViolation(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, s.IsUniqueViolation(nil))
	assert.False(t, s.IsUniqueViolation(ErrNotFound))
}

func TestPostgresUniqueViolation(t *testing.T) {
	assert.True(t, postgresDialect.uniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, postgresDialect.uniqueViolation(fmt.Errorf("seed: %w", &pq.Error{Code: "23505"})))
	assert.False(t, postgresDialect.uniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, postgresDialect.uniqueViolation(ErrNotFound))
}

func TestSQLiteRebind(t *testing.T) {
	assert.Equal(t, "SELECT a FROM t WHERE x = ? AND y = ?", sqliteDialect.rebind("SELECT a FROM t WHERE x = $1 AND y = $2"))
	assert.Equal(t, "SELECT 1", postgresDialect.rebind("SELECT 1"))
}

func TestPostgresSchemaOrdersConstraintBeforeDetails(t *testing.T) {
	var constraintAt, detailsAt int
	for i, stmt := range postgresDialect.schema {
		switch {
		case stmt == constraintStep:
			constraintAt = i
		case strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS invoice_details"):
			detailsAt = i
		}
	}
	require.NotZero(t, constraintAt)
	require.NotZero(t, detailsAt)
	assert.Less(t, constraintAt, detailsAt)
}
