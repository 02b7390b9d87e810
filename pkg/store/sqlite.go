// pkg/store/sqlite.go

package store

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var placeholder = regexp.MustCompile(`\$\d+`)

var sqliteDialect = &dialect{
	driver: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS company_info (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_name TEXT,
			street TEXT,
			city_state_country TEXT,
			zipcode TEXT,
			email TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_company_name ON company_info(company_name)`,
		`CREATE TABLE IF NOT EXISTS client_info (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_number TEXT CONSTRAINT uq_invoice_number UNIQUE,
			date DATE,
			customer_id TEXT,
			name TEXT,
			street TEXT,
			city_state_country TEXT,
			phone TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoice_number ON client_info(invoice_number)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT,
			rate DECIMAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_description ON products(description)`,
		`CREATE TABLE IF NOT EXISTS invoice_details (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_number TEXT,
			product_id INTEGER,
			quantity INTEGER,
			FOREIGN KEY (invoice_number) REFERENCES client_info (invoice_number),
			FOREIGN KEY (product_id) REFERENCES products (id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoice_details_invoice_number ON invoice_details(invoice_number)`,
		`CREATE INDEX IF NOT EXISTS idx_product_id ON invoice_details(product_id)`,
	},
	// Queries are written with $N placeholders, each used once and in order.
	rebind: func(q string) string { return placeholder.ReplaceAllString(q, "?") },
	uniqueViolation: func(err error) bool {
		var sqlErr *sqlite.Error
		if !errors.As(err, &sqlErr) {
			return false
		}
		switch sqlErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(sqlErr.Error(), "UNIQUE constraint failed")
		}
		return false
	},
	init: func(db *sql.DB) error {
		// One connection keeps the pragma in effect and serialises writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		_, err := db.Exec("PRAGMA foreign_keys = ON")
		return err
	},
}
