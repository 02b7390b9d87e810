// pkg/store/postgres.go

package store

import (
	"errors"

	"github.com/lib/pq"
)

var postgresDialect = &dialect{
	driver: "postgres",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS company_info (
			id SERIAL PRIMARY KEY,
			company_name VARCHAR(255),
			street VARCHAR(255),
			city_state_country VARCHAR(255),
			zipcode VARCHAR(10),
			email VARCHAR(255)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_company_name ON company_info(company_name)`,
		`CREATE TABLE IF NOT EXISTS client_info (
			id SERIAL PRIMARY KEY,
			invoice_number VARCHAR(20),
			date DATE,
			customer_id VARCHAR(20),
			name VARCHAR(255),
			street VARCHAR(255),
			city_state_country VARCHAR(255),
			phone VARCHAR(20)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoice_number ON client_info(invoice_number)`,
		constraintStep,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			description VARCHAR(255),
			rate DECIMAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_description ON products(description)`,
		`CREATE TABLE IF NOT EXISTS invoice_details (
			id SERIAL PRIMARY KEY,
			invoice_number VARCHAR(20),
			product_id INTEGER,
			quantity INTEGER,
			FOREIGN KEY (invoice_number) REFERENCES client_info (invoice_number),
			FOREIGN KEY (product_id) REFERENCES products (id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_invoice_details_invoice_number ON invoice_details(invoice_number)`,
		`CREATE INDEX IF NOT EXISTS idx_product_id ON invoice_details(product_id)`,
	},
	constraintQuery: `SELECT constraint_name
		FROM information_schema.table_constraints
		WHERE table_name = 'client_info' AND constraint_type = 'UNIQUE' AND constraint_name = 'uq_invoice_number'`,
	addConstraint: `ALTER TABLE client_info ADD CONSTRAINT uq_invoice_number UNIQUE (invoice_number)`,
	rebind:        func(q string) string { return q },
	uniqueViolation: func(err error) bool {
		var pqErr *pq.Error
		return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
	},
}
