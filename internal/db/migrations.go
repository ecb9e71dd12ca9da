package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'load_status') THEN
			CREATE TYPE load_status AS ENUM ('Dispatched', 'PickedUp', 'Delivered');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'load_type') THEN
			CREATE TYPE load_type AS ENUM ('General', 'Refrigerated', 'Hazmat', 'Oversized');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'invoice_status') THEN
			CREATE TYPE invoice_status AS ENUM ('Issued', 'Paid', 'Overdue');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'payment_status') THEN
			CREATE TYPE payment_status AS ENUM ('Pending', 'Completed', 'Failed', 'Cancelled');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(255) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS employees (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		first_name VARCHAR(128) NOT NULL,
		last_name VARCHAR(128) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone_number VARCHAR(32),
		joined_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS roles (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		name VARCHAR(64) NOT NULL
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_roles_name ON roles (name);`,
	`CREATE TABLE IF NOT EXISTS employee_roles (
		employee_id UUID NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
		PRIMARY KEY (employee_id, role_id)
	);`,
	`CREATE TABLE IF NOT EXISTS trucks (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number VARCHAR(32) NOT NULL,
		type VARCHAR(64) NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT '',
		main_driver_id UUID REFERENCES employees(id),
		secondary_driver_id UUID REFERENCES employees(id)
	);`,
	`CREATE TABLE IF NOT EXISTS loads (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number BIGINT NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		type load_type NOT NULL DEFAULT 'General',
		status load_status NOT NULL DEFAULT 'Dispatched',
		origin_address TEXT NOT NULL DEFAULT '',
		destination_address TEXT NOT NULL DEFAULT '',
		distance DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (distance >= 0),
		delivery_cost NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (delivery_cost >= 0),
		currency VARCHAR(3) NOT NULL DEFAULT 'USD',
		dispatched_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		pick_up_date TIMESTAMPTZ,
		delivery_date TIMESTAMPTZ,
		assigned_truck_id UUID REFERENCES trucks(id),
		assigned_dispatcher_id UUID REFERENCES employees(id),
		customer_id UUID REFERENCES customers(id)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_loads_number ON loads (number);`,
	`CREATE INDEX IF NOT EXISTS idx_loads_dispatched_date ON loads (dispatched_date);`,
	`CREATE INDEX IF NOT EXISTS idx_loads_truck_id ON loads (assigned_truck_id) WHERE assigned_truck_id IS NOT NULL;`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		number BIGINT NOT NULL,
		load_id UUID REFERENCES loads(id),
		customer_id UUID REFERENCES customers(id),
		status invoice_status NOT NULL DEFAULT 'Issued',
		total NUMERIC(18,2) NOT NULL DEFAULT 0,
		currency VARCHAR(3) NOT NULL DEFAULT 'USD',
		due_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_load_id ON invoices (load_id) WHERE load_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_created_at ON invoices (created_at);`,
	`CREATE TABLE IF NOT EXISTS payroll_invoices (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		employee_id UUID NOT NULL REFERENCES employees(id),
		period_start TIMESTAMPTZ NOT NULL,
		period_end TIMESTAMPTZ NOT NULL,
		status invoice_status NOT NULL DEFAULT 'Issued',
		total NUMERIC(18,2) NOT NULL DEFAULT 0,
		currency VARCHAR(3) NOT NULL DEFAULT 'USD',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payroll_invoices_period ON payroll_invoices (period_start, period_end);`,
	`CREATE TABLE IF NOT EXISTS payments (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		amount NUMERIC(18,2) NOT NULL,
		currency VARCHAR(3) NOT NULL DEFAULT 'USD',
		status payment_status NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		invoice_id UUID REFERENCES invoices(id) ON DELETE CASCADE,
		payroll_invoice_id UUID REFERENCES payroll_invoices(id) ON DELETE CASCADE,
		CHECK ((invoice_id IS NULL) <> (payroll_invoice_id IS NULL))
	);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_invoice_id ON payments (invoice_id) WHERE invoice_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS idx_payments_payroll_invoice_id ON payments (payroll_invoice_id) WHERE payroll_invoice_id IS NOT NULL;`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
