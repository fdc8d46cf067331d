package postgres

import "context"

// Schema is the DDL for the host tables this service reads and writes.
// The host normally owns these tables; cmd/migrate creates them for standalone runs.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL DEFAULT '',
		shipping_address_id BIGINT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		order_guid UUID NOT NULL UNIQUE,
		custom_order_number TEXT NOT NULL DEFAULT '',
		store_id BIGINT NOT NULL,
		customer_id BIGINT NOT NULL,
		order_total NUMERIC(18, 4) NOT NULL DEFAULT 0,
		order_status TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		authorization_transaction_id TEXT NOT NULL DEFAULT '',
		paid_at TIMESTAMPTZ NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_store_customer ON orders (store_id, customer_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		value TEXT NOT NULL DEFAULT '',
		store_id BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (name, store_id)
	)`,
	`CREATE TABLE IF NOT EXISTS locale_string_resources (
		id BIGSERIAL PRIMARY KEY,
		language_id BIGINT NOT NULL,
		resource_name TEXT NOT NULL,
		resource_value TEXT NOT NULL DEFAULT '',
		UNIQUE (language_id, resource_name)
	)`,
}

// Migrate applies Schema
func (db *DB) Migrate(ctx context.Context) error {
	q := db.GetQuerier(ctx)
	for _, stmt := range Schema {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
