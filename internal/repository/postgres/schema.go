// internal/repository/postgres/schema.go
package postgres

import (
	"context"
	"fmt"
)

// insertChunkSize keeps NamedExec batches well under the postgres placeholder
// limit.
const insertChunkSize = 500

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS sales_records (
		id BIGSERIAL PRIMARY KEY,
		no_mesin TEXT NOT NULL DEFAULT '',
		no_rangka TEXT NOT NULL DEFAULT '',
		tgl_mohon TIMESTAMPTZ,
		nama TEXT NOT NULL DEFAULT '',
		dp_aktual DOUBLE PRECISION NOT NULL DEFAULT 0,
		tipe_atpm TEXT NOT NULL DEFAULT '',
		warna TEXT NOT NULL DEFAULT '',
		dealer_so TEXT NOT NULL DEFAULT '',
		area_dealer TEXT NOT NULL DEFAULT '',
		fincoy TEXT NOT NULL DEFAULT '',
		konsumen TEXT NOT NULL DEFAULT '',
		pekerjaan TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT '',
		tanggal_ssu TIMESTAMPTZ,
		grup_dealer TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS transaction_records (
		id BIGSERIAL PRIMARY KEY,
		kode_dealer TEXT NOT NULL DEFAULT '',
		nama_dealer TEXT NOT NULL DEFAULT '',
		tanggal_prospect TIMESTAMPTZ,
		tanggal_spk TIMESTAMPTZ,
		tanggal_billing TIMESTAMPTZ,
		nama_customer TEXT NOT NULL DEFAULT '',
		nama_salesman TEXT NOT NULL DEFAULT '',
		status_salesman TEXT NOT NULL DEFAULT '',
		metode_pembelian TEXT NOT NULL DEFAULT '',
		nama_fincoy TEXT NOT NULL DEFAULT '',
		fincoy TEXT NOT NULL DEFAULT '',
		dp DOUBLE PRECISION NOT NULL DEFAULT 0,
		tenor DOUBLE PRECISION NOT NULL DEFAULT 0,
		angsuran DOUBLE PRECISION NOT NULL DEFAULT 0,
		tipe_motor TEXT NOT NULL DEFAULT '',
		harga_ofr DOUBLE PRECISION NOT NULL DEFAULT 0,
		diskon_total DOUBLE PRECISION NOT NULL DEFAULT 0,
		net_sales DOUBLE PRECISION NOT NULL DEFAULT 0,
		beban_dealer DOUBLE PRECISION NOT NULL DEFAULT 0,
		beban_md DOUBLE PRECISION NOT NULL DEFAULT 0,
		beban_ahm DOUBLE PRECISION NOT NULL DEFAULT 0,
		beban_fincoy DOUBLE PRECISION NOT NULL DEFAULT 0,
		status_delivery TEXT NOT NULL DEFAULT '',
		status_bpkb TEXT NOT NULL DEFAULT '',
		tgl_bstk TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS prospect_records (
		id BIGSERIAL PRIMARY KEY,
		region TEXT NOT NULL DEFAULT '',
		kode_dealer TEXT NOT NULL DEFAULT '',
		nama_dealer TEXT NOT NULL DEFAULT '',
		salesman_name TEXT NOT NULL DEFAULT '',
		employee_status TEXT NOT NULL DEFAULT '',
		registration_date TIMESTAMPTZ,
		gender TEXT NOT NULL DEFAULT '',
		occupation TEXT NOT NULL DEFAULT '',
		source_prospect TEXT NOT NULL DEFAULT '',
		prospect_status TEXT NOT NULL DEFAULT '',
		reason TEXT NOT NULL DEFAULT '',
		follow_up_date TIMESTAMPTZ,
		follow_up_status TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS dealer_masters (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		code TEXT NOT NULL DEFAULT '',
		alt_code TEXT NOT NULL DEFAULT '',
		dealer_group TEXT NOT NULL DEFAULT '',
		region TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sales_records_tgl_mohon ON sales_records (tgl_mohon)`,
	`CREATE INDEX IF NOT EXISTS idx_transaction_records_tanggal_billing ON transaction_records (tanggal_billing)`,
	`CREATE INDEX IF NOT EXISTS idx_prospect_records_registration_date ON prospect_records (registration_date)`,
}

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, db *DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}

func chunk[T any](items []T, size int) [][]T {
	if size <= 0 {
		return [][]T{items}
	}
	chunks := make([][]T, 0, len(items)/size+1)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}
