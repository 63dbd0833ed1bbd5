// internal/repository/postgres/transaction_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

type transactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *transactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) ReplaceAll(ctx context.Context, records []domain.TransactionRecord) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM transaction_records`); err != nil {
			return fmt.Errorf("failed to clear transaction records: %w", err)
		}

		query := `
			INSERT INTO transaction_records (
				kode_dealer, nama_dealer, tanggal_prospect, tanggal_spk,
				tanggal_billing, nama_customer, nama_salesman, status_salesman,
				metode_pembelian, nama_fincoy, fincoy, dp, tenor, angsuran,
				tipe_motor, harga_ofr, diskon_total, net_sales, beban_dealer,
				beban_md, beban_ahm, beban_fincoy, status_delivery, status_bpkb,
				tgl_bstk
			) VALUES (
				:kode_dealer, :nama_dealer, :tanggal_prospect, :tanggal_spk,
				:tanggal_billing, :nama_customer, :nama_salesman, :status_salesman,
				:metode_pembelian, :nama_fincoy, :fincoy, :dp, :tenor, :angsuran,
				:tipe_motor, :harga_ofr, :diskon_total, :net_sales, :beban_dealer,
				:beban_md, :beban_ahm, :beban_fincoy, :status_delivery, :status_bpkb,
				:tgl_bstk
			)
		`
		for _, batch := range chunk(records, insertChunkSize) {
			if _, err := tx.NamedExecContext(ctx, query, batch); err != nil {
				return fmt.Errorf("failed to insert transaction records: %w", err)
			}
		}
		return nil
	})
}

func (r *transactionRepository) List(ctx context.Context, limit int) ([]domain.TransactionRecord, error) {
	query := `
		SELECT id, kode_dealer, nama_dealer, tanggal_prospect, tanggal_spk,
			tanggal_billing, nama_customer, nama_salesman, status_salesman,
			metode_pembelian, nama_fincoy, fincoy, dp, tenor, angsuran,
			tipe_motor, harga_ofr, diskon_total, net_sales, beban_dealer,
			beban_md, beban_ahm, beban_fincoy, status_delivery, status_bpkb,
			tgl_bstk
		FROM transaction_records
		ORDER BY id
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	records := []domain.TransactionRecord{}
	if err := sqlx.SelectContext(ctx, r.db, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list transaction records: %w", err)
	}
	return records, nil
}

func (r *transactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM transaction_records`); err != nil {
		return 0, fmt.Errorf("failed to count transaction records: %w", err)
	}
	return count, nil
}
