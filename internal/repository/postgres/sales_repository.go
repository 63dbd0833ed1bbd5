// internal/repository/postgres/sales_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) *salesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) ReplaceAll(ctx context.Context, records []domain.SalesRecord) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales_records`); err != nil {
			return fmt.Errorf("failed to clear sales records: %w", err)
		}

		query := `
			INSERT INTO sales_records (
				no_mesin, no_rangka, tgl_mohon, nama, dp_aktual, tipe_atpm,
				warna, dealer_so, area_dealer, fincoy, konsumen, pekerjaan,
				gender, tanggal_ssu, grup_dealer
			) VALUES (
				:no_mesin, :no_rangka, :tgl_mohon, :nama, :dp_aktual, :tipe_atpm,
				:warna, :dealer_so, :area_dealer, :fincoy, :konsumen, :pekerjaan,
				:gender, :tanggal_ssu, :grup_dealer
			)
		`
		for _, batch := range chunk(records, insertChunkSize) {
			if _, err := tx.NamedExecContext(ctx, query, batch); err != nil {
				return fmt.Errorf("failed to insert sales records: %w", err)
			}
		}
		return nil
	})
}

func (r *salesRepository) List(ctx context.Context, limit int) ([]domain.SalesRecord, error) {
	query := `
		SELECT id, no_mesin, no_rangka, tgl_mohon, nama, dp_aktual, tipe_atpm,
			warna, dealer_so, area_dealer, fincoy, konsumen, pekerjaan,
			gender, tanggal_ssu, grup_dealer
		FROM sales_records
		ORDER BY id
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	records := []domain.SalesRecord{}
	if err := sqlx.SelectContext(ctx, r.db, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sales records: %w", err)
	}
	return records, nil
}

func (r *salesRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sales_records`); err != nil {
		return 0, fmt.Errorf("failed to count sales records: %w", err)
	}
	return count, nil
}
