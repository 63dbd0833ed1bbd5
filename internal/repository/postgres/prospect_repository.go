// internal/repository/postgres/prospect_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

type prospectRepository struct {
	db *DB
}

func NewProspectRepository(db *DB) *prospectRepository {
	return &prospectRepository{db: db}
}

func (r *prospectRepository) ReplaceAll(ctx context.Context, records []domain.ProspectRecord) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM prospect_records`); err != nil {
			return fmt.Errorf("failed to clear prospect records: %w", err)
		}

		query := `
			INSERT INTO prospect_records (
				region, kode_dealer, nama_dealer, salesman_name, employee_status,
				registration_date, gender, occupation, source_prospect,
				prospect_status, reason, follow_up_date, follow_up_status
			) VALUES (
				:region, :kode_dealer, :nama_dealer, :salesman_name, :employee_status,
				:registration_date, :gender, :occupation, :source_prospect,
				:prospect_status, :reason, :follow_up_date, :follow_up_status
			)
		`
		for _, batch := range chunk(records, insertChunkSize) {
			if _, err := tx.NamedExecContext(ctx, query, batch); err != nil {
				return fmt.Errorf("failed to insert prospect records: %w", err)
			}
		}
		return nil
	})
}

func (r *prospectRepository) List(ctx context.Context, limit int) ([]domain.ProspectRecord, error) {
	query := `
		SELECT id, region, kode_dealer, nama_dealer, salesman_name, employee_status,
			registration_date, gender, occupation, source_prospect,
			prospect_status, reason, follow_up_date, follow_up_status
		FROM prospect_records
		ORDER BY id
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	records := []domain.ProspectRecord{}
	if err := sqlx.SelectContext(ctx, r.db, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list prospect records: %w", err)
	}
	return records, nil
}

func (r *prospectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM prospect_records`); err != nil {
		return 0, fmt.Errorf("failed to count prospect records: %w", err)
	}
	return count, nil
}
