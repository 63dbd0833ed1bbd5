// internal/repository/postgres/dealer_master_repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

type dealerMasterRepository struct {
	db *DB
}

func NewDealerMasterRepository(db *DB) *dealerMasterRepository {
	return &dealerMasterRepository{db: db}
}

func (r *dealerMasterRepository) Upsert(ctx context.Context, masters []domain.DealerMaster) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO dealer_masters (name, code, alt_code, dealer_group, region)
			VALUES (:name, :code, :alt_code, :dealer_group, :region)
			ON CONFLICT (name) DO UPDATE SET
				code = EXCLUDED.code,
				alt_code = EXCLUDED.alt_code,
				dealer_group = EXCLUDED.dealer_group,
				region = EXCLUDED.region
		`
		for _, batch := range chunk(masters, insertChunkSize) {
			if _, err := tx.NamedExecContext(ctx, query, batch); err != nil {
				return fmt.Errorf("failed to upsert dealer masters: %w", err)
			}
		}
		return nil
	})
}

func (r *dealerMasterRepository) List(ctx context.Context) ([]domain.DealerMaster, error) {
	query := `
		SELECT id, name, code, alt_code, dealer_group, region
		FROM dealer_masters
		ORDER BY name
	`
	masters := []domain.DealerMaster{}
	if err := sqlx.SelectContext(ctx, r.db, &masters, query); err != nil {
		return nil, fmt.Errorf("failed to list dealer masters: %w", err)
	}
	return masters, nil
}
