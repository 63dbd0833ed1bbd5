// internal/repository/repository.go
package repository

import (
	"context"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// Each dataset is replaced wholesale on upload: the spreadsheet export is the
// source of truth, so there is no row-level reconciliation.

type SalesRepository interface {
	ReplaceAll(ctx context.Context, records []domain.SalesRecord) error
	List(ctx context.Context, limit int) ([]domain.SalesRecord, error)
	Count(ctx context.Context) (int64, error)
}

type TransactionRepository interface {
	ReplaceAll(ctx context.Context, records []domain.TransactionRecord) error
	List(ctx context.Context, limit int) ([]domain.TransactionRecord, error)
	Count(ctx context.Context) (int64, error)
}

type ProspectRepository interface {
	ReplaceAll(ctx context.Context, records []domain.ProspectRecord) error
	List(ctx context.Context, limit int) ([]domain.ProspectRecord, error)
	Count(ctx context.Context) (int64, error)
}

// DealerMasterRepository holds the dealer lookup table. Masters are upserted
// by name rather than replaced, so a partial master upload never wipes the
// mapping.
type DealerMasterRepository interface {
	Upsert(ctx context.Context, masters []domain.DealerMaster) error
	List(ctx context.Context) ([]domain.DealerMaster, error)
}
