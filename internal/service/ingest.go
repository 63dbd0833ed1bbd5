package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/cache"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/ingest"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/repository"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/storage"
)

// IngestService turns raw spreadsheet uploads into stored record sets. The
// raw bytes are archived first, then the matching dataset is replaced and the
// report cache flushed.
type IngestService struct {
	sales     repository.SalesRepository
	txs       repository.TransactionRepository
	prospects repository.ProspectRepository
	masters   repository.DealerMasterRepository
	cache     cache.DashboardCache
	archive   storage.ObjectArchive
	now       func() time.Time
}

func NewIngestService(
	sales repository.SalesRepository,
	txs repository.TransactionRepository,
	prospects repository.ProspectRepository,
	masters repository.DealerMasterRepository,
	cacheImpl cache.DashboardCache,
	archive storage.ObjectArchive,
) *IngestService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	if archive == nil {
		archive = storage.NoopArchive{}
	}
	return &IngestService{
		sales:     sales,
		txs:       txs,
		prospects: prospects,
		masters:   masters,
		cache:     cacheImpl,
		archive:   archive,
		now:       time.Now,
	}
}

// Upload ingests one export file into the dataset named by kind and returns
// the stored record count.
func (s *IngestService) Upload(ctx context.Context, kind, filename string, data []byte) (int, error) {
	if !ingest.ValidKind(kind) {
		return 0, fmt.Errorf("unknown dataset kind: %s", kind)
	}

	rows, err := ingest.ParseFile(filename, data)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	s.archiveUpload(ctx, kind, filename, data)

	var count int
	switch kind {
	case ingest.KindSales:
		records := ingest.CoerceSales(rows)
		if err := s.sales.ReplaceAll(ctx, records); err != nil {
			return 0, err
		}
		count = len(records)
	case ingest.KindTransactions:
		records := ingest.CoerceTransactions(rows)
		if err := s.txs.ReplaceAll(ctx, records); err != nil {
			return 0, err
		}
		count = len(records)
	case ingest.KindProspects:
		records := ingest.CoerceProspects(rows)
		if err := s.prospects.ReplaceAll(ctx, records); err != nil {
			return 0, err
		}
		count = len(records)
	case ingest.KindDealers:
		masters := ingest.CoerceDealerMasters(rows)
		if err := s.masters.Upsert(ctx, masters); err != nil {
			return 0, err
		}
		count = len(masters)
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("ingest: cache invalidation failed")
	}

	log.Info().Str("kind", kind).Str("file", filename).Int("records", count).Msg("dataset replaced")
	return count, nil
}

// archiveUpload keeps the raw bytes; a failed archive never blocks the
// ingest.
func (s *IngestService) archiveUpload(ctx context.Context, kind, filename string, data []byte) {
	key := path.Join("uploads", kind, fmt.Sprintf("%s_%s", s.now().UTC().Format("20060102T150405Z"), filename))
	if err := s.archive.Put(ctx, key, data, contentTypeFor(filename)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("ingest: archive upload failed")
	}
}

func contentTypeFor(filename string) string {
	switch path.Ext(filename) {
	case ".xlsx", ".xlsm":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// SyncDrive downloads every spreadsheet in the configured Drive folder and
// ingests each one under its inferred dataset kind. Returns the per-kind
// record counts.
func (s *IngestService) SyncDrive(ctx context.Context, client *ingest.DriveClient, folderPath string) (map[string]int, error) {
	folderID, err := client.FindFolderByPath(folderPath)
	if err != nil {
		return nil, err
	}

	files, err := client.ListSpreadsheets(folderID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, file := range files {
		kind, ok := ingest.KindFromFilename(file.Name)
		if !ok {
			log.Warn().Str("file", file.Name).Msg("drive sync: cannot infer dataset kind, skipping")
			continue
		}

		data, err := client.Download(file.ID)
		if err != nil {
			return counts, fmt.Errorf("failed to download %s: %w", file.Name, err)
		}

		count, err := s.Upload(ctx, kind, file.Name, data)
		if err != nil {
			return counts, fmt.Errorf("failed to ingest %s: %w", file.Name, err)
		}
		counts[kind] += count
	}

	return counts, nil
}
