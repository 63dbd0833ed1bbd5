package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/analytics"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/cache"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/config"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/repository"
)

// ReferencePolicyDataset anchors month-to-date windows on the newest billing
// date in the data instead of the wall clock. Useful when replaying historical
// exports.
const (
	ReferencePolicyClock   = "clock"
	ReferencePolicyDataset = "dataset"
)

type DashboardService struct {
	sales      repository.SalesRepository
	txs        repository.TransactionRepository
	prospects  repository.ProspectRepository
	masters    repository.DealerMasterRepository
	cache      cache.DashboardCache
	refPolicy  string
	fetchLimit int
	now        func() time.Time
}

func NewDashboardService(
	sales repository.SalesRepository,
	txs repository.TransactionRepository,
	prospects repository.ProspectRepository,
	masters repository.DealerMasterRepository,
	cacheImpl cache.DashboardCache,
	cfg config.AnalyticsConfig,
) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &DashboardService{
		sales:      sales,
		txs:        txs,
		prospects:  prospects,
		masters:    masters,
		cache:      cacheImpl,
		refPolicy:  cfg.ReferencePolicy,
		fetchLimit: cfg.FetchLimit,
		now:        time.Now,
	}
}

// dataset is one full load of the four stored record sets.
type dataset struct {
	sales     []domain.SalesRecord
	txs       []domain.TransactionRecord
	prospects []domain.ProspectRecord
	masters   []domain.DealerMaster
}

func (s *DashboardService) load(ctx context.Context) (*dataset, error) {
	var ds dataset
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ds.sales, err = s.sales.List(ctx, s.fetchLimit)
		return err
	})
	g.Go(func() (err error) {
		ds.txs, err = s.txs.List(ctx, s.fetchLimit)
		return err
	})
	g.Go(func() (err error) {
		ds.prospects, err = s.prospects.List(ctx, s.fetchLimit)
		return err
	})
	g.Go(func() (err error) {
		ds.masters, err = s.masters.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// referenceDate picks the anchor for relative date ranges and month-to-date
// windows.
func (s *DashboardService) referenceDate(txs []domain.TransactionRecord) time.Time {
	if s.refPolicy != ReferencePolicyDataset {
		return s.now()
	}
	var latest time.Time
	for _, tx := range txs {
		if t := tx.BillingDate(); t != nil && t.After(latest) {
			latest = *t
		}
	}
	if latest.IsZero() {
		return s.now()
	}
	return latest
}

// filtered loads everything and applies the global filter.
func (s *DashboardService) filtered(ctx context.Context, params domain.FilterParams) (*dataset, time.Time, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	ref := s.referenceDate(ds.txs)
	f := analytics.NewFilter(params, ref, analytics.NewDealerLookup(ds.masters))
	return &dataset{
		sales:     f.Sales(ds.sales),
		txs:       f.Transactions(ds.txs),
		prospects: f.Prospects(ds.prospects),
		masters:   ds.masters,
	}, ref, nil
}

// report runs one cached dashboard computation. compute receives the filtered
// dataset and the reference date.
func report[T any](ctx context.Context, s *DashboardService, name string, params domain.FilterParams,
	compute func(ds *dataset, ref time.Time) T) (T, error) {

	var payload T
	if ok, err := s.cache.Get(ctx, name, params, &payload); err == nil && ok {
		return payload, nil
	} else if err != nil {
		log.Warn().Err(err).Str("report", name).Msg("dashboard: cache get failed")
	}

	ds, ref, err := s.filtered(ctx, params)
	if err != nil {
		return payload, err
	}
	payload = compute(ds, ref)

	if err := s.cache.Set(ctx, name, params, payload); err != nil {
		log.Warn().Err(err).Str("report", name).Msg("dashboard: cache set failed")
	}
	return payload, nil
}

func (s *DashboardService) Overview(ctx context.Context, params domain.FilterParams) (analytics.OverviewBundle, error) {
	return report(ctx, s, "overview", params, func(ds *dataset, _ time.Time) analytics.OverviewBundle {
		return analytics.Overview(ds.sales)
	})
}

func (s *DashboardService) Dealers(ctx context.Context, params domain.FilterParams) (analytics.DealersBundle, error) {
	return report(ctx, s, "dealers", params, func(ds *dataset, _ time.Time) analytics.DealersBundle {
		return analytics.Dealers(ds.sales)
	})
}

func (s *DashboardService) Demographics(ctx context.Context, params domain.FilterParams) (analytics.DemographicsBundle, error) {
	return report(ctx, s, "demographics", params, func(ds *dataset, _ time.Time) analytics.DemographicsBundle {
		return analytics.Demographics(ds.sales)
	})
}

func (s *DashboardService) Finance(ctx context.Context, params domain.FilterParams) (analytics.FinanceBundle, error) {
	return report(ctx, s, "finance", params, func(ds *dataset, _ time.Time) analytics.FinanceBundle {
		return analytics.Finance(ds.txs)
	})
}

func (s *DashboardService) MTD(ctx context.Context, params domain.FilterParams) (analytics.MTDBundle, error) {
	return report(ctx, s, "mtd", params, func(ds *dataset, ref time.Time) analytics.MTDBundle {
		return analytics.MTD(ds.txs, ref)
	})
}

func (s *DashboardService) Funnel(ctx context.Context, params domain.FilterParams) (analytics.FunnelBundle, error) {
	return report(ctx, s, "prospects", params, func(ds *dataset, ref time.Time) analytics.FunnelBundle {
		return analytics.Funnel(ds.prospects, len(ds.txs), ref)
	})
}

func (s *DashboardService) Salespeople(ctx context.Context, params domain.FilterParams) (analytics.SalespeopleBundle, error) {
	return report(ctx, s, "salespeople", params, func(ds *dataset, ref time.Time) analytics.SalespeopleBundle {
		return analytics.Salespeople(ds.txs, ref)
	})
}

func (s *DashboardService) Alerts(ctx context.Context, params domain.FilterParams) ([]analytics.Alert, error) {
	return report(ctx, s, "alerts", params, func(ds *dataset, ref time.Time) []analytics.Alert {
		return analytics.Alerts(ds.txs, ref)
	})
}

func (s *DashboardService) Insights(ctx context.Context, params domain.FilterParams) ([]analytics.Insight, error) {
	return report(ctx, s, "insights", params, func(ds *dataset, _ time.Time) []analytics.Insight {
		return analytics.Insights(ds.sales, ds.txs, ds.prospects)
	})
}

// Profile is keyed by salesperson name, so it bypasses the report cache. The
// second return is false when the salesperson has no transactions under the
// current filter.
func (s *DashboardService) Profile(ctx context.Context, params domain.FilterParams, name string) (analytics.SalespersonProfile, bool, error) {
	ds, ref, err := s.filtered(ctx, params)
	if err != nil {
		return analytics.SalespersonProfile{}, false, err
	}
	profile, ok := analytics.Profile(ds.txs, name, ref)
	return profile, ok, nil
}

// FilterOptions reports the distinct filter values over the unfiltered data.
func (s *DashboardService) FilterOptions(ctx context.Context) (analytics.FilterOptions, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return analytics.FilterOptions{}, err
	}
	return analytics.Options(ds.masters, ds.sales, ds.prospects), nil
}
