package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

func tx(ofr, discount float64, opts ...func(*domain.TransactionRecord)) domain.TransactionRecord {
	t := domain.TransactionRecord{HargaOFR: ofr, DiskonTotal: discount}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func billedOn(y int, m time.Month, d int) func(*domain.TransactionRecord) {
	return func(t *domain.TransactionRecord) { t.TanggalBilling = date(y, m, d) }
}

func TestFinanceKPIsBoundaryNotFlagged(t *testing.T) {
	// Three deals at 10%, 11%, and exactly 12%: none crosses the high-risk
	// boundary, the portfolio averages 11%.
	txs := []domain.TransactionRecord{
		tx(1_000_000, 100_000),
		tx(1_000_000, 110_000),
		tx(1_000_000, 120_000),
	}
	bundle := Finance(txs)

	assert.Equal(t, 3_000_000.0, bundle.KPIs.GrossRevenue)
	assert.Equal(t, 330_000.0, bundle.KPIs.TotalDiscount)
	assert.Equal(t, 2_670_000.0, bundle.KPIs.NetSales)
	assert.InDelta(t, 11.0, bundle.KPIs.AvgDiscountPct, 0.001)
	assert.Equal(t, 0, bundle.KPIs.HighRiskCount)
	assert.Equal(t, 110_000.0, bundle.KPIs.AvgDiscountPerUnit)
	assert.Empty(t, bundle.RiskTransactions)
}

func TestFinanceKPIsSubsidySplit(t *testing.T) {
	txs := []domain.TransactionRecord{
		tx(10_000_000, 1_000_000, func(r *domain.TransactionRecord) {
			r.BebanDealer = 400_000
			r.BebanMD = 100_000
			r.BebanAHM = 200_000
			r.BebanFincoy = 300_000
		}),
		tx(10_000_000, 1_000_000, func(r *domain.TransactionRecord) {
			r.BebanFincoy = 500_000
		}),
	}
	k := Finance(txs).KPIs

	assert.Equal(t, 400_000.0, k.DealerSubsidy)
	assert.Equal(t, 1_100_000.0, k.ExternalSubsidy)
	assert.Equal(t, 1, k.DealerSubsidizedCount)
	assert.InDelta(t, 20.0, k.DealerSharePct, 0.001)
	assert.InDelta(t, 40.0, k.FinanceContribPct, 0.001)
}

func TestFinanceEmptySetIsSafe(t *testing.T) {
	bundle := Finance(nil)
	assert.Equal(t, 0.0, bundle.KPIs.AvgDiscountPct)
	assert.Equal(t, 0.0, bundle.KPIs.AvgDiscountPerUnit)
	assert.Empty(t, bundle.DiscountTrend)
}

func TestRiskTransactions(t *testing.T) {
	risky := tx(1_000_000, 150_000, billedOn(2024, time.May, 3), func(r *domain.TransactionRecord) {
		r.NamaDealer = "Dealer Maju"
		r.NamaSalesman = "Budi"
		r.TipeMotor = "BeAT"
		r.BebanDealer = 90_000
		r.BebanFincoy = 60_000
	})
	txs := []domain.TransactionRecord{
		tx(1_000_000, 120_000), // boundary, stays off the list
		risky,
		tx(1_000_000, 130_000), // no dealer or salesman name
	}
	rows := Finance(txs).RiskTransactions

	require.Len(t, rows, 2)
	assert.Equal(t, "Dealer Maju", rows[0].Dealer)
	assert.Equal(t, "Budi", rows[0].Salesman)
	assert.InDelta(t, 15.0, rows[0].DiscountPct, 0.001)
	assert.Equal(t, "03 May 2024", rows[0].Date)

	assert.Equal(t, "-", rows[1].Dealer)
	assert.Equal(t, "-", rows[1].Salesman)
	assert.Equal(t, "-", rows[1].Date)
}

func TestDiscountTrendSortsChronologically(t *testing.T) {
	txs := []domain.TransactionRecord{
		tx(10_000_000, 1_000_000, billedOn(2024, time.February, 10)),
		tx(10_000_000, 500_000, billedOn(2024, time.January, 5)),
		tx(10_000_000, 500_000, billedOn(2024, time.January, 20)),
		tx(1_000_000, 100_000), // no billing date, excluded
	}
	trend := Finance(txs).DiscountTrend

	require.Len(t, trend, 2)
	assert.Equal(t, "Jan 2024", trend[0].Period)
	assert.Equal(t, 1.0, trend[0].DiscountValue) // millions
	assert.InDelta(t, 5.0, trend[0].Rate, 0.001)
	assert.Equal(t, "Feb 2024", trend[1].Period)
	assert.InDelta(t, 10.0, trend[1].Rate, 0.001)
}

func TestSalesmanBehaviorFiltersLowVolume(t *testing.T) {
	bySalesman := func(name string, discount float64) domain.TransactionRecord {
		return tx(1_000_000, discount, func(r *domain.TransactionRecord) { r.NamaSalesman = name })
	}
	txs := []domain.TransactionRecord{
		bySalesman("Budi", 100_000),
		bySalesman("Budi", 120_000),
		bySalesman("Budi", 140_000),
		bySalesman("Sari", 200_000), // only one deal
	}
	points := Finance(txs).SalesmanBehavior

	require.Len(t, points, 1)
	assert.Equal(t, "Budi", points[0].Salesman)
	assert.Equal(t, 3, points[0].Volume)
	assert.InDelta(t, 12.0, points[0].AvgRate, 0.001)
}

func TestFincoyImpactsDefaultsToCash(t *testing.T) {
	txs := []domain.TransactionRecord{
		tx(1_000_000, 100_000, func(r *domain.TransactionRecord) { r.NamaFincoy = "FIF" }),
		tx(1_000_000, 100_000, func(r *domain.TransactionRecord) { r.Fincoy = "Adira" }),
		tx(1_000_000, 100_000),
		tx(1_000_000, 100_000),
	}
	impacts := Finance(txs).FincoyImpacts

	require.Len(t, impacts, 3)
	assert.Equal(t, "CASH / None", impacts[0].Fincoy)
	assert.Equal(t, 2, impacts[0].Deals)
}
