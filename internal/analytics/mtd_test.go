package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

func TestMTDMetrics(t *testing.T) {
	ref := *date(2024, time.June, 15)
	txs := []domain.TransactionRecord{
		tx(20_000_000, 2_000_000, billedOn(2024, time.June, 5), withNet(18_000_000)),
		tx(20_000_000, 1_000_000, billedOn(2024, time.June, 12), withNet(19_000_000)),
		tx(20_000_000, 1_000_000, billedOn(2024, time.May, 10), withNet(19_000_000)),
		// Past last month's cutoff day: outside both buckets.
		tx(20_000_000, 5_000_000, billedOn(2024, time.May, 20)),
	}
	bundle := MTD(txs, ref)
	m := bundle.Metrics

	assert.Equal(t, 15, bundle.CutoffDay)
	assert.Equal(t, 2, m.CurrentUnits)
	assert.Equal(t, 1, m.LastUnits)
	assert.Equal(t, 37_000_000.0, m.CurrentNetSales)
	assert.Equal(t, 19_000_000.0, m.LastNetSales)
	assert.Equal(t, 100.0, m.UnitsChangePct)
	assert.InDelta(t, 7.5, m.CurrentDiscountRate, 0.001)
	assert.InDelta(t, 5.0, m.LastDiscountRate, 0.001)
	assert.InDelta(t, 2.5, m.DiscountRateChangePts, 0.001)
}

func TestMTDTableRanksByCurrentNetSales(t *testing.T) {
	ref := *date(2024, time.June, 15)
	byDealer := func(dealer string, net float64, d int) domain.TransactionRecord {
		return tx(net, 0, billedOn(2024, time.June, d), withNet(net), func(r *domain.TransactionRecord) {
			r.NamaDealer = dealer
		})
	}
	txs := []domain.TransactionRecord{
		byDealer("Small", 10_000_000, 3),
		byDealer("Big", 30_000_000, 4),
		byDealer("Big", 25_000_000, 8),
		// Current month but zero net on both sides: filtered out.
		tx(0, 0, billedOn(2024, time.June, 6), func(r *domain.TransactionRecord) { r.NamaDealer = "Ghost" }),
	}
	bundle := MTD(txs, ref)

	require.Len(t, bundle.DealerTable, 2)
	assert.Equal(t, "Big", bundle.DealerTable[0].Name)
	assert.Equal(t, 55_000_000.0, bundle.DealerTable[0].CurrentNetSales)
	assert.Equal(t, 2, bundle.DealerTable[0].CurrentUnits)
	assert.Equal(t, "Small", bundle.DealerTable[1].Name)
}

func TestMTDPacingInMillions(t *testing.T) {
	ref := *date(2024, time.June, 2)
	txs := []domain.TransactionRecord{
		tx(0, 0, billedOn(2024, time.June, 1), withNet(4_000_000)),
		tx(0, 0, billedOn(2024, time.May, 1), withNet(2_000_000)),
	}
	bundle := MTD(txs, ref)

	require.Len(t, bundle.Pacing, 31)
	require.NotNil(t, bundle.Pacing[0].Current)
	assert.Equal(t, 4.0, *bundle.Pacing[0].Current)
	require.NotNil(t, bundle.Pacing[0].Last)
	assert.Equal(t, 2.0, *bundle.Pacing[0].Last)

	// Current ends at the reference day, last covers all of May.
	assert.Nil(t, bundle.Pacing[2].Current)
	assert.NotNil(t, bundle.Pacing[30].Last)
}

func withNet(net float64) func(*domain.TransactionRecord) {
	return func(r *domain.TransactionRecord) { r.NetSales = net }
}
