package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

func TestEfficiencyLabelBands(t *testing.T) {
	tests := []struct {
		burden float64
		want   string
	}{
		{0, BandEfficient},
		{299_999, BandEfficient},
		{300_000, BandWatch},
		{500_000, BandWatch},
		{500_001, BandOverDiscount},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EfficiencyLabel(tt.burden), "burden=%v", tt.burden)
	}
}

func TestSalespeopleTotalsAndCreditShare(t *testing.T) {
	ref := *date(2024, time.June, 15)
	txs := []domain.TransactionRecord{
		tx(20_000_000, 0, withNet(18_000_000), withMethod("Kredit")),
		tx(21_000_000, 0, withMethod("CASH")),
		tx(22_000_000, 0, withNet(20_000_000), withMethod("KREDIT REGULER")),
		tx(23_000_000, 0, withMethod("Cash")),
	}
	bundle := Salespeople(txs, ref)

	assert.Equal(t, 4, bundle.TotalUnits)
	// Net sales falls back to the list price when the net column is empty.
	assert.Equal(t, 18_000_000.0+21_000_000+20_000_000+23_000_000, bundle.TotalNetSales)
	assert.Equal(t, 50.0, bundle.CreditSharePct)
}

func TestSalespeopleLeaderboard(t *testing.T) {
	ref := *date(2024, time.June, 15)
	bySalesman := func(name string, net float64) domain.TransactionRecord {
		return tx(net, 0, withNet(net), func(r *domain.TransactionRecord) { r.NamaSalesman = name })
	}
	txs := []domain.TransactionRecord{
		bySalesman("Budi", 10_000_000),
		bySalesman("Budi", 12_000_000),
		bySalesman("Sari", 30_000_000),
	}
	bundle := Salespeople(txs, ref)

	require.Len(t, bundle.Leaderboard, 2)
	assert.Equal(t, "Budi", bundle.TopPerformer)
	assert.Equal(t, 2, bundle.Leaderboard[0].Units)
	assert.Equal(t, 22_000_000.0, bundle.Leaderboard[0].Revenue)
}

func TestBurdenHeatTable(t *testing.T) {
	ref := *date(2024, time.June, 15)
	withBurden := func(name string, burden float64) domain.TransactionRecord {
		return tx(10_000_000, 0, func(r *domain.TransactionRecord) {
			r.NamaSalesman = name
			r.BebanDealer = burden
		})
	}
	txs := []domain.TransactionRecord{
		withBurden("Heavy", 600_000),
		withBurden("Heavy", 600_000),
		withBurden("Light", 200_000),
		withBurden("Mid", 400_000),
	}
	heat := Salespeople(txs, ref).SalesmanHeat

	assert.Equal(t, 450_000.0, heat.TeamAvg)
	require.Len(t, heat.Rows, 3)
	assert.Equal(t, "Heavy", heat.Rows[0].Name)
	assert.Equal(t, BandOverDiscount, heat.Rows[0].Band)
	assert.InDelta(t, 33.3, heat.Rows[0].VsTeamPct, 0.05)
	assert.Equal(t, "+33.3%", heat.Rows[0].VsTeam)
	assert.Equal(t, BandWatch, heat.Rows[1].Band)
	assert.Equal(t, BandEfficient, heat.Rows[2].Band)
}

func TestBurdenFallsBackToDiscount(t *testing.T) {
	r := domain.TransactionRecord{DiskonTotal: 150_000}
	assert.Equal(t, 150_000.0, r.Burden())
	r.BebanDealer = 90_000
	assert.Equal(t, 90_000.0, r.Burden())
}

func TestComparisonRowsSparkAndPace(t *testing.T) {
	ref := *date(2024, time.June, 10)
	byMotor := func(y int, m time.Month, d int) domain.TransactionRecord {
		return tx(0, 0, billedOn(y, m, d), withNet(10_000_000), func(r *domain.TransactionRecord) {
			r.TipeMotor = "BeAT"
		})
	}
	txs := []domain.TransactionRecord{
		byMotor(2024, time.June, 2),
		byMotor(2024, time.June, 5),
		byMotor(2024, time.May, 7),
		byMotor(2024, time.May, 20), // past cutoff: spark only
		byMotor(2024, time.April, 1),
		byMotor(2024, time.March, 1), // older than the spark span
	}
	rows := Salespeople(txs, ref).MTDComparison["motor"]

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, 2, row.MTDUnits)
	assert.Equal(t, 1, row.LastUnits)
	assert.Equal(t, [3]int{1, 2, 2}, row.Spark)
	assert.Equal(t, 100.0, row.UnitsChangePct)
	assert.Equal(t, 60_000_000.0, row.PaceNetSales)
}

func TestFincoyQualityCreditOnly(t *testing.T) {
	ref := *date(2024, time.June, 15)
	deal := func(fincoy string, d int, m time.Month, dp, tenor, angsuran float64) domain.TransactionRecord {
		return tx(0, 0, billedOn(2024, m, d), withMethod("Kredit"), func(r *domain.TransactionRecord) {
			r.NamaFincoy = fincoy
			r.DP = dp
			r.Tenor = tenor
			r.Angsuran = angsuran
		})
	}
	txs := []domain.TransactionRecord{
		deal("FIF", 3, time.June, 4_000_000, 12, 900_000),
		deal("FIF", 9, time.June, 6_000_000, 24, 1_100_000),
		deal("FIF", 10, time.May, 0, 0, 0),
		deal("Adira", 4, time.June, 2_000_000, 36, 700_000),
		tx(0, 0, billedOn(2024, time.June, 5), withMethod("Cash")), // ignored
	}
	rows := Salespeople(txs, ref).FincoyQuality

	require.Len(t, rows, 2)
	fif := rows[0]
	assert.Equal(t, "FIF", fif.Fincoy)
	assert.Equal(t, 2, fif.MTDDeals)
	assert.Equal(t, 1, fif.LastDeals)
	assert.InDelta(t, 66.7, fif.MTDSharePct, 0.05)
	assert.Equal(t, 5_000_000.0, fif.AvgDP)
	assert.Equal(t, 18.0, fif.AvgTenor)
	assert.Equal(t, 1_000_000.0, fif.AvgInstalment)
}

func withMethod(method string) func(*domain.TransactionRecord) {
	return func(r *domain.TransactionRecord) { r.MetodePembelian = method }
}
