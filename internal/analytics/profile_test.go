package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

func TestProfileUnknownSalesperson(t *testing.T) {
	_, ok := Profile(nil, "Nobody", *date(2024, time.June, 15))
	assert.False(t, ok)
}

func TestProfile(t *testing.T) {
	ref := *date(2024, time.June, 15)
	sale := func(y int, m time.Month, d int, motor string, opts ...func(*domain.TransactionRecord)) domain.TransactionRecord {
		opts = append(opts, billedOn(y, m, d), func(r *domain.TransactionRecord) {
			r.NamaSalesman = "Budi"
			r.NamaDealer = "Dealer Maju"
			r.TipeMotor = motor
		})
		return tx(10_000_000, 0, opts...)
	}
	txs := []domain.TransactionRecord{
		sale(2024, time.June, 3, "BeAT", withNet(16_000_000), func(r *domain.TransactionRecord) {
			r.BebanDealer = 200_000
			r.DP = 4_000_000
			r.Tenor = 12
			r.NamaFincoy = "FIF"
		}),
		sale(2024, time.June, 10, "Vario", withNet(20_000_000), func(r *domain.TransactionRecord) {
			r.BebanDealer = 300_000
			r.DP = 2_000_000
		}),
		sale(2024, time.April, 5, "BeAT"),
		// Another salesperson never leaks into the profile.
		tx(10_000_000, 0, billedOn(2024, time.June, 4), func(r *domain.TransactionRecord) {
			r.NamaSalesman = "Sari"
		}),
	}
	p, ok := Profile(txs, "Budi", ref)

	require.True(t, ok)
	assert.Equal(t, "Dealer Maju", p.Dealer)
	assert.Equal(t, "Active", p.Status)
	assert.Equal(t, 2, p.MTDUnits)
	assert.Equal(t, 36_000_000.0, p.MTDNetSales)
	assert.Equal(t, 500_000.0, p.MTDBurden)
	assert.Equal(t, 250_000.0, p.AvgBurden)
	assert.Equal(t, BandEfficient, p.Band)
	assert.Equal(t, 2_000_000.0, p.AvgDP)
	assert.Equal(t, 12.0, p.AvgTenor)

	require.Len(t, p.Trend, 4)
	assert.Equal(t, []TrendMonth{
		{Label: "Mar", Units: 0},
		{Label: "Apr", Units: 1},
		{Label: "May", Units: 0},
		{Label: "Jun", Units: 2},
	}, p.Trend)

	require.NotEmpty(t, p.RecentSales)
	assert.Equal(t, "10 Jun", p.RecentSales[0].Date)
	assert.Equal(t, "Vario", p.RecentSales[0].MotorType)

	require.NotEmpty(t, p.MotorMix)
	assert.Equal(t, "BeAT", p.MotorMix[0].Name)
	require.Len(t, p.FincoyMix, 2)
	assert.Equal(t, "Cash", p.FincoyMix[0].Name)
}
