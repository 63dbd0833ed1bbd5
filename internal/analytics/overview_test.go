package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

func TestOverview(t *testing.T) {
	sales := []domain.SalesRecord{
		{DPAktual: 2_000_000, Fincoy: "FIF", TipeATPM: "BeAT", TglMohon: date(2024, time.June, 2)},
		{DPAktual: 3_000_000, Fincoy: "FIF", TipeATPM: "Vario", TglMohon: date(2024, time.June, 1)},
		{DPAktual: 1_000_000, Fincoy: "Adira", TipeATPM: "BeAT", TanggalSSU: date(2024, time.June, 1)},
		{Fincoy: "", TipeATPM: "BeAT"}, // no date, no fincoy
	}
	bundle := Overview(sales)

	assert.Equal(t, 4, bundle.TotalUnits)
	assert.Equal(t, 6_000_000.0, bundle.TotalDownPayment)
	assert.Equal(t, 3, bundle.ActiveFincoys) // FIF, Adira, Unknown

	require.NotEmpty(t, bundle.SalesByFincoy)
	assert.Equal(t, ChartPoint{Name: "FIF", Value: 2}, bundle.SalesByFincoy[0])

	// Dates are normalized and sorted chronologically; the application date
	// falls back to the SSU date.
	require.Len(t, bundle.SalesByDate, 2)
	assert.Equal(t, DatePoint{Date: "2024-06-01", Sales: 2}, bundle.SalesByDate[0])
	assert.Equal(t, DatePoint{Date: "2024-06-02", Sales: 1}, bundle.SalesByDate[1])

	assert.Equal(t, ChartPoint{Name: "BeAT", Value: 3}, bundle.SalesByType[0])
}

func TestDealers(t *testing.T) {
	sales := []domain.SalesRecord{
		{DealerSO: "Dealer Maju", AreaDealer: "Jakarta", GrupDealer: "Group A"},
		{DealerSO: "Dealer Maju", AreaDealer: "Jakarta", GrupDealer: "Group A"},
		{DealerSO: "Dealer Jaya", AreaDealer: "Bandung", GrupDealer: "Group B"},
	}
	bundle := Dealers(sales)

	assert.Equal(t, 2, bundle.TotalDealers)
	assert.Equal(t, "Dealer Maju", bundle.TopDealer)
	assert.Equal(t, 2, bundle.ActiveAreas)
	require.Len(t, bundle.TopDealers, 2)
	require.Len(t, bundle.ByArea, 2)
	assert.Equal(t, "Jakarta", bundle.ByArea[0].Name)
	require.Len(t, bundle.ByGroup, 2)
}

func TestDealersEmpty(t *testing.T) {
	bundle := Dealers(nil)
	assert.Equal(t, "N/A", bundle.TopDealer)
	assert.Equal(t, 0, bundle.TotalDealers)
	assert.Empty(t, bundle.TopDealers)
}

func TestDemographicsDominantGender(t *testing.T) {
	withGender := func(g string) domain.SalesRecord { return domain.SalesRecord{Gender: g} }

	male := Demographics([]domain.SalesRecord{
		withGender("PRIA"), withGender("Laki-Laki"), withGender("MALE"), withGender("Wanita"),
	})
	assert.Equal(t, "Male", male.DominantGender)
	assert.Equal(t, 75.0, male.DominantGenderPct)

	female := Demographics([]domain.SalesRecord{
		withGender("Wanita"), withGender("PEREMPUAN"), withGender("Pria"),
	})
	assert.Equal(t, "Female", female.DominantGender)
	assert.Equal(t, 33.0, 100-female.DominantGenderPct)
}

func TestDemographicsUnrecognizedGenderStillCharts(t *testing.T) {
	bundle := Demographics([]domain.SalesRecord{{Gender: "X"}, {Gender: ""}})

	// No recognized genders: the split defaults to female at 100%.
	assert.Equal(t, "Female", bundle.DominantGender)
	require.Len(t, bundle.GenderSplit, 2)
	assert.Equal(t, "X", bundle.GenderSplit[0].Name)
	assert.Equal(t, UnknownBucket, bundle.GenderSplit[1].Name)
}

func TestDemographicsTopOccupation(t *testing.T) {
	sales := []domain.SalesRecord{
		{Pekerjaan: "Wiraswasta"},
		{Pekerjaan: "Wiraswasta"},
		{Pekerjaan: "Karyawan"},
		{Pekerjaan: ""},
	}
	bundle := Demographics(sales)

	assert.Equal(t, "Wiraswasta", bundle.TopOccupation)
	require.Len(t, bundle.Occupations, 3)
	assert.Equal(t, UnknownBucket, bundle.Occupations[2].Name)
}
