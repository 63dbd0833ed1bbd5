package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

var masters = []domain.DealerMaster{
	{Name: "Dealer Maju", Code: "D001", AltCode: "MJ", Group: "Group A", Region: "Jakarta"},
	{Name: "Dealer Jaya", Code: "D002", Group: "Group B", Region: "Bandung"},
}

func TestDealerLookupMatchesAnyKeyCaseInsensitively(t *testing.T) {
	lookup := NewDealerLookup(masters)

	for _, key := range []string{"Dealer Maju", "dealer maju", "d001", "MJ "} {
		m, ok := lookup.Find(key)
		require.True(t, ok, "key=%q", key)
		assert.Equal(t, "Group A", m.Group)
	}

	_, ok := lookup.Find("unknown", "")
	assert.False(t, ok)

	// First matching key wins.
	m, ok := lookup.Find("nope", "D002")
	require.True(t, ok)
	assert.Equal(t, "Group B", m.Group)
}

func TestFilterRangePresets(t *testing.T) {
	ref := *date(2024, time.June, 15)
	lookup := NewDealerLookup(nil)
	sales := []domain.SalesRecord{
		{TglMohon: date(2024, time.June, 10)},
		{TglMohon: date(2024, time.June, 1)},
		{TglMohon: date(2024, time.April, 1)},
		{TglMohon: date(2024, time.January, 10)},
		{TglMohon: date(2023, time.December, 1)},
	}
	tests := []struct {
		preset string
		want   int
	}{
		{domain.RangeThisMonth, 2},
		{domain.RangeLast30Days, 2},
		{domain.RangeLastQuarter, 3},
		{domain.RangeYearToDate, 4},
		{domain.RangeAllTime, 5},
		{"", 5},
	}
	for _, tt := range tests {
		f := NewFilter(domain.FilterParams{Range: tt.preset}, ref, lookup)
		assert.Len(t, f.Sales(sales), tt.want, "preset=%q", tt.preset)
	}
}

func TestFilterFailsOpenOnMissingDates(t *testing.T) {
	ref := *date(2024, time.June, 15)
	f := NewFilter(domain.FilterParams{Range: domain.RangeThisMonth}, ref, NewDealerLookup(nil))

	sales := []domain.SalesRecord{{Nama: "undated"}}
	assert.Len(t, f.Sales(sales), 1)
}

func TestFilterGroupUsesMasterLookup(t *testing.T) {
	ref := *date(2024, time.June, 15)
	f := NewFilter(domain.FilterParams{Group: "Group A"}, ref, NewDealerLookup(masters))

	txs := []domain.TransactionRecord{
		{NamaDealer: "Dealer Maju"},
		{KodeDealer: "D002"},
		{NamaDealer: "Unlisted"},
	}
	filtered := f.Transactions(txs)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Dealer Maju", filtered[0].NamaDealer)
}

func TestFilterRegionFallsBackToRecordColumn(t *testing.T) {
	ref := *date(2024, time.June, 15)
	f := NewFilter(domain.FilterParams{Region: "Surabaya"}, ref, NewDealerLookup(masters))

	prospects := []domain.ProspectRecord{
		{NamaDealer: "Dealer Maju", Region: "Surabaya"}, // master region wins: excluded
		{NamaDealer: "Unlisted", Region: "Surabaya"},
		{NamaDealer: "Unlisted", Region: "Medan"},
	}
	filtered := f.Prospects(prospects)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Unlisted", filtered[0].NamaDealer)
}

func TestOptions(t *testing.T) {
	sales := []domain.SalesRecord{{GrupDealer: "Group C", AreaDealer: "Semarang"}}
	prospects := []domain.ProspectRecord{{Region: "Medan"}}

	opts := Options(masters, sales, prospects)

	assert.Equal(t, domain.RangePresets, opts.Ranges)
	assert.Equal(t, []string{"Group A", "Group B", "Group C"}, opts.Groups)
	assert.Equal(t, []string{"Bandung", "Jakarta", "Medan", "Semarang"}, opts.Regions)
}
