package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromFilename(t *testing.T) {
	cases := []struct {
		filename string
		kind     string
		ok       bool
	}{
		{"Prospect Export Juli.xlsx", KindProspects, true},
		{"salespeople_detail_2024.xlsx", KindTransactions, true},
		{"Detail Penjualan.csv", KindTransactions, true},
		{"dealer_master_mapping.csv", KindDealers, true},
		{"Sales Overview MTD.xlsx", KindSales, true},
		{"inventory.xlsx", "", false},
	}
	for _, tc := range cases {
		kind, ok := KindFromFilename(tc.filename)
		assert.Equal(t, tc.ok, ok, tc.filename)
		assert.Equal(t, tc.kind, kind, tc.filename)
	}
}

func TestValidKind(t *testing.T) {
	for _, kind := range Kinds {
		assert.True(t, ValidKind(kind))
	}
	assert.False(t, ValidKind("invoices"))
}

func TestCoerceSales(t *testing.T) {
	rows := []Row{{
		"No Mesin":    "ME123",
		"Nama":        "Dealer Jaya",
		"Tgl Mohon":   "15/06/2024",
		"DP Aktual":   "2,500,000",
		"Pekerjaan4":  "Karyawan Swasta",
		"Gender":      "Laki-Laki",
		"Grup Dealer": "Group A",
	}}

	records := CoerceSales(rows)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "ME123", rec.NoMesin)
	assert.Equal(t, "Karyawan Swasta", rec.Pekerjaan)
	assert.Equal(t, "Laki-Laki", rec.Gender)
	assert.Equal(t, 2500000.0, rec.DPAktual)
	require.NotNil(t, rec.TglMohon)
	assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), *rec.TglMohon)
}

func TestCoerceTransactionsBadCellsBecomeZero(t *testing.T) {
	rows := []Row{{
		"Nama Salesman": "Budi",
		"Harga OFR":     "not-a-number",
		"Diskon Total":  "1,000,000",
		"Tgl BSTK":      "??",
	}}

	records := CoerceTransactions(rows)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "Budi", rec.NamaSalesman)
	assert.Zero(t, rec.HargaOFR, "malformed numbers coerce to zero, not errors")
	assert.Equal(t, 1000000.0, rec.DiskonTotal)
	assert.Nil(t, rec.TglBSTK, "malformed dates coerce to nil")
}

func TestCoerceDealerMastersSkipsBlankNames(t *testing.T) {
	rows := []Row{
		{"Nama Dealer": "Dealer Jaya", "Grup": "Group A", "Area": "Jawa Barat"},
		{"Kode Dealer": "D099"},
	}

	masters := CoerceDealerMasters(rows)
	require.Len(t, masters, 1)
	assert.Equal(t, "Dealer Jaya", masters[0].Name)
	assert.Equal(t, "Group A", masters[0].Group)
	assert.Equal(t, "Jawa Barat", masters[0].Region)
}

func TestCoerceUnknownKind(t *testing.T) {
	_, _, err := Coerce("invoices", nil)
	assert.Error(t, err)
}

func TestCoerceCounts(t *testing.T) {
	rows := []Row{
		{"Region": "Jawa Timur", "Salesman Name": "Sari"},
		{"Region": "Bali", "Salesman Name": "Putu"},
	}

	records, count, err := Coerce(KindProspects, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.NotNil(t, records)
}
