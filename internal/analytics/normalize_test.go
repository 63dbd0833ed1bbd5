package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"nil", nil, 0},
		{"float", 1500000.5, 1500000.5},
		{"int", 42, 42},
		{"plain string", "1500000", 1500000},
		{"thousands separators", "1,500,000", 1500000},
		{"padded string", "  250.75 ", 250.75},
		{"empty string", "", 0},
		{"garbage", "N/A", 0},
		{"bool", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToNumber(tt.raw))
		})
	}
}

func TestToDateStrings(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"day first", "25/03/2024", "2024-03-25"},
		{"month first fallback", "01/31/2024", "2024-01-31"},
		{"iso", "2024-03-25", "2024-03-25"},
		{"iso with time", "2024-03-25 14:30:00", "2024-03-25"},
		{"month name", "25-Mar-2024", "2024-03-25"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDate(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestToDateAmbiguousPrefersDayFirst(t *testing.T) {
	got := ToDate("05/04/2024")
	require.NotNil(t, got)
	assert.Equal(t, "2024-04-05", got.Format("2006-01-02"))
}

func TestToDateExcelSerial(t *testing.T) {
	// Serial 45000 is 2023-03-15.
	for _, raw := range []any{45000.0, "45000"} {
		got := ToDate(raw)
		require.NotNil(t, got, "raw=%v", raw)
		assert.Equal(t, "2023-03-15", got.Format("2006-01-02"))
	}
}

func TestToDateInvalid(t *testing.T) {
	for _, raw := range []any{nil, "", "not a date", 0.0, -5.0, time.Time{}} {
		assert.Nil(t, ToDate(raw), "raw=%v", raw)
	}
}
