package analytics

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Spreadsheet exports deliver the same column as a native number, a
// locale-formatted string, an Excel serial date, or nothing at all depending
// on who exported the file. ToNumber and ToDate are total: they never panic
// and never hand an invalid value downstream.

// excelEpoch is the day-zero of Excel serial dates.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order; day/month wins for ambiguous values like
// 05/04/2024 because the upstream exports are predominantly dd/mm/yyyy.
var dateLayouts = []string{
	"02/01/2006",
	"01/02/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2-Jan-2006",
	"2 Jan 2006",
}

// ToNumber converts a raw cell value to a float64. Thousands separators are
// stripped from strings. Anything unparseable or non-finite yields 0.
func ToNumber(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		if cleaned == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return finiteOrZero(parsed)
	default:
		return 0
	}
}

// ToDate converts a raw cell value to a date, or nil when absent or
// unparseable. Numeric input is treated as an Excel serial day count.
func ToDate(raw any) *time.Time {
	switch v := raw.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		t := v
		return &t
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		t := *v
		return &t
	case float64:
		return fromExcelSerial(v)
	case float32:
		return fromExcelSerial(float64(v))
	case int:
		return fromExcelSerial(float64(v))
	case int64:
		return fromExcelSerial(float64(v))
	case string:
		str := strings.TrimSpace(v)
		if str == "" {
			return nil
		}
		// Serial dates survive the CSV round trip as plain numbers.
		if serial, err := strconv.ParseFloat(str, 64); err == nil {
			return fromExcelSerial(serial)
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, str); err == nil {
				return &parsed
			}
		}
		return nil
	default:
		return nil
	}
}

func fromExcelSerial(serial float64) *time.Time {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial <= 0 {
		return nil
	}
	t := excelEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	return &t
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
