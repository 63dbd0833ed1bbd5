package analytics

import (
	"sort"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// ChartPoint is a generic name/value pair for bar and pie charts.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DatePoint is one day on the sales-over-time chart. Date is normalized
// YYYY-MM-DD so the axis sorts chronologically regardless of the export's
// date formatting.
type DatePoint struct {
	Date  string `json:"date"`
	Sales int    `json:"sales"`
}

// OverviewBundle is the headline dashboard payload built from the sales
// overview sheet.
type OverviewBundle struct {
	TotalUnits       int          `json:"total_units"`
	TotalDownPayment float64      `json:"total_down_payment"`
	ActiveFincoys    int          `json:"active_fincoys"`
	SalesByFincoy    []ChartPoint `json:"sales_by_fincoy"`
	SalesByDate      []DatePoint  `json:"sales_by_date"`
	SalesByType      []ChartPoint `json:"sales_by_type"`
}

// Overview aggregates the sales set into headline totals, the financing-company
// mix, the daily sales curve, and the top motorcycle types.
func Overview(sales []domain.SalesRecord) OverviewBundle {
	bundle := OverviewBundle{
		TotalUnits:    len(sales),
		SalesByFincoy: []ChartPoint{},
		SalesByDate:   []DatePoint{},
		SalesByType:   []ChartPoint{},
	}

	for _, s := range sales {
		bundle.TotalDownPayment += s.DPAktual
	}

	fincoys := GroupCount(sales, func(s domain.SalesRecord) string { return s.Fincoy })
	bundle.ActiveFincoys = len(fincoys)
	for _, b := range RankDescending(fincoys, bucketCount, 10) {
		bundle.SalesByFincoy = append(bundle.SalesByFincoy, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}

	byDate := make(map[string]int)
	for _, s := range sales {
		if t := s.ApplicationDate(); t != nil {
			byDate[t.Format("2006-01-02")]++
		}
	}
	for date, count := range byDate {
		bundle.SalesByDate = append(bundle.SalesByDate, DatePoint{Date: date, Sales: count})
	}
	sort.Slice(bundle.SalesByDate, func(i, j int) bool {
		return bundle.SalesByDate[i].Date < bundle.SalesByDate[j].Date
	})

	types := TopCounts(sales, func(s domain.SalesRecord) string { return s.TipeATPM }, 10)
	for _, b := range types {
		bundle.SalesByType = append(bundle.SalesByType, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}

	return bundle
}

func bucketCount(b Bucket) float64 { return float64(b.Count) }
