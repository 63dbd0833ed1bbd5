package analytics

import (
	"time"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// MTDMetrics compares the current month-to-date against the prior month's
// equivalent selling-day window. Change fields are percentages except the
// discount-rate change, which is in points.
type MTDMetrics struct {
	CurrentNetSales       float64 `json:"current_net_sales"`
	LastNetSales          float64 `json:"last_net_sales"`
	NetSalesChangePct     float64 `json:"net_sales_change_pct"`
	CurrentUnits          int     `json:"current_units"`
	LastUnits             int     `json:"last_units"`
	UnitsChangePct        float64 `json:"units_change_pct"`
	CurrentDiscount       float64 `json:"current_discount"`
	LastDiscount          float64 `json:"last_discount"`
	DiscountChangePct     float64 `json:"discount_change_pct"`
	CurrentDiscountRate   float64 `json:"current_discount_rate"`
	LastDiscountRate      float64 `json:"last_discount_rate"`
	DiscountRateChangePts float64 `json:"discount_rate_change_pts"`
}

// MTDTableRow is one dealer or salesperson on the month-to-date comparison
// table.
type MTDTableRow struct {
	Name            string  `json:"name"`
	CurrentNetSales float64 `json:"current_net_sales"`
	LastNetSales    float64 `json:"last_net_sales"`
	CurrentUnits    int     `json:"current_units"`
	LastUnits       int     `json:"last_units"`
	ChangePct       float64 `json:"change_pct"`
	AvgDiscountPct  float64 `json:"avg_discount_pct"`
}

// MTDBundle is the month-to-date payload: headline deltas, the cumulative
// pacing curve (in millions), and the dealer and salesperson breakdowns.
type MTDBundle struct {
	CutoffDay     int           `json:"cutoff_day"`
	Metrics       MTDMetrics    `json:"metrics"`
	Pacing        []PacePoint   `json:"pacing"`
	DealerTable   []MTDTableRow `json:"dealer_table"`
	SalesmanTable []MTDTableRow `json:"salesman_table"`
}

// MTD computes the month-to-date comparison for the given reference date.
// Transactions without a billing date sit outside both windows.
func MTD(txs []domain.TransactionRecord, ref time.Time) MTDBundle {
	w := NewMTDWindow(ref)

	var m MTDMetrics
	var currentGross, lastGross float64
	for _, tx := range txs {
		t := tx.BillingDate()
		switch {
		case w.InCurrent(t):
			m.CurrentNetSales += tx.NetValue()
			m.CurrentDiscount += tx.DiskonTotal
			m.CurrentUnits++
			currentGross += tx.HargaOFR
		case w.InLast(t):
			m.LastNetSales += tx.NetValue()
			m.LastDiscount += tx.DiskonTotal
			m.LastUnits++
			lastGross += tx.HargaOFR
		}
	}
	m.NetSalesChangePct = PercentChange(m.CurrentNetSales, m.LastNetSales)
	m.UnitsChangePct = PercentChange(float64(m.CurrentUnits), float64(m.LastUnits))
	m.DiscountChangePct = PercentChange(m.CurrentDiscount, m.LastDiscount)
	if currentGross > 0 {
		m.CurrentDiscountRate = m.CurrentDiscount / currentGross * 100
	}
	if lastGross > 0 {
		m.LastDiscountRate = m.LastDiscount / lastGross * 100
	}
	m.DiscountRateChangePts = m.CurrentDiscountRate - m.LastDiscountRate

	pacing := PacingSeries(txs,
		func(tx domain.TransactionRecord) *time.Time { return tx.BillingDate() },
		func(tx domain.TransactionRecord) float64 { return tx.NetValue() }, w)
	for i := range pacing {
		if pacing[i].Current != nil {
			v := InMillions(*pacing[i].Current)
			pacing[i].Current = &v
		}
		if pacing[i].Last != nil {
			v := InMillions(*pacing[i].Last)
			pacing[i].Last = &v
		}
	}

	return MTDBundle{
		CutoffDay: w.CutoffDay,
		Metrics:   m,
		Pacing:    pacing,
		DealerTable: mtdTable(txs, w, func(tx domain.TransactionRecord) string {
			return tx.DealerName()
		}),
		SalesmanTable: mtdTable(txs, w, func(tx domain.TransactionRecord) string {
			return tx.NamaSalesman
		}),
	}
}

func mtdTable(txs []domain.TransactionRecord, w MTDWindow, keyFn func(domain.TransactionRecord) string) []MTDTableRow {
	type agg struct {
		row   MTDTableRow
		gross float64
		disc  float64
	}
	index := make(map[string]int)
	aggs := make([]agg, 0)
	for _, tx := range txs {
		t := tx.BillingDate()
		inCurrent, inLast := w.InCurrent(t), w.InLast(t)
		if !inCurrent && !inLast {
			continue
		}
		key := FallbackKey(keyFn(tx))
		i, ok := index[key]
		if !ok {
			i = len(aggs)
			index[key] = i
			aggs = append(aggs, agg{row: MTDTableRow{Name: key}})
		}
		if inCurrent {
			aggs[i].row.CurrentNetSales += tx.NetValue()
			aggs[i].row.CurrentUnits++
			aggs[i].gross += tx.HargaOFR
			aggs[i].disc += tx.DiskonTotal
		} else {
			aggs[i].row.LastNetSales += tx.NetValue()
			aggs[i].row.LastUnits++
		}
	}

	rows := make([]MTDTableRow, 0, len(aggs))
	for _, a := range aggs {
		if a.row.CurrentNetSales <= 0 && a.row.LastNetSales <= 0 {
			continue
		}
		a.row.ChangePct = PercentChange(a.row.CurrentNetSales, a.row.LastNetSales)
		if a.gross > 0 {
			a.row.AvgDiscountPct = a.disc / a.gross * 100
		}
		rows = append(rows, a.row)
	}
	return RankDescending(rows, func(r MTDTableRow) float64 { return r.CurrentNetSales }, 50)
}
