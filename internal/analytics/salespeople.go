package analytics

import (
	"fmt"
	"time"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// Burden-efficiency bands, in rupiah of dealer burden per unit.
const (
	burdenEfficientMax = 300_000
	burdenWatchMax     = 500_000
)

// Efficiency band labels.
const (
	BandEfficient    = "Efficient"
	BandWatch        = "Watch"
	BandOverDiscount = "Over-discount"
)

// EfficiencyLabel bands an average per-unit dealer burden.
func EfficiencyLabel(avgBurden float64) string {
	switch {
	case avgBurden < burdenEfficientMax:
		return BandEfficient
	case avgBurden <= burdenWatchMax:
		return BandWatch
	default:
		return BandOverDiscount
	}
}

// LeaderEntry is one salesperson on the volume leaderboard.
type LeaderEntry struct {
	Name    string  `json:"name"`
	Units   int     `json:"units"`
	Revenue float64 `json:"revenue"`
}

// HeatRow is one row of the burden heat table.
type HeatRow struct {
	Name        string  `json:"name"`
	Units       int     `json:"units"`
	TotalBurden float64 `json:"total_burden"`
	AvgBurden   float64 `json:"avg_burden"`
	VsTeamPct   float64 `json:"vs_team_pct"`
	VsTeam      string  `json:"vs_team"`
	Band        string  `json:"band"`
}

// HeatTable is the burden heat table for one grouping dimension.
type HeatTable struct {
	TeamAvg float64   `json:"team_avg"`
	Rows    []HeatRow `json:"rows"`
}

// ComparisonRow is one group on the month-to-date comparison table. Spark is
// the unit count of the two prior calendar months and the current one,
// oldest first.
type ComparisonRow struct {
	Name           string  `json:"name"`
	MTDUnits       int     `json:"mtd_units"`
	LastUnits      int     `json:"last_units"`
	MTDNetSales    float64 `json:"mtd_net_sales"`
	MTDBurden      float64 `json:"mtd_burden"`
	AvgBurden      float64 `json:"avg_burden"`
	UnitsChangePct float64 `json:"units_change_pct"`
	PaceNetSales   float64 `json:"pace_net_sales"`
	Spark          [3]int  `json:"spark"`
}

// FincoyQualityRow summarizes month-to-date credit deal quality for one
// financing company.
type FincoyQualityRow struct {
	Fincoy        string  `json:"fincoy"`
	MTDDeals      int     `json:"mtd_deals"`
	LastDeals     int     `json:"last_deals"`
	MTDSharePct   float64 `json:"mtd_share_pct"`
	ShareDeltaPts float64 `json:"share_delta_pts"`
	AvgDP         float64 `json:"avg_dp"`
	AvgTenor      float64 `json:"avg_tenor"`
	AvgInstalment float64 `json:"avg_instalment"`
}

// SalespeopleBundle is the sales-team payload.
type SalespeopleBundle struct {
	TotalUnits     int                        `json:"total_units"`
	TotalNetSales  float64                    `json:"total_net_sales"`
	CreditSharePct float64                    `json:"credit_share_pct"`
	TopPerformer   string                     `json:"top_performer"`
	Leaderboard    []LeaderEntry              `json:"leaderboard"`
	PaymentMethods []ChartPoint               `json:"payment_methods"`
	SalesmanHeat   HeatTable                  `json:"salesman_heat"`
	DealerHeat     HeatTable                  `json:"dealer_heat"`
	MTDComparison  map[string][]ComparisonRow `json:"mtd_comparison"`
	FincoyQuality  []FincoyQualityRow         `json:"fincoy_quality"`
}

// Salespeople aggregates the billed transaction set into team performance
// views. ref anchors the month-to-date windows.
func Salespeople(txs []domain.TransactionRecord, ref time.Time) SalespeopleBundle {
	w := NewMTDWindow(ref)
	bundle := SalespeopleBundle{
		TotalUnits:     len(txs),
		TopPerformer:   "N/A",
		Leaderboard:    []LeaderEntry{},
		PaymentMethods: []ChartPoint{},
	}

	var creditCount int
	for _, tx := range txs {
		bundle.TotalNetSales += tx.NetValue()
		if domain.IsCredit(tx.MetodePembelian) {
			creditCount++
		}
	}
	if len(txs) > 0 {
		bundle.CreditSharePct = float64(creditCount) / float64(len(txs)) * 100
	}

	volume := GroupSum(txs,
		func(tx domain.TransactionRecord) string { return tx.NamaSalesman },
		func(tx domain.TransactionRecord) float64 { return tx.NetValue() })
	for _, b := range RankDescending(volume, bucketCount, 10) {
		bundle.Leaderboard = append(bundle.Leaderboard, LeaderEntry{Name: b.Key, Units: b.Count, Revenue: b.Sum})
	}
	if len(bundle.Leaderboard) > 0 {
		bundle.TopPerformer = bundle.Leaderboard[0].Name
	}

	for _, b := range GroupCount(txs, func(tx domain.TransactionRecord) string { return tx.MetodePembelian }) {
		bundle.PaymentMethods = append(bundle.PaymentMethods, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}

	bundle.SalesmanHeat = burdenHeatTable(txs, func(tx domain.TransactionRecord) string { return tx.NamaSalesman })
	bundle.DealerHeat = burdenHeatTable(txs, func(tx domain.TransactionRecord) string { return tx.NamaDealer })

	bundle.MTDComparison = map[string][]ComparisonRow{
		"dealer":   comparisonRows(txs, w, func(tx domain.TransactionRecord) string { return tx.NamaDealer }),
		"salesman": comparisonRows(txs, w, func(tx domain.TransactionRecord) string { return tx.NamaSalesman }),
		"motor":    comparisonRows(txs, w, func(tx domain.TransactionRecord) string { return tx.TipeMotor }),
		"fincoy":   comparisonRows(txs, w, func(tx domain.TransactionRecord) string { return tx.FincoyName() }),
	}
	bundle.FincoyQuality = fincoyQuality(txs, w)
	return bundle
}

func burdenHeatTable(txs []domain.TransactionRecord, keyFn func(domain.TransactionRecord) string) HeatTable {
	buckets := GroupSum(txs, keyFn, func(tx domain.TransactionRecord) float64 { return tx.Burden() })

	var teamAvg float64
	if len(txs) > 0 {
		var total float64
		for _, tx := range txs {
			total += tx.Burden()
		}
		teamAvg = total / float64(len(txs))
	}

	rows := make([]HeatRow, 0, len(buckets))
	for _, b := range buckets {
		avg := b.Sum / float64(b.Count)
		row := HeatRow{
			Name:        b.Key,
			Units:       b.Count,
			TotalBurden: b.Sum,
			AvgBurden:   avg,
			Band:        EfficiencyLabel(avg),
		}
		if teamAvg > 0 {
			row.VsTeamPct = Round1((avg - teamAvg) / teamAvg * 100)
		}
		row.VsTeam = fmt.Sprintf("%+.1f%%", row.VsTeamPct)
		rows = append(rows, row)
	}
	return HeatTable{
		TeamAvg: teamAvg,
		Rows:    RankDescending(rows, func(r HeatRow) float64 { return r.AvgBurden }, 0),
	}
}

func comparisonRows(txs []domain.TransactionRecord, w MTDWindow, keyFn func(domain.TransactionRecord) string) []ComparisonRow {
	index := make(map[string]int)
	rows := make([]ComparisonRow, 0)
	for _, tx := range txs {
		key := FallbackKey(keyFn(tx))
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, ComparisonRow{Name: key})
		}
		t := tx.BillingDate()
		if w.InCurrent(t) {
			rows[i].MTDUnits++
			rows[i].MTDNetSales += tx.NetValue()
			rows[i].MTDBurden += tx.Burden()
		} else if w.InLast(t) {
			rows[i].LastUnits++
		}
		if month := TrailingMonthIndex(w.Ref, t, 3); month >= 0 {
			rows[i].Spark[2-month]++
		}
	}

	for i := range rows {
		rows[i].UnitsChangePct = PercentChange(float64(rows[i].MTDUnits), float64(rows[i].LastUnits))
		if rows[i].MTDUnits > 0 {
			rows[i].AvgBurden = rows[i].MTDBurden / float64(rows[i].MTDUnits)
		}
		rows[i].PaceNetSales = w.PaceProjection(rows[i].MTDNetSales)
	}
	return RankDescending(rows, func(r ComparisonRow) float64 { return float64(r.MTDUnits) }, 0)
}

func fincoyQuality(txs []domain.TransactionRecord, w MTDWindow) []FincoyQualityRow {
	type agg struct {
		row      FincoyQualityRow
		dp       float64
		tenor    float64
		angsuran float64
	}
	index := make(map[string]int)
	aggs := make([]agg, 0)
	var totalMTD, totalLast int
	for _, tx := range txs {
		if !domain.IsCredit(tx.MetodePembelian) {
			continue
		}
		key := FallbackKey(tx.FincoyName())
		i, ok := index[key]
		if !ok {
			i = len(aggs)
			index[key] = i
			aggs = append(aggs, agg{row: FincoyQualityRow{Fincoy: key}})
		}
		t := tx.BillingDate()
		if w.InCurrent(t) {
			aggs[i].row.MTDDeals++
			aggs[i].dp += tx.DP
			aggs[i].tenor += tx.Tenor
			aggs[i].angsuran += tx.Angsuran
			totalMTD++
		} else if w.InLast(t) {
			aggs[i].row.LastDeals++
			totalLast++
		}
	}

	rows := make([]FincoyQualityRow, 0, len(aggs))
	for _, a := range aggs {
		row := a.row
		var lastShare float64
		if totalMTD > 0 {
			row.MTDSharePct = Round1(float64(row.MTDDeals) / float64(totalMTD) * 100)
		}
		if totalLast > 0 {
			lastShare = float64(row.LastDeals) / float64(totalLast) * 100
		}
		row.ShareDeltaPts = Round1(row.MTDSharePct - lastShare)
		if row.MTDDeals > 0 {
			n := float64(row.MTDDeals)
			row.AvgDP = a.dp / n
			row.AvgTenor = Round1(a.tenor / n)
			row.AvgInstalment = a.angsuran / n
		}
		rows = append(rows, row)
	}
	return RankDescending(rows, func(r FincoyQualityRow) float64 { return float64(r.MTDDeals) }, 0)
}
