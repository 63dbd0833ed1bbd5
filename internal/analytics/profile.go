package analytics

import (
	"sort"
	"time"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

const profileTrendMonths = 4

// TrendMonth is one month on the profile's volume trend, oldest first.
type TrendMonth struct {
	Label string `json:"label"`
	Units int    `json:"units"`
}

// RecentSale is one of the profile's latest transactions.
type RecentSale struct {
	Date      string  `json:"date"`
	MotorType string  `json:"motor_type"`
	NetSales  float64 `json:"net_sales"`
}

// SalespersonProfile is the drill-down payload for a single salesperson.
type SalespersonProfile struct {
	Name        string       `json:"name"`
	Dealer      string       `json:"dealer"`
	Status      string       `json:"status"`
	MTDUnits    int          `json:"mtd_units"`
	MTDNetSales float64      `json:"mtd_net_sales"`
	MTDBurden   float64      `json:"mtd_burden"`
	AvgBurden   float64      `json:"avg_burden"`
	Band        string       `json:"band"`
	AvgDP       float64      `json:"avg_dp"`
	AvgTenor    float64      `json:"avg_tenor"`
	MotorMix    []ChartPoint `json:"motor_mix"`
	FincoyMix   []ChartPoint `json:"fincoy_mix"`
	Trend       []TrendMonth `json:"trend"`
	RecentSales []RecentSale `json:"recent_sales"`
}

// Profile builds the drill-down for one salesperson, matched by exact name.
// The second return is false when the salesperson has no transactions.
func Profile(txs []domain.TransactionRecord, name string, ref time.Time) (SalespersonProfile, bool) {
	own := make([]domain.TransactionRecord, 0)
	for _, tx := range txs {
		if tx.NamaSalesman == name {
			own = append(own, tx)
		}
	}
	if len(own) == 0 {
		return SalespersonProfile{}, false
	}

	w := NewMTDWindow(ref)
	p := SalespersonProfile{
		Name:   name,
		Dealer: "Unknown Dealer",
		Status: "Active",
	}
	if own[0].NamaDealer != "" {
		p.Dealer = own[0].NamaDealer
	}
	if own[0].StatusSalesman != "" {
		p.Status = own[0].StatusSalesman
	}

	var totalDP, tenorSum float64
	var tenorCount int
	for _, tx := range own {
		if w.InCurrent(tx.BillingDate()) {
			p.MTDUnits++
			p.MTDNetSales += tx.NetValue()
			p.MTDBurden += tx.Burden()
		}
		totalDP += tx.DP
		if tx.Tenor > 0 {
			tenorSum += tx.Tenor
			tenorCount++
		}
	}
	p.AvgDP = totalDP / float64(len(own))
	if tenorCount > 0 {
		p.AvgTenor = Round1(tenorSum / float64(tenorCount))
	}
	if p.MTDUnits > 0 {
		p.AvgBurden = p.MTDBurden / float64(p.MTDUnits)
	}
	p.Band = EfficiencyLabel(p.AvgBurden)

	p.MotorMix = chartPoints(TopCounts(own, func(tx domain.TransactionRecord) string { return tx.TipeMotor }, 4))
	p.FincoyMix = chartPoints(TopCounts(own, func(tx domain.TransactionRecord) string {
		if f := tx.FincoyName(); f != "" {
			return f
		}
		return "Cash"
	}, 3))

	p.Trend = profileTrend(own, ref)
	p.RecentSales = recentSales(own, 5)
	return p, true
}

func chartPoints(buckets []Bucket) []ChartPoint {
	points := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}
	return points
}

func profileTrend(txs []domain.TransactionRecord, ref time.Time) []TrendMonth {
	trend := make([]TrendMonth, profileTrendMonths)
	for i := 0; i < profileTrendMonths; i++ {
		back := profileTrendMonths - 1 - i
		trend[i].Label = MonthStart(ref, back).Format("Jan")
	}
	for _, tx := range txs {
		if month := TrailingMonthIndex(ref, tx.BillingDate(), profileTrendMonths); month >= 0 {
			trend[profileTrendMonths-1-month].Units++
		}
	}
	return trend
}

func recentSales(txs []domain.TransactionRecord, limit int) []RecentSale {
	dated := make([]domain.TransactionRecord, 0, len(txs))
	for _, tx := range txs {
		if tx.BillingDate() != nil {
			dated = append(dated, tx)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].BillingDate().After(*dated[j].BillingDate())
	})
	if len(dated) > limit {
		dated = dated[:limit]
	}

	recent := make([]RecentSale, 0, len(dated))
	for _, tx := range dated {
		recent = append(recent, RecentSale{
			Date:      tx.BillingDate().Format("02 Jan"),
			MotorType: tx.TipeMotor,
			NetSales:  tx.NetValue(),
		})
	}
	return recent
}
