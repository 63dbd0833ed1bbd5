package analytics

import (
	"sort"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// highRiskRate is the discount-to-price ratio above which a transaction is
// flagged. The boundary itself is not flagged.
const highRiskRate = 0.12

// behaviorMinVolume hides salespeople with too few deals for their average
// discount rate to mean anything.
const behaviorMinVolume = 3

// cashFincoyLabel buckets transactions without a financing company on the
// fincoy-impact chart.
const cashFincoyLabel = "CASH / None"

// FinanceKPIs are the headline discount-and-subsidy figures.
type FinanceKPIs struct {
	GrossRevenue          float64 `json:"gross_revenue"`
	TotalDiscount         float64 `json:"total_discount"`
	NetSales              float64 `json:"net_sales"`
	DealerSubsidy         float64 `json:"dealer_subsidy"`
	MDSubsidy             float64 `json:"md_subsidy"`
	AHMSubsidy            float64 `json:"ahm_subsidy"`
	FincoySubsidy         float64 `json:"fincoy_subsidy"`
	ExternalSubsidy       float64 `json:"external_subsidy"`
	AvgDiscountPct        float64 `json:"avg_discount_pct"`
	DealerSharePct        float64 `json:"dealer_share_pct"`
	AvgDiscountPerUnit    float64 `json:"avg_discount_per_unit"`
	HighRiskCount         int     `json:"high_risk_count"`
	DealerSubsidizedCount int     `json:"dealer_subsidized_count"`
	FinanceContribPct     float64 `json:"finance_contrib_pct"`
	OverallIntensityPct   float64 `json:"overall_intensity_pct"`
}

// BurdenSlice is the subsidy composition for one motorcycle type.
type BurdenSlice struct {
	MotorType string  `json:"motor_type"`
	Dealer    float64 `json:"dealer"`
	MD        float64 `json:"md"`
	AHM       float64 `json:"ahm"`
	Fincoy    float64 `json:"fincoy"`
	Units     int     `json:"units"`
}

// TrendPoint is one month on the discount trend chart. DiscountValue is in
// whole millions.
type TrendPoint struct {
	Period        string  `json:"period"`
	DiscountValue float64 `json:"discount_value"`
	Rate          float64 `json:"rate"`
}

// BehaviorPoint is one salesperson on the discount-behavior scatter.
type BehaviorPoint struct {
	Salesman string  `json:"salesman"`
	Volume   int     `json:"volume"`
	AvgRate  float64 `json:"avg_rate"`
}

// FincoyImpact summarizes discount behavior per financing company.
type FincoyImpact struct {
	Fincoy     string  `json:"fincoy"`
	Deals      int     `json:"deals"`
	AvgRate    float64 `json:"avg_rate"`
	FinSubsidy float64 `json:"fin_subsidy"`
}

// RiskTransaction is one row of the high-discount watch list.
type RiskTransaction struct {
	Dealer        string  `json:"dealer"`
	Salesman      string  `json:"salesman"`
	MotorType     string  `json:"motor_type"`
	DiscountPct   float64 `json:"discount_pct"`
	DealerSubsidy float64 `json:"dealer_subsidy"`
	FincoySubsidy float64 `json:"fincoy_subsidy"`
	Date          string  `json:"date"`
}

// FinanceBundle is the full discount-and-subsidy payload.
type FinanceBundle struct {
	KPIs             FinanceKPIs       `json:"kpis"`
	BurdenByMotor    []BurdenSlice     `json:"burden_by_motor"`
	DiscountTrend    []TrendPoint      `json:"discount_trend"`
	SalesmanBehavior []BehaviorPoint   `json:"salesman_behavior"`
	FincoyImpacts    []FincoyImpact    `json:"fincoy_impacts"`
	RiskTransactions []RiskTransaction `json:"risk_transactions"`
}

// Finance computes the discount-and-subsidy analysis over the billed
// transaction set.
func Finance(txs []domain.TransactionRecord) FinanceBundle {
	return FinanceBundle{
		KPIs:             financeKPIs(txs),
		BurdenByMotor:    burdenByMotor(txs),
		DiscountTrend:    discountTrend(txs),
		SalesmanBehavior: salesmanBehavior(txs),
		FincoyImpacts:    fincoyImpacts(txs),
		RiskTransactions: riskTransactions(txs),
	}
}

func financeKPIs(txs []domain.TransactionRecord) FinanceKPIs {
	var k FinanceKPIs
	for _, tx := range txs {
		k.GrossRevenue += tx.HargaOFR
		k.TotalDiscount += tx.DiskonTotal
		k.DealerSubsidy += tx.BebanDealer
		k.MDSubsidy += tx.BebanMD
		k.AHMSubsidy += tx.BebanAHM
		k.FincoySubsidy += tx.BebanFincoy
		if discountRate(tx) > highRiskRate {
			k.HighRiskCount++
		}
		if tx.BebanDealer > 0 {
			k.DealerSubsidizedCount++
		}
	}
	k.NetSales = k.GrossRevenue - k.TotalDiscount
	k.ExternalSubsidy = k.MDSubsidy + k.AHMSubsidy + k.FincoySubsidy
	if k.GrossRevenue > 0 {
		k.AvgDiscountPct = k.TotalDiscount / k.GrossRevenue * 100
		k.OverallIntensityPct = k.AvgDiscountPct
	}
	if k.TotalDiscount > 0 {
		k.DealerSharePct = k.DealerSubsidy / k.TotalDiscount * 100
		k.FinanceContribPct = k.FincoySubsidy / k.TotalDiscount * 100
	}
	if len(txs) > 0 {
		k.AvgDiscountPerUnit = k.TotalDiscount / float64(len(txs))
	}
	return k
}

func discountRate(tx domain.TransactionRecord) float64 {
	if tx.HargaOFR <= 0 {
		return 0
	}
	return tx.DiskonTotal / tx.HargaOFR
}

func burdenByMotor(txs []domain.TransactionRecord) []BurdenSlice {
	index := make(map[string]int)
	slices := make([]BurdenSlice, 0)
	for _, tx := range txs {
		key := FallbackKey(tx.TipeMotor)
		i, ok := index[key]
		if !ok {
			i = len(slices)
			index[key] = i
			slices = append(slices, BurdenSlice{MotorType: key})
		}
		slices[i].Dealer += tx.BebanDealer
		slices[i].MD += tx.BebanMD
		slices[i].AHM += tx.BebanAHM
		slices[i].Fincoy += tx.BebanFincoy
		slices[i].Units++
	}
	return RankDescending(slices, func(s BurdenSlice) float64 { return float64(s.Units) }, 10)
}

func discountTrend(txs []domain.TransactionRecord) []TrendPoint {
	type monthAgg struct {
		key      string
		period   string
		discount float64
		gross    float64
	}
	index := make(map[string]int)
	months := make([]monthAgg, 0)
	for _, tx := range txs {
		t := tx.BillingDate()
		if t == nil {
			continue
		}
		key := t.Format("2006-01")
		i, ok := index[key]
		if !ok {
			i = len(months)
			index[key] = i
			months = append(months, monthAgg{key: key, period: t.Format("Jan 2006")})
		}
		months[i].discount += tx.DiskonTotal
		months[i].gross += tx.HargaOFR
	}
	sort.Slice(months, func(i, j int) bool { return months[i].key < months[j].key })

	trend := make([]TrendPoint, 0, len(months))
	for _, m := range months {
		rate := 0.0
		if m.gross > 0 {
			rate = Round2(m.discount / m.gross * 100)
		}
		trend = append(trend, TrendPoint{Period: m.period, DiscountValue: InMillions(m.discount), Rate: rate})
	}
	return trend
}

func salesmanBehavior(txs []domain.TransactionRecord) []BehaviorPoint {
	buckets := GroupSum(txs, func(tx domain.TransactionRecord) string { return tx.NamaSalesman },
		func(tx domain.TransactionRecord) float64 { return tx.DiskonTotal })
	gross := make(map[string]float64)
	for _, tx := range txs {
		gross[FallbackKey(tx.NamaSalesman)] += tx.HargaOFR
	}

	points := make([]BehaviorPoint, 0, len(buckets))
	for _, b := range buckets {
		if b.Count < behaviorMinVolume {
			continue
		}
		rate := 0.0
		if g := gross[b.Key]; g > 0 {
			rate = Round2(b.Sum / g * 100)
		}
		points = append(points, BehaviorPoint{Salesman: b.Key, Volume: b.Count, AvgRate: rate})
	}
	return RankDescending(points, func(p BehaviorPoint) float64 { return p.AvgRate }, 15)
}

func fincoyImpacts(txs []domain.TransactionRecord) []FincoyImpact {
	type fincoyAgg struct {
		name      string
		deals     int
		discount  float64
		gross     float64
		finReturn float64
	}
	index := make(map[string]int)
	aggs := make([]fincoyAgg, 0)
	for _, tx := range txs {
		key := tx.FincoyName()
		if key == "" {
			key = cashFincoyLabel
		}
		i, ok := index[key]
		if !ok {
			i = len(aggs)
			index[key] = i
			aggs = append(aggs, fincoyAgg{name: key})
		}
		aggs[i].deals++
		aggs[i].discount += tx.DiskonTotal
		aggs[i].gross += tx.HargaOFR
		aggs[i].finReturn += tx.BebanFincoy
	}
	ranked := RankDescending(aggs, func(a fincoyAgg) float64 { return float64(a.deals) }, 8)

	impacts := make([]FincoyImpact, 0, len(ranked))
	for _, a := range ranked {
		rate := 0.0
		if a.gross > 0 {
			rate = Round2(a.discount / a.gross * 100)
		}
		impacts = append(impacts, FincoyImpact{
			Fincoy:     a.name,
			Deals:      a.deals,
			AvgRate:    rate,
			FinSubsidy: InMillions(a.finReturn),
		})
	}
	return impacts
}

func riskTransactions(txs []domain.TransactionRecord) []RiskTransaction {
	rows := make([]RiskTransaction, 0)
	for _, tx := range txs {
		rate := discountRate(tx)
		if rate <= highRiskRate {
			continue
		}
		date := "-"
		if t := tx.BillingDate(); t != nil {
			date = t.Format("02 Jan 2006")
		}
		dealer := tx.DealerName()
		if dealer == "" {
			dealer = "-"
		}
		salesman := tx.NamaSalesman
		if salesman == "" {
			salesman = "-"
		}
		rows = append(rows, RiskTransaction{
			Dealer:        dealer,
			Salesman:      salesman,
			MotorType:     tx.TipeMotor,
			DiscountPct:   rate * 100,
			DealerSubsidy: tx.BebanDealer,
			FincoySubsidy: tx.BebanFincoy,
			Date:          date,
		})
	}
	return RankDescending(rows, func(r RiskTransaction) float64 { return r.DiscountPct }, 20)
}
