package analytics

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// Alert severities, in the order the panel lists them.
const (
	AlertCritical = "critical"
	AlertPositive = "positive"
	AlertWarning  = "warning"
	AlertInfo     = "info"
)

// Alert-rule thresholds.
const (
	overDiscountBurden   = 500_000
	deliveryOverdueDays  = 7
	bpkbOverdueDays      = 30
	growthMinLastUnits   = 0
	growthMinMTDUnits    = 5
	growthMinPct         = 20
	overDiscountTopCount = 3
)

// Alert is one generated team alert.
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Alerts runs the rule set over the billed transaction set: over-discounting
// salespeople, the star performer, overdue deliveries and BPKB documents, and
// the fastest-growing motorcycle type. ref anchors the month-to-date window
// and the overdue clocks.
func Alerts(txs []domain.TransactionRecord, ref time.Time) []Alert {
	w := NewMTDWindow(ref)
	teamAvg := teamAvgBurden(txs)

	alerts := make([]Alert, 0)
	alerts = append(alerts, overDiscountAlerts(txs, w, teamAvg)...)
	if star, ok := starPerformerAlert(txs, w, teamAvg); ok {
		alerts = append(alerts, star)
	}
	if overdue := countOverdueDeliveries(txs, ref); overdue > 0 {
		alerts = append(alerts, Alert{
			Type:    AlertWarning,
			Message: fmt.Sprintf("%d units belum terkirim > %d hari", overdue, deliveryOverdueDays),
		})
	}
	if overdue := countOverdueBPKB(txs, ref); overdue > 0 {
		alerts = append(alerts, Alert{
			Type:    AlertWarning,
			Message: fmt.Sprintf("%d unit BPKB belum jadi > %d hari", overdue, bpkbOverdueDays),
		})
	}
	if growth, ok := motorGrowthAlert(txs, w); ok {
		alerts = append(alerts, growth)
	}
	return alerts
}

func teamAvgBurden(txs []domain.TransactionRecord) float64 {
	if len(txs) == 0 {
		return 0
	}
	var total float64
	for _, tx := range txs {
		total += tx.Burden()
	}
	return total / float64(len(txs))
}

type salesmanMTD struct {
	name   string
	dealer string
	units  int
	burden float64
}

// salesmenMTD accumulates month-to-date stats per salesperson in encounter
// order. The dealer label comes from the salesperson's first record.
func salesmenMTD(txs []domain.TransactionRecord, w MTDWindow) []salesmanMTD {
	index := make(map[string]int)
	stats := make([]salesmanMTD, 0)
	for _, tx := range txs {
		if !w.InCurrent(tx.BillingDate()) {
			continue
		}
		key := FallbackKey(tx.NamaSalesman)
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, salesmanMTD{name: key, dealer: FallbackKey(tx.NamaDealer)})
		}
		stats[i].units++
		stats[i].burden += tx.Burden()
	}
	return stats
}

// overDiscountAlerts flags up to overDiscountTopCount salespeople per dealer
// whose month-to-date average burden exceeds the threshold.
func overDiscountAlerts(txs []domain.TransactionRecord, w MTDWindow, teamAvg float64) []Alert {
	byDealer := make(map[string][]salesmanMTD)
	dealers := make([]string, 0)
	for _, s := range salesmenMTD(txs, w) {
		if s.burden/float64(s.units) <= overDiscountBurden {
			continue
		}
		if _, ok := byDealer[s.dealer]; !ok {
			dealers = append(dealers, s.dealer)
		}
		byDealer[s.dealer] = append(byDealer[s.dealer], s)
	}

	alerts := make([]Alert, 0)
	for _, dealer := range dealers {
		over := RankDescending(byDealer[dealer], func(s salesmanMTD) float64 { return s.burden / float64(s.units) }, overDiscountTopCount)
		for _, s := range over {
			avg := s.burden / float64(s.units)
			var abovePct float64
			if teamAvg > 0 {
				abovePct = (avg - teamAvg) / teamAvg * 100
			}
			alerts = append(alerts, Alert{
				Type: AlertCritical,
				Message: fmt.Sprintf("[%s] %s · avg Rp %s/unit — %.1f%% above team avg · %d units",
					s.dealer, s.name, formatRupiah(avg), abovePct, s.units),
			})
		}
	}
	return alerts
}

func starPerformerAlert(txs []domain.TransactionRecord, w MTDWindow, teamAvg float64) (Alert, bool) {
	var star *salesmanMTD
	stats := salesmenMTD(txs, w)
	for i := range stats {
		s := &stats[i]
		if s.burden/float64(s.units) >= teamAvg {
			continue
		}
		if star == nil || s.units > star.units {
			star = s
		}
	}
	if star == nil {
		return Alert{}, false
	}
	avg := star.burden / float64(star.units)
	var belowPct float64
	if teamAvg > 0 {
		belowPct = (teamAvg - avg) / teamAvg * 100
	}
	return Alert{
		Type: AlertPositive,
		Message: fmt.Sprintf("%s · %d units · Rp %s/unit — %.1f%% di bawah rata-rata",
			star.name, star.units, formatRupiah(avg), belowPct),
	}, true
}

func countOverdueDeliveries(txs []domain.TransactionRecord, ref time.Time) int {
	var count int
	for _, tx := range txs {
		t := tx.BillingDate()
		if t == nil || domain.IsDelivered(tx.StatusDelivery) {
			continue
		}
		if ref.Sub(*t).Hours()/24 > deliveryOverdueDays {
			count++
		}
	}
	return count
}

func countOverdueBPKB(txs []domain.TransactionRecord, ref time.Time) int {
	var count int
	for _, tx := range txs {
		if tx.TglBSTK == nil || domain.IsBPKBIssued(tx.StatusBPKB) {
			continue
		}
		if ref.Sub(*tx.TglBSTK).Hours()/24 > bpkbOverdueDays {
			count++
		}
	}
	return count
}

func motorGrowthAlert(txs []domain.TransactionRecord, w MTDWindow) (Alert, bool) {
	type motorStat struct {
		name string
		mtd  int
		last int
	}
	index := make(map[string]int)
	stats := make([]motorStat, 0)
	for _, tx := range txs {
		t := tx.BillingDate()
		inCurrent, inLast := w.InCurrent(t), w.InLast(t)
		if !inCurrent && !inLast {
			continue
		}
		key := FallbackKey(tx.TipeMotor)
		i, ok := index[key]
		if !ok {
			i = len(stats)
			index[key] = i
			stats = append(stats, motorStat{name: key})
		}
		if inCurrent {
			stats[i].mtd++
		} else {
			stats[i].last++
		}
	}

	var bestName string
	bestGrowth := float64(growthMinPct)
	for _, s := range stats {
		if s.last <= growthMinLastUnits || s.mtd <= growthMinMTDUnits {
			continue
		}
		growth := float64(s.mtd-s.last) / float64(s.last) * 100
		if growth > bestGrowth {
			bestGrowth = growth
			bestName = s.name
		}
	}
	if bestName == "" {
		return Alert{}, false
	}
	return Alert{
		Type:    AlertInfo,
		Message: fmt.Sprintf("%s tumbuh +%.1f%% MTD", bestName, bestGrowth),
	}, true
}

// formatRupiah renders a rupiah amount with Indonesian dot grouping.
func formatRupiah(v float64) string {
	digits := strconv.FormatInt(int64(math.Round(v)), 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}
	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}
	if negative {
		return "-" + string(out)
	}
	return string(out)
}
