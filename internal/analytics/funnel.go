package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// leaderboardMinLeads hides salespeople whose lead count is too small for a
// conversion rate to be meaningful.
const leaderboardMinLeads = 5

// Prospect-ratio bands, in leads needed per completed sale.
const (
	ratioBandRed    = 3
	ratioBandOrange = 4
	ratioBandYellow = 5
)

// Aging boundaries in days since registration.
const (
	agingHotDays  = 7
	agingWarmDays = 30
)

// SourceConversion is per-source funnel performance.
type SourceConversion struct {
	Source    string  `json:"source"`
	Leads     int     `json:"leads"`
	Converted int     `json:"converted"`
	Rate      float64 `json:"rate"`
}

// LeaderboardEntry is one salesperson on the conversion leaderboard.
type LeaderboardEntry struct {
	Salesman  string  `json:"salesman"`
	Leads     int     `json:"leads"`
	Converted int     `json:"converted"`
	Rate      float64 `json:"rate"`
}

// AgingBuckets splits unconverted leads by how long they have been sitting.
type AgingBuckets struct {
	Hot  int `json:"hot"`
	Warm int `json:"warm"`
	Cold int `json:"cold"`
}

// FunnelBundle is the prospect-funnel payload.
type FunnelBundle struct {
	TotalProspects   int                `json:"total_prospects"`
	Converted        int                `json:"converted"`
	ConversionRate   string             `json:"conversion_rate"`
	ActiveFollowUps  int                `json:"active_follow_ups"`
	ProspectRatio    string             `json:"prospect_ratio"`
	RatioBand        string             `json:"ratio_band"`
	VelocityDays     float64            `json:"velocity_days"`
	Aging            AgingBuckets       `json:"aging"`
	ByStatus         []ChartPoint       `json:"by_status"`
	BySource         []ChartPoint       `json:"by_source"`
	SourceConversion []SourceConversion `json:"source_conversion"`
	Leaderboard      []LeaderboardEntry `json:"leaderboard"`
}

// Funnel analyses the prospect set. completedSales is the billed-unit count
// used for the leads-per-sale ratio; ref anchors the aging buckets.
func Funnel(prospects []domain.ProspectRecord, completedSales int, ref time.Time) FunnelBundle {
	bundle := FunnelBundle{
		TotalProspects:   len(prospects),
		ConversionRate:   "0.0",
		ProspectRatio:    "N/A",
		ByStatus:         []ChartPoint{},
		BySource:         []ChartPoint{},
		SourceConversion: []SourceConversion{},
		Leaderboard:      []LeaderboardEntry{},
	}

	var velocitySum float64
	var velocityCount int
	for _, p := range prospects {
		if !p.Converted() {
			bundle.Aging.add(p.RegistrationDate, ref)
			continue
		}
		bundle.Converted++
		if p.RegistrationDate != nil && p.FollowUpDate != nil {
			velocitySum += math.Abs(p.FollowUpDate.Sub(*p.RegistrationDate).Hours() / 24)
			velocityCount++
		}
	}
	bundle.ActiveFollowUps = bundle.TotalProspects - bundle.Converted
	if bundle.TotalProspects > 0 {
		bundle.ConversionRate = fmt.Sprintf("%.1f", float64(bundle.Converted)/float64(bundle.TotalProspects)*100)
	}
	if velocityCount > 0 {
		bundle.VelocityDays = Round1(velocitySum / float64(velocityCount))
	}

	if completedSales > 0 {
		ratio := float64(len(prospects)) / float64(completedSales)
		bundle.ProspectRatio = fmt.Sprintf("%.1f:1", ratio)
		bundle.RatioBand = ratioBand(ratio)
	}

	for _, b := range GroupCount(prospects, func(p domain.ProspectRecord) string { return p.ProspectStatus }) {
		bundle.ByStatus = append(bundle.ByStatus, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}
	for _, b := range TopCounts(prospects, func(p domain.ProspectRecord) string { return p.SourceProspect }, 10) {
		bundle.BySource = append(bundle.BySource, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}

	bundle.SourceConversion = sourceConversion(prospects)
	bundle.Leaderboard = conversionLeaderboard(prospects)
	return bundle
}

func (a *AgingBuckets) add(registered *time.Time, ref time.Time) {
	if registered == nil {
		return
	}
	days := ref.Sub(*registered).Hours() / 24
	switch {
	case days < agingHotDays:
		a.Hot++
	case days <= agingWarmDays:
		a.Warm++
	default:
		a.Cold++
	}
}

func ratioBand(ratio float64) string {
	switch {
	case ratio <= ratioBandRed:
		return "red"
	case ratio <= ratioBandOrange:
		return "orange"
	case ratio <= ratioBandYellow:
		return "yellow"
	default:
		return "green"
	}
}

func sourceConversion(prospects []domain.ProspectRecord) []SourceConversion {
	index := make(map[string]int)
	rows := make([]SourceConversion, 0)
	for _, p := range prospects {
		key := FallbackKey(p.SourceProspect)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, SourceConversion{Source: key})
		}
		rows[i].Leads++
		if p.Converted() {
			rows[i].Converted++
		}
	}
	for i := range rows {
		rows[i].Rate = Round1(float64(rows[i].Converted) / float64(rows[i].Leads) * 100)
	}
	return RankDescending(rows, func(r SourceConversion) float64 { return float64(r.Leads) }, 0)
}

func conversionLeaderboard(prospects []domain.ProspectRecord) []LeaderboardEntry {
	index := make(map[string]int)
	rows := make([]LeaderboardEntry, 0)
	for _, p := range prospects {
		key := FallbackKey(p.SalesmanName)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, LeaderboardEntry{Salesman: key})
		}
		rows[i].Leads++
		if p.Converted() {
			rows[i].Converted++
		}
	}

	qualified := rows[:0]
	for _, r := range rows {
		if r.Leads < leaderboardMinLeads {
			continue
		}
		r.Rate = Round1(float64(r.Converted) / float64(r.Leads) * 100)
		qualified = append(qualified, r)
	}
	return RankDescending(qualified, func(r LeaderboardEntry) float64 { return r.Rate }, 0)
}
