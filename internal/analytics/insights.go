package analytics

import (
	"fmt"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// Insight-rule thresholds.
const (
	healthyConversionPct = 20
	discountBurnPct      = 10
)

// Insight is one narrative card on the dashboard.
type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Insights evaluates the narrative rules over the loaded datasets. When no
// rule produces a card the placeholder card is returned so the panel is never
// empty.
func Insights(sales []domain.SalesRecord, txs []domain.TransactionRecord, prospects []domain.ProspectRecord) []Insight {
	insights := make([]Insight, 0, 3)

	if top, ok := topDealerInsight(sales); ok {
		insights = append(insights, top)
	}
	if conv, ok := conversionInsight(prospects); ok {
		insights = append(insights, conv)
	}
	if burn, ok := discountBurnInsight(txs); ok {
		insights = append(insights, burn)
	}

	if len(insights) == 0 {
		insights = append(insights, Insight{
			Type:    AlertPositive,
			Title:   "System Ready",
			Message: "Upload sales, transaction, and prospect exports to generate insights.",
		})
	}
	return insights
}

// topDealerInsight skips records without a dealer name rather than bucketing
// them, so a mostly-blank column cannot crown an unknown dealer.
func topDealerInsight(sales []domain.SalesRecord) (Insight, bool) {
	named := make([]domain.SalesRecord, 0, len(sales))
	for _, s := range sales {
		if s.DealerSO != "" {
			named = append(named, s)
		}
	}
	top := TopCounts(named, func(s domain.SalesRecord) string { return s.DealerSO }, 1)
	if len(top) == 0 {
		return Insight{}, false
	}
	return Insight{
		Type:    AlertPositive,
		Title:   "Top Performing Dealership",
		Message: fmt.Sprintf("%s leads the network with %d units sold.", top[0].Key, top[0].Count),
	}, true
}

func conversionInsight(prospects []domain.ProspectRecord) (Insight, bool) {
	if len(prospects) == 0 {
		return Insight{}, false
	}
	var converted int
	for _, p := range prospects {
		if p.Converted() {
			converted++
		}
	}
	rate := float64(converted) / float64(len(prospects)) * 100

	kind := AlertWarning
	verdict := "below"
	if rate > healthyConversionPct {
		kind = AlertPositive
		verdict = "above"
	}
	return Insight{
		Type:  kind,
		Title: "Funnel Conversion Rate",
		Message: fmt.Sprintf("%.1f%% of prospects converted, %s the %d%% benchmark.",
			rate, verdict, healthyConversionPct),
	}, true
}

func discountBurnInsight(txs []domain.TransactionRecord) (Insight, bool) {
	var gross, discount float64
	for _, tx := range txs {
		gross += tx.HargaOFR
		discount += tx.DiskonTotal
	}
	if gross <= 0 {
		return Insight{}, false
	}
	rate := discount / gross * 100
	if rate <= discountBurnPct {
		return Insight{}, false
	}
	return Insight{
		Type:    AlertWarning,
		Title:   "High Discount Burn Rate",
		Message: fmt.Sprintf("Discounts are consuming %.1f%% of gross revenue, above the %d%% guardrail.", rate, discountBurnPct),
	}, true
}
