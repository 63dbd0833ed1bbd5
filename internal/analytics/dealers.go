package analytics

import "github.com/JordyS97/dealer-analytics-dashboard/internal/domain"

// DealersBundle is the dealer-network payload: distinct counts, the leading
// outlet, and the area/group distributions.
type DealersBundle struct {
	TotalDealers int          `json:"total_dealers"`
	TopDealer    string       `json:"top_dealer"`
	ActiveAreas  int          `json:"active_areas"`
	TopDealers   []ChartPoint `json:"top_dealers"`
	ByArea       []ChartPoint `json:"by_area"`
	ByGroup      []ChartPoint `json:"by_group"`
}

// Dealers aggregates the sales set by dealer outlet, area, and group.
func Dealers(sales []domain.SalesRecord) DealersBundle {
	bundle := DealersBundle{
		TopDealer:  "N/A",
		TopDealers: []ChartPoint{},
		ByArea:     []ChartPoint{},
		ByGroup:    []ChartPoint{},
	}

	dealers := GroupCount(sales, func(s domain.SalesRecord) string { return s.DealerSO })
	bundle.TotalDealers = len(dealers)

	ranked := RankDescending(dealers, bucketCount, 0)
	if len(ranked) > 0 {
		bundle.TopDealer = ranked[0].Key
	}
	for i, b := range ranked {
		if i == 10 {
			break
		}
		bundle.TopDealers = append(bundle.TopDealers, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}

	areas := GroupCount(sales, func(s domain.SalesRecord) string { return s.AreaDealer })
	bundle.ActiveAreas = len(areas)
	for _, b := range RankDescending(areas, bucketCount, 0) {
		bundle.ByArea = append(bundle.ByArea, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}

	for _, b := range TopCounts(sales, func(s domain.SalesRecord) string { return s.GrupDealer }, 10) {
		bundle.ByGroup = append(bundle.ByGroup, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}

	return bundle
}
