package analytics

import (
	"math"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// DemographicsBundle is the customer-demographics payload.
type DemographicsBundle struct {
	DominantGender    string       `json:"dominant_gender"`
	DominantGenderPct float64      `json:"dominant_gender_pct"`
	TopOccupation     string       `json:"top_occupation"`
	GenderSplit       []ChartPoint `json:"gender_split"`
	Occupations       []ChartPoint `json:"occupations"`
	Segments          []ChartPoint `json:"segments"`
}

// Demographics aggregates gender, occupation, and customer-segment
// distributions. Gender dominance is decided only on records whose gender
// value matches the male/female vocabularies; unrecognized values still show
// up in the raw split.
func Demographics(sales []domain.SalesRecord) DemographicsBundle {
	bundle := DemographicsBundle{
		TopOccupation: "N/A",
		GenderSplit:   []ChartPoint{},
		Occupations:   []ChartPoint{},
		Segments:      []ChartPoint{},
	}

	for _, b := range GroupCount(sales, func(s domain.SalesRecord) string { return s.Gender }) {
		bundle.GenderSplit = append(bundle.GenderSplit, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}

	jobs := TopCounts(sales, func(s domain.SalesRecord) string { return s.Pekerjaan }, 10)
	for _, b := range jobs {
		bundle.Occupations = append(bundle.Occupations, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}
	if len(jobs) > 0 {
		bundle.TopOccupation = jobs[0].Key
	}

	for _, b := range TopCounts(sales, func(s domain.SalesRecord) string { return s.Konsumen }, 10) {
		bundle.Segments = append(bundle.Segments, ChartPoint{Name: b.Key, Value: float64(b.Count)})
	}

	var male, female int
	for _, s := range sales {
		switch {
		case domain.IsMale(s.Gender):
			male++
		case domain.IsFemale(s.Gender):
			female++
		}
	}
	denom := male + female
	if denom == 0 {
		denom = 1
	}
	malePct := math.Round(float64(male) / float64(denom) * 100)
	if malePct > 50 {
		bundle.DominantGender = "Male"
		bundle.DominantGenderPct = malePct
	} else {
		bundle.DominantGender = "Female"
		bundle.DominantGenderPct = 100 - malePct
	}

	return bundle
}
