package domain

// FilterAll is the sentinel meaning "no restriction" for group/region filters.
const FilterAll = "All"

// Date-range presets accepted by the dashboard endpoints.
const (
	RangeLast30Days  = "last-30-days"
	RangeThisMonth   = "this-month"
	RangeLastQuarter = "last-quarter"
	RangeYearToDate  = "year-to-date"
	RangeAllTime     = "all-time"
)

// RangePresets lists the accepted presets in presentation order.
var RangePresets = []string{
	RangeLast30Days,
	RangeThisMonth,
	RangeLastQuarter,
	RangeYearToDate,
	RangeAllTime,
}

// FilterParams carries the global dashboard filter selections. Zero values
// mean "all-time" and "All".
type FilterParams struct {
	Range  string `json:"range"`
	Group  string `json:"group"`
	Region string `json:"region"`
}

// Normalized returns a copy with empty selections replaced by their sentinels
// so equivalent filters produce identical cache keys.
func (p FilterParams) Normalized() FilterParams {
	if p.Range == "" {
		p.Range = RangeAllTime
	}
	if p.Group == "" {
		p.Group = FilterAll
	}
	if p.Region == "" {
		p.Region = FilterAll
	}
	return p
}

// ValidRange reports whether the preset name is one of the known presets.
func ValidRange(preset string) bool {
	for _, p := range RangePresets {
		if p == preset {
			return true
		}
	}
	return false
}
