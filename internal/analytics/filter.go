package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/domain"
)

// DealerLookup resolves a dealer identity to its group and region using the
// master dealer table. Identities match on name, code, or alternate code,
// case-insensitively.
type DealerLookup struct {
	byKey map[string]domain.DealerMaster
}

// NewDealerLookup indexes the master table. Later rows win on key collisions.
func NewDealerLookup(masters []domain.DealerMaster) *DealerLookup {
	l := &DealerLookup{byKey: make(map[string]domain.DealerMaster, len(masters)*3)}
	for _, m := range masters {
		for _, key := range []string{m.Name, m.Code, m.AltCode} {
			if norm := normalizeKey(key); norm != "" {
				l.byKey[norm] = m
			}
		}
	}
	return l
}

// Find returns the first master row matching any of the identity keys.
func (l *DealerLookup) Find(keys ...string) (domain.DealerMaster, bool) {
	if l == nil {
		return domain.DealerMaster{}, false
	}
	for _, key := range keys {
		if m, ok := l.byKey[normalizeKey(key)]; ok {
			return m, true
		}
	}
	return domain.DealerMaster{}, false
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Filter applies the global date-range and group/region selections to the
// three base record sets before they reach the metric engines.
type Filter struct {
	Params domain.FilterParams
	Lookup *DealerLookup
	since  *time.Time
}

// NewFilter resolves the date-range preset against the reference date.
// Unknown presets behave as all-time.
func NewFilter(params domain.FilterParams, ref time.Time, lookup *DealerLookup) *Filter {
	f := &Filter{Params: params.Normalized(), Lookup: lookup}

	var since time.Time
	switch f.Params.Range {
	case domain.RangeLast30Days:
		since = ref.AddDate(0, 0, -30)
	case domain.RangeThisMonth:
		since = StartOfMonth(ref)
	case domain.RangeLastQuarter:
		since = ref.AddDate(0, -3, 0)
	case domain.RangeYearToDate:
		since = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
	default:
		return f
	}
	f.since = &since
	return f
}

// Sales filters the sales set on application date and dealer group/region.
func (f *Filter) Sales(records []domain.SalesRecord) []domain.SalesRecord {
	out := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		if !f.inRange(r.ApplicationDate()) {
			continue
		}
		master, ok := f.Lookup.Find(r.DealerSO)
		group, region := r.GrupDealer, r.AreaDealer
		if ok {
			group, region = coalesce(master.Group, group), coalesce(master.Region, region)
		}
		if f.matches(group, region) {
			out = append(out, r)
		}
	}
	return out
}

// Transactions filters the billed-transaction set on billing date and dealer
// group/region.
func (f *Filter) Transactions(records []domain.TransactionRecord) []domain.TransactionRecord {
	out := make([]domain.TransactionRecord, 0, len(records))
	for _, r := range records {
		if !f.inRange(r.BillingDate()) {
			continue
		}
		var group, region string
		if master, ok := f.Lookup.Find(r.NamaDealer, r.KodeDealer); ok {
			group, region = master.Group, master.Region
		}
		if f.matches(group, region) {
			out = append(out, r)
		}
	}
	return out
}

// Prospects filters the lead set on registration date and dealer group/region,
// falling back to the record's own region column when the master table has no
// match.
func (f *Filter) Prospects(records []domain.ProspectRecord) []domain.ProspectRecord {
	out := make([]domain.ProspectRecord, 0, len(records))
	for _, r := range records {
		if !f.inRange(r.RegistrationDate) {
			continue
		}
		var group string
		region := r.Region
		if master, ok := f.Lookup.Find(r.NamaDealer, r.KodeDealer); ok {
			group, region = master.Group, coalesce(master.Region, region)
		}
		if f.matches(group, region) {
			out = append(out, r)
		}
	}
	return out
}

// inRange is fail-open: records without a parsable date are always included.
func (f *Filter) inRange(t *time.Time) bool {
	if f.since == nil || t == nil {
		return true
	}
	return !t.Before(*f.since)
}

func (f *Filter) matches(group, region string) bool {
	if f.Params.Group != domain.FilterAll && !strings.EqualFold(group, f.Params.Group) {
		return false
	}
	if f.Params.Region != domain.FilterAll && !strings.EqualFold(region, f.Params.Region) {
		return false
	}
	return true
}

func coalesce(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

// FilterOptions are the distinct values offered by the dashboard filter
// controls.
type FilterOptions struct {
	Ranges  []string `json:"ranges"`
	Groups  []string `json:"groups"`
	Regions []string `json:"regions"`
}

// Options derives the sorted distinct group and region lists from the master
// table and the embedded columns of the loaded record sets.
func Options(masters []domain.DealerMaster, sales []domain.SalesRecord, prospects []domain.ProspectRecord) FilterOptions {
	groups := make(map[string]struct{})
	regions := make(map[string]struct{})
	for _, m := range masters {
		addOption(groups, m.Group)
		addOption(regions, m.Region)
	}
	for _, s := range sales {
		addOption(groups, s.GrupDealer)
		addOption(regions, s.AreaDealer)
	}
	for _, p := range prospects {
		addOption(regions, p.Region)
	}
	return FilterOptions{
		Ranges:  append([]string{}, domain.RangePresets...),
		Groups:  sortedKeys(groups),
		Regions: sortedKeys(regions),
	}
}

func addOption(set map[string]struct{}, value string) {
	if v := strings.TrimSpace(value); v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
