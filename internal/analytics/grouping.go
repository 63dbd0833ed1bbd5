package analytics

import (
	"sort"
	"strings"
)

// UnknownBucket collects records whose grouping key is empty. Records are
// never dropped from a grouping because a categorical field is missing.
const UnknownBucket = "Unknown"

// Bucket is one grouped accumulation. Count is always populated; Sum only by
// GroupSum.
type Bucket struct {
	Key   string  `json:"name"`
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
}

// FallbackKey returns the key itself, or UnknownBucket for blank keys.
func FallbackKey(key string) string {
	if strings.TrimSpace(key) == "" {
		return UnknownBucket
	}
	return key
}

// GroupCount tallies occurrences per key. Output preserves first-encounter
// order so downstream ranking is deterministic for a given input order.
func GroupCount[T any](records []T, keyFn func(T) string) []Bucket {
	return groupBy(records, keyFn, func(T) float64 { return 0 })
}

// GroupSum accumulates a numeric value per key alongside the count.
func GroupSum[T any](records []T, keyFn func(T) string, valueFn func(T) float64) []Bucket {
	return groupBy(records, keyFn, valueFn)
}

func groupBy[T any](records []T, keyFn func(T) string, valueFn func(T) float64) []Bucket {
	index := make(map[string]int, len(records))
	buckets := make([]Bucket, 0)
	for _, rec := range records {
		key := FallbackKey(keyFn(rec))
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, Bucket{Key: key})
		}
		buckets[i].Count++
		buckets[i].Sum += valueFn(rec)
	}
	return buckets
}

// RankDescending stable-sorts items by metric descending, ties keeping their
// encounter order, and truncates to limit when limit > 0.
func RankDescending[T any](items []T, metric func(T) float64, limit int) []T {
	ranked := make([]T, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return metric(ranked[i]) > metric(ranked[j])
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopCounts is the common "group, rank by count, truncate" pipeline.
func TopCounts[T any](records []T, keyFn func(T) string, limit int) []Bucket {
	return RankDescending(GroupCount(records, keyFn), func(b Bucket) float64 {
		return float64(b.Count)
	}, limit)
}
