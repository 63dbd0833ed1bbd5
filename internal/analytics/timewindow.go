package analytics

import (
	"math"
	"time"
)

// MTDWindow partitions records into the current month-to-date bucket and the
// prior month's equivalent selling-day window. Both buckets cover the same
// number of elapsed calendar days: the prior-month cutoff is capped at that
// month's length, so a March 31st reference compares against all of a 28-day
// February.
type MTDWindow struct {
	Ref             time.Time
	CurrentStart    time.Time
	LastStart       time.Time
	CutoffDay       int
	DaysElapsed     int
	DaysInMonth     int
	DaysInLastMonth int
}

// NewMTDWindow builds the window for an explicit reference date. Engines never
// read the system clock; the caller chooses between wall time and the dataset
// maximum.
func NewMTDWindow(ref time.Time) MTDWindow {
	currentStart := StartOfMonth(ref)
	lastStart := currentStart.AddDate(0, -1, 0)
	daysInLast := DaysInMonth(lastStart)
	cutoff := ref.Day()
	if cutoff > daysInLast {
		cutoff = daysInLast
	}
	return MTDWindow{
		Ref:             ref,
		CurrentStart:    currentStart,
		LastStart:       lastStart,
		CutoffDay:       cutoff,
		DaysElapsed:     ref.Day(),
		DaysInMonth:     DaysInMonth(ref),
		DaysInLastMonth: daysInLast,
	}
}

// InCurrent reports whether t falls inside [start of month, ref]. Absent
// dates are never members of either bucket.
func (w MTDWindow) InCurrent(t *time.Time) bool {
	if t == nil {
		return false
	}
	return !t.Before(w.CurrentStart) && !t.After(w.Ref)
}

// InLast reports whether t falls inside the prior month up to the cutoff day.
func (w MTDWindow) InLast(t *time.Time) bool {
	if t == nil {
		return false
	}
	if t.Before(w.LastStart) {
		return false
	}
	if t.Year() != w.LastStart.Year() || t.Month() != w.LastStart.Month() {
		return false
	}
	return t.Day() <= w.CutoffDay
}

// PaceProjection linearly extrapolates a month-to-date value to a full-month
// figure.
func (w MTDWindow) PaceProjection(mtd float64) float64 {
	if w.DaysElapsed == 0 {
		return 0
	}
	return mtd / float64(w.DaysElapsed) * float64(w.DaysInMonth)
}

// PacePoint is one day of the cumulative pacing overlay. Nil means the day is
// beyond that bucket's valid range, not a zero, so charts do not draw a false
// flat tail.
type PacePoint struct {
	Day     int      `json:"day"`
	Current *float64 `json:"current"`
	Last    *float64 `json:"last"`
}

// InLastMonth reports whether t falls anywhere inside the prior calendar
// month. The pacing overlay draws the prior month's full trajectory, so it
// ignores the cutoff day that the comparison buckets apply.
func (w MTDWindow) InLastMonth(t *time.Time) bool {
	if t == nil {
		return false
	}
	return !t.Before(w.LastStart) && t.Before(w.CurrentStart)
}

// PacingSeries computes cumulative per-day running sums of valueFn for the
// current month-to-date and the full prior month, over day index
// 1..max(daysElapsed, daysInLastMonth).
func PacingSeries[T any](records []T, dateFn func(T) *time.Time, valueFn func(T) float64, w MTDWindow) []PacePoint {
	span := w.DaysElapsed
	if w.DaysInLastMonth > span {
		span = w.DaysInLastMonth
	}
	if span <= 0 {
		return []PacePoint{}
	}

	currentByDay := make([]float64, span+1)
	lastByDay := make([]float64, span+1)
	for _, rec := range records {
		t := dateFn(rec)
		switch {
		case w.InCurrent(t):
			currentByDay[t.Day()] += valueFn(rec)
		case w.InLastMonth(t):
			lastByDay[t.Day()] += valueFn(rec)
		}
	}

	series := make([]PacePoint, 0, span)
	var runningCurrent, runningLast float64
	for day := 1; day <= span; day++ {
		runningCurrent += currentByDay[day]
		runningLast += lastByDay[day]

		point := PacePoint{Day: day}
		if day <= w.DaysElapsed {
			v := runningCurrent
			point.Current = &v
		}
		if day <= w.DaysInLastMonth {
			v := runningLast
			point.Last = &v
		}
		series = append(series, point)
	}
	return series
}

// TrailingMonthIndex assigns t to a calendar-month bucket counting back from
// the reference month: 0 is the reference month, 1 the month before, up to
// n-1. Dates outside the n-month window (or absent) return -1.
func TrailingMonthIndex(ref time.Time, t *time.Time, n int) int {
	if t == nil || n <= 0 {
		return -1
	}
	if !t.Before(MonthStart(ref, -1)) {
		return -1
	}
	for i := 0; i < n; i++ {
		if !t.Before(MonthStart(ref, i)) {
			return i
		}
	}
	return -1
}

// MonthStart returns the start of the month `back` months before ref's month.
func MonthStart(ref time.Time, back int) time.Time {
	return StartOfMonth(ref).AddDate(0, -back, 0)
}

// StartOfMonth truncates t to midnight on the first of its month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the calendar length of t's month.
func DaysInMonth(t time.Time) int {
	return StartOfMonth(t).AddDate(0, 1, -1).Day()
}

// PercentChange is the relative change between two values, 0 when the
// baseline is 0.
func PercentChange(current, last float64) float64 {
	if last == 0 {
		return 0
	}
	return (current - last) / last * 100
}

// Round1 and Round2 fix chart values to the precision the dashboard renders.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// InMillions rounds a currency amount to whole millions for chart axes.
func InMillions(v float64) float64 { return math.Round(v / 1_000_000) }
