package stats

import (
	"time"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
)

// TimeRange selects the reporting window and its label granularity.
type TimeRange string

const (
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
)

func (r TimeRange) IsValid() bool {
	switch r {
	case RangeWeek, RangeMonth, RangeYear:
		return true
	default:
		return false
	}
}

// DateRange is a day-granularity interval with a label format for each day.
type DateRange struct {
	Start  time.Time
	End    time.Time
	Layout string // Go reference-time layout for the per-day label
}

// DateRangeFor builds the interval containing ref: the Sunday-based week,
// the calendar month, or the calendar year, labelled per weekday, per day,
// or per month respectively.
func DateRangeFor(r TimeRange, ref time.Time) DateRange {
	y, m, d := ref.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	switch r {
	case RangeMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: start, End: start.AddDate(0, 1, -1), Layout: "2 Jan"}
	case RangeYear:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{Start: start, End: start.AddDate(1, 0, -1), Layout: "Jan"}
	default: // week
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return DateRange{Start: start, End: start.AddDate(0, 0, 6), Layout: "Mon"}
	}
}

// Days enumerates every day of the interval, inclusive.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// TimePoint is one day's pooled total.
type TimePoint struct {
	Date string `json:"date"`
	Time int64  `json:"time"` // seconds
}

// StackedPoint is one day's totals split per category. Every category in the
// category list gets a column even when its value is zero.
type StackedPoint struct {
	Date   string           `json:"date"`
	Values map[string]int64 `json:"values"` // seconds per category
}

// TimeSeries sums time spent per day over the interval, optionally filtered
// to a single category; pass category "all" (or empty) for no filter.
func TimeSeries(tasks []model.Task, dr DateRange, category string) []TimePoint {
	totals := dailyTotals(tasks, func(t model.Task) bool {
		return category == "" || category == "all" || t.Category == category
	})

	days := dr.Days()
	out := make([]TimePoint, 0, len(days))
	for _, day := range days {
		key := day.Format(model.DateLayout)
		out = append(out, TimePoint{
			Date: day.Format(dr.Layout),
			Time: totals[key],
		})
	}
	return out
}

// StackedTimeSeries sums time spent per day and per category over the
// interval, producing one column per listed category per day.
func StackedTimeSeries(tasks []model.Task, dr DateRange, categories []string) []StackedPoint {
	perCategory := make(map[string]map[string]int64, len(categories))
	for _, c := range categories {
		cat := c
		perCategory[cat] = dailyTotals(tasks, func(t model.Task) bool {
			return t.Category == cat
		})
	}

	days := dr.Days()
	out := make([]StackedPoint, 0, len(days))
	for _, day := range days {
		key := day.Format(model.DateLayout)
		values := make(map[string]int64, len(categories))
		for _, c := range categories {
			values[c] = perCategory[c][key]
		}
		out = append(out, StackedPoint{Date: day.Format(dr.Layout), Values: values})
	}
	return out
}

// dailyTotals indexes summed time spent by calendar-day key for tasks that
// match the filter. Tasks with unparseable dates are skipped.
func dailyTotals(tasks []model.Task, match func(model.Task) bool) map[string]int64 {
	totals := make(map[string]int64)
	for _, t := range tasks {
		if !match(t) {
			continue
		}
		if _, err := t.Day(); err != nil {
			continue
		}
		totals[t.Date] += t.TimeSpent
	}
	return totals
}
