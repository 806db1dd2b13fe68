package stats

import (
	"testing"
	"time"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
)

func TestDateRangeForWeek(t *testing.T) {
	// 2026-03-04 is a Wednesday; the Sunday-based week starts 2026-03-01.
	ref := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.UTC)
	dr := DateRangeFor(RangeWeek, ref)

	if dr.Start.Weekday() != time.Sunday {
		t.Fatalf("week does not start on Sunday: %v", dr.Start)
	}
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !dr.Start.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, dr.Start)
	}
	days := dr.Days()
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0].Format(dr.Layout) != "Sun" || days[6].Format(dr.Layout) != "Sat" {
		t.Fatalf("unexpected labels: %q .. %q", days[0].Format(dr.Layout), days[6].Format(dr.Layout))
	}
}

func TestDateRangeForMonth(t *testing.T) {
	ref := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	dr := DateRangeFor(RangeMonth, ref)

	if len(dr.Days()) != 28 {
		t.Fatalf("expected 28 days in February 2026, got %d", len(dr.Days()))
	}
	if got := dr.Start.Format(dr.Layout); got != "1 Feb" {
		t.Fatalf("unexpected month label: %q", got)
	}
}

func TestDateRangeForYear(t *testing.T) {
	ref := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	dr := DateRangeFor(RangeYear, ref)

	if len(dr.Days()) != 365 {
		t.Fatalf("expected 365 days in 2026, got %d", len(dr.Days()))
	}
	if got := dr.End.Format(model.DateLayout); got != "2026-12-31" {
		t.Fatalf("unexpected year end: %q", got)
	}
}

func TestTimeRangeIsValid(t *testing.T) {
	for _, r := range []TimeRange{RangeWeek, RangeMonth, RangeYear} {
		if !r.IsValid() {
			t.Fatalf("%q should be valid", r)
		}
	}
	if TimeRange("decade").IsValid() {
		t.Fatalf("unknown range accepted")
	}
}

func TestTimeSeries(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Date: "2026-03-02", Category: "office", TimeSpent: 1800},
		{ID: "t2", Date: "2026-03-02", Category: "home", TimeSpent: 600},
		{ID: "t3", Date: "2026-03-03", Category: "office", TimeSpent: 900},
		{ID: "t4", Date: "not-a-date", Category: "office", TimeSpent: 9999},
	}
	dr := DateRangeFor(RangeWeek, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))

	all := TimeSeries(tasks, dr, "all")
	if len(all) != 7 {
		t.Fatalf("expected 7 points, got %d", len(all))
	}
	// Monday 2026-03-02 is index 1 of the Sunday-based week.
	if all[1].Time != 2400 {
		t.Fatalf("expected 2400s on Monday, got %d", all[1].Time)
	}
	if all[2].Time != 900 {
		t.Fatalf("expected 900s on Tuesday, got %d", all[2].Time)
	}
	if all[0].Time != 0 {
		t.Fatalf("expected empty Sunday, got %d", all[0].Time)
	}

	office := TimeSeries(tasks, dr, "office")
	if office[1].Time != 1800 || office[2].Time != 900 {
		t.Fatalf("category filter wrong: %+v", office)
	}

	// Empty category means no filter, same as "all".
	if got := TimeSeries(tasks, dr, ""); got[1].Time != 2400 {
		t.Fatalf("empty filter differs from all: %+v", got[1])
	}
}

func TestStackedTimeSeries(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Date: "2026-03-02", Category: "office", TimeSpent: 1800},
		{ID: "t2", Date: "2026-03-02", Category: "home", TimeSpent: 600},
	}
	dr := DateRangeFor(RangeWeek, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC))

	got := StackedTimeSeries(tasks, dr, []string{"office", "home", "coding"})
	if len(got) != 7 {
		t.Fatalf("expected 7 points, got %d", len(got))
	}
	monday := got[1]
	if monday.Values["office"] != 1800 || monday.Values["home"] != 600 {
		t.Fatalf("unexpected Monday stack: %+v", monday.Values)
	}
	// Every listed category gets a column even at zero.
	if v, ok := monday.Values["coding"]; !ok || v != 0 {
		t.Fatalf("zero category missing from stack: %+v", monday.Values)
	}
}
