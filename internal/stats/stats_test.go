package stats

import (
	"testing"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
)

func TestCategoryStats(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Category: "home", TimeSpent: 3600},
		{ID: "t2", Category: "home", TimeSpent: 3600},
		{ID: "t3", Category: "office", TimeSpent: 1800},
	}

	got := CategoryStats(tasks)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d: %+v", len(got), got)
	}

	home := got[0]
	if home.Name != "home" || home.Value != 7200 || home.TaskCount != 2 {
		t.Fatalf("unexpected home stat: %+v", home)
	}
	if home.Percentage != 80 {
		t.Fatalf("expected home at 80%%, got %v", home.Percentage)
	}

	office := got[1]
	if office.Name != "office" || office.Value != 1800 || office.Percentage != 20 {
		t.Fatalf("unexpected office stat: %+v", office)
	}
}

func TestCategoryStatsZeroTotal(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Category: "home"},
		{ID: "t2", Category: "office"},
	}
	for _, stat := range CategoryStats(tasks) {
		if stat.Percentage != 0 {
			t.Fatalf("expected 0%% with no tracked time, got %+v", stat)
		}
	}
}

func TestCategoryStatsEmpty(t *testing.T) {
	if got := CategoryStats(nil); len(got) != 0 {
		t.Fatalf("expected no stats for no tasks, got %+v", got)
	}
}

func TestProjectStats(t *testing.T) {
	projects := []model.Project{
		{ID: "p1", Name: "Redesign"},
		{ID: "p2", Name: "Migration"},
	}
	tasks := []model.Task{
		{ID: "t1", ProjectID: "p1", TimeSpent: 3000},
		{ID: "t2", ProjectID: "p1", TimeSpent: 1000},
		{ID: "t3", TimeSpent: 9999}, // projectless, excluded
	}

	got := ProjectStats(tasks, projects)
	if len(got) != 2 {
		t.Fatalf("expected a stat per project, got %d", len(got))
	}

	p1 := got[0]
	if p1.ID != "p1" || p1.Value != 4000 || p1.TaskCount != 2 || p1.Percentage != 100 {
		t.Fatalf("unexpected p1 stat: %+v", p1)
	}

	// A project with no tracked tasks is present with zeros.
	p2 := got[1]
	if p2.ID != "p2" || p2.Value != 0 || p2.TaskCount != 0 || p2.Percentage != 0 {
		t.Fatalf("unexpected p2 stat: %+v", p2)
	}
}

func TestHoursRounding(t *testing.T) {
	cases := []struct {
		seconds int64
		want    float64
	}{
		{0, 0},
		{3600, 1},
		{5400, 1.5},
		{4000, 1.11}, // 1.1111... rounds to two places
		{60, 0.02},
	}
	for _, tc := range cases {
		if got := Hours(tc.seconds); got != tc.want {
			t.Fatalf("Hours(%d) = %v, want %v", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00:00"},
		{61, "0:01:01"},
		{3661, "1:01:01"},
		{-90, "-0:01:30"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.seconds); got != tc.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatHours(1.5); got != "1.5h" {
		t.Fatalf("FormatHours = %q", got)
	}
	if got := FormatDuration(5400); got != "1h 30m" {
		t.Fatalf("FormatDuration = %q", got)
	}
}
