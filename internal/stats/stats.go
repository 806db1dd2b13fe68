// Package stats computes read-only aggregates over the task and project
// collections. Everything here is a pure function: no persistence, no side
// effects, safe to call repeatedly and in parallel. Aggregates are kept in
// raw seconds; conversion to hours happens only at the presentation boundary.
package stats

import (
	"math"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
)

// CategoryStat is one category's share of all tracked time.
type CategoryStat struct {
	Name       string  `json:"name"`
	Value      int64   `json:"value"` // seconds
	Percentage float64 `json:"percentage"`
	TaskCount  int     `json:"taskCount"`
}

// ProjectStat is one project's share of project-attributed tracked time.
type ProjectStat struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Value      int64   `json:"value"` // seconds
	Percentage float64 `json:"percentage"`
	TaskCount  int     `json:"taskCount"`
}

// CategoryStats groups tasks by category and sums time spent. Percentages
// are of the total across all tasks and are 0 when nothing is tracked yet.
func CategoryStats(tasks []model.Task) []CategoryStat {
	type bucket struct {
		total int64
		count int
	}
	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	var total int64

	for _, t := range tasks {
		b, ok := buckets[t.Category]
		if !ok {
			b = &bucket{}
			buckets[t.Category] = b
			order = append(order, t.Category)
		}
		b.total += t.TimeSpent
		b.count++
		total += t.TimeSpent
	}

	out := make([]CategoryStat, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		stat := CategoryStat{Name: name, Value: b.total, TaskCount: b.count}
		if total > 0 {
			stat.Percentage = float64(b.total) / float64(total) * 100
		}
		out = append(out, stat)
	}
	return out
}

// ProjectStats groups tasks by project and attributes the result back to
// every known project: projects with no tracked tasks report zeros rather
// than being absent. Tasks without a project are excluded entirely.
func ProjectStats(tasks []model.Task, projects []model.Project) []ProjectStat {
	type bucket struct {
		total int64
		count int
	}
	buckets := make(map[string]*bucket)
	var total int64

	for _, t := range tasks {
		if t.ProjectID == "" {
			continue
		}
		b, ok := buckets[t.ProjectID]
		if !ok {
			b = &bucket{}
			buckets[t.ProjectID] = b
		}
		b.total += t.TimeSpent
		b.count++
		total += t.TimeSpent
	}

	out := make([]ProjectStat, 0, len(projects))
	for _, p := range projects {
		stat := ProjectStat{ID: p.ID, Name: p.Name}
		if b, ok := buckets[p.ID]; ok {
			stat.Value = b.total
			stat.TaskCount = b.count
			if total > 0 {
				stat.Percentage = float64(b.total) / float64(total) * 100
			}
		}
		out = append(out, stat)
	}
	return out
}

// Hours converts raw seconds to hours rounded to two decimal places, the
// unit charts are drawn in.
func Hours(seconds int64) float64 {
	return math.Round(float64(seconds)/3600*100) / 100
}
