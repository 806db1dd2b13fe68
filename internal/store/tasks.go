package store

import (
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/storage"
)

// TaskUpdate is a partial task edit; nil fields are left untouched.
type TaskUpdate struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Date          *string `json:"date,omitempty"`
	StartTime     *string `json:"startTime,omitempty"`
	Duration      *int    `json:"duration,omitempty"`
	Completed     *bool   `json:"completed,omitempty"`
	TimeSpent     *int64  `json:"timeSpent,omitempty"`
	Category      *string `json:"category,omitempty"`
	ProjectID     *string `json:"projectId,omitempty"`
	GoogleEventID *string `json:"googleEventId,omitempty"`
}

func (u TaskUpdate) apply(t model.Task) model.Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	if u.StartTime != nil {
		t.StartTime = *u.StartTime
	}
	if u.Duration != nil {
		t.Duration = *u.Duration
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.TimeSpent != nil {
		t.TimeSpent = *u.TimeSpent
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.ProjectID != nil {
		t.ProjectID = *u.ProjectID
	}
	if u.GoogleEventID != nil {
		t.GoogleEventID = *u.GoogleEventID
	}
	return t
}

// AddTask appends a task to the collection.
func (s *Store) AddTask(task model.Task) {
	s.mutate("add_task", func() map[string]any {
		next := cloneTasks(s.tasks)
		next = append(next, task)
		s.tasks = next
		s.logger.Debug("Task added", zap.String("task_id", task.ID), zap.String("title", task.Title))
		return map[string]any{storage.KeyTasks: next}
	})
}

// UpdateTask applies a partial edit to one task. Unknown ids are a no-op.
// A time-spent edit on the task the timer currently holds also re-seeds the
// timer's elapsed value, so the edit survives the next tick and a resume
// continues from the corrected value; both collections go out as one patch.
func (s *Store) UpdateTask(taskID string, updates TaskUpdate) {
	s.mutate("update_task", func() map[string]any {
		next := cloneTasks(s.tasks)
		for i, t := range next {
			if t.ID == taskID {
				next[i] = updates.apply(t)
			}
		}
		s.tasks = next

		entries := map[string]any{storage.KeyTasks: next}
		if updates.TimeSpent != nil && s.timer.TaskID == taskID {
			s.timer.ElapsedTime = *updates.TimeSpent
			s.logger.Debug("Timer re-seeded by time edit",
				zap.String("task_id", taskID),
				zap.Int64("elapsed", s.timer.ElapsedTime),
			)
			entries[storage.KeyTimer] = s.timer
		}
		return entries
	})
}

// DeleteTask removes a task. If the active timer references it, the timer is
// reset to idle in the same state transition, and both collections go to the
// remote mirror as one patch.
func (s *Store) DeleteTask(taskID string) {
	s.mutate("delete_task", func() map[string]any {
		next := make([]model.Task, 0, len(s.tasks))
		for _, t := range s.tasks {
			if t.ID != taskID {
				next = append(next, t)
			}
		}
		s.tasks = next

		if s.timer.TaskID == taskID {
			s.timer = model.IdleTimer()
			s.logger.Debug("Timer reset by task deletion", zap.String("task_id", taskID))
		}

		return map[string]any{
			storage.KeyTasks: next,
			storage.KeyTimer: s.timer,
		}
	})
}

// ToggleTaskComplete flips a task's completed flag.
func (s *Store) ToggleTaskComplete(taskID string) {
	s.mutate("toggle_task_complete", func() map[string]any {
		next := cloneTasks(s.tasks)
		for i, t := range next {
			if t.ID == taskID {
				next[i].Completed = !t.Completed
			}
		}
		s.tasks = next
		return map[string]any{storage.KeyTasks: next}
	})
}
