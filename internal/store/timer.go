package store

import (
	"time"

	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/storage"
	"github.com/hasanulkarim/UltimateProjectPlanner/pkg/metrics"
)

// StartTimer begins or resumes the countdown for a task. Starting on the
// task already held by the timer resumes from the current elapsed time;
// starting on any other task initializes elapsed time from that task's
// accumulated time spent, implicitly abandoning the previous task at its
// last persisted value. Unknown task ids are a no-op.
func (s *Store) StartTimer(taskID string, continuePastTarget bool) {
	s.mutate("start_timer", func() map[string]any {
		var task *model.Task
		for i := range s.tasks {
			if s.tasks[i].ID == taskID {
				task = &s.tasks[i]
				break
			}
		}
		if task == nil {
			return nil
		}

		elapsed := task.TimeSpent
		if s.timer.TaskID == taskID {
			elapsed = s.timer.ElapsedTime
		}
		s.timer = model.Timer{
			TaskID:              taskID,
			IsRunning:           true,
			ElapsedTime:         elapsed,
			SnoozeUntil:         nil,
			ContinuedPastTarget: continuePastTarget,
		}
		s.logger.Debug("Timer started",
			zap.String("task_id", taskID),
			zap.Int64("elapsed", elapsed),
			zap.Bool("continue_past_target", continuePastTarget),
		)
		return map[string]any{storage.KeyTimer: s.timer}
	})
}

// PauseTimer stops the countdown, keeping the task and elapsed time.
// Idempotent: pausing a paused timer leaves the state unchanged.
func (s *Store) PauseTimer() {
	s.mutate("pause_timer", func() map[string]any {
		s.timer.IsRunning = false
		return map[string]any{storage.KeyTimer: s.timer}
	})
}

// StopTimer resets the timer to idle, clearing every field.
func (s *Store) StopTimer() {
	s.mutate("stop_timer", func() map[string]any {
		s.timer = model.IdleTimer()
		return map[string]any{storage.KeyTimer: s.timer}
	})
}

// Tick advances the running countdown by deltaSeconds and keeps the timed
// task's accumulated time spent equal to the new elapsed value. Both
// collections go to the remote mirror as one patch. Deltas come from
// wall-clock differences, never a fixed step, so a late tick catches up.
func (s *Store) Tick(deltaSeconds int64) {
	if deltaSeconds <= 0 {
		return
	}
	s.mutate("tick", func() map[string]any {
		if !s.timer.IsRunning || s.timer.TaskID == "" {
			return nil
		}

		s.timer.ElapsedTime += deltaSeconds

		next := cloneTasks(s.tasks)
		for i, t := range next {
			if t.ID == s.timer.TaskID {
				next[i].TimeSpent = s.timer.ElapsedTime
			}
		}
		s.tasks = next

		metrics.TimerTickCount.Inc()
		return map[string]any{
			storage.KeyTasks: next,
			storage.KeyTimer: s.timer,
		}
	})
}

// SnoozeTask parks the timer on a task until minutes from now. The timer is
// not running while snoozed.
func (s *Store) SnoozeTask(taskID string, minutes int) {
	s.mutate("snooze_task", func() map[string]any {
		until := s.now().Add(time.Duration(minutes) * time.Minute)
		s.timer.TaskID = taskID
		s.timer.IsRunning = false
		s.timer.SnoozeUntil = &until
		s.timer.ContinuedPastTarget = false
		s.logger.Debug("Task snoozed",
			zap.String("task_id", taskID),
			zap.Time("until", until),
		)
		return map[string]any{storage.KeyTimer: s.timer}
	})
}

// CheckSnoozeTimer reports whether the snooze window has elapsed. It returns
// true exactly once per window: the expired deadline is cleared as a side
// effect, and the timer is left paused for the caller to decide what happens
// next.
func (s *Store) CheckSnoozeTimer() bool {
	fired := false
	s.mutate("check_snooze_timer", func() map[string]any {
		if s.timer.SnoozeUntil == nil || s.now().Before(*s.timer.SnoozeUntil) {
			return nil
		}
		s.timer.SnoozeUntil = nil
		fired = true
		return map[string]any{storage.KeyTimer: s.timer}
	})
	return fired
}
