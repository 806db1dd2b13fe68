// Package timer owns the countdown lifecycle around the store's singleton
// timer value: the once-per-second tick loop, the snooze poll, and target
// completion detection.
package timer

import (
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
)

// TargetReached reports whether the running countdown has hit the task's
// planned duration. It stays false once the user has chosen to continue past
// the target, and the conventional response to a true result is to pause the
// timer immediately, which keeps the detection from re-firing every tick.
func TargetReached(t model.Timer, task model.Task) bool {
	if !t.IsRunning || t.TaskID == "" || t.TaskID != task.ID {
		return false
	}
	if t.ContinuedPastTarget {
		return false
	}
	return t.ElapsedTime >= task.TargetSeconds()
}

// Remaining is the signed number of seconds left before the task's target.
// It goes negative on overrun; formatting the sign is the display layer's
// concern.
func Remaining(t model.Timer, task model.Task) int64 {
	return task.TargetSeconds() - t.ElapsedTime
}
