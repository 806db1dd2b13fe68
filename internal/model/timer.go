package model

import "time"

// Timer is the singleton countdown state. At most one task is ever being
// timed; an empty TaskID means the timer is idle.
type Timer struct {
	TaskID              string     `json:"taskId"`
	IsRunning           bool       `json:"isRunning"`
	ElapsedTime         int64      `json:"elapsedTime"` // seconds
	SnoozeUntil         *time.Time `json:"snoozeUntil,omitempty"`
	ContinuedPastTarget bool       `json:"continuedPastTarget"`
}

// IdleTimer is the reset value used on stop and on task-deletion cascade.
func IdleTimer() Timer {
	return Timer{}
}

func (t Timer) IsIdle() bool {
	return t.TaskID == "" && !t.IsRunning && t.ElapsedTime == 0 && t.SnoozeUntil == nil && !t.ContinuedPastTarget
}

func (t Timer) IsSnoozed() bool {
	return t.SnoozeUntil != nil
}
