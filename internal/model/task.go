package model

import (
	"errors"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-day format used on the wire and in storage.
	DateLayout = "2006-01-02"
	// TimeLayout is the time-of-day format for task start times.
	TimeLayout = "15:04"
)

var (
	ErrInvalidDate     = errors.New("model: invalid task date")
	ErrInvalidTime     = errors.New("model: invalid task start time")
	ErrInvalidDuration = errors.New("model: task duration must be positive")
)

// Task is a single scheduled unit of work on the calendar.
type Task struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Date          string `json:"date"`      // calendar day, DateLayout
	StartTime     string `json:"startTime"` // time of day, TimeLayout
	Duration      int    `json:"duration"`  // minutes
	Completed     bool   `json:"completed"`
	TimeSpent     int64  `json:"timeSpent"` // accumulated seconds
	Category      string `json:"category"`
	ProjectID     string `json:"projectId,omitempty"`
	GoogleEventID string `json:"googleEventId,omitempty"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidDate
	}
	if _, err := time.Parse(TimeLayout, t.StartTime); err != nil {
		return ErrInvalidTime
	}
	if t.Duration <= 0 {
		return ErrInvalidDuration
	}
	if t.TimeSpent < 0 {
		return errors.New("model: task time spent must not be negative")
	}
	return nil
}

// TargetSeconds is the timer target derived from the planned duration.
func (t Task) TargetSeconds() int64 {
	return int64(t.Duration) * 60
}

// StartsAt resolves the task's scheduled start as a wall-clock time in loc.
func (t Task) StartsAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout+"T"+TimeLayout, t.Date+"T"+t.StartTime, loc)
}

// Day parses the calendar day the task is scheduled on.
func (t Task) Day() (time.Time, error) {
	return time.Parse(DateLayout, t.Date)
}
