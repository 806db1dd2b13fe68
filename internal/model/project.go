package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid project status")
	ErrInvalidPriority = errors.New("model: invalid project priority")
)

type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "not-started"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusOnHold     ProjectStatus = "on-hold"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Milestone is owned exclusively by its parent project.
type Milestone struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	DueDate     string `json:"dueDate"` // DateLayout
	Completed   bool   `json:"completed"`
	Description string `json:"description,omitempty"`
}

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	StartDate   string        `json:"startDate"` // DateLayout
	DueDate     string        `json:"dueDate,omitempty"`
	Status      ProjectStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	Categories  []string      `json:"categories"`
	Progress    int           `json:"progress"` // manual override, 0-100
	Milestones  []Milestone   `json:"milestones"`
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: project id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: project name is required")
	}
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, p.Status)
	}
	if !p.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, p.Priority)
	}
	if p.Progress < 0 || p.Progress > 100 {
		return errors.New("model: project progress must be within 0-100")
	}
	return nil
}

// DerivedProgress returns the project's completion percentage.
//
// Milestone-override policy: once a project has milestones, progress is
// derived from the completed-milestone ratio and the manually edited
// Progress field is ignored. The manual field only applies to projects
// without milestones.
func (p Project) DerivedProgress() int {
	if len(p.Milestones) == 0 {
		return p.Progress
	}
	completed := 0
	for _, m := range p.Milestones {
		if m.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(p.Milestones)) * 100))
}
