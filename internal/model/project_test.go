package model

import (
	"errors"
	"testing"
)

func validProject() Project {
	return Project{
		ID:        "p1",
		Name:      "Website redesign",
		StartDate: "2026-01-05",
		Status:    StatusInProgress,
		Priority:  PriorityHigh,
	}
}

func TestProjectValidate(t *testing.T) {
	if err := validProject().Validate(); err != nil {
		t.Fatalf("valid project rejected: %v", err)
	}

	p := validProject()
	p.Status = "paused"
	if err := p.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	p = validProject()
	p.Priority = "urgent"
	if err := p.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}

	p = validProject()
	p.Progress = 101
	if err := p.Validate(); err == nil {
		t.Fatalf("expected out-of-range progress to be rejected")
	}
}

func TestDerivedProgressManualWithoutMilestones(t *testing.T) {
	p := validProject()
	p.Progress = 40
	if got := p.DerivedProgress(); got != 40 {
		t.Fatalf("expected manual progress 40, got %d", got)
	}
}

func TestDerivedProgressMilestonesOverrideManual(t *testing.T) {
	p := validProject()
	p.Progress = 40
	p.Milestones = []Milestone{
		{ID: "m1", Title: "Design", Completed: true},
		{ID: "m2", Title: "Build", Completed: true},
		{ID: "m3", Title: "Launch"},
	}
	// 2 of 3 completed rounds to 67, ignoring the manual field.
	if got := p.DerivedProgress(); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
}

func TestDerivedProgressAllStates(t *testing.T) {
	p := validProject()
	p.Milestones = []Milestone{{ID: "m1"}, {ID: "m2"}}
	if got := p.DerivedProgress(); got != 0 {
		t.Fatalf("no completed milestones: expected 0, got %d", got)
	}
	p.Milestones[0].Completed = true
	if got := p.DerivedProgress(); got != 50 {
		t.Fatalf("half completed: expected 50, got %d", got)
	}
	p.Milestones[1].Completed = true
	if got := p.DerivedProgress(); got != 100 {
		t.Fatalf("all completed: expected 100, got %d", got)
	}
}
