package store

import (
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/storage"
)

// ProjectUpdate is a partial project edit; nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string              `json:"name,omitempty"`
	Description *string              `json:"description,omitempty"`
	StartDate   *string              `json:"startDate,omitempty"`
	DueDate     *string              `json:"dueDate,omitempty"`
	Status      *model.ProjectStatus `json:"status,omitempty"`
	Priority    *model.Priority      `json:"priority,omitempty"`
	Categories  *[]string            `json:"categories,omitempty"`
	Progress    *int                 `json:"progress,omitempty"`
	Milestones  *[]model.Milestone   `json:"milestones,omitempty"`
}

func (u ProjectUpdate) apply(p model.Project) model.Project {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.StartDate != nil {
		p.StartDate = *u.StartDate
	}
	if u.DueDate != nil {
		p.DueDate = *u.DueDate
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.Priority != nil {
		p.Priority = *u.Priority
	}
	if u.Categories != nil {
		p.Categories = cloneStrings(*u.Categories)
	}
	if u.Progress != nil {
		p.Progress = *u.Progress
	}
	if u.Milestones != nil {
		p.Milestones = append([]model.Milestone{}, (*u.Milestones)...)
	}
	return p
}

// AddProject appends a project, normalizing the manual progress default and
// a non-nil milestone slice.
func (s *Store) AddProject(project model.Project) {
	s.mutate("add_project", func() map[string]any {
		if project.Progress < 0 {
			project.Progress = 0
		}
		if project.Milestones == nil {
			project.Milestones = []model.Milestone{}
		}
		next := cloneProjects(s.projects)
		next = append(next, project)
		s.projects = next
		s.logger.Debug("Project added", zap.String("project_id", project.ID), zap.String("name", project.Name))
		return map[string]any{storage.KeyProjects: next}
	})
}

// UpdateProject applies a partial edit to one project. Unknown ids are a
// no-op.
func (s *Store) UpdateProject(projectID string, updates ProjectUpdate) {
	s.mutate("update_project", func() map[string]any {
		next := cloneProjects(s.projects)
		for i, p := range next {
			if p.ID == projectID {
				next[i] = updates.apply(p)
			}
		}
		s.projects = next
		return map[string]any{storage.KeyProjects: next}
	})
}

// DeleteProject removes a project and, in the same atomic transition, every
// task that references it. Both collections go to the remote mirror as one
// patch so no intermediate inconsistent remote state is observable.
func (s *Store) DeleteProject(projectID string) {
	s.mutate("delete_project", func() map[string]any {
		nextProjects := make([]model.Project, 0, len(s.projects))
		for _, p := range s.projects {
			if p.ID != projectID {
				nextProjects = append(nextProjects, p)
			}
		}

		nextTasks := make([]model.Task, 0, len(s.tasks))
		removed := 0
		for _, t := range s.tasks {
			if t.ProjectID == projectID {
				removed++
				continue
			}
			nextTasks = append(nextTasks, t)
		}

		s.projects = nextProjects
		s.tasks = nextTasks
		s.logger.Debug("Project deleted",
			zap.String("project_id", projectID),
			zap.Int("cascaded_tasks", removed),
		)
		return map[string]any{
			storage.KeyProjects: nextProjects,
			storage.KeyTasks:    nextTasks,
		}
	})
}
