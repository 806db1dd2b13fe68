package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/store"
)

type ProjectHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewProjectHandler(st *store.Store, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{store: st, logger: logger}
}

type projectView struct {
	model.Project
	DerivedProgress int `json:"derivedProgress"`
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects := h.store.Projects()
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView{Project: p, DerivedProgress: p.DerivedProgress()})
	}
	c.JSON(http.StatusOK, gin.H{"projects": views})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, ok := h.store.ProjectByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": projectView{Project: p, DerivedProgress: p.DerivedProgress()}})
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project payload"})
		return
	}

	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	for i := range project.Milestones {
		if project.Milestones[i].ID == "" {
			project.Milestones[i].ID = uuid.NewString()
		}
	}
	if project.Status == "" {
		project.Status = model.StatusNotStarted
	}
	if project.Priority == "" {
		project.Priority = model.PriorityMedium
	}
	if err := project.Validate(); err != nil {
		h.logger.Warn("CreateProject: validation failed",
			zap.String("project_id", project.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.AddProject(project)
	c.JSON(http.StatusCreated, gin.H{"project": project})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID := c.Param("id")
	if _, ok := h.store.ProjectByID(projectID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	var updates store.ProjectUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}
	if updates.Status != nil && !updates.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": model.ErrInvalidStatus.Error()})
		return
	}
	if updates.Priority != nil && !updates.Priority.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": model.ErrInvalidPriority.Error()})
		return
	}

	h.store.UpdateProject(projectID, updates)
	p, _ := h.store.ProjectByID(projectID)
	c.JSON(http.StatusOK, gin.H{"project": projectView{Project: p, DerivedProgress: p.DerivedProgress()}})
}

// DeleteProject cascades: every task referencing the project goes with it.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	projectID := c.Param("id")
	if _, ok := h.store.ProjectByID(projectID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	h.store.DeleteProject(projectID)
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) GetProjectProgress(c *gin.Context) {
	progress, ok := h.store.ProjectProgress(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": progress})
}
