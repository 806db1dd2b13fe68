package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/calendar"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/store"
)

type TaskHandler struct {
	store    *store.Store
	exporter *calendar.Exporter // nil when calendar export is disabled
	logger   *zap.Logger
}

func NewTaskHandler(st *store.Store, exporter *calendar.Exporter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{store: st, exporter: exporter, logger: logger}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tasks": h.store.Tasks()})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := h.store.TaskByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": task})
}

type createTaskRequest struct {
	model.Task
	ExportToCalendar bool `json:"exportToCalendar"`
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}

	task := req.Task
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if err := task.Validate(); err != nil {
		h.logger.Warn("CreateTask: validation failed",
			zap.String("task_id", task.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Calendar export is best-effort: a failure leaves the task without an
	// external event id and is not an error for the caller.
	if req.ExportToCalendar && h.exporter != nil {
		eventID, err := h.exporter.Export(task)
		if err != nil {
			h.logger.Warn("CreateTask: calendar export failed",
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
		} else {
			task.GoogleEventID = eventID
		}
	}

	h.store.AddTask(task)
	c.JSON(http.StatusCreated, gin.H{"task": task})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID := c.Param("id")
	if _, ok := h.store.TaskByID(taskID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var updates store.TaskUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid update payload"})
		return
	}
	if updates.Duration != nil && *updates.Duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": model.ErrInvalidDuration.Error()})
		return
	}

	h.store.UpdateTask(taskID, updates)
	task, _ := h.store.TaskByID(taskID)
	c.JSON(http.StatusOK, gin.H{"task": task})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID := c.Param("id")
	task, ok := h.store.TaskByID(taskID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	if task.GoogleEventID != "" && h.exporter != nil {
		if err := h.exporter.Delete(task.GoogleEventID); err != nil {
			h.logger.Warn("DeleteTask: calendar event cleanup failed",
				zap.String("task_id", taskID),
				zap.String("event_id", task.GoogleEventID),
				zap.Error(err),
			)
		}
	}

	h.store.DeleteTask(taskID)
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) ToggleTaskComplete(c *gin.Context) {
	taskID := c.Param("id")
	if _, ok := h.store.TaskByID(taskID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	h.store.ToggleTaskComplete(taskID)
	task, _ := h.store.TaskByID(taskID)
	c.JSON(http.StatusOK, gin.H{"task": task})
}
