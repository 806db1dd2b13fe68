package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/store"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/timer"
)

type TimerHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewTimerHandler(st *store.Store, logger *zap.Logger) *TimerHandler {
	return &TimerHandler{store: st, logger: logger}
}

// GetTimer returns the timer plus the signed remaining seconds for display.
// Remaining goes negative on overrun; the sign is the client's to format.
func (h *TimerHandler) GetTimer(c *gin.Context) {
	t := h.store.Timer()
	resp := gin.H{"timer": t}
	if t.TaskID != "" {
		if task, ok := h.store.TaskByID(t.TaskID); ok {
			resp["remainingSeconds"] = timer.Remaining(t, task)
			resp["targetReached"] = timer.TargetReached(t, task)
		}
	}
	c.JSON(http.StatusOK, resp)
}

type startTimerRequest struct {
	TaskID             string `json:"taskId"`
	ContinuePastTarget bool   `json:"continuePastTarget"`
}

func (h *TimerHandler) StartTimer(c *gin.Context) {
	var req startTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId required"})
		return
	}
	if _, ok := h.store.TaskByID(req.TaskID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	h.store.StartTimer(req.TaskID, req.ContinuePastTarget)
	c.JSON(http.StatusOK, gin.H{"timer": h.store.Timer()})
}

func (h *TimerHandler) PauseTimer(c *gin.Context) {
	h.store.PauseTimer()
	c.JSON(http.StatusOK, gin.H{"timer": h.store.Timer()})
}

func (h *TimerHandler) StopTimer(c *gin.Context) {
	h.store.StopTimer()
	c.JSON(http.StatusOK, gin.H{"timer": h.store.Timer()})
}

type snoozeRequest struct {
	TaskID  string `json:"taskId"`
	Minutes int    `json:"minutes"`
}

func (h *TimerHandler) SnoozeTask(c *gin.Context) {
	var req snoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taskId required"})
		return
	}
	if req.Minutes <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "minutes must be positive"})
		return
	}
	if _, ok := h.store.TaskByID(req.TaskID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	h.store.SnoozeTask(req.TaskID, req.Minutes)
	h.logger.Info("Task snoozed via API",
		zap.String("task_id", req.TaskID),
		zap.Int("minutes", req.Minutes),
	)
	c.JSON(http.StatusOK, gin.H{"timer": h.store.Timer()})
}
