package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/handler"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/notify"
	"github.com/hasanulkarim/UltimateProjectPlanner/pkg/metrics"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Tasks      *handler.TaskHandler
	Projects   *handler.ProjectHandler
	Timer      *handler.TimerHandler
	Stats      *handler.StatsHandler
	Session    *handler.SessionHandler
	Categories *handler.CategoryHandler
}

// Pinger is the readiness hook of the durable local store. Nil skips the
// check (in-memory runs).
type Pinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(h Handlers, db Pinger, publisher *notify.Publisher, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), strconv.Itoa(status), latency)
		logger.Info("HTTP Request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c, 1*time.Second)
		defer cancel()

		if db != nil {
			if err := db.Ping(ctx); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "db_not_ready", "error": err.Error()})
				return
			}
		}

		if publisher != nil && !publisher.IsConnected() {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "mq_not_ready"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/tasks", h.Tasks.ListTasks)
	r.POST("/tasks", h.Tasks.CreateTask)
	r.GET("/tasks/:id", h.Tasks.GetTask)
	r.PATCH("/tasks/:id", h.Tasks.UpdateTask)
	r.DELETE("/tasks/:id", h.Tasks.DeleteTask)
	r.POST("/tasks/:id/complete", h.Tasks.ToggleTaskComplete)

	r.GET("/timer", h.Timer.GetTimer)
	r.POST("/timer/start", h.Timer.StartTimer)
	r.POST("/timer/pause", h.Timer.PauseTimer)
	r.POST("/timer/stop", h.Timer.StopTimer)
	r.POST("/timer/snooze", h.Timer.SnoozeTask)

	r.GET("/projects", h.Projects.ListProjects)
	r.POST("/projects", h.Projects.CreateProject)
	r.GET("/projects/:id", h.Projects.GetProject)
	r.PATCH("/projects/:id", h.Projects.UpdateProject)
	r.DELETE("/projects/:id", h.Projects.DeleteProject)
	r.GET("/projects/:id/progress", h.Projects.GetProjectProgress)

	r.GET("/categories", h.Categories.ListCategories)
	r.POST("/categories", h.Categories.AddCategory)
	r.DELETE("/categories/:name", h.Categories.DeleteCategory)

	r.GET("/stats/categories", h.Stats.CategoryStats)
	r.GET("/stats/projects", h.Stats.ProjectStats)
	r.GET("/stats/timeseries", h.Stats.TimeSeries)

	r.POST("/session", h.Session.SignIn)
	r.DELETE("/session", h.Session.SignOut)

	return r
}
