package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/stats"
	"github.com/hasanulkarim/UltimateProjectPlanner/internal/store"
)

type StatsHandler struct {
	store  *store.Store
	logger *zap.Logger
}

func NewStatsHandler(st *store.Store, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{store: st, logger: logger}
}

func (h *StatsHandler) CategoryStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": stats.CategoryStats(h.store.Tasks())})
}

func (h *StatsHandler) ProjectStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": stats.ProjectStats(h.store.Tasks(), h.store.Projects())})
}

// TimeSeries serves the chart data: pooled by default, per-category stacked
// with ?stacked=true. Values are hours rounded at this presentation boundary;
// the engine itself aggregates in seconds.
func (h *StatsHandler) TimeSeries(c *gin.Context) {
	r := stats.TimeRange(c.DefaultQuery("range", string(stats.RangeWeek)))
	if !r.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "range must be week, month or year"})
		return
	}

	ref := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse(model.DateLayout, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		ref = parsed
	}

	dr := stats.DateRangeFor(r, ref)
	tasks := h.store.Tasks()

	if c.Query("stacked") == "true" {
		points := stats.StackedTimeSeries(tasks, dr, h.store.Categories())
		out := make([]gin.H, 0, len(points))
		for _, p := range points {
			values := make(map[string]float64, len(p.Values))
			for cat, seconds := range p.Values {
				values[cat] = stats.Hours(seconds)
			}
			out = append(out, gin.H{"date": p.Date, "values": values})
		}
		c.JSON(http.StatusOK, gin.H{"series": out})
		return
	}

	points := stats.TimeSeries(tasks, dr, c.DefaultQuery("category", "all"))
	out := make([]gin.H, 0, len(points))
	for _, p := range points {
		out = append(out, gin.H{"date": p.Date, "time": stats.Hours(p.Time)})
	}
	c.JSON(http.StatusOK, gin.H{"series": out})
}
