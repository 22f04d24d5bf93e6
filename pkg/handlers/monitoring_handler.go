package handlers

import (
	"net/http"
	"strconv"

	"inflation-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// MonitoringHandler exposes the in-memory request log.
type MonitoringHandler struct {
	svc *services.MonitoringService
}

// NewMonitoringHandler creates a MonitoringHandler.
func NewMonitoringHandler(svc *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{svc: svc}
}

// GetLogs returns recent request logs, newest first. Query param: limit.
func (h *MonitoringHandler) GetLogs(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	logs := h.svc.RecentLogs(limit)
	c.JSON(http.StatusOK, gin.H{"logs": logs, "count": len(logs)})
}
