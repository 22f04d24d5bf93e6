package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLog is a single recorded API request.
type RequestLog struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time_ns"`
}

// MonitoringService keeps an in-memory log of recent requests. Nothing is
// persisted; the log lives only as long as the process.
type MonitoringService struct {
	mu      sync.RWMutex
	logs    []RequestLog
	maxLogs int
}

// NewMonitoringService creates a MonitoringService retaining up to maxLogs entries.
func NewMonitoringService(maxLogs int) *MonitoringService {
	if maxLogs <= 0 {
		maxLogs = 1000
	}
	return &MonitoringService{maxLogs: maxLogs}
}

// LogRequest records one request, evicting the oldest entry when full.
func (s *MonitoringService) LogRequest(entry RequestLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > s.maxLogs {
		s.logs = s.logs[len(s.logs)-s.maxLogs:]
	}
}

// RecentLogs returns up to limit most recent entries, newest first.
func (s *MonitoringService) RecentLogs(limit int) []RequestLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.logs) {
		limit = len(s.logs)
	}
	out := make([]RequestLog, 0, limit)
	for i := len(s.logs) - 1; i >= len(s.logs)-limit; i-- {
		out = append(out, s.logs[i])
	}
	return out
}

// LoggingMiddleware records request metadata for every non-monitoring route.
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(RequestLog{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		})
	}
}
