package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	config "inflation-forecast-api/configs"
	"inflation-forecast-api/pkg/handlers"
	"inflation-forecast-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestApplicationSetup(t *testing.T) {
	cfg := config.LoadConfig()
	assert.NotNil(t, cfg, "Config should not be nil")

	datasetService := services.NewDatasetService(cfg.InflationSkipRows)
	assert.NotNil(t, datasetService, "DatasetService should not be nil")

	forecastService := services.NewForecastService(datasetService)
	assert.NotNil(t, forecastService, "ForecastService should not be nil")

	forecastHandler := handlers.NewForecastHandler(forecastService, cfg.MaxUploadMB)
	assert.NotNil(t, forecastHandler, "ForecastHandler should not be nil")

	monitoringService := services.NewMonitoringService(100)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)
	assert.NotNil(t, monitoringHandler, "MonitoringHandler should not be nil")
}

func TestRouterSetup(t *testing.T) {
	r := gin.New()

	monitoringService := services.NewMonitoringService(100)
	r.Use(monitoringService.LoggingMiddleware())

	r.GET("/health", handlers.HealthCheck)
	r.GET("/", handlers.IndexPage)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("GET", "/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	logs := monitoringService.RecentLogs(10)
	assert.Len(t, logs, 2, "middleware should have recorded both requests")
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()

	apiKey := "secret"
	r.Use(func(c *gin.Context) {
		if c.GetHeader("X-API-KEY") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	})
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req, _ = http.NewRequest("GET", "/protected", nil)
	req.Header.Set("X-API-KEY", apiKey)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
