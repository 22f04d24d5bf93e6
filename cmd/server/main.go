package main

import (
	"log"
	"net/http"

	config "inflation-forecast-api/configs"
	"inflation-forecast-api/pkg/handlers"
	"inflation-forecast-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()

	r := gin.Default()

	monitoringService := services.NewMonitoringService(1000)
	datasetService := services.NewDatasetService(cfg.InflationSkipRows)
	forecastService := services.NewForecastService(datasetService)

	forecastHandler := handlers.NewForecastHandler(forecastService, cfg.MaxUploadMB)
	monitoringHandler := handlers.NewMonitoringHandler(monitoringService)

	r.Use(monitoringService.LoggingMiddleware())
	r.Use(cors.Default())

	authMiddleware := func(apiKey string) gin.HandlerFunc {
		return func(c *gin.Context) {
			if apiKey == "" {
				c.Next()
				return
			}
			providedKey := c.GetHeader("X-API-KEY")
			if providedKey != apiKey {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			c.Next()
		}
	}

	r.GET("/", handlers.IndexPage)
	r.GET("/health", handlers.HealthCheck)

	v1 := r.Group("/api/v1")
	v1.Use(authMiddleware(cfg.APIKey))
	{
		forecast := v1.Group("/forecast")
		{
			forecast.POST("", forecastHandler.Forecast)
			forecast.GET("/settings", forecastHandler.Settings)
		}

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("/logs", monitoringHandler.GetLogs)
		}
	}

	log.Printf("Starting Inflation Forecast API server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
