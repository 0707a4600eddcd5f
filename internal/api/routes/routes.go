// Package routes wires handlers and middleware onto the echo server.
package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/StephCurry07/Appication-Tracker/internal/api/handlers"
	"github.com/StephCurry07/Appication-Tracker/internal/api/middleware"
	"github.com/StephCurry07/Appication-Tracker/internal/background"
	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/internal/extractor/workers"
	"github.com/StephCurry07/Appication-Tracker/internal/llm"
)

// SetupRoutes configures all API routes.
func SetupRoutes(e *echo.Echo, cfg *config.Config, poolManager *workers.PoolManager, llmManager *llm.Manager, taskManager background.TaskManager) {
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Extraction can spend the full fetch timeout plus cleanup, so leave
	// headroom beyond the read timeout.
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout + 30*time.Second))

	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(poolManager, llmManager))
		health.GET("/live", handlers.LivenessHandler)
		health.GET("/workers", handlers.WorkerHealthHandler(poolManager))
	}

	e.GET("/status", handlers.StatusHandler(poolManager, llmManager))

	v1 := e.Group("/api/v1")
	{
		v1.POST("/extract", handlers.ExtractHandler(cfg, poolManager))
		v1.POST("/extract/async", handlers.AsyncExtractHandler(cfg, poolManager, taskManager))
		v1.GET("/tasks/:processId", handlers.TaskStatusHandler(taskManager))

		workerRoutes := v1.Group("/workers")
		{
			workerRoutes.GET("/stats", handlers.WorkerStatsHandler(poolManager))
		}

		domains := v1.Group("/domains")
		{
			domains.GET("/:domain/stats", handlers.DomainStatsHandler(poolManager))
		}
	}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Application Tracker Extractor",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
