// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/JordyS97/dealer-analytics-dashboard/internal/api/handlers"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/api/middleware"
	"github.com/JordyS97/dealer-analytics-dashboard/internal/service"
)

type Services struct {
	DashboardService *service.DashboardService
	IngestService    *service.IngestService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.DashboardService != nil {
			dashboardHandler := handlers.NewDashboardHandler(services.DashboardService)
			dashboardGroup := apiGroup.Group("/dashboard")
			{
				dashboardGroup.GET("/overview", dashboardHandler.GetOverview)
				dashboardGroup.GET("/dealers", dashboardHandler.GetDealers)
				dashboardGroup.GET("/demographics", dashboardHandler.GetDemographics)
				dashboardGroup.GET("/finance", dashboardHandler.GetFinance)
				dashboardGroup.GET("/mtd", dashboardHandler.GetMTD)
				dashboardGroup.GET("/prospects", dashboardHandler.GetProspects)
				dashboardGroup.GET("/salespeople", dashboardHandler.GetSalespeople)
				dashboardGroup.GET("/salespeople/:name/profile", dashboardHandler.GetSalespersonProfile)
				dashboardGroup.GET("/alerts", dashboardHandler.GetAlerts)
				dashboardGroup.GET("/insights", dashboardHandler.GetInsights)
			}
			apiGroup.GET("/filters/options", dashboardHandler.GetFilterOptions)
		}

		if services.IngestService != nil {
			uploadHandler := handlers.NewUploadHandler(services.IngestService)
			apiGroup.POST("/upload/:kind", uploadHandler.Upload)
		}
	}

	return router
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	log.Error().Msg(message)
	c.JSON(statusCode, gin.H{"error": message})
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
