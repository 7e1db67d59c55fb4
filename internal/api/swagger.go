package api

import (
	"net/http"

	_ "github.com/vedantmohite26/women-safety-analytics-SOS-safety/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (s *Server) setupSwagger() {
	s.router.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":       "Women Safety Analytics API",
			"version":     s.config.Version,
			"description": "Single-frame safety analysis: person detection, distress heuristics, alert log and hotspot aggregation",
			"swagger_ui":  "/docs/index.html",
			"endpoints": gin.H{
				"analyze":    "/analyze",
				"alerts":     "/alerts",
				"hotspots":   "/hotspots",
				"alert_feed": "/ws/alerts",
				"health":     "/health",
			},
			"service_id": s.config.ServiceID,
			"port":       s.config.Port,
		})
	})

	s.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	s.router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
}
