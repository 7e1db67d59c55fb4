package api

func (s *Server) setupRoutes() {
	s.router.GET("/", s.healthHandler.ServiceInfo)
	s.router.GET("/health", s.healthHandler.HealthCheck)

	s.router.POST("/analyze", s.analyzeHandler.Analyze)

	s.router.GET("/alerts", s.alertsHandler.ListAlerts)
	s.router.POST("/alert", s.alertsHandler.CreateAlert)
	s.router.GET("/hotspots", s.alertsHandler.Hotspots)

	s.router.GET("/ws/alerts", s.feedHandler.AlertFeed)
}
