package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/api/handlers"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/config"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/services"
)

type Server struct {
	config *config.Config
	router *gin.Engine
	server *http.Server

	healthHandler  *handlers.HealthHandler
	analyzeHandler *handlers.AnalyzeHandler
	alertsHandler  *handlers.AlertsHandler
	feedHandler    *handlers.FeedHandler
}

func NewServer(cfg *config.Config, sc *services.ServiceContainer) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:         cfg,
		router:         gin.New(),
		healthHandler:  handlers.NewHealthHandler(cfg, sc.Analysis.MockMode()),
		analyzeHandler: handlers.NewAnalyzeHandler(sc.Analysis),
		alertsHandler:  handlers.NewAlertsHandler(sc.Analysis),
		feedHandler:    handlers.NewFeedHandler(sc.Hub),
	}

	s.setupMiddleware()
	s.setupRoutes()
	s.setupSwagger()

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.router,
	}

	return s
}

func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
