package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/config"
)

type HealthHandler struct {
	serviceID string
	version   string
	mockMode  bool
}

func NewHealthHandler(cfg *config.Config, mockMode bool) *HealthHandler {
	return &HealthHandler{
		serviceID: cfg.ServiceID,
		version:   cfg.Version,
		mockMode:  mockMode,
	}
}

type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	ServiceID string `json:"service_id" example:"safety-analytics-1"`
}

type ServiceInfoResponse struct {
	ServiceID    string   `json:"service_id" example:"safety-analytics-1"`
	Status       string   `json:"status" example:"running"`
	Version      string   `json:"version" example:"1.0.0"`
	MockMode     bool     `json:"mock_mode"`
	Capabilities []string `json:"capabilities"`
}

// @Summary Health check
// @Description Check if the service is healthy and responsive
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		ServiceID: h.serviceID,
	})
}

// @Summary Service information
// @Description Get basic service information and capabilities
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} ServiceInfoResponse
// @Router / [get]
func (h *HealthHandler) ServiceInfo(c *gin.Context) {
	capabilities := []string{
		"frame_analysis",
		"alert_log",
		"hotspot_aggregation",
	}
	if !h.mockMode {
		capabilities = append(capabilities, "person_detection")
	}

	c.JSON(http.StatusOK, ServiceInfoResponse{
		ServiceID:    h.serviceID,
		Status:       "running",
		Version:      h.version,
		MockMode:     h.mockMode,
		Capabilities: capabilities,
	})
}
