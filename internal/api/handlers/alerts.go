package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/logging"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/services/analysis"
)

const (
	defaultAlertsLimit   = 100
	defaultHotspotsLimit = 50
)

// ErrorResponse is the error payload returned by all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type AlertsHandler struct {
	svc *analysis.Service
}

func NewAlertsHandler(svc *analysis.Service) *AlertsHandler {
	return &AlertsHandler{svc: svc}
}

// ListAlerts returns the most recent persisted alerts
// @Summary List recent alerts
// @Description Return up to limit alerts ordered most recent first
// @Tags alerts
// @Produce json
// @Param limit query int false "Maximum number of alerts" default(100)
// @Success 200 {object} map[string][]models.AlertEvent
// @Router /alerts [get]
func (h *AlertsHandler) ListAlerts(c *gin.Context) {
	limit := atoiDefault(c.Query("limit"), defaultAlertsLimit)

	alerts, err := h.svc.RecentAlerts(limit)
	if err != nil {
		logging.Error(c).Err(err).Msg("Failed to query alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if alerts == nil {
		alerts = []models.AlertEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// Hotspots returns the spatial aggregation over persisted alerts
// @Summary Alert hotspots
// @Description Group persisted alerts by 3-decimal lat/lon bucket, busiest first
// @Tags alerts
// @Produce json
// @Param limit query int false "Maximum number of buckets" default(50)
// @Success 200 {object} map[string][]models.HotspotBucket
// @Router /hotspots [get]
func (h *AlertsHandler) Hotspots(c *gin.Context) {
	limit := atoiDefault(c.Query("limit"), defaultHotspotsLimit)

	hotspots, err := h.svc.Hotspots(limit)
	if err != nil {
		logging.Error(c).Err(err).Msg("Failed to query hotspots")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if hotspots == nil {
		hotspots = []models.HotspotBucket{}
	}

	c.JSON(http.StatusOK, gin.H{"hotspots": hotspots})
}

// CreateAlert persists a manually created alert
// @Summary Create a manual alert
// @Description Persist one alert event; all fields are optional with defaults
// @Tags alerts
// @Accept json
// @Produce json
// @Param request body map[string]interface{} false "alert_type|type, description|desc, latitude, longitude"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /alert [post]
func (h *AlertsHandler) CreateAlert(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON required"})
		return
	}

	alertType := stringField(body, "alert_type", "type")
	if alertType == "" {
		alertType = string(models.AlertTypeManual)
	}
	description := stringField(body, "description", "desc")
	if description == "" {
		description = "manual alert"
	}

	event := &models.AlertEvent{
		Type:        models.AlertType(alertType),
		Description: description,
		Latitude:    floatField(body, "latitude"),
		Longitude:   floatField(body, "longitude"),
	}

	if err := h.svc.RecordManualAlert(event); err != nil {
		logging.Error(c).Err(err).Msg("Failed to persist manual alert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logging.Info(c).Str("alert_type", alertType).Msg("Manual alert recorded")
	c.JSON(http.StatusOK, gin.H{"status": "ok", "type": alertType, "description": description})
}

// atoiDefault parses a positive integer, falling back to def on anything
// else.
func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// stringField returns the first non-empty string value among the given keys.
func stringField(body map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := body[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// floatField extracts an optional coordinate, accepting JSON numbers and
// numeric strings. Anything else counts as absent.
func floatField(body map[string]interface{}, key string) *float64 {
	switch v := body[key].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}
