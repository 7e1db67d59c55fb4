package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/detector"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/logging"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/services/analysis"
)

type AnalyzeHandler struct {
	svc *analysis.Service
}

func NewAnalyzeHandler(svc *analysis.Service) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc}
}

// Analyze analyzes a single uploaded frame
// @Summary Analyze a single image frame
// @Description Detect persons in the uploaded image, run the distress heuristics and return fired alerts. The image is sent as multipart field "image" or as the raw request body. All other fields are optional caller-supplied hints.
// @Tags analysis
// @Accept mpfd
// @Produce json
// @Param image formData file false "Image to analyze"
// @Param timestamp formData string false "ISO-8601 timestamp used by the night-window rule"
// @Param latitude formData number false "Latitude attached to fired alerts"
// @Param longitude formData number false "Longitude attached to fired alerts"
// @Param gender formData string false "Unverified declared-gender hint"
// @Param female_index formData integer false "Index of the person claimed to be female"
// @Param mock_person_count formData integer false "Synthesized person count when the detector is unavailable"
// @Success 200 {object} models.AnalyzeResponse
// @Failure 400 {object} ErrorResponse
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	imageData, err := readImage(c)
	if err != nil && !h.svc.MockMode() {
		logging.Warn(c).Err(err).Msg("Failed to read image from request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image", "details": err.Error()})
		return
	}

	req := parseAnalysisRequest(c)

	resp, err := h.svc.AnalyzeFrame(imageData, req)
	if err != nil {
		if errors.Is(err, detector.ErrImageDecode) {
			logging.Warn(c).Err(err).Msg("Image decode failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image", "details": err.Error()})
			return
		}
		logging.Error(c).Err(err).Msg("Frame analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// readImage accepts the frame via the multipart field "image" or the raw
// request body.
func readImage(c *gin.Context) ([]byte, error) {
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	}
	return c.GetRawData()
}

// parseAnalysisRequest collects the optional context hints from form or
// query fields. Malformed values degrade to their absent state; they never
// fail the request.
func parseAnalysisRequest(c *gin.Context) models.AnalysisRequest {
	req := models.AnalysisRequest{
		Timestamp: formOrQuery(c, "timestamp"),
		Gender:    formOrQuery(c, "gender"),
		Latitude:  parseFloatField(c, "latitude"),
		Longitude: parseFloatField(c, "longitude"),
	}

	if v := formOrQuery(c, "female_index"); v != "" {
		if idx, err := strconv.Atoi(v); err == nil {
			req.FemaleIndex = &idx
		}
	}

	if v := formOrQuery(c, "mock_person_count"); v != "" {
		if count, err := strconv.Atoi(v); err == nil && count > 0 {
			req.MockPersonCount = count
		}
	}

	if v := formOrQuery(c, "wrist_history"); v != "" {
		req.WristHistory = parseWristHistory(v)
	}

	return req
}

// formOrQuery mirrors the original upload API: form fields win, query
// parameters are the fallback.
func formOrQuery(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}

func parseFloatField(c *gin.Context, key string) *float64 {
	v := formOrQuery(c, key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseWristHistory parses a comma-separated list of horizontal wrist
// positions. Any malformed entry invalidates the whole history (fail
// closed).
func parseWristHistory(raw string) []float64 {
	parts := strings.Split(raw, ",")
	history := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil
		}
		history = append(history, f)
	}
	return history
}
