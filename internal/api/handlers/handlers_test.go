package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/config"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/services/analysis"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/store/sqlite"
)

// newTestRouter wires the HTTP surface against a temp-file alert store and a
// nil detector, so every request runs in mock mode.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir, err := os.MkdirTemp("", "handlers-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := sqlite.New(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		ServiceID:     "safety-analytics-test",
		Version:       "test",
		AlertsSubject: "alerts",
	}
	svc := analysis.NewService(cfg, nil, sqlite.NewAlertRepository(db), nil, nil, zerolog.Nop())

	router := gin.New()
	health := NewHealthHandler(cfg, svc.MockMode())
	analyze := NewAnalyzeHandler(svc)
	alerts := NewAlertsHandler(svc)

	router.GET("/", health.ServiceInfo)
	router.GET("/health", health.HealthCheck)
	router.POST("/analyze", analyze.Analyze)
	router.GET("/alerts", alerts.ListAlerts)
	router.POST("/alert", alerts.CreateAlert)
	router.GET("/hotspots", alerts.Hotspots)

	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestAnalyzeMockModeSynthesizesPersons(t *testing.T) {
	router := newTestRouter(t)

	form := "mock_person_count=3&gender=female&timestamp=2024-01-15T22:30:00&latitude=12.9716&longitude=77.5946"
	w := doRequest(t, router, http.MethodPost, "/analyze", "application/x-www-form-urlencoded", []byte(form))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.AnalyzeResponse
	decodeJSON(t, w, &resp)

	if resp.FrameID == "" {
		t.Error("expected a frame id")
	}
	if resp.PersonCount != 3 {
		t.Errorf("expected 3 persons, got %d", resp.PersonCount)
	}
	if len(resp.Persons) != 3 {
		t.Errorf("expected 3 person entries, got %d", len(resp.Persons))
	}
	if resp.GenderDistribution.Unknown != 3 {
		t.Errorf("expected 3 unknown in gender distribution, got %+v", resp.GenderDistribution)
	}
	// Three persons: the lone-woman rule must not fire.
	for _, a := range resp.Alerts {
		if a.Type == models.AlertTypeLoneWomanNight {
			t.Errorf("lone_woman_night fired with %d persons", resp.PersonCount)
		}
	}
}

func TestAnalyzeMockModeLoneWomanAlert(t *testing.T) {
	router := newTestRouter(t)

	form := "mock_person_count=1&gender=female&timestamp=2024-01-15T22:30:00&latitude=12.9716&longitude=77.5946"
	w := doRequest(t, router, http.MethodPost, "/analyze", "application/x-www-form-urlencoded", []byte(form))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.AnalyzeResponse
	decodeJSON(t, w, &resp)

	if len(resp.Alerts) != 1 {
		t.Fatalf("expected exactly one alert, got %d: %+v", len(resp.Alerts), resp.Alerts)
	}
	alert := resp.Alerts[0]
	if alert.Type != models.AlertTypeLoneWomanNight {
		t.Errorf("expected %s, got %s", models.AlertTypeLoneWomanNight, alert.Type)
	}
	if alert.Latitude == nil || *alert.Latitude != 12.9716 {
		t.Errorf("expected latitude 12.9716 on the alert, got %v", alert.Latitude)
	}

	// The fired alert must be visible through the alert log.
	w = doRequest(t, router, http.MethodGet, "/alerts", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var listing struct {
		Alerts []models.AlertEvent `json:"alerts"`
	}
	decodeJSON(t, w, &listing)
	if len(listing.Alerts) != 1 || listing.Alerts[0].Type != models.AlertTypeLoneWomanNight {
		t.Errorf("expected the persisted lone_woman_night alert, got %+v", listing.Alerts)
	}
}

func TestAnalyzeMockModeEmptyRequest(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/analyze", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if !strings.Contains(w.Body.String(), `"alerts":[]`) {
		t.Errorf("expected empty alerts array, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"persons":[]`) {
		t.Errorf("expected empty persons array, got %s", w.Body.String())
	}
}

func TestAnalyzeAcceptsMultipartImage(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "frame.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write([]byte("not-a-real-jpeg"))
	mw.WriteField("mock_person_count", "2")
	mw.Close()

	// In mock mode the image bytes are never decoded, so garbage is fine.
	w := doRequest(t, router, http.MethodPost, "/analyze", mw.FormDataContentType(), buf.Bytes())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.AnalyzeResponse
	decodeJSON(t, w, &resp)
	if resp.PersonCount != 2 {
		t.Errorf("expected 2 persons, got %d", resp.PersonCount)
	}
}

func TestCreateAlertAndRetrieve(t *testing.T) {
	router := newTestRouter(t)

	body := []byte(`{"alert_type":"sos","description":"panic button","latitude":12.3456,"longitude":77.1234}`)
	w := doRequest(t, router, http.MethodPost, "/alert", "application/json", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var created map[string]interface{}
	decodeJSON(t, w, &created)
	if created["status"] != "ok" || created["type"] != "sos" {
		t.Errorf("unexpected create response: %v", created)
	}

	w = doRequest(t, router, http.MethodGet, "/alerts?limit=10", "", nil)
	var listing struct {
		Alerts []models.AlertEvent `json:"alerts"`
	}
	decodeJSON(t, w, &listing)
	if len(listing.Alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(listing.Alerts))
	}
	got := listing.Alerts[0]
	if got.Type != "sos" || got.Description != "panic button" {
		t.Errorf("unexpected alert: %+v", got)
	}
	if got.Timestamp == "" || got.ID == 0 {
		t.Errorf("expected assigned id and timestamp, got %+v", got)
	}

	w = doRequest(t, router, http.MethodGet, "/hotspots", "", nil)
	var hotspots struct {
		Hotspots []models.HotspotBucket `json:"hotspots"`
	}
	decodeJSON(t, w, &hotspots)
	if len(hotspots.Hotspots) != 1 {
		t.Fatalf("expected 1 hotspot bucket, got %d", len(hotspots.Hotspots))
	}
	bucket := hotspots.Hotspots[0]
	if bucket.Lat != 12.346 || bucket.Lon != 77.123 || bucket.Count != 1 {
		t.Errorf("unexpected bucket: %+v", bucket)
	}
}

func TestCreateAlertDefaults(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/alert", "application/json", []byte(`{"latitude":1.5}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var created map[string]interface{}
	decodeJSON(t, w, &created)
	if created["type"] != "manual" {
		t.Errorf("expected default type manual, got %v", created["type"])
	}
	if created["description"] != "manual alert" {
		t.Errorf("expected default description, got %v", created["description"])
	}
}

func TestCreateAlertRejectsMissingJSON(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body []byte
	}{
		{"empty body", nil},
		{"empty object", []byte(`{}`)},
		{"malformed json", []byte(`{"alert_type":`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPost, "/alert", "application/json", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			var resp map[string]string
			decodeJSON(t, w, &resp)
			if resp["error"] != "JSON required" {
				t.Errorf("expected JSON required error, got %v", resp)
			}
		})
	}
}

func TestListAlertsOrderAndLimit(t *testing.T) {
	router := newTestRouter(t)

	for _, desc := range []string{"first", "second", "third"} {
		body := []byte(`{"description":"` + desc + `"}`)
		if w := doRequest(t, router, http.MethodPost, "/alert", "application/json", body); w.Code != http.StatusOK {
			t.Fatalf("failed to create alert %q: %d", desc, w.Code)
		}
	}

	w := doRequest(t, router, http.MethodGet, "/alerts?limit=2", "", nil)
	var listing struct {
		Alerts []models.AlertEvent `json:"alerts"`
	}
	decodeJSON(t, w, &listing)
	if len(listing.Alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(listing.Alerts))
	}
	if listing.Alerts[0].Description != "third" || listing.Alerts[1].Description != "second" {
		t.Errorf("expected newest first, got %+v", listing.Alerts)
	}
}

func TestHealthAndServiceInfo(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var health HealthResponse
	decodeJSON(t, w, &health)
	if health.Status != "healthy" || health.ServiceID != "safety-analytics-test" {
		t.Errorf("unexpected health response: %+v", health)
	}

	w = doRequest(t, router, http.MethodGet, "/", "", nil)
	var info ServiceInfoResponse
	decodeJSON(t, w, &info)
	if !info.MockMode {
		t.Error("expected mock_mode true with a nil detector")
	}
	for _, capability := range info.Capabilities {
		if capability == "person_detection" {
			t.Error("person_detection must not be advertised in mock mode")
		}
	}
}
