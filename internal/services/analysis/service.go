// Package analysis implements the heuristic alert-detection pipeline: it
// turns one frame's person detections plus caller-supplied context into
// alert events, persists them, and fans them out to the messaging and
// websocket feeds.
package analysis

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/config"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/detector"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/pose"
)

// Placeholder geometry for synthesized persons in mock mode.
const (
	mockBoxStride = 50
	mockBoxTop    = 10
	mockBoxWidth  = 50
	mockBoxBottom = 200
	mockScore     = 0.9
)

// AlertStore is the append-only persistence contract for alert events.
type AlertStore interface {
	Append(event *models.AlertEvent) error
	Recent(limit int) ([]models.AlertEvent, error)
	Hotspots(limit int) ([]models.HotspotBucket, error)
}

// AlertBroadcaster pushes fired alerts to live subscribers.
type AlertBroadcaster interface {
	BroadcastAlert(event models.AlertEvent)
}

// Service orchestrates detection, rule evaluation and alert fan-out for one
// frame at a time. It holds no per-request state; the alert store is the
// only cross-request state.
type Service struct {
	cfg         *config.Config
	detector    detector.PersonDetector
	store       AlertStore
	publisher   models.MessagePublisher
	broadcaster AlertBroadcaster
	log         zerolog.Logger
}

// NewService wires the analysis pipeline. A nil detector selects mock mode:
// persons are synthesized from the request's mock_person_count and only the
// rules that need no pose data can fire. publisher and broadcaster may be
// nil; fan-out is best effort.
func NewService(cfg *config.Config, det detector.PersonDetector, store AlertStore, publisher models.MessagePublisher, broadcaster AlertBroadcaster, logger zerolog.Logger) *Service {
	return &Service{
		cfg:         cfg,
		detector:    det,
		store:       store,
		publisher:   publisher,
		broadcaster: broadcaster,
		log:         logger,
	}
}

// MockMode reports whether the service runs without a detection adapter.
func (s *Service) MockMode() bool {
	return s.detector == nil
}

// AnalyzeFrame analyzes a single frame. Detection (or mock synthesis) feeds
// the rule engine; every fired alert is persisted and fanned out before the
// response is built. Persistence failures are logged and never abort the
// response.
func (s *Service) AnalyzeFrame(imageData []byte, req models.AnalysisRequest) (*models.AnalyzeResponse, error) {
	frameID := uuid.NewString()

	var persons []models.PersonDetection
	if s.detector == nil {
		persons = mockPersons(req.MockPersonCount)
	} else {
		detected, err := s.detector.DetectPersons(imageData)
		if err != nil {
			return nil, err
		}
		persons = detected
	}
	if persons == nil {
		persons = []models.PersonDetection{}
	}

	if len(req.WristHistory) > 0 && pose.Waving(req.WristHistory) {
		// No rule consumes waving yet; keep it visible for operators.
		s.log.Debug().Str("frame_id", frameID).Msg("Waving motion detected in supplied wrist history")
	}

	alerts := EvaluateRules(persons, req)
	for i := range alerts {
		s.recordAlert(frameID, &alerts[i])
	}

	s.log.Info().
		Str("frame_id", frameID).
		Int("person_count", len(persons)).
		Int("alerts", len(alerts)).
		Bool("mock_mode", s.detector == nil).
		Msg("Frame analyzed")

	return &models.AnalyzeResponse{
		FrameID:            frameID,
		PersonCount:        len(persons),
		GenderDistribution: models.GenderDistribution{Unknown: len(persons)},
		Alerts:             alerts,
		Persons:            persons,
	}, nil
}

// RecordManualAlert persists a manually created alert and fans it out. The
// store error is surfaced so the caller can report a failed append.
func (s *Service) RecordManualAlert(event *models.AlertEvent) error {
	if err := s.store.Append(event); err != nil {
		return err
	}
	s.fanOut(*event)
	return nil
}

// RecentAlerts returns the most recent persisted alerts.
func (s *Service) RecentAlerts(limit int) ([]models.AlertEvent, error) {
	return s.store.Recent(limit)
}

// Hotspots returns the spatial aggregation over persisted alerts.
func (s *Service) Hotspots(limit int) ([]models.HotspotBucket, error) {
	return s.store.Hotspots(limit)
}

// recordAlert persists one fired alert best-effort: a storage failure is
// logged for operational visibility but never interrupts the analysis
// response.
func (s *Service) recordAlert(frameID string, event *models.AlertEvent) {
	if err := s.store.Append(event); err != nil {
		s.log.Error().Err(err).
			Str("frame_id", frameID).
			Str("alert_type", string(event.Type)).
			Msg("Failed to persist alert")
	}
	s.fanOut(*event)
}

func (s *Service) fanOut(event models.AlertEvent) {
	if s.publisher != nil {
		if err := s.publisher.Publish(s.cfg.AlertsSubject, event); err != nil {
			s.log.Warn().Err(err).Str("alert_type", string(event.Type)).Msg("Failed to publish alert")
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastAlert(event)
	}
}

// mockPersons synthesizes placeholder detections for degraded mode. A
// negative count yields an empty frame.
func mockPersons(count int) []models.PersonDetection {
	if count < 0 {
		count = 0
	}
	persons := make([]models.PersonDetection, 0, count)
	for i := 0; i < count; i++ {
		score := mockScore
		persons = append(persons, models.PersonDetection{
			BBox: models.BBox{
				XMin: mockBoxTop + i*mockBoxStride,
				YMin: mockBoxTop,
				XMax: mockBoxTop + mockBoxWidth + i*mockBoxStride,
				YMax: mockBoxBottom,
			},
			Score: &score,
		})
	}
	return persons
}
