package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/pose"
)

const (
	// Night window wraps midnight: hour >= nightStartHour or <= nightEndHour.
	nightStartHour = 20
	nightEndHour   = 5

	// proximityThresholdPx is the bounding-box-center distance below which
	// another person counts as "nearby" for the surrounded rule.
	proximityThresholdPx = 200.0

	// surroundedMinNearby is how many nearby persons the surrounded rule
	// requires.
	surroundedMinNearby = 2
)

// timestampLayouts are the ISO-8601 shapes accepted for the night-window
// check. Anything else is treated as "not night".
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// EvaluateRules runs the frame-level alert rules in fixed order over one
// frame's person detections. Each rule independently produces zero or one
// alert, except hands-up which fires once per qualifying person. Every
// returned event carries the request's coordinates.
func EvaluateRules(persons []models.PersonDetection, req models.AnalysisRequest) []models.AlertEvent {
	alerts := []models.AlertEvent{}

	if event, ok := loneWomanAtNight(persons, req); ok {
		alerts = append(alerts, event)
	}

	for _, person := range persons {
		if person.HasPose() && pose.HandsUp(person.PoseLandmarks) {
			alerts = append(alerts, models.AlertEvent{
				Type:        models.AlertTypeHandsUp,
				Description: "Hands up detected (possible SOS)",
			})
		}
	}

	if event, ok := surrounded(persons, req); ok {
		alerts = append(alerts, event)
	}

	for i := range alerts {
		alerts[i].Latitude = req.Latitude
		alerts[i].Longitude = req.Longitude
	}

	return alerts
}

// loneWomanAtNight fires iff exactly one person was detected, the caller
// declared the person female, and the supplied timestamp falls in the night
// window.
func loneWomanAtNight(persons []models.PersonDetection, req models.AnalysisRequest) (models.AlertEvent, bool) {
	if len(persons) != 1 {
		return models.AlertEvent{}, false
	}
	if !strings.EqualFold(req.Gender, "female") {
		return models.AlertEvent{}, false
	}
	if !isNight(req.Timestamp) {
		return models.AlertEvent{}, false
	}
	return models.AlertEvent{
		Type:        models.AlertTypeLoneWomanNight,
		Description: "Single female detected at night",
	}, true
}

// surrounded fires when the person the caller flagged as female has at least
// surroundedMinNearby other persons within proximityThresholdPx of her
// bounding-box center.
func surrounded(persons []models.PersonDetection, req models.AnalysisRequest) (models.AlertEvent, bool) {
	if req.FemaleIndex == nil {
		return models.AlertEvent{}, false
	}
	fi := *req.FemaleIndex
	if fi < 0 || fi >= len(persons) {
		return models.AlertEvent{}, false
	}

	fx, fy := persons[fi].BBox.Center()
	nearby := 0
	for i, person := range persons {
		if i == fi {
			continue
		}
		px, py := person.BBox.Center()
		if math.Hypot(px-fx, py-fy) < proximityThresholdPx {
			nearby++
		}
	}

	if nearby < surroundedMinNearby {
		return models.AlertEvent{}, false
	}
	return models.AlertEvent{
		Type:        models.AlertTypeSurrounded,
		Description: fmt.Sprintf("Woman surrounded by %d people", nearby),
	}, true
}

// isNight parses the caller-supplied ISO-8601 timestamp and checks the local
// hour against the night window. Malformed or absent timestamps never count
// as night.
func isNight(timestamp string) bool {
	if timestamp == "" {
		return false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, timestamp); err == nil {
			hour := t.Hour()
			return hour >= nightStartHour || hour <= nightEndHour
		}
	}
	return false
}
