package models

// AlertType represents the fixed vocabulary of alert types produced by the
// rule engine. Manually created alerts may carry an arbitrary caller-supplied
// type and default to AlertTypeManual.
type AlertType string

const (
	AlertTypeLoneWomanNight AlertType = "lone_woman_night"
	AlertTypeHandsUp        AlertType = "hands_up"
	AlertTypeSurrounded     AlertType = "surrounded"
	AlertTypeManual         AlertType = "manual"
)

// AlertEvent is one emitted warning. Events are append-only: the timestamp
// is assigned by the store at persistence time and the record is never
// mutated afterwards.
type AlertEvent struct {
	ID          int64     `json:"id,omitempty"`
	Type        AlertType `json:"type"`
	Description string    `json:"description"`
	Timestamp   string    `json:"timestamp,omitempty"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
}

// HotspotBucket is a derived aggregate: the number of persisted alerts whose
// coordinates round to the same 3-decimal lat/lon pair (~100m granularity).
// Buckets are computed at query time, never stored.
type HotspotBucket struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Count int     `json:"count"`
}

// GenderDistribution is a per-frame count of declared genders. The service
// performs no gender inference; everything lands in Unknown unless the
// caller supplies hints.
type GenderDistribution struct {
	Female  int `json:"female"`
	Male    int `json:"male"`
	Unknown int `json:"unknown"`
}

// AnalysisRequest carries the caller-supplied context for one frame
// analysis. All fields are optional hints; none of them are verified.
type AnalysisRequest struct {
	// Timestamp is an ISO-8601 string used by the night-window rule.
	// Malformed or absent values are treated as "not night".
	Timestamp string

	// Gender is an unverified declared-gender hint ("female" activates the
	// lone-woman rule when exactly one person is detected).
	Gender string

	// FemaleIndex identifies which detected person is claimed to be female
	// for the surrounded rule. Nil means the rule is skipped.
	FemaleIndex *int

	Latitude  *float64
	Longitude *float64

	// MockPersonCount synthesizes this many placeholder persons when the
	// service runs without a detector.
	MockPersonCount int

	// WristHistory is an externally accumulated chronological sequence of
	// horizontal wrist positions used by the waving heuristic. The service
	// keeps no positional state across requests.
	WristHistory []float64
}

// AnalyzeResponse is the payload returned for one analyzed frame.
type AnalyzeResponse struct {
	FrameID            string             `json:"frame_id"`
	PersonCount        int                `json:"person_count"`
	GenderDistribution GenderDistribution `json:"gender_distribution"`
	Alerts             []AlertEvent       `json:"alerts"`
	Persons            []PersonDetection  `json:"persons"`
}

// MessagePublisher publishes alert payloads to a messaging subject.
type MessagePublisher interface {
	Publish(subject string, data interface{}) error
}
