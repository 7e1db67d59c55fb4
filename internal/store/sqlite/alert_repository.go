package sqlite

import (
	"errors"
	"fmt"
	"time"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
)

// ErrInvalidLimit is returned when a retrieval limit is not a positive
// integer.
var ErrInvalidLimit = errors.New("limit must be a positive integer")

// timestampLayout is a fixed-width UTC ISO-8601 layout. Fixed width keeps
// lexicographic ordering of the stored TEXT column consistent with
// chronological ordering.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// AlertRepository persists alert events in an append-only SQLite log.
type AlertRepository struct {
	db *DB
}

// NewAlertRepository creates a new SQLite alert repository.
func NewAlertRepository(db *DB) *AlertRepository {
	return &AlertRepository{db: db}
}

// Append durably persists a new alert event. The timestamp is assigned here
// at call time (UTC); any caller-supplied value is overwritten. The event's
// ID and Timestamp fields are filled in on success.
func (r *AlertRepository) Append(event *models.AlertEvent) error {
	r.db.Lock()
	defer r.db.Unlock()

	event.Timestamp = time.Now().UTC().Format(timestampLayout)

	result, err := r.db.Conn().Exec(`
		INSERT INTO alerts (alert_type, description, timestamp, latitude, longitude)
		VALUES (?, ?, ?, ?, ?)
	`, string(event.Type), event.Description, event.Timestamp, event.Latitude, event.Longitude)
	if err != nil {
		return fmt.Errorf("failed to append alert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read alert id: %w", err)
	}
	event.ID = id

	return nil
}

// Recent returns up to limit alert events ordered by timestamp descending.
// Timestamp ties are broken by insertion order, newest first.
func (r *AlertRepository) Recent(limit int) ([]models.AlertEvent, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, alert_type, description, timestamp, latitude, longitude
		FROM alerts
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var events []models.AlertEvent
	for rows.Next() {
		var event models.AlertEvent
		var alertType string
		if err := rows.Scan(&event.ID, &alertType, &event.Description, &event.Timestamp, &event.Latitude, &event.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		event.Type = models.AlertType(alertType)
		events = append(events, event)
	}

	return events, rows.Err()
}

// Hotspots returns up to limit spatial buckets ordered by alert count
// descending. Coordinates are rounded to 3 decimals (~100m) and only events
// carrying both coordinates contribute.
func (r *AlertRepository) Hotspots(limit int) ([]models.HotspotBucket, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT ROUND(latitude, 3) AS lat, ROUND(longitude, 3) AS lon, COUNT(*) AS cnt
		FROM alerts
		WHERE latitude IS NOT NULL AND longitude IS NOT NULL
		GROUP BY lat, lon
		ORDER BY cnt DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotspots: %w", err)
	}
	defer rows.Close()

	var buckets []models.HotspotBucket
	for rows.Next() {
		var bucket models.HotspotBucket
		if err := rows.Scan(&bucket.Lat, &bucket.Lon, &bucket.Count); err != nil {
			return nil, fmt.Errorf("failed to scan hotspot: %w", err)
		}
		buckets = append(buckets, bucket)
	}

	return buckets, rows.Err()
}
