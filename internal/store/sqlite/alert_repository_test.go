package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
)

func newTestRepo(t *testing.T) (*AlertRepository, string) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "alert_store_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	dbPath := filepath.Join(tempDir, "alerts.db")
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewAlertRepository(db), dbPath
}

func floatPtr(v float64) *float64 { return &v }

func TestAlertRepository_AppendAssignsTimestampAndID(t *testing.T) {
	repo, _ := newTestRepo(t)

	event := &models.AlertEvent{
		Type:        models.AlertTypeHandsUp,
		Description: "Hands up detected (possible SOS)",
		Timestamp:   "caller supplied, must be ignored",
	}

	if err := repo.Append(event); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if event.ID == 0 {
		t.Error("Append should assign a nonzero ID")
	}
	if event.Timestamp == "caller supplied, must be ignored" {
		t.Error("Append should overwrite the caller-supplied timestamp")
	}
}

func TestAlertRepository_RecentRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)

	const n = 5
	for i := 0; i < n; i++ {
		event := &models.AlertEvent{
			Type:        models.AlertTypeManual,
			Description: fmt.Sprintf("alert %d", i),
		}
		if err := repo.Append(event); err != nil {
			t.Fatalf("Append %d failed: %v", i, err)
		}
	}

	events, err := repo.Recent(n)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != n {
		t.Fatalf("Recent(%d) returned %d events", n, len(events))
	}

	// Most recent first: descending timestamps with insertion order
	// breaking ties.
	for i := 1; i < len(events); i++ {
		if events[i-1].Timestamp < events[i].Timestamp {
			t.Errorf("events out of order at %d: %s < %s", i, events[i-1].Timestamp, events[i].Timestamp)
		}
		if events[i-1].Timestamp == events[i].Timestamp && events[i-1].ID < events[i].ID {
			t.Errorf("tie not broken by insertion order at %d", i)
		}
	}
	if events[0].Description != fmt.Sprintf("alert %d", n-1) {
		t.Errorf("expected newest alert first, got %q", events[0].Description)
	}

	// A smaller limit returns only the most recent events.
	subset, err := repo.Recent(2)
	if err != nil {
		t.Fatalf("Recent(2) failed: %v", err)
	}
	if len(subset) != 2 {
		t.Fatalf("Recent(2) returned %d events", len(subset))
	}
	if subset[0].ID != events[0].ID || subset[1].ID != events[1].ID {
		t.Error("Recent(2) should return the two most recent events")
	}
}

func TestAlertRepository_RecentRejectsBadLimit(t *testing.T) {
	repo, _ := newTestRepo(t)

	for _, limit := range []int{0, -1} {
		if _, err := repo.Recent(limit); err == nil {
			t.Errorf("Recent(%d) should fail", limit)
		}
	}
	if _, err := repo.Hotspots(0); err == nil {
		t.Error("Hotspots(0) should fail")
	}
}

func TestAlertRepository_HotspotBucketing(t *testing.T) {
	repo, _ := newTestRepo(t)

	// Both coordinates round to the same 3-decimal bucket.
	coords := []struct{ lat, lon float64 }{
		{12.3456, 77.1234},
		{12.3457, 77.1234},
	}
	for _, c := range coords {
		event := &models.AlertEvent{
			Type:      models.AlertTypeLoneWomanNight,
			Latitude:  floatPtr(c.lat),
			Longitude: floatPtr(c.lon),
		}
		if err := repo.Append(event); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	// Alerts without coordinates never contribute to a bucket.
	if err := repo.Append(&models.AlertEvent{Type: models.AlertTypeManual}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	buckets, err := repo.Hotspots(50)
	if err != nil {
		t.Fatalf("Hotspots failed: %v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Count != 2 {
		t.Errorf("expected bucket count 2, got %d", buckets[0].Count)
	}
	if buckets[0].Lat != 12.346 || buckets[0].Lon != 77.123 {
		t.Errorf("unexpected bucket coordinates: %v, %v", buckets[0].Lat, buckets[0].Lon)
	}
}

func TestAlertRepository_HotspotOrdering(t *testing.T) {
	repo, _ := newTestRepo(t)

	appendAt := func(lat, lon float64, n int) {
		for i := 0; i < n; i++ {
			event := &models.AlertEvent{
				Type:      models.AlertTypeSurrounded,
				Latitude:  floatPtr(lat),
				Longitude: floatPtr(lon),
			}
			if err := repo.Append(event); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}
	}

	appendAt(10.000, 20.000, 1)
	appendAt(30.000, 40.000, 3)

	buckets, err := repo.Hotspots(1)
	if err != nil {
		t.Fatalf("Hotspots failed: %v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("Hotspots(1) returned %d buckets", len(buckets))
	}
	if buckets[0].Count != 3 || buckets[0].Lat != 30.0 {
		t.Errorf("expected busiest bucket first, got %+v", buckets[0])
	}
}

func TestAlertRepository_IdempotentInit(t *testing.T) {
	repo, dbPath := newTestRepo(t)

	if err := repo.Append(&models.AlertEvent{Type: models.AlertTypeManual, Description: "before reopen"}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Re-running setup against the same backing file must neither error nor
	// lose data.
	db2, err := New(dbPath)
	if err != nil {
		t.Fatalf("Reopening database failed: %v", err)
	}
	defer db2.Close()

	repo2 := NewAlertRepository(db2)
	events, err := repo2.Recent(10)
	if err != nil {
		t.Fatalf("Recent after reopen failed: %v", err)
	}
	if len(events) != 1 || events[0].Description != "before reopen" {
		t.Errorf("existing data lost after reopen: %+v", events)
	}
}
