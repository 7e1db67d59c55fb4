package models

// Landmark is a single pose landmark in normalized image coordinates
// (0.0-1.0, origin top-left). Indices follow the MediaPipe pose scheme.
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// BBox is an axis-aligned bounding box in pixel coordinates.
type BBox struct {
	XMin int `json:"xmin"`
	YMin int `json:"ymin"`
	XMax int `json:"xmax"`
	YMax int `json:"ymax"`
}

// Center returns the box center in pixel space.
func (b BBox) Center() (float64, float64) {
	return float64(b.XMin+b.XMax) / 2, float64(b.YMin+b.YMax) / 2
}

// PersonDetection is one detected person in one analyzed frame.
// PoseLandmarks and the score fields are optional: the person detector
// yields boxes with a detector score, while a dedicated face detection
// contributes records carrying FaceScore instead.
type PersonDetection struct {
	BBox          BBox       `json:"bbox"`
	PoseLandmarks []Landmark `json:"pose_landmarks,omitempty"`
	Score         *float64   `json:"score,omitempty"`
	FaceScore     *float64   `json:"face_score,omitempty"`
}

// HasPose reports whether pose landmark data is present for this person.
func (p PersonDetection) HasPose() bool {
	return len(p.PoseLandmarks) > 0
}
