// Package pose holds the geometric gesture heuristics evaluated over a
// single person's pose landmarks. Every heuristic fails closed: malformed or
// insufficient input yields a negative classification, never an error.
package pose

import (
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
)

// MediaPipe pose landmark indices used by the heuristics. Landmarks beyond
// the right wrist are permitted in the input but unused.
const (
	LandmarkNose          = 0
	LandmarkLeftShoulder  = 11
	LandmarkRightShoulder = 12
	LandmarkLeftWrist     = 15
	LandmarkRightWrist    = 16
)

// minWavingHistory is the minimum number of wrist positions required before
// the waving heuristic can classify at all.
const minWavingHistory = 3

// wavingMinReversals is the number of direction reversals in the wrist track
// required to classify lateral oscillation as waving.
const wavingMinReversals = 2

// HandsUp reports whether either wrist sits strictly above the nose.
// Normalized coordinates grow downward, so "above" means a smaller Y.
func HandsUp(landmarks []models.Landmark) bool {
	if len(landmarks) <= LandmarkRightWrist {
		return false
	}
	nose := landmarks[LandmarkNose]
	leftUp := landmarks[LandmarkLeftWrist].Y < nose.Y
	rightUp := landmarks[LandmarkRightWrist].Y < nose.Y
	return leftUp || rightUp
}

// CrossedArms reports whether the wrists have crossed the opposite
// shoulders: left wrist right of the right shoulder and right wrist left of
// the left shoulder. Normalized X grows to the right.
func CrossedArms(landmarks []models.Landmark) bool {
	if len(landmarks) <= LandmarkRightWrist {
		return false
	}
	leftShoulder := landmarks[LandmarkLeftShoulder]
	rightShoulder := landmarks[LandmarkRightShoulder]
	leftWrist := landmarks[LandmarkLeftWrist]
	rightWrist := landmarks[LandmarkRightWrist]
	return leftWrist.X > rightShoulder.X && rightWrist.X < leftShoulder.X
}

// Waving detects lateral oscillation in an externally accumulated
// chronological sequence of horizontal wrist positions. Consecutive deltas
// are mapped to signs and a reversal is counted whenever two consecutive
// nonzero signs differ; at least two reversals classify as waving.
func Waving(history []float64) bool {
	if len(history) < minWavingHistory {
		return false
	}

	signs := make([]int, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		switch d := history[i] - history[i-1]; {
		case d > 0:
			signs = append(signs, 1)
		case d < 0:
			signs = append(signs, -1)
		default:
			signs = append(signs, 0)
		}
	}

	reversals := 0
	for i := 1; i < len(signs); i++ {
		if signs[i] != 0 && signs[i-1] != 0 && signs[i] != signs[i-1] {
			reversals++
		}
	}
	return reversals >= wavingMinReversals
}
