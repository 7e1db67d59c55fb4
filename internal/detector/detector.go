// Package detector provides the detection adapter: given raw image bytes it
// returns the person records the rule engine consumes. The adapter is
// constructed once at startup and injected into request handling.
package detector

import (
	"errors"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
)

// ErrImageDecode marks input bytes that could not be decoded as an image.
// Handlers map it to HTTP 400.
var ErrImageDecode = errors.New("could not decode image")

// PersonDetector detects persons in a single frame.
type PersonDetector interface {
	// DetectPersons decodes the image and returns zero or more person
	// records. Undecodable input yields an error wrapping ErrImageDecode.
	DetectPersons(imageData []byte) ([]models.PersonDetection, error)

	// Close releases detector resources.
	Close() error
}
