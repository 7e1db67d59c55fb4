package detector

import (
	"fmt"
	"image"
	"os"

	"github.com/rs/zerolog"
	"gocv.io/x/gocv"

	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/config"
	"github.com/vedantmohite26/women-safety-analytics-SOS-safety/internal/models"
)

// HOG people detector parameters. These mirror the classic OpenCV defaults
// for full-body detection.
const (
	hogHitThreshold   = 0.0
	hogScale          = 1.05
	hogFinalThreshold = 2.0
	hogStride         = 8
	hogPadding        = 8
)

// faceInputSize is the fixed input resolution of the res10 SSD face model.
const faceInputSize = 300

// OpenCV is the in-process detection adapter. People are found with the HOG
// descriptor's default people detector; when face model files are configured
// a Caffe SSD net additionally contributes face records with a confidence
// score. The instance is long-lived and reused across requests.
type OpenCV struct {
	hog        gocv.HOGDescriptor
	faceNet    gocv.Net
	hasFaceNet bool
	minFace    float32
	log        zerolog.Logger
}

// NewOpenCV initializes the HOG people detector and, if configured, the DNN
// face detector. A missing or unloadable face model degrades to people-only
// detection rather than failing startup.
func NewOpenCV(cfg *config.Config, logger zerolog.Logger) (*OpenCV, error) {
	hog := gocv.NewHOGDescriptor()
	if err := hog.SetSVMDetector(gocv.HOGDefaultPeopleDetector()); err != nil {
		hog.Close()
		return nil, fmt.Errorf("failed to initialize HOG people detector: %w", err)
	}

	d := &OpenCV{
		hog:     hog,
		minFace: float32(cfg.FaceMinConfidence),
		log:     logger,
	}

	if cfg.FaceModelPath != "" && cfg.FaceConfigPath != "" {
		d.initFaceNet(cfg.FaceConfigPath, cfg.FaceModelPath)
	}

	return d, nil
}

func (d *OpenCV) initFaceNet(protoPath, modelPath string) {
	for _, p := range []string{protoPath, modelPath} {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			d.log.Warn().Str("path", p).Msg("Face model file not found, face detection disabled")
			return
		}
	}

	net := gocv.ReadNetFromCaffe(protoPath, modelPath)
	if net.Empty() {
		d.log.Warn().Str("model", modelPath).Msg("Failed to load face detection network, face detection disabled")
		return
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		d.log.Warn().Err(err).Msg("Failed to set face net backend")
	}
	if err := net.SetPreferableTarget(gocv.NetTargetCPU); err != nil {
		d.log.Warn().Err(err).Msg("Failed to set face net target")
	}

	d.faceNet = net
	d.hasFaceNet = true
	d.log.Info().Str("model", modelPath).Msg("Face detection network initialized")
}

// Close releases the underlying OpenCV resources.
func (d *OpenCV) Close() error {
	if d.hasFaceNet {
		d.faceNet.Close()
		d.hasFaceNet = false
	}
	return d.hog.Close()
}

// DetectPersons decodes the frame and runs people and face detection.
func (d *OpenCV) DetectPersons(imageData []byte) ([]models.PersonDetection, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, ErrImageDecode
	}

	persons := d.detectPeople(&mat)
	if d.hasFaceNet {
		persons = append(persons, d.detectFaces(&mat)...)
	}

	return persons, nil
}

func (d *OpenCV) detectPeople(mat *gocv.Mat) []models.PersonDetection {
	rects := d.hog.DetectMultiScaleWithParams(
		*mat,
		hogHitThreshold,
		image.Pt(hogStride, hogStride),
		image.Pt(hogPadding, hogPadding),
		hogScale,
		hogFinalThreshold,
		false,
	)

	persons := make([]models.PersonDetection, 0, len(rects))
	for _, r := range rects {
		persons = append(persons, models.PersonDetection{
			BBox: clampBBox(r, mat.Cols(), mat.Rows()),
		})
	}
	return persons
}

func (d *OpenCV) detectFaces(mat *gocv.Mat) []models.PersonDetection {
	blob := gocv.BlobFromImage(*mat, 1.0, image.Pt(faceInputSize, faceInputSize),
		gocv.NewScalar(104, 177, 123, 0), false, false)
	defer blob.Close()

	d.faceNet.SetInput(blob, "")
	prob := d.faceNet.Forward("")
	defer prob.Close()

	// SSD output is a [1 1 N 7] blob: (batch, class, confidence, l, t, r, b)
	// with normalized coordinates.
	detections := gocv.GetBlobChannel(prob, 0, 0)
	defer detections.Close()

	width := float32(mat.Cols())
	height := float32(mat.Rows())

	var faces []models.PersonDetection
	for r := 0; r < detections.Rows(); r++ {
		confidence := detections.GetFloatAt(r, 2)
		if confidence < d.minFace {
			continue
		}

		rect := image.Rect(
			int(detections.GetFloatAt(r, 3)*width),
			int(detections.GetFloatAt(r, 4)*height),
			int(detections.GetFloatAt(r, 5)*width),
			int(detections.GetFloatAt(r, 6)*height),
		)

		score := float64(confidence)
		faces = append(faces, models.PersonDetection{
			BBox:      clampBBox(rect, mat.Cols(), mat.Rows()),
			FaceScore: &score,
		})
	}
	return faces
}

// clampBBox clips a rectangle to the image bounds.
func clampBBox(r image.Rectangle, width, height int) models.BBox {
	clamped := r.Intersect(image.Rect(0, 0, width-1, height-1))
	if clamped.Empty() {
		// Degenerate box fully outside the frame: collapse to the nearest
		// in-bounds point so the invariant xmin<=xmax, ymin<=ymax holds.
		x := clampInt(r.Min.X, 0, width-1)
		y := clampInt(r.Min.Y, 0, height-1)
		return models.BBox{XMin: x, YMin: y, XMax: x, YMax: y}
	}
	return models.BBox{
		XMin: clamped.Min.X,
		YMin: clamped.Min.Y,
		XMax: clamped.Max.X,
		YMax: clamped.Max.Y,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
