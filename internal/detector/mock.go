package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	landmarks *BodyLandmarks
	err       error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetLandmarks sets the landmarks that will be returned by Detect.
// Pass nil to simulate a frame with no person in it.
func (m *MockDetector) SetLandmarks(lm *BodyLandmarks) {
	m.landmarks = lm
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured landmarks or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (*BodyLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.landmarks, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// StandingLandmarks returns a preset BodyLandmarks for a person standing
// upright facing the camera. Knees and elbows are close to fully extended.
func StandingLandmarks() *BodyLandmarks {
	lm := &BodyLandmarks{Score: 0.95}

	set := func(joint int, x, y float64) {
		lm.Points[joint] = Point{X: x, Y: y, Confidence: 0.9}
	}

	set(Nose, 0.50, 0.92)
	set(Neck, 0.50, 0.85)
	set(RightShoulder, 0.42, 0.82)
	set(RightElbow, 0.40, 0.68)
	set(RightWrist, 0.39, 0.54)
	set(LeftShoulder, 0.58, 0.82)
	set(LeftElbow, 0.60, 0.68)
	set(LeftWrist, 0.61, 0.54)
	set(RightHip, 0.45, 0.52)
	set(RightKnee, 0.45, 0.28)
	set(RightAnkle, 0.45, 0.05)
	set(LeftHip, 0.55, 0.52)
	set(LeftKnee, 0.55, 0.28)
	set(LeftAnkle, 0.55, 0.05)
	set(Root, 0.50, 0.52)

	return lm
}

// SquattingLandmarks returns a preset BodyLandmarks for a person at the
// bottom of a squat: hips dropped near knee height, knees sharply bent.
func SquattingLandmarks() *BodyLandmarks {
	lm := &BodyLandmarks{Score: 0.92}

	set := func(joint int, x, y float64) {
		lm.Points[joint] = Point{X: x, Y: y, Confidence: 0.9}
	}

	set(Nose, 0.50, 0.60)
	set(Neck, 0.50, 0.53)
	set(RightShoulder, 0.42, 0.50)
	set(RightElbow, 0.38, 0.42)
	set(RightWrist, 0.36, 0.34)
	set(LeftShoulder, 0.58, 0.50)
	set(LeftElbow, 0.62, 0.42)
	set(LeftWrist, 0.64, 0.34)
	set(RightHip, 0.44, 0.28)
	set(RightKnee, 0.36, 0.26)
	set(RightAnkle, 0.42, 0.05)
	set(LeftHip, 0.56, 0.28)
	set(LeftKnee, 0.64, 0.26)
	set(LeftAnkle, 0.58, 0.05)
	set(Root, 0.50, 0.28)

	return lm
}
