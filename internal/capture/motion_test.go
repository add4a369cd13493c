package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewMotionDetector(t *testing.T) {
	md := NewMotionDetector(1.0)
	if md == nil {
		t.Fatal("NewMotionDetector returned nil")
	}
	defer md.Close()

	if md.threshold != 1.0 {
		t.Errorf("threshold = %f, want 1.0", md.threshold)
	}
	if md.initialized {
		t.Error("detector should not be initialized before the first frame")
	}
}

func TestMotionDetector_SetThreshold(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	md.SetThreshold(2.5)
	if md.threshold != 2.5 {
		t.Errorf("threshold = %f, want 2.5", md.threshold)
	}

	// Non-positive values are ignored
	md.SetThreshold(0)
	md.SetThreshold(-1)
	if md.threshold != 2.5 {
		t.Errorf("threshold = %f after invalid sets, want 2.5", md.threshold)
	}
}

func TestMotionDetector_NilFrame(t *testing.T) {
	md := NewMotionDetector(1.0)
	defer md.Close()

	detected, percent := md.Detect(nil)
	if detected || percent != 0 {
		t.Errorf("Detect(nil) = (%v, %f), want (false, 0)", detected, percent)
	}
}

func TestMotionDetector_FirstFrameIsBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	detected, _ := md.Detect(&frame)
	if detected {
		t.Error("first frame must only establish the baseline")
	}
	if !md.initialized {
		t.Error("detector should be initialized after the first frame")
	}
}

func TestMotionDetector_NoMotionOnIdenticalFrames(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	md.Detect(&frame1)
	detected, percent := md.Detect(&frame2)
	if detected {
		t.Errorf("identical frames reported motion (%.2f%% changed)", percent)
	}
}

func TestMotionDetector_Reset(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	md := NewMotionDetector(1.0)
	defer md.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	md.Detect(&frame)
	md.Reset()
	if md.initialized {
		t.Error("detector should not be initialized after Reset")
	}

	// Next frame re-establishes the baseline without reporting motion.
	detected, _ := md.Detect(&frame)
	if detected {
		t.Error("baseline frame after reset reported motion")
	}
}
