package detector

import (
	"errors"
	"testing"
)

func TestJointNames_RoundTrip(t *testing.T) {
	for joint := 0; joint < NumJoints; joint++ {
		name := JointName(joint)
		if name == "" {
			t.Fatalf("joint %d has no name", joint)
		}

		idx, ok := JointIndex(name)
		if !ok {
			t.Fatalf("JointIndex(%q) not found", name)
		}
		if idx != joint {
			t.Errorf("JointIndex(%q) = %d, want %d", name, idx, joint)
		}
	}
}

func TestJointName_OutOfRange(t *testing.T) {
	if name := JointName(-1); name != "" {
		t.Errorf("JointName(-1) = %q, want empty", name)
	}
	if name := JointName(NumJoints); name != "" {
		t.Errorf("JointName(NumJoints) = %q, want empty", name)
	}
}

func TestJointIndex_Unknown(t *testing.T) {
	if _, ok := JointIndex("tail"); ok {
		t.Error("expected unknown joint name to not resolve")
	}
}

func TestMockDetector(t *testing.T) {
	m := NewMockDetector()

	// No landmarks configured: nil result, no error
	lm, err := m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if lm != nil {
		t.Errorf("expected nil landmarks, got %v", lm)
	}

	// Configured landmarks are returned as-is
	standing := StandingLandmarks()
	m.SetLandmarks(standing)
	lm, err = m.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if lm != standing {
		t.Error("expected configured landmarks to be returned")
	}

	// Configured error takes precedence
	wantErr := errors.New("camera unplugged")
	m.SetError(wantErr)
	if _, err := m.Detect(nil); !errors.Is(err, wantErr) {
		t.Errorf("Detect() error = %v, want %v", err, wantErr)
	}

	if err := m.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestPresetLandmarks(t *testing.T) {
	for _, tt := range []struct {
		name string
		lm   *BodyLandmarks
	}{
		{"standing", StandingLandmarks()},
		{"squatting", SquattingLandmarks()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if tt.lm.Score <= 0 {
				t.Errorf("score = %f, want > 0", tt.lm.Score)
			}
			for joint := 0; joint < NumJoints; joint++ {
				p := tt.lm.Points[joint]
				if p.Confidence <= 0 {
					t.Errorf("joint %s has zero confidence", JointName(joint))
				}
				if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
					t.Errorf("joint %s position (%f, %f) outside [0,1]", JointName(joint), p.X, p.Y)
				}
			}
		})
	}

	// The squat preset drops the hips toward knee height
	standing := StandingLandmarks()
	squatting := SquattingLandmarks()
	if squatting.Points[RightHip].Y >= standing.Points[RightHip].Y {
		t.Error("expected squatting hips lower than standing hips")
	}
}

func TestJSONPose_ToBodyLandmarks(t *testing.T) {
	pose := jsonPose{
		Score: 0.8,
		Joints: map[string]jsonJoint{
			"knee_right": {X: 0.4, Y: 0.3, Confidence: 0.9},
			"hip_right":  {X: 0.45, Y: 0.5, Confidence: 0.85},
			"unknown":    {X: 0.1, Y: 0.1, Confidence: 0.99},
		},
	}

	lm := pose.toBodyLandmarks()
	if lm == nil {
		t.Fatal("expected landmarks, got nil")
	}

	if lm.Score != 0.8 {
		t.Errorf("score = %f, want 0.8", lm.Score)
	}
	if got := lm.Points[RightKnee]; got.X != 0.4 || got.Confidence != 0.9 {
		t.Errorf("right knee = %+v, want x=0.4 confidence=0.9", got)
	}
	// Joints absent from the response keep zero confidence
	if lm.Points[LeftAnkle].Confidence != 0 {
		t.Error("expected absent joint to have zero confidence")
	}
}

func TestJSONPose_Empty(t *testing.T) {
	if lm := (jsonPose{}).toBodyLandmarks(); lm != nil {
		t.Errorf("expected nil for empty pose, got %v", lm)
	}
}
