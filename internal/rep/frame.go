// Package rep implements the repetition-counting core: joint extraction,
// flexion-angle computation, signal smoothing and the phase state machine
// that turns a noisy landmark stream into counted repetitions.
package rep

import "github.com/arvindkm/repcount/internal/detector"

// ConfidenceFloor is the minimum per-joint confidence for a landmark to
// participate in angle computation. The same floor applies to all joints.
const ConfidenceFloor = 0.1

// PoseFrame holds the joints of one video frame that passed the
// confidence floor. It is transient: built once per frame and discarded
// after the angle is computed.
type PoseFrame struct {
	Points     [detector.NumJoints]detector.Point
	Present    [detector.NumJoints]bool
	Confidence float64
}

// Extract filters raw landmarks down to the joints usable for angle
// computation. A nil landmark set produces an empty frame; that is the
// "no detection" case, not an error.
func Extract(lm *detector.BodyLandmarks, floor float64) PoseFrame {
	var f PoseFrame
	if lm == nil {
		return f
	}

	f.Confidence = lm.Score
	for i := 0; i < detector.NumJoints; i++ {
		if lm.Points[i].Confidence > floor {
			f.Points[i] = lm.Points[i]
			f.Present[i] = true
		}
	}

	return f
}

// Empty reports whether no joint passed the confidence floor.
func (f *PoseFrame) Empty() bool {
	for _, present := range f.Present {
		if present {
			return false
		}
	}
	return true
}
