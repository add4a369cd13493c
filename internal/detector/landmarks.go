// Package detector provides body-pose detection interfaces and types for
// repetition tracking.
package detector

// Body joint indices for the landmarks the tracking engine consumes.
// The set is the reduced upper/lower-body skeleton common to pose
// detectors (MediaPipe Pose, Apple Vision): enough joints to measure a
// flexion angle on either side of the body.
const (
	Nose          = 0
	Neck          = 1
	RightShoulder = 2
	RightElbow    = 3
	RightWrist    = 4
	LeftShoulder  = 5
	LeftElbow     = 6
	LeftWrist     = 7
	RightHip      = 8
	RightKnee     = 9
	RightAnkle    = 10
	LeftHip       = 11
	LeftKnee      = 12
	LeftAnkle     = 13
	Root          = 14
	NumJoints     = 15
)

// Point represents a single detected joint in normalized image
// coordinates. X and Y are in [0,1] with the origin at the bottom-left
// of the frame; Confidence is the detector's per-joint score in [0,1].
type Point struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// BodyLandmarks represents one frame of detected body joints.
// A joint the detector could not locate carries zero confidence.
type BodyLandmarks struct {
	Points [NumJoints]Point `json:"points"`
	Score  float64          `json:"score"`
}

// jointNames maps joint indices to their wire names, in index order.
var jointNames = [NumJoints]string{
	"nose",
	"neck",
	"shoulder_right",
	"elbow_right",
	"wrist_right",
	"shoulder_left",
	"elbow_left",
	"wrist_left",
	"hip_right",
	"knee_right",
	"ankle_right",
	"hip_left",
	"knee_left",
	"ankle_left",
	"root",
}

// JointName returns the wire name for a joint index, or "" if the index
// is out of range.
func JointName(joint int) string {
	if joint < 0 || joint >= NumJoints {
		return ""
	}
	return jointNames[joint]
}

// JointIndex returns the joint index for a wire name.
func JointIndex(name string) (int, bool) {
	for i, n := range jointNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
