package rep

import (
	"math"

	"github.com/arvindkm/repcount/internal/detector"
)

// mirror maps each joint to its left/right counterpart. Midline joints
// have no mirror and map to -1.
var mirror = [detector.NumJoints]int{
	detector.Nose:          -1,
	detector.Neck:          -1,
	detector.RightShoulder: detector.LeftShoulder,
	detector.RightElbow:    detector.LeftElbow,
	detector.RightWrist:    detector.LeftWrist,
	detector.LeftShoulder:  detector.RightShoulder,
	detector.LeftElbow:     detector.RightElbow,
	detector.LeftWrist:     detector.RightWrist,
	detector.RightHip:      detector.LeftHip,
	detector.RightKnee:     detector.LeftKnee,
	detector.RightAnkle:    detector.LeftAnkle,
	detector.LeftHip:       detector.RightHip,
	detector.LeftKnee:      detector.RightKnee,
	detector.LeftAnkle:     detector.RightAnkle,
	detector.Root:          -1,
}

// Angle computes the flexion angle in degrees at the vertex joint, using
// the vectors vertex→proximal and vertex→distal. When every joint of the
// configured triple has a mirror counterpart, the mirrored triple is
// evaluated as well and the smaller of the two angles wins: the more
// flexed limb is the one mid-repetition. Returns false when neither side
// has all three joints present in the frame.
func Angle(f *PoseFrame, proximal, vertex, distal int) (float64, bool) {
	primary, okPrimary := jointAngle(f, proximal, vertex, distal)
	mirrored, okMirrored := mirroredAngle(f, proximal, vertex, distal)

	switch {
	case okPrimary && okMirrored:
		return math.Min(primary, mirrored), true
	case okPrimary:
		return primary, true
	case okMirrored:
		return mirrored, true
	}
	return 0, false
}

// mirroredAngle computes the angle for the mirrored joint triple.
// Triples containing a midline joint are never mirrored.
func mirroredAngle(f *PoseFrame, proximal, vertex, distal int) (float64, bool) {
	mp, mv, md := mirror[proximal], mirror[vertex], mirror[distal]
	if mp < 0 || mv < 0 || md < 0 {
		return 0, false
	}
	return jointAngle(f, mp, mv, md)
}

// jointAngle computes the vertex angle for one triple, requiring all
// three joints to be present in the frame.
func jointAngle(f *PoseFrame, proximal, vertex, distal int) (float64, bool) {
	if !f.Present[proximal] || !f.Present[vertex] || !f.Present[distal] {
		return 0, false
	}
	return vertexAngle(f.Points[vertex], f.Points[proximal], f.Points[distal]), true
}

// vertexAngle returns the angle in degrees at v between the vectors v→a
// and v→b. A zero-length vector reads as fully extended (180°): a
// collapsed joint must never fake a flexed position.
func vertexAngle(v, a, b detector.Point) float64 {
	ax, ay := a.X-v.X, a.Y-v.Y
	bx, by := b.X-v.X, b.Y-v.Y

	magA := math.Hypot(ax, ay)
	magB := math.Hypot(bx, by)
	if magA == 0 || magB == 0 {
		return 180
	}

	cos := (ax*bx + ay*by) / (magA * magB)
	// Clamp against floating-point drift before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return math.Acos(cos) * 180 / math.Pi
}
