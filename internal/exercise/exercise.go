// Package exercise defines the per-exercise tracking configuration table.
package exercise

import (
	"fmt"

	"github.com/arvindkm/repcount/internal/detector"
)

// Exercise identifies a supported exercise type.
type Exercise string

// Built-in exercises.
const (
	Squat         Exercise = "squat"
	BicepCurl     Exercise = "bicep_curl"
	PushUp        Exercise = "pushup"
	ShoulderPress Exercise = "shoulder_press"
	Lunge         Exercise = "lunge"
)

// Config describes how one exercise is tracked: the joint triple whose
// flexion angle is measured at the vertex, and the two angle thresholds
// bounding the movement's range of motion. Configs are loaded once per
// exercise selection and immutable for the life of a tracking session.
type Config struct {
	Exercise Exercise `json:"exercise"`

	// Joint triple: the angle is measured at Vertex between the vectors
	// toward Proximal and Distal.
	Proximal int `json:"proximal"`
	Vertex   int `json:"vertex"`
	Distal   int `json:"distal"`

	// DownThreshold is the angle in degrees at or below which the
	// movement is in its flexed ("down") position. UpThreshold is the
	// angle at or above which the movement is extended ("up").
	DownThreshold float64 `json:"down_threshold"`
	UpThreshold   float64 `json:"up_threshold"`

	// Inverted marks curl-like movements where the flexed position is
	// the top of the lift. Affects only the width of the near-threshold
	// feedback band, never counting.
	Inverted bool `json:"inverted"`
}

// Validate checks that the configuration can drive an unambiguous phase
// machine. Equal thresholds are rejected outright since they make every
// transition ambiguous.
func (c Config) Validate() error {
	if c.DownThreshold == c.UpThreshold {
		return fmt.Errorf("exercise %q: down and up thresholds are both %g", c.Exercise, c.DownThreshold)
	}
	for _, joint := range []int{c.Proximal, c.Vertex, c.Distal} {
		if joint < 0 || joint >= detector.NumJoints {
			return fmt.Errorf("exercise %q: joint index %d out of range", c.Exercise, joint)
		}
	}
	if c.DownThreshold < 0 || c.DownThreshold > 180 || c.UpThreshold < 0 || c.UpThreshold > 180 {
		return fmt.Errorf("exercise %q: thresholds must be within 0-180 degrees", c.Exercise)
	}
	return nil
}

// configs is the built-in exercise table. Thresholds are in degrees.
var configs = map[Exercise]Config{
	Squat: {
		Exercise:      Squat,
		Proximal:      detector.RightHip,
		Vertex:        detector.RightKnee,
		Distal:        detector.RightAnkle,
		DownThreshold: 90,
		UpThreshold:   160,
	},
	BicepCurl: {
		Exercise:      BicepCurl,
		Proximal:      detector.RightShoulder,
		Vertex:        detector.RightElbow,
		Distal:        detector.RightWrist,
		DownThreshold: 50,
		UpThreshold:   150,
		Inverted:      true,
	},
	PushUp: {
		Exercise:      PushUp,
		Proximal:      detector.RightShoulder,
		Vertex:        detector.RightElbow,
		Distal:        detector.RightWrist,
		DownThreshold: 90,
		UpThreshold:   160,
	},
	ShoulderPress: {
		Exercise:      ShoulderPress,
		Proximal:      detector.RightShoulder,
		Vertex:        detector.RightElbow,
		Distal:        detector.RightWrist,
		DownThreshold: 95,
		UpThreshold:   165,
		Inverted:      true,
	},
	Lunge: {
		Exercise:      Lunge,
		Proximal:      detector.RightHip,
		Vertex:        detector.RightKnee,
		Distal:        detector.RightAnkle,
		DownThreshold: 100,
		UpThreshold:   165,
	},
}

// order fixes the listing order for All.
var order = []Exercise{Squat, BicepCurl, PushUp, ShoulderPress, Lunge}

// Get returns the configuration for an exercise.
func Get(e Exercise) (Config, bool) {
	c, ok := configs[e]
	return c, ok
}

// All returns the built-in exercise configurations in a stable order.
func All() []Config {
	out := make([]Config, 0, len(order))
	for _, e := range order {
		out = append(out, configs[e])
	}
	return out
}
