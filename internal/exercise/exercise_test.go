package exercise

import (
	"testing"

	"github.com/arvindkm/repcount/internal/detector"
)

func TestBuiltinConfigs_Valid(t *testing.T) {
	for _, cfg := range All() {
		if err := cfg.Validate(); err != nil {
			t.Errorf("built-in config %q invalid: %v", cfg.Exercise, err)
		}
	}
}

func TestGet(t *testing.T) {
	cfg, ok := Get(Squat)
	if !ok {
		t.Fatal("expected squat config to exist")
	}
	if cfg.Vertex != detector.RightKnee {
		t.Errorf("squat vertex = %d, want right knee (%d)", cfg.Vertex, detector.RightKnee)
	}
	if cfg.DownThreshold != 90 || cfg.UpThreshold != 160 {
		t.Errorf("squat thresholds = %g/%g, want 90/160", cfg.DownThreshold, cfg.UpThreshold)
	}

	if _, ok := Get(Exercise("deadlift")); ok {
		t.Error("expected unknown exercise to not resolve")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Exercise:      Squat,
		Proximal:      detector.RightHip,
		Vertex:        detector.RightKnee,
		Distal:        detector.RightAnkle,
		DownThreshold: 90,
		UpThreshold:   160,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"equal thresholds", func(c *Config) { c.UpThreshold = c.DownThreshold }, true},
		{"negative joint", func(c *Config) { c.Vertex = -1 }, true},
		{"joint out of range", func(c *Config) { c.Distal = detector.NumJoints }, true},
		{"threshold above 180", func(c *Config) { c.UpThreshold = 200 }, true},
		{"negative threshold", func(c *Config) { c.DownThreshold = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestAll_StableOrder(t *testing.T) {
	first := All()
	second := All()

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Exercise != second[i].Exercise {
			t.Errorf("order differs at %d: %q vs %q", i, first[i].Exercise, second[i].Exercise)
		}
	}
}
