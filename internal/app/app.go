// Package app provides the main application logic for the repcount
// workout tracker: it owns the camera pipeline, the active rep counter
// and the workout-history store.
package app

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arvindkm/repcount/internal/capture"
	"github.com/arvindkm/repcount/internal/detector"
	"github.com/arvindkm/repcount/internal/exercise"
	"github.com/arvindkm/repcount/internal/rep"
	"github.com/arvindkm/repcount/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate while no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate while someone is working out.
	ActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline
	// drops back to the idle frame rate.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	MotionThresh float64
	Exercise     exercise.Exercise
}

// App orchestrates frame capture, pose detection and repetition counting
// for one workout session at a time.
type App struct {
	config  Config
	camera  capture.Camera
	motion  *capture.MotionDetector
	detect  detector.Detector
	enabled bool
	mu      sync.RWMutex
	stopCh  chan struct{}

	counter   *rep.Counter
	sessionID string
}

// New creates a new App instance with the given configuration.
// The initial exercise defaults to squat when none is configured.
func New(config Config) (*App, error) {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // 1% pixel change
	}
	if config.Exercise == "" {
		config.Exercise = exercise.Squat
	}

	a := &App{
		config: config,
		camera: capture.NewCamera(config.CameraID),
		motion: capture.NewMotionDetector(motionThreshold),
	}

	if err := a.SetExercise(config.Exercise); err != nil {
		return nil, err
	}

	// Try MediaPipe first, fall back to the mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detect = mp
		log.Println("Using MediaPipe pose detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detect = detector.NewMockDetector()
	}

	return a, nil
}

// SetEnabled enables or disables workout tracking.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the pose detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detect = d
}

// SetExercise switches the tracked exercise. The old counter is
// discarded entirely: stale angle history from a different joint triple
// must never leak into the new session. A new session record is opened
// when a store is configured.
func (a *App) SetExercise(e exercise.Exercise) error {
	cfg, ok := exercise.Get(e)
	if !ok {
		return fmt.Errorf("unknown exercise %q", e)
	}

	counter, err := rep.NewCounter(cfg)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.finishSessionLocked()
	a.counter = counter
	a.sessionID = ""
	if a.config.Store != nil {
		sess := &store.Session{
			ID:       uuid.New().String(),
			Exercise: string(e),
		}
		if err := a.config.Store.Sessions().Create(sess); err != nil {
			log.Printf("Failed to create session record: %v", err)
		} else {
			a.sessionID = sess.ID
		}
	}
	sessionID := a.sessionID
	a.mu.Unlock()

	counter.OnRep = func(count int) {
		a.recordRep(sessionID, count, counter.Snapshot().Angle)
	}

	log.Printf("Tracking exercise: %s", e)
	return nil
}

// finishSessionLocked closes out the current session record, if any.
func (a *App) finishSessionLocked() {
	if a.sessionID == "" || a.config.Store == nil || a.counter == nil {
		return
	}
	if err := a.config.Store.Sessions().Finish(a.sessionID, a.counter.Snapshot().Count); err != nil {
		log.Printf("Failed to finish session: %v", err)
	}
}

// recordRep persists one counted repetition and the running total.
func (a *App) recordRep(sessionID string, count int, angle float64) {
	if sessionID == "" || a.config.Store == nil {
		return
	}
	if err := a.config.Store.Reps().Create(sessionID, count, angle); err != nil {
		log.Printf("Failed to record rep: %v", err)
	}
	if err := a.config.Store.Sessions().SetRepCount(sessionID, count); err != nil {
		log.Printf("Failed to update session count: %v", err)
	}
}

// Counter returns the rep counter for the active exercise.
func (a *App) Counter() *rep.Counter {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.counter
}

// SessionID returns the ID of the open session record, or "".
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Detector returns the pose detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detect
}

// Start begins the tracking pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the tracking pipeline, closes the open session record and
// releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	a.finishSessionLocked()
	a.sessionID = ""

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detect != nil {
		if err := a.detect.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// idleTimeout returns the idle fallback duration.
func idleTimeout() time.Duration {
	return time.Duration(IdleTimeoutMs) * time.Millisecond
}
