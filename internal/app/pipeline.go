package app

import (
	"log"
	"time"

	"github.com/arvindkm/repcount/internal/rep"
)

// runPipeline is the main tracking loop that processes frames from the
// camera. It manages the switch between idle and active modes based on
// motion detection, so the detector only burns CPU while someone is
// actually in front of the camera.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run pose detection
// 4. Extract joints above the confidence floor
// 5. Feed the frame to the rep counter (misses count toward tracking loss)
// 6. After the idle timeout with no motion, switch back to idle mode
func (a *App) runPipeline(stopCh <-chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if tracking is disabled
			if !a.IsEnabled() {
				continue
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > idleTimeout() {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			// Skip detection while idling
			if !activeMode {
				frame.Close()
				continue
			}

			d := a.Detector()
			counter := a.Counter()
			if d == nil || counter == nil {
				frame.Close()
				continue
			}

			lm, err := d.Detect(frame)
			frame.Close() // Done with the frame

			if err != nil {
				log.Printf("Error detecting pose: %v", err)
				continue
			}

			res := counter.ProcessFrame(rep.Extract(lm, rep.ConfidenceFloor))

			if res.TrackingLost {
				log.Println("Tracking lost, waiting for the user to reposition")
			}
			if res.RepCompleted {
				log.Printf("Rep %d complete (angle %.1f°)", res.Snapshot.Count, res.Snapshot.Angle)
			}
		}
	}
}
