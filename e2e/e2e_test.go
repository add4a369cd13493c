package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arvindkm/repcount/internal/app"
	"github.com/arvindkm/repcount/internal/detector"
	"github.com/arvindkm/repcount/internal/exercise"
	"github.com/arvindkm/repcount/internal/rep"
	"github.com/arvindkm/repcount/internal/server"
	"github.com/arvindkm/repcount/internal/store"
)

func TestE2E_CompleteWorkout(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()

	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application, err := app.New(app.Config{
		Store:        s,
		MotionThresh: 0.05,
	})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	mockDetector := detector.NewMockDetector()
	application.SetDetector(mockDetector)

	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("SelectExercise", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/control",
			"application/json",
			strings.NewReader(`{"action": "set_exercise", "exercise": "squat"}`),
		)
		if err != nil {
			t.Fatalf("set_exercise error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	t.Run("StartTracking", func(t *testing.T) {
		resp, err := client.Post(
			ts.URL+"/api/control",
			"application/json",
			strings.NewReader(`{"action": "start"}`),
		)
		if err != nil {
			t.Fatalf("start error = %v", err)
		}
		resp.Body.Close()

		if !application.IsEnabled() {
			t.Error("expected tracking to be enabled")
		}
	})

	t.Run("CountReps", func(t *testing.T) {
		counter := application.Counter()

		standing := rep.Extract(detector.StandingLandmarks(), rep.ConfidenceFloor)
		squatting := rep.Extract(detector.SquattingLandmarks(), rep.ConfidenceFloor)

		counter.ProcessFrame(standing)
		for i := 0; i < 5; i++ {
			counter.ProcessFrame(squatting)
		}
		var reps int
		for i := 0; i < 5; i++ {
			if counter.ProcessFrame(standing).RepCompleted {
				reps++
			}
		}

		if reps != 1 {
			t.Fatalf("counted reps = %d, want 1", reps)
		}
	})

	t.Run("StateReflectsCount", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/control")
		if err != nil {
			t.Fatalf("get state error = %v", err)
		}
		defer resp.Body.Close()

		var state struct {
			Count    int    `json:"count"`
			Exercise string `json:"exercise"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if state.Count != 1 {
			t.Errorf("count = %d, want 1", state.Count)
		}
		if state.Exercise != string(exercise.Squat) {
			t.Errorf("exercise = %q, want squat", state.Exercise)
		}
	})

	t.Run("RepPersisted", func(t *testing.T) {
		sessionID := application.SessionID()
		if sessionID == "" {
			t.Fatal("expected an open session")
		}

		reps, err := s.Reps().ListBySession(sessionID)
		if err != nil {
			t.Fatalf("ListBySession() error = %v", err)
		}
		if len(reps) != 1 {
			t.Errorf("persisted reps = %d, want 1", len(reps))
		}
	})

	t.Run("SessionHistoryAPI", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/sessions")
		if err != nil {
			t.Fatalf("list sessions error = %v", err)
		}
		defer resp.Body.Close()

		var sessions []*store.Session
		if err := json.NewDecoder(resp.Body).Decode(&sessions); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if len(sessions) == 0 {
			t.Fatal("expected at least one session in history")
		}
	})

	t.Run("APIStillWorks", func(t *testing.T) {
		resp, _ := client.Get(ts.URL + "/api/health")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("health check failed after workout operations")
		}
		resp.Body.Close()
	})
}

func TestE2E_ManualCorrection(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	application, err := app.New(app.Config{Store: s})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	application.SetDetector(detector.NewMockDetector())

	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	post := func(body string) *http.Response {
		t.Helper()
		resp, err := client.Post(ts.URL+"/api/control", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("control request error = %v", err)
		}
		return resp
	}

	// The user missed a rep and adds it by hand, then resets the session.
	post(`{"action": "addrep"}`).Body.Close()
	post(`{"action": "addrep"}`).Body.Close()

	if got := application.Counter().Snapshot().Count; got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}

	resp := post(`{"action": "reset"}`)
	var state struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	resp.Body.Close()

	if state.Count != 0 {
		t.Errorf("count after reset = %d, want 0", state.Count)
	}
}
