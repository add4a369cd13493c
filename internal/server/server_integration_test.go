package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/arvindkm/repcount/internal/app"
	"github.com/arvindkm/repcount/internal/detector"
	"github.com/arvindkm/repcount/internal/exercise"
	"github.com/arvindkm/repcount/internal/store"
)

func TestAPI_SessionHistoryWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	srv := New(Config{Store: s})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	// Sessions are opened by the tracking pipeline, not the API; seed one
	sess := &store.Session{ID: uuid.New().String(), Exercise: string(exercise.Squat)}
	if err := s.Sessions().Create(sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	s.Reps().Create(sess.ID, 1, 161.0)
	s.Sessions().Finish(sess.ID, 1)

	// 1. List sessions
	resp, err := client.Get(ts.URL + "/api/sessions")
	if err != nil {
		t.Fatalf("GET /api/sessions error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var listed []*store.Session
	json.NewDecoder(resp.Body).Decode(&listed)
	resp.Body.Close()

	if len(listed) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(listed))
	}

	// 2. Get single session with its reps
	resp, _ = client.Get(ts.URL + "/api/sessions/" + sess.ID)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/sessions/%s status = %d, want %d", sess.ID, resp.StatusCode, http.StatusOK)
	}

	var detail struct {
		ID   string `json:"id"`
		Reps []struct {
			Angle float64 `json:"angle"`
		} `json:"reps"`
	}
	json.NewDecoder(resp.Body).Decode(&detail)
	resp.Body.Close()

	if len(detail.Reps) != 1 {
		t.Fatalf("len(reps) = %d, want 1", len(detail.Reps))
	}

	// 3. Delete session
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/sessions/"+sess.ID, nil)
	resp, _ = client.Do(req)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	resp.Body.Close()

	// 4. Verify deleted
	resp, _ = client.Get(ts.URL + "/api/sessions/" + sess.ID)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp.Body.Close()
}

func TestWS_StateBroadcast(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	tmpDir := t.TempDir()
	s, _ := store.New(filepath.Join(tmpDir, "test.db"))
	defer s.Close()

	a, err := app.New(app.Config{Store: s})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	a.SetDetector(detector.NewMockDetector())
	a.Counter().AddRep()

	srv := New(Config{Store: s, App: a})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/state"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial error = %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("websocket read error = %v", err)
	}

	var state struct {
		Count    int     `json:"count"`
		Phase    string  `json:"phase"`
		Feedback string  `json:"feedback"`
		Angle    float64 `json:"angle"`
		Exercise string  `json:"exercise"`
	}
	if err := json.Unmarshal(msg, &state); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}

	if state.Count != 1 {
		t.Errorf("count = %d, want 1", state.Count)
	}
	if state.Exercise != string(exercise.Squat) {
		t.Errorf("exercise = %q, want squat", state.Exercise)
	}
	if state.Phase == "" {
		t.Error("expected a phase in the broadcast state")
	}
}
