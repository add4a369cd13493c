package api

import (
	"encoding/json"
	"net/http"

	"github.com/arvindkm/repcount/internal/app"
	"github.com/arvindkm/repcount/internal/exercise"
)

// controlRequest is the body of a POST to /api/control.
type controlRequest struct {
	Action   string `json:"action"`
	Exercise string `json:"exercise,omitempty"`
}

// ControlHandler exposes session control: start/pause tracking, manual
// rep adjustment and exercise selection.
type ControlHandler struct {
	app *app.App
}

// NewControlHandler creates a new ControlHandler for the given app.
func NewControlHandler(a *app.App) *ControlHandler {
	return &ControlHandler{app: a}
}

// ServeHTTP routes requests for /api/control.
func (h *ControlHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.state(w, r)
	case http.MethodPost:
		h.control(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// state handles GET /api/control: the current tracking state.
func (h *ControlHandler) state(w http.ResponseWriter, r *http.Request) {
	counter := h.app.Counter()
	snap := counter.Snapshot()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"enabled":  h.app.IsEnabled(),
		"exercise": counter.Config().Exercise,
		"count":    snap.Count,
		"phase":    snap.Phase,
		"feedback": snap.Feedback,
		"angle":    snap.Angle,
	})
}

// control handles POST /api/control.
func (h *ControlHandler) control(w http.ResponseWriter, r *http.Request) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	counter := h.app.Counter()

	switch req.Action {
	case "start":
		h.app.SetEnabled(true)
		counter.SetActive(true)
	case "pause":
		h.app.SetEnabled(false)
		counter.SetActive(false)
	case "reset":
		counter.Reset()
	case "addrep":
		counter.AddRep()
	case "set_exercise":
		if err := h.app.SetExercise(exercise.Exercise(req.Exercise)); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		counter = h.app.Counter()
	default:
		writeError(w, http.StatusBadRequest, "Unknown action: "+req.Action)
		return
	}

	snap := counter.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"enabled":  h.app.IsEnabled(),
		"exercise": counter.Config().Exercise,
		"count":    snap.Count,
		"phase":    snap.Phase,
		"feedback": snap.Feedback,
		"angle":    snap.Angle,
	})
}
