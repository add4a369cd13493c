package api

import (
	"net/http"

	"github.com/arvindkm/repcount/internal/detector"
	"github.com/arvindkm/repcount/internal/exercise"
)

// exerciseInfo is the wire form of one exercise configuration. Joint
// indices are translated to names so clients don't need the index table.
type exerciseInfo struct {
	Exercise      exercise.Exercise `json:"exercise"`
	Proximal      string            `json:"proximal"`
	Vertex        string            `json:"vertex"`
	Distal        string            `json:"distal"`
	DownThreshold float64           `json:"down_threshold"`
	UpThreshold   float64           `json:"up_threshold"`
	Inverted      bool              `json:"inverted"`
}

// ExercisesHandler serves the built-in exercise configuration table.
type ExercisesHandler struct{}

// NewExercisesHandler creates a new ExercisesHandler.
func NewExercisesHandler() *ExercisesHandler {
	return &ExercisesHandler{}
}

// ServeHTTP handles GET /api/exercises.
func (h *ExercisesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	configs := exercise.All()
	infos := make([]exerciseInfo, 0, len(configs))
	for _, cfg := range configs {
		infos = append(infos, exerciseInfo{
			Exercise:      cfg.Exercise,
			Proximal:      detector.JointName(cfg.Proximal),
			Vertex:        detector.JointName(cfg.Vertex),
			Distal:        detector.JointName(cfg.Distal),
			DownThreshold: cfg.DownThreshold,
			UpThreshold:   cfg.UpThreshold,
			Inverted:      cfg.Inverted,
		})
	}

	writeJSON(w, http.StatusOK, infos)
}
