package store

import (
	"database/sql"
	"time"
)

// Rep represents a single counted repetition stored in the database.
type Rep struct {
	ID          int64
	SessionID   string
	RepIndex    int
	Angle       float64
	CompletedAt time.Time
}

// RepRepository provides operations for recorded repetitions.
type RepRepository struct {
	db *sql.DB
}

// Reps returns the repetition repository for this store.
func (s *Store) Reps() *RepRepository {
	return &RepRepository{db: s.db}
}

// Create records one repetition for a session. Angle is the smoothed
// angle at the moment the repetition completed.
func (r *RepRepository) Create(sessionID string, repIndex int, angle float64) error {
	_, err := r.db.Exec(
		`INSERT INTO reps (session_id, rep_index, angle, completed_at)
		 VALUES (?, ?, ?, ?)`,
		sessionID, repIndex, angle, time.Now(),
	)
	return err
}

// ListBySession retrieves all repetitions for a session in order.
func (r *RepRepository) ListBySession(sessionID string) ([]Rep, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, rep_index, angle, completed_at
		 FROM reps WHERE session_id = ? ORDER BY rep_index`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reps []Rep
	for rows.Next() {
		var rep Rep
		if err := rows.Scan(&rep.ID, &rep.SessionID, &rep.RepIndex, &rep.Angle, &rep.CompletedAt); err != nil {
			return nil, err
		}
		reps = append(reps, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reps, nil
}

// DeleteBySession removes all repetitions for a session.
func (r *RepRepository) DeleteBySession(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM reps WHERE session_id = ?`, sessionID)
	return err
}
