package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/traincoach/internal/models"
)

// InsertSession inserts a training session row. The prescription is stored
// as JSONB. Returns true if inserted, false if the id already exists.
func (db *DB) InsertSession(ctx context.Context, s models.SessionRecord) (bool, error) {
	prescription, err := json.Marshal(s.Prescription)
	if err != nil {
		return false, fmt.Errorf("encoding prescription: %w", err)
	}

	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO training_sessions (id, user_id, timestamp, discipline, prescription, duration_actual_min, overall_rpe)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT DO NOTHING`,
		s.ID, s.UserID, s.Timestamp, s.Discipline, prescription, s.DurationActualMin, s.OverallRPE)
	if err != nil {
		return false, fmt.Errorf("inserting session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListSessions retrieves a user's sessions since the given time, newest
// first, capped at limit.
func (db *DB) ListSessions(ctx context.Context, userID int, since time.Time, limit int) ([]models.SessionRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, timestamp, discipline, prescription, duration_actual_min, overall_rpe
		 FROM training_sessions
		 WHERE user_id = $1 AND timestamp >= $2
		 ORDER BY timestamp DESC
		 LIMIT $3`,
		userID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionRecord
	for rows.Next() {
		var s models.SessionRecord
		var prescription []byte
		if err := rows.Scan(&s.ID, &s.UserID, &s.Timestamp, &s.Discipline,
			&prescription, &s.DurationActualMin, &s.OverallRPE); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if len(prescription) > 0 {
			if err := json.Unmarshal(prescription, &s.Prescription); err != nil {
				return nil, fmt.Errorf("decoding prescription: %w", err)
			}
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
