package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/traincoach/internal/models"
)

// InsertActivity inserts an activity row. Returns true if inserted, false
// if the id already exists.
func (db *DB) InsertActivity(ctx context.Context, a models.ActivityRecord) (bool, error) {
	tag, err := db.Pool.Exec(ctx,
		`INSERT INTO activities (id, user_id, timestamp, type, duration_min, distance_meters,
		 calories_est, vo2max_estimated, training_load_score, avg_power_watts, efficiency_score)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 ON CONFLICT DO NOTHING`,
		a.ID, a.UserID, a.Timestamp, a.Type, a.DurationMin, a.DistanceMeters,
		a.CaloriesEst, a.VO2MaxEstimated, a.TrainingLoadScore, a.AvgPowerWatts, a.EfficiencyScore)
	if err != nil {
		return false, fmt.Errorf("inserting activity: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetActivity retrieves a single activity. A missing row is nil, not an
// error.
func (db *DB) GetActivity(ctx context.Context, id uuid.UUID, userID int) (*models.ActivityRecord, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, user_id, timestamp, type, duration_min, distance_meters,
		 calories_est, vo2max_estimated, training_load_score, avg_power_watts, efficiency_score
		 FROM activities
		 WHERE id = $1 AND user_id = $2`,
		id, userID)

	var a models.ActivityRecord
	err := row.Scan(&a.ID, &a.UserID, &a.Timestamp, &a.Type, &a.DurationMin, &a.DistanceMeters,
		&a.CaloriesEst, &a.VO2MaxEstimated, &a.TrainingLoadScore, &a.AvgPowerWatts, &a.EfficiencyScore)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	return &a, nil
}

// ListActivitiesSince retrieves a user's activities since the given time in
// ascending timestamp order, the order goal recalculation replays them in.
func (db *DB) ListActivitiesSince(ctx context.Context, userID int, since time.Time) ([]models.ActivityRecord, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, user_id, timestamp, type, duration_min, distance_meters,
		 calories_est, vo2max_estimated, training_load_score, avg_power_watts, efficiency_score
		 FROM activities
		 WHERE user_id = $1 AND timestamp >= $2
		 ORDER BY timestamp ASC`,
		userID, since)
	if err != nil {
		return nil, fmt.Errorf("querying activities: %w", err)
	}
	defer rows.Close()

	var result []models.ActivityRecord
	for rows.Next() {
		var a models.ActivityRecord
		if err := rows.Scan(&a.ID, &a.UserID, &a.Timestamp, &a.Type, &a.DurationMin, &a.DistanceMeters,
			&a.CaloriesEst, &a.VO2MaxEstimated, &a.TrainingLoadScore, &a.AvgPowerWatts, &a.EfficiencyScore); err != nil {
			return nil, fmt.Errorf("scanning activity: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
