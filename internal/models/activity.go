package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityRecord is a raw activity log entry, typically collected from a
// wearable or fitness platform export. Distinct from SessionRecord: sessions
// carry a prescription, activities carry measured metrics. Read-only input
// to goal syncing.
type ActivityRecord struct {
	ID                uuid.UUID `json:"id"`
	UserID            int       `json:"user_id"`
	Timestamp         time.Time `json:"timestamp"`
	Type              string    `json:"type"`
	DurationMin       *float64  `json:"duration_min,omitempty"`
	DistanceMeters    *float64  `json:"distance_meters,omitempty"`
	CaloriesEst       *float64  `json:"calories_est,omitempty"`
	VO2MaxEstimated   *float64  `json:"vo2max_estimated,omitempty"`
	TrainingLoadScore *float64  `json:"training_load_score,omitempty"`
	AvgPowerWatts     *float64  `json:"avg_power_watts,omitempty"`
	EfficiencyScore   *float64  `json:"efficiency_score,omitempty"`
}
