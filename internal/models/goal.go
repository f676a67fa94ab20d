package models

import (
	"time"

	"github.com/google/uuid"
)

// GoalType classifies what a training goal measures.
type GoalType string

const (
	GoalVolume    GoalType = "volume"
	GoalStrength  GoalType = "strength"
	GoalEndurance GoalType = "endurance"
	GoalWeight    GoalType = "weight"
	GoalFrequency GoalType = "frequency"
	GoalDistance  GoalType = "distance"
	GoalVO2Max    GoalType = "vo2max"
	GoalCustom    GoalType = "custom"
)

// GoalStatus is the lifecycle state of a goal. Goals transition to completed
// automatically when current_value reaches target_value, and to abandoned
// only by explicit user action. They are never deleted automatically.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

// TrainingGoal is a persistent long-term goal, e.g. "run 40km this week".
// CurrentValue is mutated incrementally by the sync engine as matching
// activities arrive.
type TrainingGoal struct {
	ID           uuid.UUID  `json:"id"`
	UserID       int        `json:"user_id"`
	Title        string     `json:"title"`
	GoalType     GoalType   `json:"goal_type"`
	TargetValue  float64    `json:"target_value"`
	CurrentValue float64    `json:"current_value"`
	Unit         string     `json:"unit"`
	Discipline   *string    `json:"discipline,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Status       GoalStatus `json:"status"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsVO2MaxGoal reports whether the goal tracks estimated VO2max. VO2max is a
// snapshot metric: progress is the latest observed value, never a sum.
func (g TrainingGoal) IsVO2MaxGoal() bool {
	return g.GoalType == GoalVO2Max || (g.GoalType == GoalEndurance && g.Unit == "vo2max")
}
