package engine

import (
	"math"

	"github.com/claude/traincoach/internal/models"
)

// RecoveryScore scores readiness-to-train in [0, 100] from the time elapsed
// since the last session and that session's intensity. Each rest day is
// worth 25 points (capped at 100), scaled down when the last session was
// hard: RPE ≥ 8 costs 30%, RPE ≥ 6 costs 15%. A missing RPE counts as 5.
func RecoveryScore(last models.SessionRecord, daysSinceLast int) int {
	base := math.Min(float64(daysSinceLast)*25, 100)

	rpe := 5.0
	if last.OverallRPE != nil {
		rpe = *last.OverallRPE
	}

	factor := 1.0
	switch {
	case rpe >= 8:
		factor = 0.7
	case rpe >= 6:
		factor = 0.85
	}

	score := int(math.Round(base * factor))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// OptimalWindow is the readiness decision for training right now.
type OptimalWindow struct {
	IsOptimal         bool   `json:"is_optimal"`
	HoursUntilOptimal int    `json:"hours_until_optimal,omitempty"`
	Reason            string `json:"reason"`
}

// DetermineOptimalWindow maps a recovery score onto a training-window
// decision. This is a fixed decision table, not a continuous function.
func DetermineOptimalWindow(score, daysSinceLast int) OptimalWindow {
	if score >= 80 {
		return OptimalWindow{
			IsOptimal: true,
			Reason:    "Recovery is excellent; now is an optimal time to train",
		}
	}

	if daysSinceLast == 0 {
		return OptimalWindow{
			IsOptimal:         false,
			HoursUntilOptimal: 12,
			Reason:            "Rest recommended after today's session",
		}
	}

	if score < 60 {
		hours := int(math.Ceil(float64(60-score) / 25 * 24))
		return OptimalWindow{
			IsOptimal:         false,
			HoursUntilOptimal: hours,
			Reason:            "Recovery is incomplete; prefer a light session",
		}
	}

	return OptimalWindow{
		IsOptimal: true,
		Reason:    "Recovery is sufficient for a normal session",
	}
}
