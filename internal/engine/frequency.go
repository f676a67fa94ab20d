package engine

import (
	"sort"

	"github.com/claude/traincoach/internal/models"
)

// ExerciseFrequency is how many sessions in the lookback window contained a
// named exercise.
type ExerciseFrequency struct {
	ExerciseName string `json:"exercise_name"`
	Frequency    int    `json:"frequency"`
}

// overuseThreshold is the session count at which an exercise is considered
// overused within the lookback window.
const overuseThreshold = 3

// maxOverusedListed caps how many overused exercises are surfaced in
// recommendations.
const maxOverusedListed = 5

// AnalyzeExerciseFrequency counts, per exercise name, the number of sessions
// containing it, sorted by descending frequency. Ties keep first-seen input
// order (stable sort).
func AnalyzeExerciseFrequency(sessions []models.SessionRecord) []ExerciseFrequency {
	counts := map[string]int{}
	var order []string

	for _, s := range sessions {
		seen := map[string]bool{}
		for _, ex := range s.Prescription.Exercises {
			if ex.Name == "" || seen[ex.Name] {
				continue
			}
			seen[ex.Name] = true
			if _, ok := counts[ex.Name]; !ok {
				order = append(order, ex.Name)
			}
			counts[ex.Name]++
		}
	}

	result := make([]ExerciseFrequency, 0, len(order))
	for _, name := range order {
		result = append(result, ExerciseFrequency{ExerciseName: name, Frequency: counts[name]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Frequency > result[j].Frequency
	})
	return result
}

// OverusedExercises returns the exercises appearing in at least three
// sessions of the window, capped at five entries.
func OverusedExercises(sessions []models.SessionRecord) []string {
	var overused []string
	for _, f := range AnalyzeExerciseFrequency(sessions) {
		if f.Frequency < overuseThreshold {
			break
		}
		overused = append(overused, f.ExerciseName)
		if len(overused) == maxOverusedListed {
			break
		}
	}
	return overused
}
