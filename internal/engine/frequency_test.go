package engine

import (
	"testing"
	"time"

	"github.com/claude/traincoach/internal/models"
)

// TestAnalyzeExerciseFrequency verifies session-level counting, descending
// order, and stable tie-breaking by first appearance.
func TestAnalyzeExerciseFrequency(t *testing.T) {
	now := time.Now()
	sessions := []models.SessionRecord{
		strengthSession(now, exercise("Back Squat", 3, 10), exercise("Bench Press", 3, 8)),
		strengthSession(now, exercise("Back Squat", 5, 5), exercise("Deadlift", 3, 5)),
		strengthSession(now, exercise("Back Squat", 4, 6), exercise("Bench Press", 4, 6)),
	}

	got := AnalyzeExerciseFrequency(sessions)
	want := []ExerciseFrequency{
		{"Back Squat", 3},
		{"Bench Press", 2},
		{"Deadlift", 1},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestAnalyzeExerciseFrequencyDedupe: an exercise repeated within one
// session counts once for that session.
func TestAnalyzeExerciseFrequencyDedupe(t *testing.T) {
	now := time.Now()
	sessions := []models.SessionRecord{
		strengthSession(now, exercise("Pull-up", 3, 10), exercise("Pull-up", 2, 5)),
	}

	got := AnalyzeExerciseFrequency(sessions)
	if len(got) != 1 || got[0].Frequency != 1 {
		t.Errorf("got %+v, want single entry with frequency 1", got)
	}
}

func TestOverusedExercises(t *testing.T) {
	now := time.Now()

	var sessions []models.SessionRecord
	// "Back Squat" in 4 sessions, "Bench Press" in 3, "Deadlift" in 2.
	for i := range 4 {
		exs := []models.PrescribedExercise{exercise("Back Squat", 3, 10)}
		if i < 3 {
			exs = append(exs, exercise("Bench Press", 3, 8))
		}
		if i < 2 {
			exs = append(exs, exercise("Deadlift", 2, 5))
		}
		sessions = append(sessions, strengthSession(now, exs...))
	}

	got := OverusedExercises(sessions)
	want := []string{"Back Squat", "Bench Press"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("overused[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOverusedExercisesCap(t *testing.T) {
	now := time.Now()
	names := []string{"A", "B", "C", "D", "E", "F", "G"}

	var sessions []models.SessionRecord
	for range 3 {
		var exs []models.PrescribedExercise
		for _, n := range names {
			exs = append(exs, exercise(n, 1, 1))
		}
		sessions = append(sessions, strengthSession(now, exs...))
	}

	if got := OverusedExercises(sessions); len(got) != 5 {
		t.Errorf("overused list length = %d, want cap of 5", len(got))
	}
}

func TestOverusedExercisesNone(t *testing.T) {
	now := time.Now()
	sessions := []models.SessionRecord{
		strengthSession(now, exercise("Back Squat", 3, 10)),
		strengthSession(now, exercise("Bench Press", 3, 8)),
	}
	if got := OverusedExercises(sessions); got != nil {
		t.Errorf("expected no overused exercises, got %v", got)
	}
}
