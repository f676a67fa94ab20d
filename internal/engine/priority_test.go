package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/claude/traincoach/internal/models"
)

// buildWeekly is a shorthand for deriving weekly progress in priority tests.
func buildWeekly(t *testing.T, sessions []models.SessionRecord, coach models.Discipline) WeeklyProgress {
	t.Helper()
	return CalculateWeeklyProgress(sessions, coach, time.Now())
}

func TestPriorityFirstSession(t *testing.T) {
	got := DeterminePriorityToday(nil, 0, WeeklyProgress{}, models.DisciplineStrength)
	if !strings.Contains(got.Reason, "No recorded sessions") {
		t.Errorf("reason = %q, want first-session recommendation", got.Reason)
	}
	if len(got.ShouldPrioritize) == 0 {
		t.Error("first-session recommendation must prioritize something")
	}

	// The first-session template is generic, identical across coaches.
	endurance := DeterminePriorityToday(nil, 0, WeeklyProgress{}, models.DisciplineEndurance)
	if endurance.Reason != got.Reason {
		t.Errorf("first-session reason differs by coach: %q vs %q", endurance.Reason, got.Reason)
	}
}

// TestPriorityLongRest: three or more rest days switch to the per-coach
// ease-back-in template before any volume analysis.
func TestPriorityLongRest(t *testing.T) {
	now := time.Now()
	sessions := []models.SessionRecord{strengthSession(now.AddDate(0, 0, -3), exercise("Back Squat", 3, 10))}
	weekly := buildWeekly(t, sessions, models.DisciplineStrength)

	got := DeterminePriorityToday(sessions, 3, weekly, models.DisciplineStrength)
	if !strings.Contains(got.Reason, "Extended rest") {
		t.Errorf("reason = %q, want long-rest recommendation", got.Reason)
	}

	endurance := DeterminePriorityToday(sessions, 5, weekly, models.DisciplineEndurance)
	if endurance.Reason == got.Reason {
		t.Error("long-rest guidance should be discipline-specific")
	}
	joined := strings.Join(endurance.ShouldPrioritize, " ")
	if !strings.Contains(joined, "zone") && !strings.Contains(joined, "Low-intensity") {
		t.Errorf("endurance long-rest should suggest low-intensity zones, got %v", endurance.ShouldPrioritize)
	}
}

// TestPriorityHighVolume: a high weekly volume (or hitting the planned
// session count) triggers active-recovery guidance.
func TestPriorityHighVolume(t *testing.T) {
	now := time.Now()
	weekStart := startOfWeek(now)

	// Four sessions this week also trips the session-count condition;
	// volume alone trips the threshold condition (mean 30 → high 39 < 120).
	var sessions []models.SessionRecord
	for i := range 4 {
		sessions = append(sessions, strengthSession(
			weekStart.Add(time.Duration(i)*time.Hour), exercise("Back Squat", 3, 10)))
	}
	weekly := buildWeekly(t, sessions, models.DisciplineStrength)

	got := DeterminePriorityToday(sessions, 1, weekly, models.DisciplineStrength)
	if !strings.Contains(got.Reason, "volume is high") {
		t.Errorf("reason = %q, want high-volume recommendation", got.Reason)
	}
	if len(got.ShouldAvoid) == 0 {
		t.Error("high-volume recommendation must list things to avoid")
	}
}

// TestPriorityOveruse: recurring exercises produce a variation suggestion.
// Coaches that name exercises put them in the avoid list; endurance and
// functional coaches speak in modalities instead.
func TestPriorityOveruse(t *testing.T) {
	now := time.Now()
	weekStart := startOfWeek(now)

	// One session this week, two before it; same lift in all three. Weekly
	// volume (30) sits inside the derived band (21..39), so the overuse
	// branch is reached.
	sessions := []models.SessionRecord{
		strengthSession(weekStart.Add(time.Hour), exercise("Back Squat", 3, 10)),
		strengthSession(weekStart.AddDate(0, 0, -2), exercise("Back Squat", 3, 10)),
		strengthSession(weekStart.AddDate(0, 0, -4), exercise("Back Squat", 3, 10)),
	}
	weekly := buildWeekly(t, sessions, models.DisciplineStrength)

	got := DeterminePriorityToday(sessions, 1, weekly, models.DisciplineStrength)
	if !strings.Contains(got.Reason, "recurring") {
		t.Errorf("reason = %q, want overuse recommendation", got.Reason)
	}
	if len(got.ShouldAvoid) != 1 || got.ShouldAvoid[0] != "Back Squat" {
		t.Errorf("avoid list = %v, want [Back Squat]", got.ShouldAvoid)
	}
}

func TestPriorityOveruseEnduranceStaysGeneric(t *testing.T) {
	now := time.Now()
	weekStart := startOfWeek(now)
	dur := 45.0

	mk := func(ts time.Time) models.SessionRecord {
		return models.SessionRecord{
			Timestamp:         ts,
			Discipline:        models.DisciplineEndurance,
			DurationActualMin: &dur,
			Prescription: models.Prescription{
				Exercises: []models.PrescribedExercise{{Name: "Tempo Run"}},
			},
		}
	}
	sessions := []models.SessionRecord{
		mk(weekStart.Add(time.Hour)),
		mk(weekStart.AddDate(0, 0, -2)),
		mk(weekStart.AddDate(0, 0, -4)),
	}
	weekly := buildWeekly(t, sessions, models.DisciplineEndurance)

	got := DeterminePriorityToday(sessions, 1, weekly, models.DisciplineEndurance)
	if !strings.Contains(got.Reason, "vary the modality") {
		t.Errorf("reason = %q, want modality-variation recommendation", got.Reason)
	}
	for _, a := range got.ShouldAvoid {
		if a == "Tempo Run" {
			t.Error("endurance overuse guidance must not name specific exercises")
		}
	}
}

// TestPriorityRampUp: a genuinely low week (not just an exploratory test
// session) produces progression guidance.
func TestPriorityRampUp(t *testing.T) {
	now := time.Now()
	weekStart := startOfWeek(now)

	// History around 100 reps/session, this week only 40. Thresholds from
	// all five sessions: mean 88 → low 62. Weekly 40 < 62 → low; the last
	// session (40) is above the exploratory cutoff (31).
	sessions := []models.SessionRecord{
		strengthSession(weekStart.Add(time.Hour), exercise("Front Squat", 4, 10)),
		strengthSession(weekStart.AddDate(0, 0, -2), exercise("Back Squat", 10, 10)),
		strengthSession(weekStart.AddDate(0, 0, -4), exercise("Bench Press", 10, 10)),
		strengthSession(weekStart.AddDate(0, 0, -6), exercise("Deadlift", 10, 10)),
		strengthSession(weekStart.AddDate(0, 0, -8), exercise("Overhead Press", 10, 10)),
	}
	weekly := buildWeekly(t, sessions, models.DisciplineStrength)

	got := DeterminePriorityToday(sessions, 1, weekly, models.DisciplineStrength)
	if !strings.Contains(got.Reason, "below your usual range") {
		t.Errorf("reason = %q, want ramp-up recommendation", got.Reason)
	}
}

// TestPriorityExploratoryDoesNotTriggerRampUp: a trivial test session does
// not count as a low-volume week.
func TestPriorityExploratoryDoesNotTriggerRampUp(t *testing.T) {
	now := time.Now()
	weekStart := startOfWeek(now)

	// Last session is 10 reps, far below half the derived low threshold.
	sessions := []models.SessionRecord{
		strengthSession(weekStart.Add(time.Hour), exercise("Front Squat", 1, 10)),
		strengthSession(weekStart.AddDate(0, 0, -2), exercise("Back Squat", 10, 10)),
		strengthSession(weekStart.AddDate(0, 0, -4), exercise("Bench Press", 10, 10)),
		strengthSession(weekStart.AddDate(0, 0, -6), exercise("Deadlift", 10, 10)),
	}
	weekly := buildWeekly(t, sessions, models.DisciplineStrength)

	got := DeterminePriorityToday(sessions, 1, weekly, models.DisciplineStrength)
	if !strings.Contains(got.Reason, "Balanced week") {
		t.Errorf("reason = %q, want optimal recommendation (exploratory session suppressed)", got.Reason)
	}
}

func TestPriorityOptimal(t *testing.T) {
	now := time.Now()
	weekStart := startOfWeek(now)

	sessions := []models.SessionRecord{
		strengthSession(weekStart.Add(time.Hour), exercise("Front Squat", 10, 10)),
		strengthSession(weekStart.AddDate(0, 0, -3), exercise("Back Squat", 10, 10)),
		strengthSession(weekStart.AddDate(0, 0, -6), exercise("Bench Press", 10, 10)),
	}
	weekly := buildWeekly(t, sessions, models.DisciplineStrength)

	got := DeterminePriorityToday(sessions, 1, weekly, models.DisciplineStrength)
	if !strings.Contains(got.Reason, "Balanced week") {
		t.Errorf("reason = %q, want optimal recommendation", got.Reason)
	}
}

// TestPriorityUnknownCoachFallsBackToStrength: unlisted coach types use the
// strength tables.
func TestPriorityUnknownCoachFallsBackToStrength(t *testing.T) {
	now := time.Now()
	sessions := []models.SessionRecord{strengthSession(now.AddDate(0, 0, -4), exercise("Back Squat", 3, 10))}
	weekly := buildWeekly(t, sessions, models.Discipline("yoga"))

	got := DeterminePriorityToday(sessions, 4, weekly, models.Discipline("yoga"))
	want := DeterminePriorityToday(sessions, 4, weekly, models.DisciplineStrength)
	if got.Reason != want.Reason {
		t.Errorf("unknown coach reason = %q, want strength reason %q", got.Reason, want.Reason)
	}
}
