package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestRepSpecUnmarshal verifies the three rep encodings found in prescription
// payloads all parse to the same structure.
func TestRepSpecUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLow  int
		wantHigh int
	}{
		{"plain number", `10`, 10, 10},
		{"range array", `[8, 12]`, 8, 12},
		{"single-element array", `[15]`, 15, 15},
		{"range string", `"8-12"`, 8, 12},
		{"number string", `"20"`, 20, 20},
		{"range string with spaces", `"6 - 10"`, 6, 10},
		{"object form", `{"low": 5, "high": 8}`, 5, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RepSpec
			if err := json.Unmarshal([]byte(tt.input), &r); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.input, err)
			}
			if r.Low != tt.wantLow || r.High != tt.wantHigh {
				t.Errorf("got [%d, %d], want [%d, %d]", r.Low, r.High, tt.wantLow, tt.wantHigh)
			}
			if r.First() != tt.wantLow {
				t.Errorf("First() = %d, want %d", r.First(), tt.wantLow)
			}
		})
	}
}

func TestRepSpecUnmarshalInvalid(t *testing.T) {
	var r RepSpec
	if err := json.Unmarshal([]byte(`"eight to twelve"`), &r); err == nil {
		t.Error("expected error for non-numeric rep string")
	}
}

// TestPrescriptionUnmarshal verifies a realistic mixed-format prescription
// payload parses, including rep ranges inside exercises.
func TestPrescriptionUnmarshal(t *testing.T) {
	payload := `{
		"format": "AMRAP",
		"duration_min": 20,
		"rounds": 5,
		"exercises": [
			{"name": "Pull-up", "sets": 3, "reps": [8, 12]},
			{"name": "Back Squat", "sets": 5, "reps": 5, "load_kg": 100}
		]
	}`

	var p Prescription
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Format != "AMRAP" {
		t.Errorf("format = %q, want AMRAP", p.Format)
	}
	if p.DurationMin != 20 {
		t.Errorf("duration_min = %v, want 20", p.DurationMin)
	}
	if len(p.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(p.Exercises))
	}
	if p.Exercises[0].Reps.First() != 8 {
		t.Errorf("pull-up first reps = %d, want 8", p.Exercises[0].Reps.First())
	}
	if p.Exercises[1].LoadKg != 100 {
		t.Errorf("squat load = %v, want 100", p.Exercises[1].LoadKg)
	}
}

func TestFlexTimeParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2026-03-15T07:30:00Z", time.Date(2026, 3, 15, 7, 30, 0, 0, time.UTC)},
		{"space layout", "2026-03-15 07:30:00 +0000", time.Date(2026, 3, 15, 7, 30, 0, 0, time.UTC)},
		{"date only", "2026-03-15", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ft FlexTime
			if err := ft.Parse(tt.input); err != nil {
				t.Fatalf("parse %q: %v", tt.input, err)
			}
			if !ft.Time.Equal(tt.want) {
				t.Errorf("parsed %v, want %v", ft.Time, tt.want)
			}
		})
	}

	var ft FlexTime
	if err := ft.Parse("not a date"); err == nil {
		t.Error("expected error for unparseable time")
	}
}

func TestParseDiscipline(t *testing.T) {
	tests := []struct {
		input string
		want  Discipline
	}{
		{"strength", DisciplineStrength},
		{"Force", DisciplineStrength},
		{"musculation", DisciplineStrength},
		{"running", DisciplineEndurance},
		{"CYCLING", DisciplineEndurance},
		{"crossfit", DisciplineFunctional},
		{"WOD", DisciplineFunctional},
		{"street-workout", DisciplineCalisthenics},
		{"hyrox", DisciplineCompetitions},
		{"  endurance  ", DisciplineEndurance},
		{"underwater basket weaving", DisciplineStrength}, // unknown falls back
		{"", DisciplineStrength},
	}

	for _, tt := range tests {
		if got := ParseDiscipline(tt.input); got != tt.want {
			t.Errorf("ParseDiscipline(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
