package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SessionRecord is one completed or logged training session. Rows are
// immutable once created; the engine only reads them.
type SessionRecord struct {
	ID                uuid.UUID    `json:"id"`
	UserID            int          `json:"user_id"`
	Timestamp         time.Time    `json:"timestamp"`
	Discipline        Discipline   `json:"discipline"`
	Prescription      Prescription `json:"prescription"`
	DurationActualMin *float64     `json:"duration_actual_min,omitempty"`
	OverallRPE        *float64     `json:"overall_rpe,omitempty"`
}

// Prescription is the semi-structured payload describing what a session
// asked for: a list of exercises for rep-based work, or a format descriptor
// (AMRAP, EMOM, For Time, circuit) for time- and station-based work.
type Prescription struct {
	Exercises   []PrescribedExercise `json:"exercises,omitempty"`
	Format      string               `json:"format,omitempty"`
	DurationMin float64              `json:"duration_min,omitempty"`
	Rounds      int                  `json:"rounds,omitempty"`
	Stations    int                  `json:"stations,omitempty"`
}

// PrescribedExercise is a single exercise line in a prescription.
type PrescribedExercise struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets,omitempty"`
	Reps   RepSpec `json:"reps,omitempty"`
	LoadKg float64 `json:"load_kg,omitempty"`
}

// RepSpec handles the three rep encodings found in prescription payloads:
// a plain number (10), a [low, high] range array, or an "8-12" range string.
type RepSpec struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// First returns the lower bound of the rep prescription, which is what
// volume calculations use for ranges.
func (r RepSpec) First() int { return r.Low }

func (r *RepSpec) UnmarshalJSON(data []byte) error {
	// Number: 10
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		r.Low, r.High = n, n
		return nil
	}

	// Array: [8, 12]
	var arr []int
	if err := json.Unmarshal(data, &arr); err == nil {
		if len(arr) == 0 {
			return nil
		}
		r.Low = arr[0]
		r.High = arr[len(arr)-1]
		return nil
	}

	// String: "8-12" or "10"
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return r.parse(s)
	}

	// Object: {"low": 8, "high": 12} — the canonical storage form.
	type plain RepSpec
	var p plain
	if err := json.Unmarshal(data, &p); err == nil {
		*r = RepSpec(p)
		return nil
	}

	return fmt.Errorf("cannot parse rep spec %s", data)
}

func (r RepSpec) MarshalJSON() ([]byte, error) {
	if r.Low == r.High {
		return json.Marshal(r.Low)
	}
	return json.Marshal([]int{r.Low, r.High})
}

func (r *RepSpec) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if low, high, ok := strings.Cut(s, "-"); ok {
		l, err := strconv.Atoi(strings.TrimSpace(low))
		if err != nil {
			return fmt.Errorf("cannot parse rep range %q: %w", s, err)
		}
		h, err := strconv.Atoi(strings.TrimSpace(high))
		if err != nil {
			return fmt.Errorf("cannot parse rep range %q: %w", s, err)
		}
		r.Low, r.High = l, h
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("cannot parse rep spec %q: %w", s, err)
	}
	r.Low, r.High = n, n
	return nil
}

// FlexTime handles the timestamp formats found in export payloads:
// RFC 3339, "2006-01-02 15:04:05 -0700", or date-only "2006-01-02".
type FlexTime struct {
	time.Time
}

const spaceTimeLayout = "2006-01-02 15:04:05 -0700"

func (t *FlexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.Parse(s)
}

func (t FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339))
}

// Parse tries RFC 3339 first, then the space-separated layout, then date-only.
func (t *FlexTime) Parse(s string) error {
	for _, layout := range []string{time.RFC3339, spaceTimeLayout, "2006-01-02"} {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("cannot parse time %q", s)
}
