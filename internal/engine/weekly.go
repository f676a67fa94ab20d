package engine

import (
	"math"
	"time"

	"github.com/claude/traincoach/internal/models"
)

// sessionsPlannedPerWeek is the fixed weekly session target shown next to
// the actual count.
const sessionsPlannedPerWeek = 4

// WeeklyProgress summarizes the current calendar week (Monday start). It is
// recomputed on every request and never persisted.
type WeeklyProgress struct {
	CurrentWeekIndex        int                 `json:"current_week_index"`
	WeekStartDate           time.Time           `json:"week_start_date"`
	SessionsThisWeek        int                 `json:"sessions_this_week"`
	SessionsPlannedThisWeek int                 `json:"sessions_planned_this_week"`
	DisciplinesThisWeek     []models.Discipline `json:"disciplines_this_week"`
	TotalVolumeThisWeek     VolumeResult        `json:"total_volume_this_week"`
	AvgRPEThisWeek          float64             `json:"avg_rpe_this_week"`
}

// startOfWeek returns the Monday 00:00 of the week containing t.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the preceding Monday
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}

// CalculateWeeklyProgress derives this week's numbers from the session
// window. Total volume only counts sessions with timestamps inside
// [weekStart, weekStart+7d), so it equals the sum of those sessions'
// individual volumes.
func CalculateWeeklyProgress(sessions []models.SessionRecord, coach models.Discipline, now time.Time) WeeklyProgress {
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var thisWeek []models.SessionRecord
	seen := map[models.Discipline]bool{}
	var disciplines []models.Discipline
	rpeSum, rpeCount := 0.0, 0

	for _, s := range sessions {
		if s.Timestamp.Before(weekStart) || !s.Timestamp.Before(weekEnd) {
			continue
		}
		thisWeek = append(thisWeek, s)
		if !seen[s.Discipline] {
			seen[s.Discipline] = true
			disciplines = append(disciplines, s.Discipline)
		}
		if s.OverallRPE != nil {
			rpeSum += *s.OverallRPE
			rpeCount++
		}
	}

	avgRPE := 0.0
	if rpeCount > 0 {
		avgRPE = math.Round(rpeSum/float64(rpeCount)*10) / 10
	}

	return WeeklyProgress{
		CurrentWeekIndex:        int(now.Sub(weekStart).Hours()/24/7) + 1,
		WeekStartDate:           weekStart,
		SessionsThisWeek:        len(thisWeek),
		SessionsPlannedThisWeek: sessionsPlannedPerWeek,
		DisciplinesThisWeek:     disciplines,
		TotalVolumeThisWeek:     TotalVolume(thisWeek, coach),
		AvgRPEThisWeek:          avgRPE,
	}
}
