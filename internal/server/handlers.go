package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/traincoach/internal/goals"
	"github.com/claude/traincoach/internal/models"
)

// IngestResult summarizes one ingest request.
type IngestResult struct {
	Received     int               `json:"received"`
	Inserted     int               `json:"inserted"`
	Duplicates   int               `json:"duplicates"`
	GoalsUpdated []goals.SyncResult `json:"goals_updated,omitempty"`
}

func (s *Server) handleIngestActivities(w http.ResponseWriter, r *http.Request) {
	var payload models.ExportData
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(payload.Activities) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no activities in payload"})
		return
	}

	uid := userIDFromContext(r)
	result := IngestResult{Received: len(payload.Activities)}
	for _, a := range payload.Activities {
		inserted, synced, err := s.svc.IngestActivity(r.Context(), a.Record(uid))
		if err != nil {
			s.log.Error("activity ingest error", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if inserted {
			result.Inserted++
			result.GoalsUpdated = append(result.GoalsUpdated, synced...)
		} else {
			result.Duplicates++
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleIngestSessions(w http.ResponseWriter, r *http.Request) {
	var payload models.ExportData
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if len(payload.Sessions) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no sessions in payload"})
		return
	}

	uid := userIDFromContext(r)
	result := IngestResult{Received: len(payload.Sessions)}
	for _, sess := range payload.Sessions {
		inserted, err := s.svc.IngestSession(r.Context(), sess.Record(uid))
		if err != nil {
			s.log.Error("session ingest error", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if inserted {
			result.Inserted++
		} else {
			result.Duplicates++
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTodayContext(w http.ResponseWriter, r *http.Request) {
	coachType := models.ParseDiscipline(r.URL.Query().Get("coach"))

	tc, err := s.svc.TodayContext(r.Context(), userIDFromContext(r), coachType)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, tc)
}

func (s *Server) handleVolumeSummary(w http.ResponseWriter, r *http.Request) {
	coachType := models.ParseDiscipline(r.URL.Query().Get("coach"))
	days := parseIntParam(r, "days", 7)

	summary, err := s.svc.VolumeSummary(r.Context(), userIDFromContext(r), coachType, days)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	progress, err := s.svc.GoalsProgress(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if progress == nil {
		progress = []goals.Progress{}
	}
	writeJSON(w, http.StatusOK, progress)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var goal models.TrainingGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	goal.UserID = userIDFromContext(r)

	created, err := s.svc.CreateGoal(r.Context(), goal)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleRecalculateGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal ID"})
		return
	}

	result, err := s.svc.RecalculateGoal(r.Context(), goalID, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if result == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "goal not found"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleRecalculateAllGoals(w http.ResponseWriter, r *http.Request) {
	results, err := s.svc.RecalculateAllGoals(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if results == nil {
		results = []goals.SyncResult{}
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleCheckCompletions(w http.ResponseWriter, r *http.Request) {
	completed, err := s.svc.CheckGoalCompletions(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if completed == nil {
		completed = []models.TrainingGoal{}
	}
	writeJSON(w, http.StatusOK, completed)
}

func (s *Server) handleGoalDeadlines(w http.ResponseWriter, r *http.Request) {
	days := parseIntParam(r, "days", 7)

	deadlines, err := s.svc.GoalDeadlines(r.Context(), userIDFromContext(r), time.Duration(days)*24*time.Hour)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, deadlines)
}

func (s *Server) handleSetGoalStatus(w http.ResponseWriter, r *http.Request) {
	goalID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid goal ID"})
		return
	}

	var body struct {
		Status models.GoalStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	updated, err := s.svc.SetGoalStatus(r.Context(), goalID, userIDFromContext(r), body.Status)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "goal not found"})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleGoalSuggestions(w http.ResponseWriter, r *http.Request) {
	days := parseIntParam(r, "days", 90)

	suggestions, err := s.svc.SuggestGoals(r.Context(), userIDFromContext(r), days)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if suggestions == nil {
		suggestions = []models.TrainingGoal{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseIntParam(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
