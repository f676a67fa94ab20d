package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"tailscale.com/client/local"

	"github.com/claude/traincoach/internal/coach"
	"github.com/claude/traincoach/internal/engine"
	"github.com/claude/traincoach/internal/goals"
	"github.com/claude/traincoach/internal/models"
)

// CoachService is the application surface the handlers call into.
type CoachService interface {
	TodayContext(ctx context.Context, userID int, coach models.Discipline) (*engine.TodayContext, error)
	IngestSession(ctx context.Context, session models.SessionRecord) (bool, error)
	IngestActivity(ctx context.Context, activity models.ActivityRecord) (bool, []goals.SyncResult, error)
	VolumeSummary(ctx context.Context, userID int, coach models.Discipline, days int) (*coach.VolumeSummary, error)
	CreateGoal(ctx context.Context, goal models.TrainingGoal) (*models.TrainingGoal, error)
	SetGoalStatus(ctx context.Context, goalID uuid.UUID, userID int, status models.GoalStatus) (*models.TrainingGoal, error)
	GoalDeadlines(ctx context.Context, userID int, within time.Duration) (*coach.GoalDeadlines, error)
	GoalsProgress(ctx context.Context, userID int) ([]goals.Progress, error)
	RecalculateGoal(ctx context.Context, goalID uuid.UUID, userID int) (*goals.SyncResult, error)
	RecalculateAllGoals(ctx context.Context, userID int) ([]goals.SyncResult, error)
	CheckGoalCompletions(ctx context.Context, userID int) ([]models.TrainingGoal, error)
	SuggestGoals(ctx context.Context, userID int, days int) ([]models.TrainingGoal, error)
}

var _ CoachService = (*coach.Service)(nil)

// UserStore maps authenticated identities onto user rows.
type UserStore interface {
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    CoachService
	users  UserStore
	log    *slog.Logger
	apiKey string
	lc     *local.Client
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(svc CoachService, users UserStore, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		users:  users,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	// Ingest endpoints (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/activities", s.handleIngestActivities)
		r.Post("/sessions", s.handleIngestSessions)
	})

	// Coaching API endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/context/today", s.handleTodayContext)
	s.router.Get("/api/v1/volume/summary", s.handleVolumeSummary)
	s.router.Route("/api/v1/goals", func(r chi.Router) {
		r.Get("/", s.handleListGoals)
		r.Post("/", s.handleCreateGoal)
		r.Get("/suggestions", s.handleGoalSuggestions)
		r.Get("/deadlines", s.handleGoalDeadlines)
		r.Post("/recalculate", s.handleRecalculateAllGoals)
		r.Post("/check-completions", s.handleCheckCompletions)
		r.Post("/{id}/recalculate", s.handleRecalculateGoal)
		r.Post("/{id}/status", s.handleSetGoalStatus)
	})
	s.router.Get("/api/v1/me", s.handleMe)
}

// SetTailscale switches identity resolution from the fixed dev user to
// tailnet WhoIs lookups.
func (s *Server) SetTailscale(lc *local.Client) {
	s.lc = lc
}
