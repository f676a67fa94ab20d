package coach

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/claude/traincoach/internal/models"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	goals map[uuid.UUID]models.TrainingGoal

	nearing []models.TrainingGoal
	expired []models.TrainingGoal

	gotWithin time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{goals: map[uuid.UUID]models.TrainingGoal{}}
}

func (f *fakeStore) ListSessions(_ context.Context, _ int, _ time.Time, _ int) ([]models.SessionRecord, error) {
	return nil, nil
}

func (f *fakeStore) GetActivity(_ context.Context, _ uuid.UUID, _ int) (*models.ActivityRecord, error) {
	return nil, nil
}

func (f *fakeStore) ListActivitiesSince(_ context.Context, _ int, _ time.Time) ([]models.ActivityRecord, error) {
	return nil, nil
}

func (f *fakeStore) GetGoal(_ context.Context, id uuid.UUID, userID int) (*models.TrainingGoal, error) {
	g, ok := f.goals[id]
	if !ok || g.UserID != userID {
		return nil, nil
	}
	return &g, nil
}

func (f *fakeStore) ListActiveGoals(_ context.Context, userID int) ([]models.TrainingGoal, error) {
	var active []models.TrainingGoal
	for _, g := range f.goals {
		if g.UserID == userID && g.IsActive {
			active = append(active, g)
		}
	}
	return active, nil
}

func (f *fakeStore) UpdateGoalValue(_ context.Context, id uuid.UUID, userID int, value float64) (*models.TrainingGoal, error) {
	g := f.goals[id]
	g.CurrentValue = value
	f.goals[id] = g
	return &g, nil
}

func (f *fakeStore) CompleteGoal(_ context.Context, id uuid.UUID, userID int) (*models.TrainingGoal, error) {
	g := f.goals[id]
	g.Status = models.GoalCompleted
	g.IsActive = false
	f.goals[id] = g
	return &g, nil
}

func (f *fakeStore) InsertSession(_ context.Context, _ models.SessionRecord) (bool, error) {
	return true, nil
}

func (f *fakeStore) InsertActivity(_ context.Context, _ models.ActivityRecord) (bool, error) {
	return true, nil
}

func (f *fakeStore) CreateGoal(_ context.Context, g models.TrainingGoal) (*models.TrainingGoal, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	g.Status = models.GoalActive
	g.IsActive = true
	f.goals[g.ID] = g
	return &g, nil
}

func (f *fakeStore) SetGoalStatus(_ context.Context, id uuid.UUID, userID int, status models.GoalStatus) (*models.TrainingGoal, error) {
	g := f.goals[id]
	g.Status = status
	g.IsActive = status == models.GoalActive
	f.goals[id] = g
	return &g, nil
}

func (f *fakeStore) ListGoalsNearingDeadline(_ context.Context, _ int, within time.Duration) ([]models.TrainingGoal, error) {
	f.gotWithin = within
	return f.nearing, nil
}

func (f *fakeStore) ListExpiredGoals(_ context.Context, _ int) ([]models.TrainingGoal, error) {
	return f.expired, nil
}

var _ Store = (*fakeStore)(nil)

func newTestService(store *fakeStore) *Service {
	return NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func strPtr(s string) *string { return &s }

func TestCreateGoalValidation(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	tests := []struct {
		name string
		goal models.TrainingGoal
	}{
		{"missing title", models.TrainingGoal{TargetValue: 40}},
		{"zero target", models.TrainingGoal{Title: "Run 40km", GoalType: models.GoalDistance}},
		{"negative target", models.TrainingGoal{Title: "Run 40km", GoalType: models.GoalDistance, TargetValue: -5}},
		{"unknown discipline", models.TrainingGoal{Title: "Squat volume", GoalType: models.GoalVolume, TargetValue: 500, Discipline: strPtr("yoga")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateGoal(ctx, tt.goal); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestCreateGoalNormalizesDiscipline(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	created, err := svc.CreateGoal(context.Background(), models.TrainingGoal{
		UserID:      1,
		Title:       "Weekly squat volume",
		GoalType:    models.GoalVolume,
		TargetValue: 500,
		Discipline:  strPtr("  Strength "),
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Discipline == nil || *created.Discipline != "strength" {
		t.Errorf("discipline = %v, want normalized strength", created.Discipline)
	}
	if created.Unit != "reps" {
		t.Errorf("unit = %q, want reps defaulted from the discipline", created.Unit)
	}
}

func TestCreateGoalKeepsExplicitUnit(t *testing.T) {
	svc := newTestService(newFakeStore())

	created, err := svc.CreateGoal(context.Background(), models.TrainingGoal{
		UserID:      1,
		Title:       "Zone 2 volume",
		GoalType:    models.GoalVolume,
		TargetValue: 300,
		Unit:        "min",
		Discipline:  strPtr("endurance"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Unit != "min" {
		t.Errorf("unit = %q, want the caller's min kept", created.Unit)
	}
}

func TestSetGoalStatusAbandon(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.CreateGoal(ctx, models.TrainingGoal{
		UserID: 1, Title: "Run 40km", GoalType: models.GoalDistance, TargetValue: 40, Unit: "km",
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.SetGoalStatus(ctx, created.ID, 1, models.GoalAbandoned)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.GoalAbandoned || updated.IsActive {
		t.Errorf("goal = %+v, want abandoned and inactive", updated)
	}

	// Reactivating is allowed.
	updated, err = svc.SetGoalStatus(ctx, created.ID, 1, models.GoalActive)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.GoalActive || !updated.IsActive {
		t.Errorf("goal = %+v, want active again", updated)
	}
}

func TestSetGoalStatusRejectsCompleted(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	created, err := svc.CreateGoal(ctx, models.TrainingGoal{
		UserID: 1, Title: "Run 40km", GoalType: models.GoalDistance, TargetValue: 40,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.SetGoalStatus(ctx, created.ID, 1, models.GoalCompleted); err == nil {
		t.Error("completed must not be settable directly")
	}
	if store.goals[created.ID].Status != models.GoalActive {
		t.Errorf("status = %q, want untouched active", store.goals[created.ID].Status)
	}
}

func TestSetGoalStatusUnknownGoal(t *testing.T) {
	svc := newTestService(newFakeStore())

	updated, err := svc.SetGoalStatus(context.Background(), uuid.New(), 1, models.GoalAbandoned)
	if err != nil {
		t.Fatal(err)
	}
	if updated != nil {
		t.Errorf("updated = %+v, want nil for an unknown goal", updated)
	}
}

func TestGoalDeadlines(t *testing.T) {
	deadline := time.Now().AddDate(0, 0, 3)
	past := time.Now().AddDate(0, 0, -2)
	store := newFakeStore()
	store.nearing = []models.TrainingGoal{{Title: "Run 40km", Deadline: &deadline}}
	store.expired = []models.TrainingGoal{{Title: "Old goal", Deadline: &past}}
	svc := newTestService(store)

	got, err := svc.GoalDeadlines(context.Background(), 1, 7*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if store.gotWithin != 7*24*time.Hour {
		t.Errorf("within = %v, want 7 days", store.gotWithin)
	}
	if len(got.NearingDeadline) != 1 || got.NearingDeadline[0].Title != "Run 40km" {
		t.Errorf("nearing = %+v, want the deadline goal", got.NearingDeadline)
	}
	if len(got.Expired) != 1 || got.Expired[0].Title != "Old goal" {
		t.Errorf("expired = %+v, want the overdue goal", got.Expired)
	}
}

func TestGoalDeadlinesEmpty(t *testing.T) {
	svc := newTestService(newFakeStore())

	got, err := svc.GoalDeadlines(context.Background(), 1, 7*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if got.NearingDeadline == nil || got.Expired == nil {
		t.Errorf("deadlines = %+v, want empty slices, not nil", got)
	}
}
