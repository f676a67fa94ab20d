package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/claude/traincoach/internal/models"
)

const goalColumns = `id, user_id, title, goal_type, target_value, current_value, unit,
	 discipline, deadline, status, is_active, created_at, updated_at`

// CreateGoal inserts a goal and returns the stored row. A zero id gets a
// fresh one; created/updated timestamps come from the database.
func (db *DB) CreateGoal(ctx context.Context, g models.TrainingGoal) (*models.TrainingGoal, error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = models.GoalActive
		g.IsActive = true
	}

	row := db.Pool.QueryRow(ctx,
		`INSERT INTO training_goals (id, user_id, title, goal_type, target_value, current_value, unit, discipline, deadline, status, is_active)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING `+goalColumns,
		g.ID, g.UserID, g.Title, g.GoalType, g.TargetValue, g.CurrentValue, g.Unit,
		g.Discipline, g.Deadline, g.Status, g.IsActive)

	goal, err := scanGoal(row)
	if err != nil {
		return nil, fmt.Errorf("inserting goal: %w", err)
	}
	return goal, nil
}

// GetGoal retrieves a single goal. A missing row is nil, not an error.
func (db *DB) GetGoal(ctx context.Context, id uuid.UUID, userID int) (*models.TrainingGoal, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+goalColumns+` FROM training_goals WHERE id = $1 AND user_id = $2`,
		id, userID)

	goal, err := scanGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying goal: %w", err)
	}
	return goal, nil
}

// ListActiveGoals retrieves a user's active goals, oldest first.
func (db *DB) ListActiveGoals(ctx context.Context, userID int) ([]models.TrainingGoal, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+goalColumns+` FROM training_goals
		 WHERE user_id = $1 AND is_active = TRUE AND status = 'active'
		 ORDER BY created_at ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying active goals: %w", err)
	}
	defer rows.Close()
	return scanGoalRows(rows)
}

// UpdateGoalValue sets a goal's current value and returns the updated row.
func (db *DB) UpdateGoalValue(ctx context.Context, id uuid.UUID, userID int, value float64) (*models.TrainingGoal, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE training_goals
		 SET current_value = $3, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+goalColumns,
		id, userID, value)

	goal, err := scanGoal(row)
	if err != nil {
		return nil, fmt.Errorf("updating goal value: %w", err)
	}
	return goal, nil
}

// CompleteGoal marks a goal completed and inactive.
func (db *DB) CompleteGoal(ctx context.Context, id uuid.UUID, userID int) (*models.TrainingGoal, error) {
	return db.setGoalStatus(ctx, id, userID, models.GoalCompleted, false)
}

// SetGoalStatus transitions a goal to the given status. Only the active
// status keeps the goal eligible for sync.
func (db *DB) SetGoalStatus(ctx context.Context, id uuid.UUID, userID int, status models.GoalStatus) (*models.TrainingGoal, error) {
	return db.setGoalStatus(ctx, id, userID, status, status == models.GoalActive)
}

func (db *DB) setGoalStatus(ctx context.Context, id uuid.UUID, userID int, status models.GoalStatus, active bool) (*models.TrainingGoal, error) {
	row := db.Pool.QueryRow(ctx,
		`UPDATE training_goals
		 SET status = $3, is_active = $4, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+goalColumns,
		id, userID, status, active)

	goal, err := scanGoal(row)
	if err != nil {
		return nil, fmt.Errorf("updating goal status: %w", err)
	}
	return goal, nil
}

// ListGoalsNearingDeadline retrieves active goals whose deadline falls
// within the given window from now.
func (db *DB) ListGoalsNearingDeadline(ctx context.Context, userID int, within time.Duration) ([]models.TrainingGoal, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+goalColumns+` FROM training_goals
		 WHERE user_id = $1 AND is_active = TRUE AND status = 'active'
		   AND deadline IS NOT NULL AND deadline BETWEEN NOW() AND NOW() + $2
		 ORDER BY deadline ASC`,
		userID, within)
	if err != nil {
		return nil, fmt.Errorf("querying goals nearing deadline: %w", err)
	}
	defer rows.Close()
	return scanGoalRows(rows)
}

// ListExpiredGoals retrieves active goals whose deadline has passed.
func (db *DB) ListExpiredGoals(ctx context.Context, userID int) ([]models.TrainingGoal, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+goalColumns+` FROM training_goals
		 WHERE user_id = $1 AND is_active = TRUE AND status = 'active'
		   AND deadline IS NOT NULL AND deadline < NOW()
		 ORDER BY deadline ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying expired goals: %w", err)
	}
	defer rows.Close()
	return scanGoalRows(rows)
}

func scanGoal(row pgx.Row) (*models.TrainingGoal, error) {
	var g models.TrainingGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.GoalType, &g.TargetValue, &g.CurrentValue,
		&g.Unit, &g.Discipline, &g.Deadline, &g.Status, &g.IsActive, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func scanGoalRows(rows pgx.Rows) ([]models.TrainingGoal, error) {
	var result []models.TrainingGoal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		result = append(result, *goal)
	}
	return result, rows.Err()
}
