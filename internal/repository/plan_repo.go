package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/vamos-sujal/ai-glow-fit/internal/models"
)

// PlanRepository stores generated plans. Plans are insert-only: each
// regeneration adds a row and readers take the newest by created_at, so
// history is retained but superseded rows are never read.
type PlanRepository struct {
	db DBTX
}

func NewPlanRepository(db DBTX) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Insert(ctx context.Context, plan *models.FitnessPlan) error {
	workoutJSON, err := json.Marshal(plan.WorkoutPlan)
	if err != nil {
		return fmt.Errorf("marshal workout plan: %w", err)
	}
	dietJSON, err := json.Marshal(plan.DietPlan)
	if err != nil {
		return fmt.Errorf("marshal diet plan: %w", err)
	}

	query := `
		INSERT INTO fitness_plans (user_id, profile_id, workout_plan, diet_plan, ai_tips, motivation_quote)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		plan.UserID,
		plan.ProfileID,
		workoutJSON,
		dietJSON,
		plan.AITips,
		plan.MotivationQuote,
	).Scan(&plan.ID, &plan.CreatedAt)
}

// GetLatestByProfile returns the newest plan for a profile.
func (r *PlanRepository) GetLatestByProfile(ctx context.Context, profileID uuid.UUID) (*models.FitnessPlan, error) {
	query := `
		SELECT id, user_id, profile_id, workout_plan, diet_plan, ai_tips, motivation_quote, created_at
		FROM fitness_plans
		WHERE profile_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanPlan(r.db.QueryRow(ctx, query, profileID))
}

// GetLatestByUser returns the newest plan for a user, covering legacy rows
// written before profiles existed (profile_id NULL).
func (r *PlanRepository) GetLatestByUser(ctx context.Context, userID uuid.UUID) (*models.FitnessPlan, error) {
	query := `
		SELECT id, user_id, profile_id, workout_plan, diet_plan, ai_tips, motivation_quote, created_at
		FROM fitness_plans
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanPlan(r.db.QueryRow(ctx, query, userID))
}

func (r *PlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FitnessPlan, error) {
	query := `
		SELECT id, user_id, profile_id, workout_plan, diet_plan, ai_tips, motivation_quote, created_at
		FROM fitness_plans
		WHERE id = $1
	`
	return r.scanPlan(r.db.QueryRow(ctx, query, id))
}

func (r *PlanRepository) scanPlan(row rowScanner) (*models.FitnessPlan, error) {
	var plan models.FitnessPlan
	var workoutJSON, dietJSON []byte
	err := row.Scan(
		&plan.ID,
		&plan.UserID,
		&plan.ProfileID,
		&workoutJSON,
		&dietJSON,
		&plan.AITips,
		&plan.MotivationQuote,
		&plan.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(workoutJSON) > 0 {
		if err := json.Unmarshal(workoutJSON, &plan.WorkoutPlan); err != nil {
			return nil, fmt.Errorf("unmarshal workout plan: %w", err)
		}
	}
	if len(dietJSON) > 0 {
		if err := json.Unmarshal(dietJSON, &plan.DietPlan); err != nil {
			return nil, fmt.Errorf("unmarshal diet plan: %w", err)
		}
	}
	return &plan, nil
}
