package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vamos-sujal/ai-glow-fit/internal/models"
)

const profileColumns = `id, user_id, profile_name, full_name, age, gender, height_cm, weight_kg,
	fitness_goal, fitness_level, workout_location, dietary_preference, medical_history, stress_level,
	created_at, updated_at`

type ProfileRepository struct {
	db DBTX
}

func NewProfileRepository(db DBTX) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// ProfileInput carries the full-form profile fields. Profiles are only
// mutated through full-form edits, so there is no partial update variant.
type ProfileInput struct {
	ProfileName       string
	FullName          *string
	Age               *int
	Gender            *string
	HeightCM          *float64
	WeightKG          *float64
	FitnessGoal       *string
	FitnessLevel      *string
	WorkoutLocation   *string
	DietaryPreference *string
	MedicalHistory    *string
	StressLevel       *string
}

func (r *ProfileRepository) Create(ctx context.Context, userID uuid.UUID, input ProfileInput) (*models.FitnessProfile, error) {
	query := `
		INSERT INTO fitness_profiles (user_id, profile_name, full_name, age, gender, height_cm, weight_kg,
			fitness_goal, fitness_level, workout_location, dietary_preference, medical_history, stress_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + profileColumns
	return r.scanProfile(r.db.QueryRow(ctx, query,
		userID,
		input.ProfileName,
		input.FullName,
		input.Age,
		input.Gender,
		input.HeightCM,
		input.WeightKG,
		input.FitnessGoal,
		input.FitnessLevel,
		input.WorkoutLocation,
		input.DietaryPreference,
		input.MedicalHistory,
		input.StressLevel,
	))
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FitnessProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM fitness_profiles WHERE id = $1`
	return r.scanProfile(r.db.QueryRow(ctx, query, id))
}

func (r *ProfileRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.FitnessProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM fitness_profiles WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.FitnessProfile{}
	for rows.Next() {
		var profile models.FitnessProfile
		if err := scanProfileFields(rows, &profile); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, input ProfileInput) (*models.FitnessProfile, error) {
	query := `
		UPDATE fitness_profiles
		SET profile_name = $1,
			full_name = $2,
			age = $3,
			gender = $4,
			height_cm = $5,
			weight_kg = $6,
			fitness_goal = $7,
			fitness_level = $8,
			workout_location = $9,
			dietary_preference = $10,
			medical_history = $11,
			stress_level = $12,
			updated_at = NOW()
		WHERE id = $13
		RETURNING ` + profileColumns
	return r.scanProfile(r.db.QueryRow(ctx, query,
		input.ProfileName,
		input.FullName,
		input.Age,
		input.Gender,
		input.HeightCM,
		input.WeightKG,
		input.FitnessGoal,
		input.FitnessLevel,
		input.WorkoutLocation,
		input.DietaryPreference,
		input.MedicalHistory,
		input.StressLevel,
		id,
	))
}

// Delete removes the profile; its plans cascade at the schema level.
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM fitness_profiles WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProfileRepository) scanProfile(row rowScanner) (*models.FitnessProfile, error) {
	var profile models.FitnessProfile
	if err := scanProfileFields(row, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func scanProfileFields(row rowScanner, profile *models.FitnessProfile) error {
	return row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.ProfileName,
		&profile.FullName,
		&profile.Age,
		&profile.Gender,
		&profile.HeightCM,
		&profile.WeightKG,
		&profile.FitnessGoal,
		&profile.FitnessLevel,
		&profile.WorkoutLocation,
		&profile.DietaryPreference,
		&profile.MedicalHistory,
		&profile.StressLevel,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}
